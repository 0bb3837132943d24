package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConnectMongoRejectsEmptyURI(t *testing.T) {
	_, err := ConnectMongo(context.Background(), "", "farmconnect", time.Second)
	require.Error(t, err)
}

func TestConnectMongoInvalidURI(t *testing.T) {
	_, err := ConnectMongo(context.Background(), "postgres://nope", "farmconnect", time.Second)
	require.ErrorContains(t, err, "mongo connect")
}
