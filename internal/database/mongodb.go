package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const appName = "farmconnect-api"

// ConnectMongo opens a connection, verifies it with a ping and returns the
// named database. There is a single attempt bounded by timeout.
// Caller should call db.Client().Disconnect(ctx).
func ConnectMongo(ctx context.Context, uri, database string, timeout time.Duration) (*mongo.Database, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongo connect: empty uri")
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	clientOpts := options.Client().
		ApplyURI(uri).
		SetAppName(appName).
		SetServerSelectionTimeout(timeout)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client.Database(database), nil
}
