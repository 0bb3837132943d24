package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/farmconnect/farmconnect/backend/api/internal/farm/repository"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenStore struct{ err error }

func (b brokenStore) Name() string { return "farmconnect" }

func (b brokenStore) CollectionNames(ctx context.Context) ([]string, error) { return nil, b.err }

func (b brokenStore) Ping(ctx context.Context) error { return b.err }

func serve(h *StatusHandler, path string) (*httptest.ResponseRecorder, map[string]any) {
	g := gin.New()
	h.Register(g)
	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestRootAndHealth(t *testing.T) {
	w, body := serve(NewStatusHandler(nil, nil, false), "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "FarmConnect backend is running", body["message"])

	w, _ = serve(NewStatusHandler(nil, nil, false), "/health")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", w.Body.String())
}

func TestDiagnoseWithoutStore(t *testing.T) {
	w, body := serve(NewStatusHandler(nil, nil, false), "/test")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "✅ Running", body["backend"])
	assert.Equal(t, "⚠️ Available but not initialized", body["database"])
	assert.Equal(t, "Not Connected", body["connection_status"])
	assert.Equal(t, []any{}, body["collections"])
}

func TestDiagnoseListsAtMostTenCollections(t *testing.T) {
	store := repository.NewMemoryStore("farmconnect")
	for i := 0; i < 12; i++ {
		_, err := store.Insert(context.Background(), fmt.Sprintf("c%02d", i), map[string]string{"k": "v"})
		require.NoError(t, err)
	}
	w, body := serve(NewStatusHandler(store, nil, true), "/test")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "✅ Connected & Working", body["database"])
	assert.Equal(t, "✅ Set", body["database_url"])
	assert.Equal(t, "farmconnect", body["database_name"])
	assert.Equal(t, "Connected", body["connection_status"])
	assert.Len(t, body["collections"], 10)
}

func TestDiagnoseDowngradesErrors(t *testing.T) {
	long := errors.New("server selection error: " + strings.Repeat("x", 200))
	w, body := serve(NewStatusHandler(brokenStore{err: long}, nil, true), "/test")
	require.Equal(t, http.StatusOK, w.Code)
	status := body["database"].(string)
	assert.True(t, strings.HasPrefix(status, "⚠️ Connected but Error: server selection error"))
	assert.Equal(t, len([]rune("⚠️ Connected but Error: "))+60, len([]rune(status)))
	assert.Equal(t, "Not Connected", body["connection_status"])
}

func TestReady(t *testing.T) {
	w, body := serve(NewStatusHandler(nil, nil, false), "/ready")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "not_ready", body["status"])

	w, _ = serve(NewStatusHandler(brokenStore{err: errors.New("down")}, nil, true), "/ready")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()
	client := redis.NewClient(&redis.Options{Addr: m.Addr()})

	w, body = serve(NewStatusHandler(repository.NewMemoryStore("t"), client, true), "/ready")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"storage": true, "redis": true}, body["deps"])
}
