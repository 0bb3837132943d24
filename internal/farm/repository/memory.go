package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/farmconnect/farmconnect/backend/api/internal/farm"
	"go.mongodb.org/mongo-driver/bson"
)

// MemoryStore is an in-process Store used by tests and local development.
// Documents are kept encoded so stored records cannot be mutated by callers.
type MemoryStore struct {
	mu          sync.RWMutex
	name        string
	collections map[string][]bson.Raw
	now         func() time.Time
}

func NewMemoryStore(name string) *MemoryStore {
	return &MemoryStore{
		name:        name,
		collections: make(map[string][]bson.Raw),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (m *MemoryStore) Insert(ctx context.Context, collection string, record any) (string, error) {
	doc, id, err := stamp(record, m.now())
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", farm.ErrStorageWrite, collection, err)
	}
	raw, err := bson.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", farm.ErrStorageWrite, collection, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collections[collection] = append(m.collections[collection], raw)
	return id.Hex(), nil
}

// Find returns matching documents in insertion order.
func (m *MemoryStore) Find(ctx context.Context, collection string, filter map[string]string, limit int64) ([]bson.M, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []bson.M{}
	for _, raw := range m.collections[collection] {
		if limit > 0 && int64(len(out)) >= limit {
			break
		}
		if !matches(raw, filter) {
			continue
		}
		var d bson.M
		if err := bson.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("%w: decode %s: %w", farm.ErrStorageQuery, collection, err)
		}
		out = append(out, d)
	}
	return out, nil
}

func matches(raw bson.Raw, filter map[string]string) bool {
	for k, want := range filter {
		v, err := raw.LookupErr(k)
		if err != nil {
			return false
		}
		got, ok := v.StringValueOK()
		if !ok || got != want {
			return false
		}
	}
	return true
}

func (m *MemoryStore) Name() string { return m.name }

func (m *MemoryStore) CollectionNames(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.collections))
	for n := range m.collections {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

func (m *MemoryStore) Ping(ctx context.Context) error { return nil }
