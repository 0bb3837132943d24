package service

import (
	"context"

	"github.com/farmconnect/farmconnect/backend/api/internal/farm"
	"github.com/farmconnect/farmconnect/backend/api/internal/farm/repository"
	"github.com/farmconnect/farmconnect/backend/api/pkg/metrics"
)

// List limits per record kind.
const (
	DefaultLimit     = 50
	MaxListingLimit  = 100
	MaxTutorialLimit = 100
	MaxMessageLimit  = 200
)

// Service implements the create/list operations behind the HTTP handlers.
// A nil store makes every operation fail with farm.ErrStorageUnavailable.
type Service struct {
	store repository.Store
}

func New(store repository.Store) *Service {
	return &Service{store: store}
}

// Available reports whether a store is wired in.
func (s *Service) Available() bool { return s.store != nil }

func (s *Service) CreateListing(ctx context.Context, l *farm.Listing) (string, error) {
	return s.create(ctx, farm.CollectionListings, l)
}

func (s *Service) CreateTutorial(ctx context.Context, t *farm.Tutorial) (string, error) {
	return s.create(ctx, farm.CollectionTutorials, t)
}

func (s *Service) CreateMessage(ctx context.Context, m *farm.Message) (string, error) {
	return s.create(ctx, farm.CollectionMessages, m)
}

func (s *Service) ListListings(ctx context.Context, limit int) ([]map[string]any, error) {
	return s.list(ctx, farm.CollectionListings, nil, ClampLimit(limit, MaxListingLimit))
}

func (s *Service) ListTutorials(ctx context.Context, limit int) ([]map[string]any, error) {
	return s.list(ctx, farm.CollectionTutorials, nil, ClampLimit(limit, MaxTutorialLimit))
}

// ListMessages returns messages posted to room, or to any room when room is empty.
func (s *Service) ListMessages(ctx context.Context, room string, limit int) ([]map[string]any, error) {
	var filter map[string]string
	if room != "" {
		filter = map[string]string{"room": room}
	}
	return s.list(ctx, farm.CollectionMessages, filter, ClampLimit(limit, MaxMessageLimit))
}

// ClampLimit substitutes DefaultLimit for non-positive values and caps the result at ceiling.
func ClampLimit(limit, ceiling int) int64 {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > ceiling {
		limit = ceiling
	}
	return int64(limit)
}

func (s *Service) create(ctx context.Context, collection string, record any) (string, error) {
	if err := farm.Validate(record); err != nil {
		return "", err
	}
	if s.store == nil {
		return "", farm.ErrStorageUnavailable
	}
	id, err := s.store.Insert(ctx, collection, record)
	if err != nil {
		metrics.StorageErrors.WithLabelValues(collection, "insert").Inc()
		return "", err
	}
	metrics.RecordsCreated.WithLabelValues(collection).Inc()
	return id, nil
}

func (s *Service) list(ctx context.Context, collection string, filter map[string]string, limit int64) ([]map[string]any, error) {
	if s.store == nil {
		return nil, farm.ErrStorageUnavailable
	}
	docs, err := s.store.Find(ctx, collection, filter, limit)
	if err != nil {
		metrics.StorageErrors.WithLabelValues(collection, "find").Inc()
		return nil, err
	}
	return farm.SerializeAll(docs), nil
}
