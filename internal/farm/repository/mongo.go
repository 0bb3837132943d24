package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/farmconnect/farmconnect/backend/api/internal/farm"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements Store on top of a MongoDB database handle.
type MongoStore struct {
	db  *mongo.Database
	now func() time.Time
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func (m *MongoStore) Insert(ctx context.Context, collection string, record any) (string, error) {
	doc, id, err := stamp(record, m.now())
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", farm.ErrStorageWrite, collection, err)
	}
	if _, err := m.db.Collection(collection).InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("%w: insert into %s: %w", farm.ErrStorageWrite, collection, err)
	}
	return id.Hex(), nil
}

func (m *MongoStore) Find(ctx context.Context, collection string, filter map[string]string, limit int64) ([]bson.M, error) {
	query := bson.M{}
	for k, v := range filter {
		query[k] = v
	}
	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := m.db.Collection(collection).Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: find in %s: %w", farm.ErrStorageQuery, collection, err)
	}
	defer cur.Close(ctx)

	out := []bson.M{}
	for cur.Next(ctx) {
		var d bson.M
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("%w: decode %s: %w", farm.ErrStorageQuery, collection, err)
		}
		out = append(out, d)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate %s: %w", farm.ErrStorageQuery, collection, err)
	}
	return out, nil
}

func (m *MongoStore) Name() string { return m.db.Name() }

func (m *MongoStore) CollectionNames(ctx context.Context) ([]string, error) {
	return m.db.ListCollectionNames(ctx, bson.D{})
}

func (m *MongoStore) Ping(ctx context.Context) error {
	return m.db.Client().Ping(ctx, nil)
}

// Disconnect closes the underlying client.
func (m *MongoStore) Disconnect(ctx context.Context) error {
	return m.db.Client().Disconnect(ctx)
}
