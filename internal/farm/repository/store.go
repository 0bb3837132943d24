package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store is the document accessor shared by every record kind. Records are
// addressed by collection name; identifiers and timestamps are assigned
// here, never by callers.
type Store interface {
	Insert(ctx context.Context, collection string, record any) (string, error)
	Find(ctx context.Context, collection string, filter map[string]string, limit int64) ([]bson.M, error)
	Name() string
	CollectionNames(ctx context.Context) ([]string, error)
	Ping(ctx context.Context) error
}

// reserved keys are owned by the store and dropped from caller input.
var reserved = map[string]bool{"_id": true, "created_at": true, "updated_at": true}

// stamp encodes record as a document with a fresh ObjectID and
// created_at/updated_at set to now.
func stamp(record any, now time.Time) (bson.D, primitive.ObjectID, error) {
	raw, err := bson.Marshal(record)
	if err != nil {
		return nil, primitive.NilObjectID, fmt.Errorf("encode %T: %w", record, err)
	}
	var fields bson.D
	if err := bson.Unmarshal(raw, &fields); err != nil {
		return nil, primitive.NilObjectID, fmt.Errorf("decode %T: %w", record, err)
	}

	id := primitive.NewObjectID()
	ts := primitive.NewDateTimeFromTime(now)
	doc := make(bson.D, 0, len(fields)+3)
	doc = append(doc, bson.E{Key: "_id", Value: id})
	for _, f := range fields {
		if reserved[f.Key] {
			continue
		}
		doc = append(doc, f)
	}
	doc = append(doc, bson.E{Key: "created_at", Value: ts}, bson.E{Key: "updated_at", Value: ts})
	return doc, id, nil
}
