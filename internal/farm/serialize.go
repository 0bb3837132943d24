package farm

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Serialize converts a stored document into its public JSON shape:
// "_id" becomes a string "id" and date-times become RFC 3339 text.
// Every other field is passed through as stored.
func Serialize(doc bson.M) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		if k == "_id" {
			if v != nil {
				out["id"] = idString(v)
			}
			continue
		}
		out[k] = publicValue(v)
	}
	return out
}

// SerializeAll applies Serialize to each document, keeping order.
func SerializeAll(docs []bson.M) []map[string]any {
	out := make([]map[string]any, 0, len(docs))
	for _, d := range docs {
		out = append(out, Serialize(d))
	}
	return out
}

func idString(v any) string {
	switch id := v.(type) {
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	}
	return fmt.Sprint(v)
}

func publicValue(v any) any {
	switch t := v.(type) {
	case primitive.DateTime:
		return t.Time().UTC().Format(time.RFC3339Nano)
	case time.Time:
		return t.UTC().Format(time.RFC3339Nano)
	case primitive.ObjectID:
		return t.Hex()
	}
	return v
}
