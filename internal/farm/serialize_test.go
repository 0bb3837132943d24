package farm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSerialize(t *testing.T) {
	id := primitive.NewObjectID()
	created := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	doc := bson.M{
		"_id":        id,
		"title":      "Tomatoes",
		"price":      10.0,
		"in_stock":   true,
		"created_at": primitive.NewDateTimeFromTime(created),
		"updated_at": created,
	}

	out := Serialize(doc)
	assert.Equal(t, id.Hex(), out["id"])
	assert.NotContains(t, out, "_id")
	assert.Equal(t, "2024-03-01T12:30:00Z", out["created_at"])
	assert.Equal(t, "2024-03-01T12:30:00Z", out["updated_at"])
	assert.Equal(t, "Tomatoes", out["title"])
	assert.Equal(t, 10.0, out["price"])
	assert.Equal(t, true, out["in_stock"])
	assert.NotContains(t, out, "description")
}

func TestSerialize_NonObjectIDAndMissingID(t *testing.T) {
	assert.Equal(t, "legacy-1", Serialize(bson.M{"_id": "legacy-1"})["id"])
	assert.Equal(t, "42", Serialize(bson.M{"_id": int32(42)})["id"])

	out := Serialize(bson.M{"name": "x"})
	assert.NotContains(t, out, "id")
	assert.Equal(t, "x", out["name"])
}
