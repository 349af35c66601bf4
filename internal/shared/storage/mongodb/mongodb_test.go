package mongodb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseID(t *testing.T) {
	oid := primitive.NewObjectID()

	got, ok := ParseID(oid.Hex())
	assert.True(t, ok)
	assert.Equal(t, oid, got)

	for _, bad := range []string{"", "1", "not-an-object-id", "zzzzzzzzzzzzzzzzzzzzzzzz"} {
		_, ok := ParseID(bad)
		assert.False(t, ok, "id %q", bad)
	}
}

func TestConnectRequiresURIAndDatabase(t *testing.T) {
	_, _, err := Connect(context.Background(), "", "db", DefaultOptions())
	assert.Error(t, err)

	_, _, err = Connect(context.Background(), "mongodb://localhost:27017", " ", DefaultOptions())
	assert.Error(t, err)
}
