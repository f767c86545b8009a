package matchstore

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ykhdr/crypt-crack/pkg/messages"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type fakeCollection struct {
	docs []any
	err  error
}

func (c *fakeCollection) InsertOne(_ context.Context, document any, _ ...options.Lister[options.InsertOneOptions]) (*mongo.InsertOneResult, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.docs = append(c.docs, document)
	return &mongo.InsertOneResult{}, nil
}

func TestMatchStore_Save(t *testing.T) {
	t.Run("writes one document per match", func(t *testing.T) {
		// Prepare
		coll := &fakeCollection{}
		s := newMatchStore(coll)
		foundAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		match := &messages.CrackMatch{
			Id:        "m-1",
			RunId:     "run-1",
			Candidate: "passw0rd",
			Word:      "passwrd",
			Hash:      "$6$hash",
			HashIndex: 3,
			FoundAt:   foundAt,
		}

		// Execute
		err := s.Save(context.Background(), match)

		// Check
		require.NoError(t, err)
		require.Len(t, coll.docs, 1)
		raw, err := bson.Marshal(coll.docs[0])
		require.NoError(t, err)
		var doc bson.M
		require.NoError(t, bson.Unmarshal(raw, &doc))
		assert.Equal(t, "m-1", doc["_id"])
		assert.Equal(t, "run-1", doc["run_id"])
		assert.Equal(t, "passw0rd", doc["candidate"])
		assert.Equal(t, "passwrd", doc["word"])
		assert.Equal(t, "$6$hash", doc["hash"])
		assert.EqualValues(t, 3, doc["hash_index"])
		assert.Contains(t, doc, "found_at")
		assert.NotContains(t, doc, "XMLName", "xml name is not stored")
		assert.Len(t, doc, 7)
	})

	t.Run("wraps insert failures", func(t *testing.T) {
		// Prepare
		s := newMatchStore(&fakeCollection{err: errors.New("connection refused")})

		// Execute
		err := s.Save(context.Background(), &messages.CrackMatch{Id: "m-1"})

		// Check
		assert.ErrorContains(t, err, "failed to insert match")
		assert.ErrorContains(t, err, "connection refused")
	})
}
