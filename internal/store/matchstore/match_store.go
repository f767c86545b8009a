package matchstore

import (
	"context"

	"github.com/pkg/errors"
	"github.com/ykhdr/crypt-crack/pkg/messages"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const DefaultCollection = "matches"

// MatchStore records recovered passwords. It is a results log: nothing is
// read back to resume a run.
type MatchStore interface {
	Save(ctx context.Context, match *messages.CrackMatch) error
}

// inserter is the part of *mongo.Collection the store writes through.
type inserter interface {
	InsertOne(ctx context.Context, document any, opts ...options.Lister[options.InsertOneOptions]) (*mongo.InsertOneResult, error)
}

type matchStore struct {
	collection inserter
}

func NewMatchStore(database *mongo.Database, collection string) MatchStore {
	if collection == "" {
		collection = DefaultCollection
	}
	return newMatchStore(database.Collection(collection))
}

func newMatchStore(collection inserter) *matchStore {
	return &matchStore{collection: collection}
}

func (s *matchStore) Save(ctx context.Context, match *messages.CrackMatch) error {
	if _, err := s.collection.InsertOne(ctx, match); err != nil {
		return errors.Wrap(err, "failed to insert match")
	}
	return nil
}
