package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/iss-spotter/iss-spotter/internal/core/domain"
	"github.com/iss-spotter/iss-spotter/internal/core/ports"
)

const lookupsCollection = "lookups"

// LookupRepository implements ports.LookupRepository using MongoDB.
type LookupRepository struct {
	db *mongo.Database
}

// NewLookupRepository creates a new LookupRepository.
func NewLookupRepository(db *mongo.Database) ports.LookupRepository {
	return &LookupRepository{db: db}
}

// EnsureIndexes creates the index backing ListRecent. Safe to call repeatedly.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(lookupsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "started_at", Value: -1}},
		Options: options.Index().SetName("started_at_desc"),
	})
	if err != nil {
		return fmt.Errorf("create lookups index: %w", err)
	}
	return nil
}

// Insert persists a finished lookup. The lookup id is the document _id.
func (r *LookupRepository) Insert(ctx context.Context, lookup *domain.Lookup) error {
	_, err := r.db.Collection(lookupsCollection).InsertOne(ctx, lookup)
	return err
}

func (r *LookupRepository) FindByID(ctx context.Context, id string) (*domain.Lookup, error) {
	var l domain.Lookup
	err := r.db.Collection(lookupsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&l)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrLookupNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// ListRecent returns up to limit lookups ordered by started_at descending.
func (r *LookupRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Lookup, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "started_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.db.Collection(lookupsCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domain.Lookup
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
