package repository

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/oklog/ulid/v2"
	"github.com/tigoviajes/catalog/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names
const (
	collPackages       = "packages"
	collDepartureDates = "package_departure_dates"
	collItineraryDays  = "package_itinerary_days"
	collDestinations   = "destinations"
	collSections       = "special_sections"
	collFeatures       = "special_section_features"
)

// NewID returns a sortable, URL-safe identifier for a new document
func NewID() string {
	return ulid.Make().String()
}

// EnsureIndexes creates the unique slug indexes and the foreign key indexes
// the catalog queries rely on. Safe to call on every start.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)
	indexes := map[string][]mongo.IndexModel{
		collPackages: {
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "destination_slug", Value: 1}, {Key: "is_active", Value: 1}}},
			{Keys: bson.D{{Key: "special_section_id", Value: 1}}},
		},
		collDepartureDates: {
			{Keys: bson.D{{Key: "package_id", Value: 1}, {Key: "departure_date", Value: 1}}},
		},
		collItineraryDays: {
			{Keys: bson.D{{Key: "package_id", Value: 1}, {Key: "day_number", Value: 1}}},
		},
		collDestinations: {
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: unique},
		},
		collSections: {
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: unique},
		},
		collFeatures: {
			{Keys: bson.D{{Key: "section_id", Value: 1}, {Key: "display_order", Value: 1}}},
		},
	}

	for coll, models := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", coll, err)
		}
	}
	log.Println("✓ MongoDB indexes ensured")
	return nil
}

// wrapWriteErr maps duplicate key errors onto domain.ErrDuplicateSlug
func wrapWriteErr(op string, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrDuplicateSlug
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// findOne decodes a single document, mapping "no documents" to domain.ErrNotFound
func findOne[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, op string) (*T, error) {
	var out T
	if err := coll.FindOne(ctx, filter).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}
	return &out, nil
}

// findAll decodes every matching document; the result is never nil
func findAll[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, opts *options.FindOptions, op string) ([]*T, error) {
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}
	defer cursor.Close(ctx)

	out := make([]*T, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", op, err)
	}
	return out, nil
}

func activeFilter(activeOnly bool) bson.M {
	if activeOnly {
		return bson.M{"is_active": true}
	}
	return bson.M{}
}
