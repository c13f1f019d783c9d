package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/tigoviajes/catalog/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoItineraryRepository implements domain.ItineraryRepository
type MongoItineraryRepository struct {
	collection *mongo.Collection
}

func NewMongoItineraryRepository(db *mongo.Database) *MongoItineraryRepository {
	return &MongoItineraryRepository{
		collection: db.Collection(collItineraryDays),
	}
}

func (r *MongoItineraryRepository) ListByPackage(ctx context.Context, packageID string) ([]*domain.ItineraryDay, error) {
	opts := options.Find().SetSort(bson.D{{Key: "day_number", Value: 1}})
	return findAll[domain.ItineraryDay](ctx, r.collection, bson.M{"package_id": packageID}, opts, "list itinerary days")
}

// ReplaceForPackage swaps the whole itinerary of a package
func (r *MongoItineraryRepository) ReplaceForPackage(ctx context.Context, packageID string, days []*domain.ItineraryDay) error {
	if err := r.DeleteByPackage(ctx, packageID); err != nil {
		return err
	}
	if len(days) == 0 {
		return nil
	}

	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(days))
	for _, day := range days {
		if day.ID == "" {
			day.ID = NewID()
		}
		day.PackageID = packageID
		day.CreatedAt = now
		day.UpdatedAt = now
		docs = append(docs, day)
	}

	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert itinerary days: %w", err)
	}
	return nil
}

func (r *MongoItineraryRepository) DeleteByPackage(ctx context.Context, packageID string) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{"package_id": packageID}); err != nil {
		return fmt.Errorf("failed to delete itinerary days: %w", err)
	}
	return nil
}
