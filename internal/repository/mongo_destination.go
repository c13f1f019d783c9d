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

// MongoDestinationRepository implements domain.DestinationRepository
type MongoDestinationRepository struct {
	collection *mongo.Collection
}

func NewMongoDestinationRepository(db *mongo.Database) *MongoDestinationRepository {
	return &MongoDestinationRepository{
		collection: db.Collection(collDestinations),
	}
}

func (r *MongoDestinationRepository) Create(ctx context.Context, dest *domain.Destination) error {
	now := time.Now().UTC()
	if dest.ID == "" {
		dest.ID = NewID()
	}
	dest.CreatedAt = now
	dest.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, dest); err != nil {
		return wrapWriteErr("create destination", err)
	}
	return nil
}

func (r *MongoDestinationRepository) GetByID(ctx context.Context, id string) (*domain.Destination, error) {
	return findOne[domain.Destination](ctx, r.collection, bson.M{"_id": id}, "get destination")
}

func (r *MongoDestinationRepository) GetBySlug(ctx context.Context, slug string) (*domain.Destination, error) {
	return findOne[domain.Destination](ctx, r.collection, bson.M{"slug": slug}, "get destination by slug")
}

func (r *MongoDestinationRepository) List(ctx context.Context, activeOnly bool) ([]*domain.Destination, error) {
	opts := options.Find().SetSort(bson.D{{Key: "display_order", Value: 1}, {Key: "name", Value: 1}})
	return findAll[domain.Destination](ctx, r.collection, activeFilter(activeOnly), opts, "list destinations")
}

func (r *MongoDestinationRepository) Count(ctx context.Context, activeOnly bool) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, activeFilter(activeOnly))
	if err != nil {
		return 0, fmt.Errorf("failed to count destinations: %w", err)
	}
	return n, nil
}

func (r *MongoDestinationRepository) Update(ctx context.Context, dest *domain.Destination) error {
	dest.UpdatedAt = time.Now().UTC()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": dest.ID}, bson.M{
		"$set": bson.M{
			"slug":          dest.Slug,
			"name":          dest.Name,
			"image_url":     dest.ImageURL,
			"display_order": dest.DisplayOrder,
			"is_active":     dest.IsActive,
			"updated_at":    dest.UpdatedAt,
		},
	})
	if err != nil {
		return wrapWriteErr("update destination", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MongoDestinationRepository) SetActive(ctx context.Context, id string, active bool) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"is_active": active, "updated_at": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("failed to toggle destination: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MongoDestinationRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete destination: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
