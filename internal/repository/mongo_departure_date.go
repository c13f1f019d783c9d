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

// MongoDepartureDateRepository implements domain.DepartureDateRepository
type MongoDepartureDateRepository struct {
	collection *mongo.Collection
}

// NewMongoDepartureDateRepository creates a new departure date repository
func NewMongoDepartureDateRepository(db *mongo.Database) *MongoDepartureDateRepository {
	return &MongoDepartureDateRepository{
		collection: db.Collection(collDepartureDates),
	}
}

func (r *MongoDepartureDateRepository) Create(ctx context.Context, date *domain.DepartureDate) error {
	now := time.Now().UTC()
	if date.ID == "" {
		date.ID = NewID()
	}
	date.CreatedAt = now
	date.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, date); err != nil {
		return fmt.Errorf("failed to create departure date: %w", err)
	}
	return nil
}

func (r *MongoDepartureDateRepository) Update(ctx context.Context, date *domain.DepartureDate) error {
	date.UpdatedAt = time.Now().UTC()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": date.ID}, bson.M{
		"$set": bson.M{
			"departure_date":  date.DepartureDate,
			"price":           date.Price,
			"currency":        date.Currency,
			"available_spots": date.AvailableSpots,
			"is_sold_out":     date.IsSoldOut,
			"is_active":       date.IsActive,
			"updated_at":      date.UpdatedAt,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to update departure date: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MongoDepartureDateRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete departure date: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MongoDepartureDateRepository) ListByPackage(ctx context.Context, packageID string, activeOnly bool) ([]*domain.DepartureDate, error) {
	filter := activeFilter(activeOnly)
	filter["package_id"] = packageID

	opts := options.Find().SetSort(bson.D{{Key: "departure_date", Value: 1}})
	return findAll[domain.DepartureDate](ctx, r.collection, filter, opts, "list departure dates")
}

func (r *MongoDepartureDateRepository) ListByPackageIDs(ctx context.Context, packageIDs []string, activeOnly bool) ([]*domain.DepartureDate, error) {
	if len(packageIDs) == 0 {
		return []*domain.DepartureDate{}, nil
	}

	filter := activeFilter(activeOnly)
	filter["package_id"] = bson.M{"$in": packageIDs}
	opts := options.Find().SetSort(bson.D{{Key: "departure_date", Value: 1}})
	return findAll[domain.DepartureDate](ctx, r.collection, filter, opts, "list departure dates for packages")
}

func (r *MongoDepartureDateRepository) DeleteByPackage(ctx context.Context, packageID string) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{"package_id": packageID}); err != nil {
		return fmt.Errorf("failed to delete departure dates: %w", err)
	}
	return nil
}
