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

// MongoPackageRepository implements domain.PackageRepository
type MongoPackageRepository struct {
	collection *mongo.Collection
}

// NewMongoPackageRepository creates a new package repository
func NewMongoPackageRepository(db *mongo.Database) *MongoPackageRepository {
	return &MongoPackageRepository{
		collection: db.Collection(collPackages),
	}
}

func (r *MongoPackageRepository) Create(ctx context.Context, pkg *domain.Package) error {
	now := time.Now().UTC()
	if pkg.ID == "" {
		pkg.ID = NewID()
	}
	pkg.CreatedAt = now
	pkg.UpdatedAt = now
	normalizePackage(pkg)

	if _, err := r.collection.InsertOne(ctx, pkg); err != nil {
		return wrapWriteErr("create package", err)
	}
	return nil
}

func (r *MongoPackageRepository) GetByID(ctx context.Context, id string) (*domain.Package, error) {
	return findOne[domain.Package](ctx, r.collection, bson.M{"_id": id}, "get package")
}

func (r *MongoPackageRepository) GetBySlug(ctx context.Context, slug string) (*domain.Package, error) {
	return findOne[domain.Package](ctx, r.collection, bson.M{"slug": slug}, "get package by slug")
}

func (r *MongoPackageRepository) List(ctx context.Context, filter domain.PackageFilter) ([]*domain.Package, error) {
	opts := options.Find()
	switch filter.Order {
	case domain.OrderNewest:
		opts.SetSort(bson.D{{Key: "created_at", Value: -1}})
	case domain.OrderFeaturedFirst:
		opts.SetSort(bson.D{{Key: "is_featured", Value: -1}, {Key: "created_at", Value: -1}})
	}
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}
	return findAll[domain.Package](ctx, r.collection, packageQuery(filter), opts, "list packages")
}

func (r *MongoPackageRepository) Count(ctx context.Context, filter domain.PackageFilter) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, packageQuery(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count packages: %w", err)
	}
	return n, nil
}

func (r *MongoPackageRepository) Update(ctx context.Context, pkg *domain.Package) error {
	pkg.UpdatedAt = time.Now().UTC()
	normalizePackage(pkg)

	update := bson.M{
		"$set": bson.M{
			"slug":                  pkg.Slug,
			"name":                  pkg.Name,
			"description":           pkg.Description,
			"long_description":      pkg.LongDescription,
			"destination":           pkg.Destination,
			"destination_slug":      pkg.DestinationSlug,
			"days":                  pkg.Days,
			"nights":                pkg.Nights,
			"group_size":            pkg.GroupSize,
			"is_groupal":            pkg.IsGroupal,
			"base_price":            pkg.BasePrice,
			"currency":              pkg.Currency,
			"image_url":             pkg.ImageURL,
			"included_services":     pkg.IncludedServices,
			"not_included_services": pkg.NotIncludedServices,
			"optional_excursions":   pkg.OptionalExcursions,
			"is_featured":           pkg.IsFeatured,
			"is_offer":              pkg.IsOffer,
			"is_special":            pkg.IsSpecial,
			"special_section_id":    pkg.SpecialSectionID,
			"is_active":             pkg.IsActive,
			"updated_at":            pkg.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": pkg.ID}, update)
	if err != nil {
		return wrapWriteErr("update package", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MongoPackageRepository) SetFlag(ctx context.Context, id string, flag domain.PackageFlag, value bool) error {
	switch flag {
	case domain.FlagActive, domain.FlagFeatured, domain.FlagOffer:
	default:
		return fmt.Errorf("unknown package flag %q", flag)
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{string(flag): value, "updated_at": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("failed to toggle package %s: %w", flag, err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MongoPackageRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete package: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MongoPackageRepository) DetachFromSection(ctx context.Context, sectionID string) (int64, error) {
	result, err := r.collection.UpdateMany(ctx,
		bson.M{"special_section_id": sectionID},
		bson.M{"$set": bson.M{
			"special_section_id": nil,
			"is_special":         false,
			"updated_at":         time.Now().UTC(),
		}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to detach packages from section: %w", err)
	}
	return result.ModifiedCount, nil
}

func (r *MongoPackageRepository) AttachToSection(ctx context.Context, sectionID string, packageIDs []string) error {
	if len(packageIDs) == 0 {
		return nil
	}
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": packageIDs}},
		bson.M{"$set": bson.M{
			"special_section_id": sectionID,
			"is_special":         true,
			"updated_at":         time.Now().UTC(),
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to attach packages to section: %w", err)
	}
	return nil
}

func packageQuery(f domain.PackageFilter) bson.M {
	q := bson.M{}
	if f.IsActive != nil {
		q["is_active"] = *f.IsActive
	}
	if f.IsFeatured != nil {
		q["is_featured"] = *f.IsFeatured
	}
	if f.IsOffer != nil {
		q["is_offer"] = *f.IsOffer
	}
	if f.DestinationSlug != "" {
		q["destination_slug"] = f.DestinationSlug
	} else if f.ExcludeDestinationSlug != "" {
		q["destination_slug"] = bson.M{"$ne": f.ExcludeDestinationSlug}
	}
	if f.ExcludeSlug != "" {
		q["slug"] = bson.M{"$ne": f.ExcludeSlug}
	}
	if f.SpecialSectionID != "" {
		q["special_section_id"] = f.SpecialSectionID
	}
	return q
}

// normalizePackage keeps list fields as empty arrays rather than null
func normalizePackage(pkg *domain.Package) {
	if pkg.IncludedServices == nil {
		pkg.IncludedServices = []string{}
	}
	if pkg.NotIncludedServices == nil {
		pkg.NotIncludedServices = []string{}
	}
	if pkg.OptionalExcursions == nil {
		pkg.OptionalExcursions = []string{}
	}
	if pkg.SpecialSectionID != nil && *pkg.SpecialSectionID == "" {
		pkg.SpecialSectionID = nil
	}
}
