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

// MongoSectionRepository implements domain.SectionRepository
type MongoSectionRepository struct {
	collection *mongo.Collection
}

func NewMongoSectionRepository(db *mongo.Database) *MongoSectionRepository {
	return &MongoSectionRepository{
		collection: db.Collection(collSections),
	}
}

func (r *MongoSectionRepository) Create(ctx context.Context, section *domain.SpecialSection) error {
	now := time.Now().UTC()
	if section.ID == "" {
		section.ID = NewID()
	}
	section.CreatedAt = now
	section.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, section); err != nil {
		return wrapWriteErr("create section", err)
	}
	return nil
}

func (r *MongoSectionRepository) GetByID(ctx context.Context, id string) (*domain.SpecialSection, error) {
	return findOne[domain.SpecialSection](ctx, r.collection, bson.M{"_id": id}, "get section")
}

func (r *MongoSectionRepository) GetBySlug(ctx context.Context, slug string) (*domain.SpecialSection, error) {
	return findOne[domain.SpecialSection](ctx, r.collection, bson.M{"slug": slug}, "get section by slug")
}

func (r *MongoSectionRepository) List(ctx context.Context, activeOnly bool, limit int64) ([]*domain.SpecialSection, error) {
	opts := options.Find().SetSort(bson.D{{Key: "display_order", Value: 1}, {Key: "created_at", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return findAll[domain.SpecialSection](ctx, r.collection, activeFilter(activeOnly), opts, "list sections")
}

func (r *MongoSectionRepository) Count(ctx context.Context, activeOnly bool) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, activeFilter(activeOnly))
	if err != nil {
		return 0, fmt.Errorf("failed to count sections: %w", err)
	}
	return n, nil
}

func (r *MongoSectionRepository) Update(ctx context.Context, section *domain.SpecialSection) error {
	section.UpdatedAt = time.Now().UTC()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": section.ID}, bson.M{
		"$set": bson.M{
			"slug":                 section.Slug,
			"title":                section.Title,
			"subtitle":             section.Subtitle,
			"badge_text":           section.BadgeText,
			"background_image_url": section.BackgroundImageURL,
			"promo_title":          section.PromoTitle,
			"promo_description":    section.PromoDescription,
			"cta_text":             section.CTAText,
			"cta_url":              section.CTAURL,
			"nav_label":            section.NavLabel,
			"nav_icon_name":        section.NavIconName,
			"nav_color":            section.NavColor,
			"is_active":            section.IsActive,
			"display_order":        section.DisplayOrder,
			"updated_at":           section.UpdatedAt,
		},
	})
	if err != nil {
		return wrapWriteErr("update section", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MongoSectionRepository) SetActive(ctx context.Context, id string, active bool) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"is_active": active, "updated_at": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("failed to toggle section: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MongoSectionRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete section: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MongoSectionFeatureRepository implements domain.SectionFeatureRepository
type MongoSectionFeatureRepository struct {
	collection *mongo.Collection
}

func NewMongoSectionFeatureRepository(db *mongo.Database) *MongoSectionFeatureRepository {
	return &MongoSectionFeatureRepository{
		collection: db.Collection(collFeatures),
	}
}

func (r *MongoSectionFeatureRepository) ListBySection(ctx context.Context, sectionID string) ([]*domain.SectionFeature, error) {
	opts := options.Find().SetSort(bson.D{{Key: "display_order", Value: 1}})
	return findAll[domain.SectionFeature](ctx, r.collection, bson.M{"section_id": sectionID}, opts, "list section features")
}

// ReplaceForSection swaps all features of a section; display_order follows slice order
func (r *MongoSectionFeatureRepository) ReplaceForSection(ctx context.Context, sectionID string, features []*domain.SectionFeature) error {
	if err := r.DeleteBySection(ctx, sectionID); err != nil {
		return err
	}
	if len(features) == 0 {
		return nil
	}

	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(features))
	for i, f := range features {
		if f.ID == "" {
			f.ID = NewID()
		}
		f.SectionID = sectionID
		f.DisplayOrder = i
		f.CreatedAt = now
		docs = append(docs, f)
	}

	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert section features: %w", err)
	}
	return nil
}

func (r *MongoSectionFeatureRepository) DeleteBySection(ctx context.Context, sectionID string) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{"section_id": sectionID}); err != nil {
		return fmt.Errorf("failed to delete section features: %w", err)
	}
	return nil
}
