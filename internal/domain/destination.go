package domain

import (
	"context"
	"time"
)

// Destination is a named place packages travel to
type Destination struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Slug         string    `bson:"slug" json:"slug" validate:"omitempty,slug"`
	Name         string    `bson:"name" json:"name" validate:"required"`
	ImageURL     *string   `bson:"image_url,omitempty" json:"image_url"`
	DisplayOrder int       `bson:"display_order" json:"display_order"`
	IsActive     bool      `bson:"is_active" json:"is_active"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// DestinationRepository defines operations for destinations
type DestinationRepository interface {
	Create(ctx context.Context, dest *Destination) error
	GetByID(ctx context.Context, id string) (*Destination, error)
	GetBySlug(ctx context.Context, slug string) (*Destination, error)
	// List orders by display_order ascending
	List(ctx context.Context, activeOnly bool) ([]*Destination, error)
	Count(ctx context.Context, activeOnly bool) (int64, error)
	Update(ctx context.Context, dest *Destination) error
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}
