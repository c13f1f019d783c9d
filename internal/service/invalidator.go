package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/tigoviajes/catalog/internal/cache"
)

// Invalidator marks cache tags stale after an admin mutation.
// Invalidation is per content area, never per row.
type Invalidator struct {
	cache cache.Service
}

// NewInvalidator creates a new Invalidator
func NewInvalidator(c cache.Service) *Invalidator {
	return &Invalidator{cache: c}
}

// InvalidatePackages runs after any package or departure date mutation
func (i *Invalidator) InvalidatePackages(ctx context.Context) error {
	return i.invalidate(ctx, cache.TagPackages)
}

// InvalidateDestinations runs after any destination mutation; destinations feed the header
func (i *Invalidator) InvalidateDestinations(ctx context.Context) error {
	return i.invalidate(ctx, cache.TagDestinations, cache.TagHeaderData)
}

// InvalidateSections runs after any section mutation; sections feed the header
func (i *Invalidator) InvalidateSections(ctx context.Context) error {
	return i.invalidate(ctx, cache.TagSections, cache.TagHeaderData)
}

func (i *Invalidator) invalidate(ctx context.Context, tags ...string) error {
	var errs []error
	for _, tag := range tags {
		if err := i.cache.InvalidateTag(ctx, tag); err != nil {
			errs = append(errs, fmt.Errorf("tag %s: %w", tag, err))
		}
	}
	return errors.Join(errs...)
}

// afterWrite invalidates once a mutation has been stored. The write already
// succeeded, so a failure here is logged and the TTL bounds staleness.
func afterWrite(ctx context.Context, invalidate func(context.Context) error, what string) {
	if err := invalidate(ctx); err != nil {
		log.Printf("[Admin] cache invalidation after %s failed: %v", what, err)
	}
}
