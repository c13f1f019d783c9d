package service

import (
	"github.com/tigoviajes/catalog/internal/display"
	"github.com/tigoviajes/catalog/internal/domain"
)

// resolveSlug keeps an explicit slug or derives one from name
func resolveSlug(slug, name string) (string, error) {
	if slug == "" {
		slug = display.Slugify(name)
	}
	if !display.SlugPattern.MatchString(slug) {
		return "", domain.ErrInvalidSlug
	}
	return slug, nil
}
