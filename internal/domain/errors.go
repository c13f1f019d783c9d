package domain

import "errors"

// Common errors
var (
	ErrNotFound          = errors.New("record not found")
	ErrInvalidID         = errors.New("invalid identifier")
	ErrDuplicateSlug     = errors.New("slug already in use")
	ErrInvalidSlug       = errors.New("slug must be lowercase letters, digits and single dashes")
	ErrInvalidImage      = errors.New("invalid image: only JPEG, PNG or WebP up to 5MB")
	ErrInvalidBucket     = errors.New("invalid upload bucket")
	ErrUnauthorizedAdmin = errors.New("email is not allowed to access the admin panel")
	ErrTooManyFeatures   = errors.New("a section has at most 4 features")
)
