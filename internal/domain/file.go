package domain

import (
	"context"
)

// Upload buckets, one per content area
const (
	BucketPackages     = "packages"
	BucketSections     = "sections"
	BucketDestinations = "destinations"
)

// MaxImageSize is the largest accepted upload (5MB)
const MaxImageSize = 5 * 1024 * 1024

// AllowedImageTypes maps accepted content types to file extensions
var AllowedImageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// IsUploadBucket reports whether name is a known upload bucket
func IsUploadBucket(name string) bool {
	switch name {
	case BucketPackages, BucketSections, BucketDestinations:
		return true
	}
	return false
}

// FileRepository defines the interface for file storage operations
type FileRepository interface {
	// Upload saves a file and returns its access URL
	Upload(ctx context.Context, file []byte, filename string, contentType string) (string, error)
}
