package port

import "context"

// ImageStore abstracts the object bucket holding profile images.
type ImageStore interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (location string, err error)
	// Delete is best-effort on compensation paths; callers log failures
	// instead of surfacing them.
	Delete(ctx context.Context, key string) error
}
