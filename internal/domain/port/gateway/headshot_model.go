package gateway

import (
	"context"

	"github.com/amirhossein-jamali/headshot-service/internal/domain/entity"
)

// HeadshotModel runs the inference model that produces a headshot.
// Generate blocks until the prediction finishes and returns the URL of the
// temporary output file.
type HeadshotModel interface {
	Generate(ctx context.Context, options entity.GenerationOptions) (string, error)
}

// ImageHost persists generated images under a stable URL
type ImageHost interface {
	// Store copies the image at sourceURL to key, overwriting any previous
	// object, and returns the public URL
	Store(ctx context.Context, key, sourceURL string) (string, error)
}
