package inference

import (
	"context"
	"errors"
	"fmt"

	"github.com/replicate/replicate-go"

	"github.com/amirhossein-jamali/headshot-service/internal/domain/entity"
	errs "github.com/amirhossein-jamali/headshot-service/internal/domain/error"
	coreport "github.com/amirhossein-jamali/headshot-service/internal/domain/port/core"
	"github.com/amirhossein-jamali/headshot-service/internal/domain/port/gateway"
)

// DefaultModel is the Replicate model that renders professional headshots
const DefaultModel = "flux-kontext-apps/professional-headshot"

// Config holds the Replicate settings
type Config struct {
	APIToken    string `mapstructure:"api_token"`
	Model       string `mapstructure:"model"`
	AspectRatio string `mapstructure:"aspect_ratio"`
}

// runFunc matches replicate.Client.Run without the variadic run options
type runFunc func(ctx context.Context, identifier string, input replicate.PredictionInput, webhook *replicate.Webhook) (replicate.PredictionOutput, error)

// ReplicateModel implements gateway.HeadshotModel on the Replicate API
type ReplicateModel struct {
	run         runFunc
	model       string
	aspectRatio string
	logger      coreport.Logger
}

var _ gateway.HeadshotModel = (*ReplicateModel)(nil)

// NewReplicateModel creates a model client authenticated with cfg.APIToken
func NewReplicateModel(cfg Config, logger coreport.Logger) (*ReplicateModel, error) {
	if cfg.APIToken == "" {
		return nil, errors.New("replicate API token is required")
	}

	client, err := replicate.NewClient(replicate.WithToken(cfg.APIToken))
	if err != nil {
		return nil, fmt.Errorf("failed to create replicate client: %w", err)
	}

	return newReplicateModel(func(ctx context.Context, identifier string, input replicate.PredictionInput, webhook *replicate.Webhook) (replicate.PredictionOutput, error) {
		return client.Run(ctx, identifier, input, webhook)
	}, cfg, logger), nil
}

func newReplicateModel(run runFunc, cfg Config, logger coreport.Logger) *ReplicateModel {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	aspectRatio := cfg.AspectRatio
	if aspectRatio == "" {
		aspectRatio = "1:1"
	}

	return &ReplicateModel{
		run:         run,
		model:       model,
		aspectRatio: aspectRatio,
		logger:      logger.With(map[string]any{"component": "replicate", "model": model}),
	}
}

// Generate runs the model to completion and returns the temporary output URL
func (m *ReplicateModel) Generate(ctx context.Context, options entity.GenerationOptions) (string, error) {
	input := replicate.PredictionInput{
		"gender":       string(options.Gender),
		"background":   string(options.Background),
		"input_image":  options.InputImageURL,
		"aspect_ratio": m.aspectRatio,
	}

	m.logger.Debug("Running headshot prediction", map[string]any{
		"gender":     options.Gender,
		"background": options.Background,
	})

	output, err := m.run(ctx, m.model, input, nil)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("%w: prediction failed: %v", errs.ErrExternalService, err)
	}

	url, err := outputURL(output)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errs.ErrExternalService, err)
	}
	return url, nil
}

// outputURL extracts the file URL from a prediction output, which is either
// a single URL or a list whose first element is the URL
func outputURL(output replicate.PredictionOutput) (string, error) {
	switch v := output.(type) {
	case string:
		if v != "" {
			return v, nil
		}
	case []interface{}:
		if len(v) > 0 {
			if s, ok := v[0].(string); ok && s != "" {
				return s, nil
			}
		}
	}
	return "", fmt.Errorf("unexpected prediction output %T", output)
}
