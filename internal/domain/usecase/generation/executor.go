package generation

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/headshot-service/internal/domain/entity"
	errs "github.com/amirhossein-jamali/headshot-service/internal/domain/error"
	coreport "github.com/amirhossein-jamali/headshot-service/internal/domain/port/core"
	"github.com/amirhossein-jamali/headshot-service/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/headshot-service/internal/domain/port/persistence"
)

// Execution stages reported in GenerationError
const (
	StageLoad      = "load"
	StageValidate  = "validate"
	StageInference = "inference"
	StageUpload    = "upload"
	StageComplete  = "complete"
	StagePanic     = "panic"
)

// Executor runs one generation: inference, upload, final status
type Executor struct {
	generations persistence.GenerationRepository
	model       gateway.HeadshotModel
	host        gateway.ImageHost
	validator   *OptionsValidator
	logger      coreport.Logger
}

// NewExecutor creates a new Executor
func NewExecutor(
	generations persistence.GenerationRepository,
	model gateway.HeadshotModel,
	host gateway.ImageHost,
	validator *OptionsValidator,
	logger coreport.Logger,
) *Executor {
	return &Executor{
		generations: generations,
		model:       model,
		host:        host,
		validator:   validator,
		logger:      logger,
	}
}

// Execute runs the generation identified by generationID. Every failure path
// leaves the generation FAILED before returning.
func (e *Executor) Execute(ctx context.Context, generationID uint64) (err error) {
	log := e.logger.With(map[string]any{"generation_id": generationID})
	settled := false

	defer func() {
		if r := recover(); r != nil {
			err = errs.NewGenerationError(generationID, StagePanic, fmt.Errorf("%w: %v", errs.ErrInternalServer, r))
		}
		if !settled {
			e.fail(context.WithoutCancel(ctx), generationID, err, log)
		}
	}()

	gen, err := e.generations.GetByID(ctx, generationID)
	if err != nil {
		return errs.NewGenerationError(generationID, StageLoad, err)
	}
	if gen.Status != entity.StatusProcessing {
		settled = true
		log.Warn("Skipping generation that is not processing", map[string]any{
			"status": string(gen.Status),
		})
		return nil
	}

	if err := e.validator.Validate(gen.Options); err != nil {
		return errs.NewGenerationError(generationID, StageValidate, fmt.Errorf("%w: %v", errs.ErrDataIntegrity, err))
	}

	log.Info("Calling headshot model", map[string]any{
		"gender":     string(gen.Options.Gender),
		"background": string(gen.Options.Background),
	})
	output, err := e.model.Generate(ctx, gen.Options)
	if err != nil {
		return errs.NewGenerationError(generationID, StageInference, fmt.Errorf("%w: %v", errs.ErrExternalService, err))
	}
	if output == "" {
		return errs.NewGenerationError(generationID, StageInference, fmt.Errorf("%w: model returned no output", errs.ErrExternalService))
	}

	imageURL, err := e.host.Store(ctx, gen.OutputKey(), output)
	if err != nil {
		return errs.NewGenerationError(generationID, StageUpload, fmt.Errorf("%w: %v", errs.ErrExternalService, err))
	}

	ok, err := e.generations.MarkCompleted(context.WithoutCancel(ctx), generationID, imageURL)
	if err != nil {
		return errs.NewGenerationError(generationID, StageComplete, err)
	}
	settled = true
	if !ok {
		log.Warn("Generation changed state before completion was recorded", nil)
		return nil
	}

	log.Info("Generation completed", map[string]any{"image_url": imageURL})
	return nil
}

func (e *Executor) fail(ctx context.Context, generationID uint64, cause error, log coreport.Logger) {
	fields := map[string]any{}
	var genErr *errs.GenerationError
	if errors.As(cause, &genErr) {
		fields = genErr.LogFields()
	} else if cause != nil {
		fields["error"] = cause.Error()
	}
	log.Error("Generation failed", fields)

	ok, err := e.generations.MarkFailed(ctx, generationID)
	if err != nil {
		log.Error("Failed to record generation failure", map[string]any{"error": err.Error()})
		return
	}
	if !ok {
		log.Warn("Generation was not processing when failure was recorded", nil)
	}
}
