// Package generator drives the remote image-synthesis backend through a
// fixed degrade-and-retry chain.
package generator

import (
	"context"
	"math/rand"
	"strings"

	"novavision/internal/huggingface"
	"novavision/internal/models"
	"novavision/internal/prompt"

	"go.uber.org/zap"
)

// Generation parameters per tier.
const (
	primarySteps    = 30
	primaryGuidance = 3.5
	retrySteps      = 25
	fallbackSteps   = 4

	maxSeed = 1<<31 - 1
)

// ImageBackend is the narrow view of the remote image-synthesis service.
type ImageBackend interface {
	TextToImage(ctx context.Context, req huggingface.ImageRequest) ([]byte, error)
}

// Orchestrator builds the prompt for a request and attempts generation
// across up to three tiers, each invoked only when the previous one failed:
//
//  1. primary model, full parameter set (30 steps, guidance 3.5, negative prompt)
//  2. primary model, reduced parameters (25 steps, backend-default guidance)
//  3. fallback model, minimal steps (4)
type Orchestrator struct {
	backend       ImageBackend
	primaryModel  string
	fallbackModel string
	logger        *zap.Logger
}

// New creates an orchestrator over the given backend and model pair.
func New(backend ImageBackend, primaryModel, fallbackModel string, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		backend:       backend,
		primaryModel:  primaryModel,
		fallbackModel: fallbackModel,
		logger:        logger,
	}
}

// attempt is one tier of the chain: a name for logging and a prepared
// backend request. Tiers are tried in order; the first success
// short-circuits.
type attempt struct {
	name string
	req  huggingface.ImageRequest
}

// Generate synthesizes an image for the request. The seed is resolved once
// (caller's value, else a fresh random integer in [0, 2^31-1]) and reused by
// every tier; the fallback tier runs a different model, so the same seed is
// best-effort reproducibility only. If all tiers fail, the final tier's
// error is returned as a *models.ExternalServiceError.
func (o *Orchestrator) Generate(ctx context.Context, req models.GenerationRequest, classification *models.EmotionClassification) (*models.GenerationResult, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, models.ErrEmptyInput
	}
	req.Normalize()

	var seed int64
	if req.Seed != nil {
		seed = *req.Seed
	} else {
		seed = rand.Int63n(maxSeed + 1)
	}

	artifact := prompt.Build(req.Text, classification, req.Style)
	style := prompt.ResolveStyle(req.Style)

	attempts := []attempt{
		{
			name: "primary",
			req: huggingface.ImageRequest{
				Model:          o.primaryModel,
				Prompt:         artifact.Prompt,
				NegativePrompt: artifact.NegativePrompt,
				Width:          req.Width,
				Height:         req.Height,
				Steps:          primarySteps,
				GuidanceScale:  primaryGuidance,
				Seed:           seed,
			},
		},
		{
			name: "retry",
			req: huggingface.ImageRequest{
				Model:  o.primaryModel,
				Prompt: artifact.Prompt,
				Width:  req.Width,
				Height: req.Height,
				Steps:  retrySteps,
				Seed:   seed,
			},
		},
		{
			name: "fallback",
			req: huggingface.ImageRequest{
				Model:  o.fallbackModel,
				Prompt: artifact.Prompt,
				Width:  req.Width,
				Height: req.Height,
				Steps:  fallbackSteps,
				Seed:   seed,
			},
		},
	}

	var lastErr error
	for _, a := range attempts {
		image, err := o.backend.TextToImage(ctx, a.req)
		if err == nil {
			o.logger.Info("Image generated",
				zap.String("tier", a.name),
				zap.String("model", a.req.Model),
				zap.String("input_type", string(artifact.InputType)),
				zap.Int64("seed", seed))

			return &models.GenerationResult{
				Image:          image,
				Prompt:         artifact.Prompt,
				NegativePrompt: artifact.NegativePrompt,
				Emotion:        classification.PrimaryEmotion,
				Style:          string(style),
				InputType:      artifact.InputType,
				Seed:           seed,
				Model:          a.req.Model,
			}, nil
		}

		lastErr = err
		o.logger.Warn("Generation tier failed",
			zap.String("tier", a.name),
			zap.String("model", a.req.Model),
			zap.Error(err))
	}

	return nil, &models.ExternalServiceError{Service: "image-synthesis", Err: lastErr}
}
