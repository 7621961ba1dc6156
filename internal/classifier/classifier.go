// Package classifier wraps the remote text-classification backend and turns
// raw per-label scores into a validated emotion classification.
package classifier

import (
	"context"
	"fmt"
	"strings"

	"novavision/internal/affect"
	"novavision/internal/huggingface"
	"novavision/internal/models"

	"go.uber.org/zap"
)

// Backend is the narrow view of the remote classification service.
type Backend interface {
	Classify(ctx context.Context, model, text string) ([]huggingface.LabelScore, error)
}

// Classifier analyzes text for emotional content.
type Classifier struct {
	backend Backend
	model   string
	logger  *zap.Logger
}

// New creates a classifier bound to one backend model.
func New(backend Backend, model string, logger *zap.Logger) *Classifier {
	return &Classifier{
		backend: backend,
		model:   model,
		logger:  logger,
	}
}

// Analyze classifies text across the 7-label emotion vocabulary and attaches
// dimensional affect for the primary emotion. Empty or whitespace-only text
// returns models.ErrEmptyInput; any backend failure surfaces as a
// *models.ExternalServiceError with no retry. Results are never cached.
func (c *Classifier) Analyze(ctx context.Context, text string) (*models.EmotionClassification, error) {
	if strings.TrimSpace(text) == "" {
		return nil, models.ErrEmptyInput
	}

	scores, err := c.backend.Classify(ctx, c.model, text)
	if err != nil {
		return nil, &models.ExternalServiceError{Service: "classification", Err: err}
	}
	if len(scores) == 0 {
		return nil, &models.ExternalServiceError{
			Service: "classification",
			Err:     fmt.Errorf("backend returned no scores"),
		}
	}

	// Primary emotion is the maximum score. Ties break to the first
	// occurrence in the backend's response order (strict > while scanning),
	// which keeps the pick deterministic for a given response.
	all := make(map[string]float64, len(models.EmotionLabels))
	primary := strings.ToLower(scores[0].Label)
	confidence := scores[0].Score
	for _, s := range scores {
		label := strings.ToLower(s.Label)
		all[label] = s.Score
		if s.Score > confidence {
			primary = label
			confidence = s.Score
		}
	}

	// Guarantee one entry per vocabulary label even if the backend omitted
	// some.
	for _, label := range models.EmotionLabels {
		if _, ok := all[label]; !ok {
			all[label] = 0
		}
	}

	dims := affect.DimensionsFor(primary)

	c.logger.Debug("Text classified",
		zap.String("primary_emotion", primary),
		zap.Float64("confidence", confidence),
		zap.Float64("valence", dims.Valence),
		zap.Float64("arousal", dims.Arousal))

	return &models.EmotionClassification{
		PrimaryEmotion: primary,
		Confidence:     confidence,
		Valence:        dims.Valence,
		Arousal:        dims.Arousal,
		AllEmotions:    all,
	}, nil
}
