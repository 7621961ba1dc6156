// Package service orchestrates the full emotion-to-image pipeline: classify
// the text, then drive image generation with the classification attached.
package service

import (
	"context"
	"time"

	"novavision/internal/classifier"
	"novavision/internal/generator"
	"novavision/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HistoryStore records completed generations. May be nil to disable history.
type HistoryStore interface {
	SaveGeneration(rec *models.GenerationRecord) error
}

// Pipeline is the caller-facing facade over the classifier and the
// generation orchestrator. Both collaborators are constructed once at
// process start and shared across requests; per-request data stays local.
type Pipeline struct {
	classifier   *classifier.Classifier
	orchestrator *generator.Orchestrator
	history      HistoryStore
	logger       *zap.Logger
}

// NewPipeline creates the pipeline facade.
func NewPipeline(cls *classifier.Classifier, orch *generator.Orchestrator, history HistoryStore, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		classifier:   cls,
		orchestrator: orch,
		history:      history,
		logger:       logger,
	}
}

// Analyze classifies the emotional content of text.
func (p *Pipeline) Analyze(ctx context.Context, text string) (*models.EmotionClassification, error) {
	return p.classifier.Analyze(ctx, text)
}

// Generate runs prompt synthesis and the tiered generation chain for text
// that has already been classified. On success a history row is written; a
// history failure is logged and never fails the request.
func (p *Pipeline) Generate(ctx context.Context, req models.GenerationRequest, classification *models.EmotionClassification) (*models.GenerationResult, error) {
	req.Normalize()

	result, err := p.orchestrator.Generate(ctx, req, classification)
	if err != nil {
		return nil, err
	}

	if p.history != nil {
		rec := &models.GenerationRecord{
			ID:        uuid.New().String(),
			Text:      req.Text,
			Emotion:   result.Emotion,
			Style:     result.Style,
			InputType: result.InputType,
			Prompt:    result.Prompt,
			Seed:      result.Seed,
			Width:     req.Width,
			Height:    req.Height,
			Model:     result.Model,
			CreatedAt: time.Now(),
		}
		if err := p.history.SaveGeneration(rec); err != nil {
			p.logger.Error("Failed to save generation history", zap.Error(err))
		}
	}

	p.logger.Info("Pipeline completed",
		zap.String("emotion", result.Emotion),
		zap.String("style", result.Style),
		zap.String("input_type", string(result.InputType)))

	return result, nil
}
