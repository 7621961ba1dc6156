// Package handler exposes the pipeline over HTTP.
package handler

import (
	"context"
	"encoding/base64"
	"errors"
	"math"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"novavision/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PipelineService is the handler's view of the pipeline facade.
type PipelineService interface {
	Analyze(ctx context.Context, text string) (*models.EmotionClassification, error)
	Generate(ctx context.Context, req models.GenerationRequest, classification *models.EmotionClassification) (*models.GenerationResult, error)
}

// HistoryReader serves the generation-history endpoints. May be nil.
type HistoryReader interface {
	ListGenerations(limit int) ([]*models.GenerationRecord, error)
	Stats() (map[string]interface{}, error)
}

// Handler handles HTTP requests.
type Handler struct {
	pipeline PipelineService
	history  HistoryReader
	logger   *zap.Logger
}

// NewHandler creates a new API handler.
func NewHandler(pipeline PipelineService, history HistoryReader, logger *zap.Logger) *Handler {
	return &Handler{
		pipeline: pipeline,
		history:  history,
		logger:   logger,
	}
}

// RegisterRoutes registers all API routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.POST("/analyze", h.Analyze)
		api.POST("/generate", h.Generate)
		api.GET("/generations", h.ListGenerations)
		api.GET("/generations/stats", h.Stats)
	}

	r.GET("/health", h.HealthCheck)
}

type analyzeRequest struct {
	Text string `json:"text" binding:"required"`
}

// emotionScore is one entry of the sorted per-label breakdown, as a percent.
type emotionScore struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Analyze performs lightweight emotion analysis without image generation,
// used by the frontend for live feedback while typing.
func (h *Handler) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	text := strings.TrimSpace(req.Text)
	if len(text) < 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text too short"})
		return
	}

	classification, err := h.pipeline.Analyze(c.Request.Context(), text)
	if err != nil {
		h.renderError(c, err, "analysis failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"emotions":        sortedEmotions(classification.AllEmotions),
		"primary_emotion": classification.PrimaryEmotion,
		"confidence":      percent(classification.Confidence),
		"valence":         classification.Valence,
		"arousal":         classification.Arousal,
	})
}

// Generate runs the full emotion-to-image pipeline and returns the image as
// a base64 data URL.
func (h *Handler) Generate(c *gin.Context) {
	var req models.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "please enter some text to analyze"})
		return
	}

	classification, err := h.pipeline.Analyze(c.Request.Context(), req.Text)
	if err != nil {
		h.renderError(c, err, "analysis failed")
		return
	}

	result, err := h.pipeline.Generate(c.Request.Context(), req, classification)
	if err != nil {
		h.renderError(c, err, "generation failed")
		return
	}

	imageData := "data:image/png;base64," + base64.StdEncoding.EncodeToString(result.Image)

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"image":           imageData,
		"emotions":        sortedEmotions(classification.AllEmotions),
		"primary_emotion": classification.PrimaryEmotion,
		"confidence":      percent(classification.Confidence),
		"valence":         classification.Valence,
		"arousal":         classification.Arousal,
		"prompt":          result.Prompt,
		"original_text":   req.Text,
		"style":           result.Style,
		"input_type":      result.InputType,
		"seed":            result.Seed,
		"timestamp":       time.Now().Format(time.RFC3339),
	})
}

// ListGenerations returns recent generation history.
func (h *Handler) ListGenerations(c *gin.Context) {
	if h.history == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "history disabled"})
		return
	}

	limit := 50
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 500 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit (must be 1-500)"})
			return
		}
		limit = n
	}

	records, err := h.history.ListGenerations(limit)
	if err != nil {
		h.logger.Error("Failed to list generations", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list generations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"generations": records,
		"total":       len(records),
	})
}

// Stats returns generation statistics.
func (h *Handler) Stats(c *gin.Context) {
	if h.history == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "history disabled"})
		return
	}

	stats, err := h.history.Stats()
	if err != nil {
		h.logger.Error("Failed to get stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// HealthCheck returns service health.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "novavision",
		"version": "1.0.0",
	})
}

// renderError maps pipeline errors to HTTP statuses: empty input is the
// caller's fault, remote-service failures are a bad gateway.
func (h *Handler) renderError(c *gin.Context, err error, fallback string) {
	if errors.Is(err, models.ErrEmptyInput) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var svcErr *models.ExternalServiceError
	if errors.As(err, &svcErr) {
		h.logger.Error("External service failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": svcErr.Error()})
		return
	}

	h.logger.Error("Request failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
}

// sortedEmotions flattens the score map into a list sorted by score
// descending, with scores as percentages rounded to one decimal.
func sortedEmotions(all map[string]float64) []emotionScore {
	scores := make([]emotionScore, 0, len(all))
	for name, score := range all {
		scores = append(scores, emotionScore{Name: name, Score: percent(score)})
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].Name < scores[j].Name
	})
	return scores
}

func percent(v float64) float64 {
	return math.Round(v*1000) / 10
}
