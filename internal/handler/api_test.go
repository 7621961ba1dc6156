package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"novavision/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// stubPipeline returns canned results.
type stubPipeline struct {
	classification *models.EmotionClassification
	result         *models.GenerationResult
	analyzeErr     error
	generateErr    error
}

func (s *stubPipeline) Analyze(_ context.Context, _ string) (*models.EmotionClassification, error) {
	return s.classification, s.analyzeErr
}

func (s *stubPipeline) Generate(_ context.Context, _ models.GenerationRequest, _ *models.EmotionClassification) (*models.GenerationResult, error) {
	return s.result, s.generateErr
}

type stubHistory struct {
	records []*models.GenerationRecord
}

func (s *stubHistory) ListGenerations(limit int) ([]*models.GenerationRecord, error) {
	if limit < len(s.records) {
		return s.records[:limit], nil
	}
	return s.records, nil
}

func (s *stubHistory) Stats() (map[string]interface{}, error) {
	return map[string]interface{}{"total": len(s.records)}, nil
}

func testClassification() *models.EmotionClassification {
	return &models.EmotionClassification{
		PrimaryEmotion: "joy",
		Confidence:     0.825,
		Valence:        0.8,
		Arousal:        0.7,
		AllEmotions: map[string]float64{
			"joy": 0.825, "surprise": 0.05, "neutral": 0.05,
			"sadness": 0.025, "anger": 0.025, "fear": 0.015, "disgust": 0.01,
		},
	}
}

func newTestRouter(pipeline PipelineService, history HistoryReader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(pipeline, history, zap.NewNop()).RegisterRoutes(router)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAnalyze(t *testing.T) {
	router := newTestRouter(&stubPipeline{classification: testClassification()}, nil)

	w := doJSON(t, router, http.MethodPost, "/api/analyze", `{"text":"I feel happy today"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success        bool    `json:"success"`
		PrimaryEmotion string  `json:"primary_emotion"`
		Confidence     float64 `json:"confidence"`
		Valence        float64 `json:"valence"`
		Arousal        float64 `json:"arousal"`
		Emotions       []struct {
			Name  string  `json:"name"`
			Score float64 `json:"score"`
		} `json:"emotions"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !resp.Success || resp.PrimaryEmotion != "joy" {
		t.Errorf("response = %+v, want success with joy", resp)
	}
	if resp.Confidence != 82.5 {
		t.Errorf("confidence = %v, want percent 82.5", resp.Confidence)
	}
	if len(resp.Emotions) != 7 {
		t.Fatalf("emotions count = %d, want 7", len(resp.Emotions))
	}
	if resp.Emotions[0].Name != "joy" {
		t.Errorf("first emotion = %q, want joy (sorted by score)", resp.Emotions[0].Name)
	}
}

func TestAnalyze_TextTooShort(t *testing.T) {
	router := newTestRouter(&stubPipeline{classification: testClassification()}, nil)

	for _, body := range []string{`{"text":"hi"}`, `{"text":"  a  "}`, `{}`} {
		w := doJSON(t, router, http.MethodPost, "/api/analyze", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, w.Code)
		}
	}
}

func TestAnalyze_ExternalServiceError(t *testing.T) {
	pipeline := &stubPipeline{
		analyzeErr: &models.ExternalServiceError{Service: "classification", Err: http.ErrHandlerTimeout},
	}
	router := newTestRouter(pipeline, nil)

	w := doJSON(t, router, http.MethodPost, "/api/analyze", `{"text":"I feel happy"}`)
	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", w.Code)
	}
}

func TestGenerate(t *testing.T) {
	pipeline := &stubPipeline{
		classification: testClassification(),
		result: &models.GenerationResult{
			Image:          []byte("png-bytes"),
			Prompt:         "final prompt",
			NegativePrompt: "negative",
			Emotion:        "joy",
			Style:          "nature",
			InputType:      models.InputTypeEmotion,
			Seed:           42,
			Model:          "primary/model",
		},
	}
	router := newTestRouter(pipeline, nil)

	w := doJSON(t, router, http.MethodPost, "/api/generate", `{"text":"I feel happy","style":"nature","seed":42}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success   bool             `json:"success"`
		Image     string           `json:"image"`
		Prompt    string           `json:"prompt"`
		InputType models.InputType `json:"input_type"`
		Seed      int64            `json:"seed"`
		Style     string           `json:"style"`
		Original  string           `json:"original_text"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !strings.HasPrefix(resp.Image, "data:image/png;base64,") {
		t.Errorf("image = %q, want base64 data URL", resp.Image)
	}
	if resp.Seed != 42 || resp.Prompt != "final prompt" || resp.InputType != models.InputTypeEmotion {
		t.Errorf("response = %+v, metadata not forwarded", resp)
	}
	if resp.Original != "I feel happy" {
		t.Errorf("original_text = %q", resp.Original)
	}
}

func TestGenerate_EmptyText(t *testing.T) {
	router := newTestRouter(&stubPipeline{}, nil)

	w := doJSON(t, router, http.MethodPost, "/api/generate", `{"text":"   "}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestGenerate_AllTiersFailed(t *testing.T) {
	pipeline := &stubPipeline{
		classification: testClassification(),
		generateErr:    &models.ExternalServiceError{Service: "image-synthesis", Err: http.ErrHandlerTimeout},
	}
	router := newTestRouter(pipeline, nil)

	w := doJSON(t, router, http.MethodPost, "/api/generate", `{"text":"I feel happy"}`)
	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", w.Code)
	}
}

func TestListGenerations(t *testing.T) {
	history := &stubHistory{records: []*models.GenerationRecord{
		{ID: "a", Emotion: "joy"},
		{ID: "b", Emotion: "fear"},
	}}
	router := newTestRouter(&stubPipeline{}, history)

	w := doJSON(t, router, http.MethodGet, "/api/generations?limit=1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Total int `json:"total"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Total != 1 {
		t.Errorf("total = %d, want 1", resp.Total)
	}

	w = doJSON(t, router, http.MethodGet, "/api/generations?limit=0", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid limit status = %d, want 400", w.Code)
	}
}

func TestHistoryDisabled(t *testing.T) {
	router := newTestRouter(&stubPipeline{}, nil)

	w := doJSON(t, router, http.MethodGet, "/api/generations", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 when history is disabled", w.Code)
	}
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(&stubPipeline{}, nil)

	w := doJSON(t, router, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}
