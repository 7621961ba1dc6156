package classifier

import (
	"context"
	"errors"
	"testing"

	"novavision/internal/huggingface"
	"novavision/internal/models"

	"go.uber.org/zap"
)

// fakeBackend returns canned scores or an error.
type fakeBackend struct {
	scores []huggingface.LabelScore
	err    error
	calls  int
}

func (f *fakeBackend) Classify(_ context.Context, _ string, _ string) ([]huggingface.LabelScore, error) {
	f.calls++
	return f.scores, f.err
}

func fullScores() []huggingface.LabelScore {
	return []huggingface.LabelScore{
		{Label: "Joy", Score: 0.82},
		{Label: "surprise", Score: 0.07},
		{Label: "neutral", Score: 0.05},
		{Label: "sadness", Score: 0.03},
		{Label: "anger", Score: 0.01},
		{Label: "fear", Score: 0.01},
		{Label: "disgust", Score: 0.01},
	}
}

func TestAnalyze(t *testing.T) {
	backend := &fakeBackend{scores: fullScores()}
	c := New(backend, "test-model", zap.NewNop())

	result, err := c.Analyze(context.Background(), "I feel happy today")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if result.PrimaryEmotion != "joy" {
		t.Errorf("primary emotion = %q, want joy (lowercased)", result.PrimaryEmotion)
	}
	if result.Confidence != 0.82 {
		t.Errorf("confidence = %v, want 0.82", result.Confidence)
	}
	if len(result.AllEmotions) != 7 {
		t.Errorf("score map has %d keys, want 7", len(result.AllEmotions))
	}
	for label, score := range result.AllEmotions {
		if score < 0 || score > 1 {
			t.Errorf("score for %q = %v out of [0, 1]", label, score)
		}
	}

	// Confidence always equals the maximum score in the map.
	max := 0.0
	for _, score := range result.AllEmotions {
		if score > max {
			max = score
		}
	}
	if result.Confidence != max {
		t.Errorf("confidence %v != max score %v", result.Confidence, max)
	}

	// Dimensional affect for joy.
	if result.Valence != 0.8 || result.Arousal != 0.7 {
		t.Errorf("affect = (%v, %v), want (0.8, 0.7)", result.Valence, result.Arousal)
	}
}

func TestAnalyze_TieBreaksToFirstOccurrence(t *testing.T) {
	backend := &fakeBackend{scores: []huggingface.LabelScore{
		{Label: "sadness", Score: 0.4},
		{Label: "fear", Score: 0.4},
		{Label: "joy", Score: 0.2},
	}}
	c := New(backend, "test-model", zap.NewNop())

	result, err := c.Analyze(context.Background(), "something heavy")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.PrimaryEmotion != "sadness" {
		t.Errorf("primary emotion = %q, want sadness (first occurrence on tie)", result.PrimaryEmotion)
	}
}

func TestAnalyze_FillsMissingVocabularyLabels(t *testing.T) {
	backend := &fakeBackend{scores: []huggingface.LabelScore{
		{Label: "joy", Score: 0.9},
		{Label: "neutral", Score: 0.1},
	}}
	c := New(backend, "test-model", zap.NewNop())

	result, err := c.Analyze(context.Background(), "great news")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(result.AllEmotions) != 7 {
		t.Fatalf("score map has %d keys, want 7", len(result.AllEmotions))
	}
	if result.AllEmotions["disgust"] != 0 {
		t.Errorf("missing label should be filled with 0, got %v", result.AllEmotions["disgust"])
	}
}

func TestAnalyze_EmptyInput(t *testing.T) {
	backend := &fakeBackend{scores: fullScores()}
	c := New(backend, "test-model", zap.NewNop())

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := c.Analyze(context.Background(), text)
		if !errors.Is(err, models.ErrEmptyInput) {
			t.Errorf("Analyze(%q) error = %v, want ErrEmptyInput", text, err)
		}
	}
	if backend.calls != 0 {
		t.Errorf("backend called %d times for empty input, want 0", backend.calls)
	}
}

func TestAnalyze_BackendError(t *testing.T) {
	backend := &fakeBackend{err: errors.New("connection refused")}
	c := New(backend, "test-model", zap.NewNop())

	_, err := c.Analyze(context.Background(), "some text")
	var svcErr *models.ExternalServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("error = %v, want ExternalServiceError", err)
	}
	if svcErr.Service != "classification" {
		t.Errorf("service = %q, want classification", svcErr.Service)
	}
	if backend.calls != 1 {
		t.Errorf("backend called %d times, want 1 (no retry)", backend.calls)
	}
}

func TestAnalyze_EmptyScores(t *testing.T) {
	backend := &fakeBackend{scores: nil}
	c := New(backend, "test-model", zap.NewNop())

	_, err := c.Analyze(context.Background(), "some text")
	var svcErr *models.ExternalServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("error = %v, want ExternalServiceError", err)
	}
}
