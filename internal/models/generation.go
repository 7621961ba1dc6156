package models

import "time"

// InputType classifies what the user's text describes: a feeling or a
// concrete object/scene.
type InputType string

const (
	InputTypeEmotion InputType = "emotion"
	InputTypeObject  InputType = "object"
)

// Default generation parameters.
const (
	DefaultStyle  = "photorealistic"
	DefaultWidth  = 1024
	DefaultHeight = 1024
)

// GenerationRequest is a caller's image-synthesis request. Seed is optional;
// when nil a fresh seed is drawn once per request and reused across all
// fallback tiers.
type GenerationRequest struct {
	Text   string `json:"text" binding:"required"`
	Style  string `json:"style"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Seed   *int64 `json:"seed,omitempty"`
}

// Normalize fills in default style and dimensions for unset fields.
func (r *GenerationRequest) Normalize() {
	if r.Style == "" {
		r.Style = DefaultStyle
	}
	if r.Width <= 0 {
		r.Width = DefaultWidth
	}
	if r.Height <= 0 {
		r.Height = DefaultHeight
	}
}

// PromptArtifact is the output of prompt synthesis: deterministic given
// (text, classification, style).
type PromptArtifact struct {
	Prompt         string    `json:"prompt"`
	NegativePrompt string    `json:"negative_prompt"`
	InputType      InputType `json:"input_type"`
}

// GenerationResult is the final pipeline output. Image is non-nil only on
// success; all fields are set together.
type GenerationResult struct {
	Image          []byte    `json:"-"`
	Prompt         string    `json:"prompt"`
	NegativePrompt string    `json:"negative_prompt"`
	Emotion        string    `json:"emotion"`
	Style          string    `json:"style"`
	InputType      InputType `json:"input_type"`
	Seed           int64     `json:"seed"`
	Model          string    `json:"model"`
}

// GenerationRecord is the persisted metadata of one completed generation.
// Image bytes are never stored.
type GenerationRecord struct {
	ID        string    `json:"id" db:"id"`
	Text      string    `json:"text" db:"text"`
	Emotion   string    `json:"emotion" db:"emotion"`
	Style     string    `json:"style" db:"style"`
	InputType InputType `json:"input_type" db:"input_type"`
	Prompt    string    `json:"prompt" db:"prompt"`
	Seed      int64     `json:"seed" db:"seed"`
	Width     int       `json:"width" db:"width"`
	Height    int       `json:"height" db:"height"`
	Model     string    `json:"model" db:"model"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
