// Package huggingface is a thin client for the HuggingFace Inference API,
// covering the two model tasks this service consumes: text classification
// and text-to-image.
package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultBaseURL = "https://api-inference.huggingface.co"

// Client calls HuggingFace Inference API endpoints. A single instance is
// constructed at process start and shared by all requests.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

// Config for the inference client.
type Config struct {
	BaseURL string        // Default: https://api-inference.huggingface.co
	Token   string        // Required API token
	Timeout time.Duration // Default: 120s; image generation is slow
}

// NewClient creates a new inference client.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("huggingface API token is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}

	logger.Info("HuggingFace client initialized",
		zap.String("base_url", cfg.BaseURL),
		zap.Duration("timeout", cfg.Timeout))

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}, nil
}

// LabelScore is one (label, score) pair from a classification model.
type LabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// APIError is a non-2xx response from the inference API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

type classifyRequest struct {
	Inputs  string          `json:"inputs"`
	Options classifyOptions `json:"options"`
}

type classifyOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

// Classify submits text to a text-classification model and returns the raw
// per-label scores in the backend's own order.
func (c *Client) Classify(ctx context.Context, model, text string) ([]LabelScore, error) {
	body, err := json.Marshal(classifyRequest{
		Inputs:  text,
		Options: classifyOptions{WaitForModel: true},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	respBody, _, err := c.post(ctx, model, body)
	if err != nil {
		return nil, err
	}

	// The API returns one score list per input, nested: [[{label, score}...]].
	// Some deployments return the flat form for a single input.
	var nested [][]LabelScore
	if err := json.Unmarshal(respBody, &nested); err == nil && len(nested) > 0 {
		return nested[0], nil
	}
	var flat []LabelScore
	if err := json.Unmarshal(respBody, &flat); err == nil && len(flat) > 0 {
		return flat, nil
	}
	return nil, fmt.Errorf("unexpected classification response: %s", truncate(string(respBody), 200))
}

// ImageRequest holds one text-to-image call's parameters. Zero-valued
// optional fields (NegativePrompt, GuidanceScale) are omitted from the
// request so the backend applies its defaults.
type ImageRequest struct {
	Model          string
	Prompt         string
	NegativePrompt string
	Width          int
	Height         int
	Steps          int
	GuidanceScale  float64
	Seed           int64
}

type imageRequestBody struct {
	Inputs     string          `json:"inputs"`
	Parameters imageParameters `json:"parameters"`
}

type imageParameters struct {
	NegativePrompt    string  `json:"negative_prompt,omitempty"`
	Width             int     `json:"width"`
	Height            int     `json:"height"`
	NumInferenceSteps int     `json:"num_inference_steps"`
	GuidanceScale     float64 `json:"guidance_scale,omitempty"`
	Seed              int64   `json:"seed"`
}

// TextToImage submits a prompt to a text-to-image model and returns the raw
// image bytes.
func (c *Client) TextToImage(ctx context.Context, req ImageRequest) ([]byte, error) {
	body, err := json.Marshal(imageRequestBody{
		Inputs: req.Prompt,
		Parameters: imageParameters{
			NegativePrompt:    req.NegativePrompt,
			Width:             req.Width,
			Height:            req.Height,
			NumInferenceSteps: req.Steps,
			GuidanceScale:     req.GuidanceScale,
			Seed:              req.Seed,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	respBody, contentType, err := c.post(ctx, req.Model, body)
	if err != nil {
		return nil, err
	}

	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("unexpected content type %q: %s", contentType, truncate(string(respBody), 200))
	}
	if len(respBody) == 0 {
		return nil, fmt.Errorf("empty image response")
	}

	return respBody, nil
}

func (c *Client) post(ctx context.Context, model string, body []byte) ([]byte, string, error) {
	url := fmt.Sprintf("%s/models/%s", c.baseURL, model)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("request to %s failed: %w", model, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug("Inference API call",
		zap.String("model", model),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode != http.StatusOK {
		return nil, "", &APIError{StatusCode: resp.StatusCode, Body: truncate(string(respBody), 500)}
	}

	return respBody, resp.Header.Get("Content-Type"), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
