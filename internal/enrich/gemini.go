package enrich

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultGeminiModel   = "gemini-2.5-flash"
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com"
)

// GeminiBackend calls the Generative Language generateContent endpoint with
// a JSON response schema.
type GeminiBackend struct {
	client *resty.Client
	model  string
}

// NewGeminiBackend creates a backend. baseURL may be empty.
func NewGeminiBackend(apiKey, model, baseURL string) *GeminiBackend {
	if model == "" {
		model = DefaultGeminiModel
	}
	if baseURL == "" {
		baseURL = DefaultGeminiBaseURL
	}
	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-goog-api-key", apiKey)
	return &GeminiBackend{client: c, model: model}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiGenerationConfig struct {
	ResponseMimeType string         `json:"responseMimeType"`
	ResponseSchema   map[string]any `json:"responseSchema"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
}

type geminiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// responseSchema renders Schema in the OpenAPI subset Gemini accepts.
func responseSchema() map[string]any {
	props := map[string]any{}
	for _, f := range Schema {
		p := map[string]any{"type": "STRING", "description": f.Description}
		if f.Type == StringList {
			p = map[string]any{"type": "ARRAY", "items": map[string]any{"type": "STRING"}, "description": f.Description}
		}
		props[f.Name] = p
	}
	return map[string]any{
		"type":       "OBJECT",
		"properties": props,
		"required":   RequiredFields(),
	}
}

func (b *GeminiBackend) Name() string { return "gemini" }

func (b *GeminiBackend) Complete(ctx context.Context, req Request) (string, error) {
	body := geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: req.Instruction}}}},
		GenerationConfig: geminiGenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   responseSchema(),
		},
	}

	var out geminiResponse
	var apiErr geminiError
	resp, err := b.client.R().
		SetContext(ctx).
		SetBody(&body).
		SetResult(&out).
		SetError(&apiErr).
		Post("/v1beta/models/" + b.model + ":generateContent")
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		msg := apiErr.Error.Message
		if msg == "" {
			msg = resp.String()
		}
		return "", fmt.Errorf("gemini status %d: %s", resp.StatusCode(), msg)
	}

	if out.PromptFeedback != nil && out.PromptFeedback.BlockReason != "" {
		return "", &Error{Kind: KindEmpty, Word: req.Word, Err: fmt.Errorf("prompt blocked: %s", out.PromptFeedback.BlockReason)}
	}
	var text strings.Builder
	for _, c := range out.Candidates {
		for _, p := range c.Content.Parts {
			text.WriteString(p.Text)
		}
		if text.Len() > 0 {
			break
		}
	}
	return text.String(), nil
}
