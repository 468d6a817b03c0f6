// internal/providers/gemini/provider.go
// Package gemini provides a VisionProvider backed by the Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/factorylens/hazardbench/internal/appconfig"
	"github.com/factorylens/hazardbench/internal/logging"
	"github.com/factorylens/hazardbench/internal/providers"
	"github.com/factorylens/hazardbench/internal/util"
)

// Provider implements providers.VisionProvider using the Gemini SDK. A
// client is created per call; the SDK holds no connection state worth
// pooling for a sequential benchmark.
type Provider struct {
	apiKey  string
	timeout time.Duration
	debug   bool
}

// New constructs a Provider from the application configuration.
func New(cfg *appconfig.Config) *Provider {
	return &Provider{
		apiKey:  cfg.APIKey,
		timeout: cfg.RequestTimeout(),
		debug:   cfg.Debug,
	}
}

// Generate issues one Gemini call with an optional inline image part.
func (p *Provider) Generate(ctx context.Context, req providers.GenerateRequest) (string, error) {
	if p.apiKey == "" {
		return "", errors.New("gemini: API key is empty")
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	cl, err := genai.NewClient(ctx, option.WithAPIKey(p.apiKey))
	if err != nil {
		return "", fmt.Errorf("gemini: create client: %w", err)
	}
	defer cl.Close()

	model := cl.GenerativeModel(strings.TrimSpace(req.Model))
	model.GenerationConfig = genai.GenerationConfig{
		// Low temperature keeps the structured output stable.
		Temperature: ptrFloat32(0.1),
	}
	if req.SystemPrompt != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(req.SystemPrompt)},
		}
	}

	parts := []genai.Part{genai.Text(req.Prompt)}
	if len(req.Image) > 0 {
		parts = append(parts, &genai.Blob{MIMEType: req.MIMEType, Data: req.Image})
	}

	logging.LogRequest("BENCH->LLM", "gemini", req.Model, map[string]any{
		"prompt":     util.TruncateRunes(req.Prompt, 120),
		"imageBytes": len(req.Image),
		"mimeType":   req.MIMEType,
	})

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}

	text := firstText(resp)
	if text == "" {
		return "", errors.New("gemini: empty response")
	}
	logging.LogRequest("LLM->BENCH", "gemini", req.Model, util.TruncateRunes(text, 200))

	return text, nil
}

// Close implements providers.VisionProvider. Clients are per call, so
// there is nothing to release.
func (p *Provider) Close() error { return nil }

// firstText returns the first text part of the first candidate.
func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, part := range c.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }
