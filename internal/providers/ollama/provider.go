// internal/providers/ollama/provider.go
// Package ollama provides a VisionProvider backed by Ollama-compatible
// HTTP endpoints. Images travel base64-encoded on the user message, the
// format the /api/chat endpoint expects for multimodal models.
package ollama

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/factorylens/hazardbench/internal/appconfig"
	"github.com/factorylens/hazardbench/internal/logging"
	"github.com/factorylens/hazardbench/internal/providers"
	"github.com/factorylens/hazardbench/internal/util"
)

// Provider implements the providers.VisionProvider interface using the
// Ollama HTTP API.
type Provider struct {
	client  *http.Client
	baseURL string
	timeout time.Duration
	debug   bool
}

// New constructs a Provider configured with the application's request timeout.
func New(cfg *appconfig.Config) *Provider {
	timeout := cfg.RequestTimeout()
	return &Provider{
		client: &http.Client{
			Timeout:   timeout,
			Transport: &http.Transport{ForceAttemptHTTP2: false},
		},
		baseURL: cfg.OllamaHost(),
		timeout: timeout,
		debug:   cfg.Debug,
	}
}

type chatMessage struct {
	Role    string   `json:"role"`
	Content string   `json:"content"`
	Images  []string `json:"images,omitempty"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	Done bool `json:"done"`
}

// Generate issues one non-streaming /api/chat call.
func (p *Provider) Generate(ctx context.Context, req providers.GenerateRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	messages := make([]chatMessage, 0, 2)
	if req.SystemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.SystemPrompt})
	}
	user := chatMessage{Role: "user", Content: req.Prompt}
	if len(req.Image) > 0 {
		user.Images = []string{base64.StdEncoding.EncodeToString(req.Image)}
	}
	messages = append(messages, user)

	payload, err := json.Marshal(chatRequest{
		Model:    req.Model,
		Messages: messages,
		Stream:   false,
	})
	if err != nil {
		return "", err
	}

	endpoint := p.baseURL + "/api/chat"
	logging.LogRequest("BENCH->LLM", "ollama", req.Model, map[string]any{
		"url":        endpoint,
		"prompt":     util.TruncateRunes(req.Prompt, 120),
		"imageBytes": len(req.Image),
	})

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("ollama: /api/chat: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama: /api/chat returned %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var chat chatResponse
	if err := json.Unmarshal(body, &chat); err != nil {
		return "", fmt.Errorf("ollama: decode response: %w", err)
	}
	logging.LogRequest("LLM->BENCH", "ollama", req.Model, util.TruncateRunes(chat.Message.Content, 200))

	return chat.Message.Content, nil
}

// Close implements providers.VisionProvider.
func (p *Provider) Close() error {
	p.client.CloseIdleConnections()
	return nil
}
