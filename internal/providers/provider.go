// internal/providers/provider.go

// Package providers defines the interface for reaching a vision-capable
// language model. It abstracts the single call shape the assessors and
// the judge need, regardless of the underlying provider (Gemini,
// Ollama).
package providers

import "context"

// GenerateRequest carries one model call. Image is optional; when
// present, MIMEType declares its format (image/png or image/jpeg). The
// judge issues text-only requests by leaving Image nil.
type GenerateRequest struct {
	Model        string
	SystemPrompt string
	Prompt       string
	Image        []byte
	MIMEType     string
}

// VisionProvider is the interface all model providers implement. A call
// blocks until the provider answers or the configured timeout expires;
// no retries happen at this layer.
type VisionProvider interface {
	// Generate issues one model call and returns the raw text reply.
	Generate(ctx context.Context, req GenerateRequest) (string, error)
	// Close cleans up any resources used by the provider.
	Close() error
}
