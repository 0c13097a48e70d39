package stt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// GroqBaseURL is the OpenAI-compatible endpoint exposed by Groq.
const GroqBaseURL = "https://api.groq.com/openai/v1"

// WhisperClient implements STT against an OpenAI-compatible
// /audio/transcriptions endpoint (Groq or OpenAI itself).
type WhisperClient struct {
	name   string
	client *openai.Client
	model  string
}

// NewWhisperClient creates a Whisper-API STT provider. An empty baseURL
// targets the stock OpenAI endpoint.
func NewWhisperClient(name, apiKey, baseURL, model string) *WhisperClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &WhisperClient{
		name:   name,
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Name returns the provider name
func (c *WhisperClient) Name() string {
	return c.name
}

// Transcribe uploads the audio blob and returns the plain-text transcript.
// The whole payload is buffered; voice messages are bounded by the chat
// platform so no streaming is needed.
func (c *WhisperClient) Transcribe(ctx context.Context, audio []byte, filename string) (*Result, error) {
	if len(audio) == 0 {
		return nil, fmt.Errorf("empty audio payload")
	}

	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    c.model,
		FilePath: filename,
		Reader:   bytes.NewReader(audio),
		Format:   openai.AudioResponseFormatText,
	})
	if err != nil {
		return nil, fmt.Errorf("%s transcription: %w", c.name, err)
	}

	return &Result{
		Text:     resp.Text,
		Provider: c.name,
	}, nil
}

// IsForbidden reports whether err is an authorization failure from the
// provider, typically an invalid or revoked API key.
func IsForbidden(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusForbidden
	}
	msg := err.Error()
	return strings.Contains(msg, "403") && strings.Contains(strings.ToLower(msg), "forbidden")
}
