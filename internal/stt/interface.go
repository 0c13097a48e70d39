package stt

import "context"

// Provider defines the interface for speech-to-text providers
type Provider interface {
	// Transcribe sends raw audio bytes for transcription and returns the result.
	// filename is a hint only; providers infer the container from its extension.
	Transcribe(ctx context.Context, audio []byte, filename string) (*Result, error)

	// Name returns the name of the provider (e.g., "groq", "openai")
	Name() string
}
