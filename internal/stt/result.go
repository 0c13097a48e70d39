package stt

// Result represents the result of a speech-to-text transcription
type Result struct {
	Text     string // The transcribed text, plain format
	Provider string // The provider used (e.g., "groq", "openai")
}
