package stt

import (
	"fmt"
	"strings"

	"voxnote/internal/config"
)

// CreateProvider creates an STT provider based on configuration
func CreateProvider(cfg *config.Config) (Provider, error) {
	providerName := strings.ToLower(cfg.ProviderName)

	// Default to Groq if not specified
	if providerName == "" {
		providerName = "groq"
	}

	switch providerName {
	case "groq":
		return NewWhisperClient("groq", cfg.APIKey, GroqBaseURL, cfg.Model), nil
	case "openai":
		return NewWhisperClient("openai", cfg.APIKey, "", cfg.Model), nil
	default:
		return nil, fmt.Errorf("unsupported STT provider: %s. Supported: groq, openai", providerName)
	}
}
