package stt

import (
	"testing"

	"voxnote/internal/config"
)

func TestCreateProvider(t *testing.T) {
	tests := []struct {
		provider string
		wantName string
		wantErr  bool
	}{
		{"groq", "groq", false},
		{"GROQ", "groq", false},
		{"openai", "openai", false},
		{"", "groq", false},
		{"deepgram", "", true},
	}
	for _, tc := range tests {
		cfg := &config.Config{ProviderName: tc.provider, APIKey: "gsk_test", Model: config.DefaultModel}
		p, err := CreateProvider(cfg)
		if tc.wantErr {
			if err == nil {
				t.Errorf("CreateProvider(%q) expected error, got nil", tc.provider)
			}
			continue
		}
		if err != nil {
			t.Errorf("CreateProvider(%q) error: %v", tc.provider, err)
			continue
		}
		if p.Name() != tc.wantName {
			t.Errorf("CreateProvider(%q).Name() = %q, want %q", tc.provider, p.Name(), tc.wantName)
		}
	}
}
