package tagger

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Provider names accepted by NewProvider.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Default models per provider.
const (
	DefaultGeminiModel = "gemini-3-flash-preview"
	DefaultOpenAIModel = "gpt-4o-mini"
)

// Environment variables holding provider credentials. They are read on every
// call so a key exported after startup is picked up.
const (
	GeminiKeyEnvVar   = "GEMINI_API_KEY"
	FallbackKeyEnvVar = "API_KEY"
	OpenAIKeyEnvVar   = "OPENAI_API_KEY"
)

// Provider sends one request to a hosted model and returns its free text reply.
type Provider interface {
	// Name returns the provider identifier, e.g. "gemini"
	Name() string
	// Model returns the model requests are addressed to
	Model() string
	// Complete performs a single call without retries
	Complete(ctx context.Context, req Request) (string, error)
}

// Providers returns the accepted provider names.
func Providers() []string {
	return []string{ProviderGemini, ProviderOpenAI}
}

// DefaultModel returns the default model for a provider, or "" if the
// provider is unknown.
func DefaultModel(provider string) string {
	switch provider {
	case ProviderGemini:
		return DefaultGeminiModel
	case ProviderOpenAI:
		return DefaultOpenAIModel
	default:
		return ""
	}
}

// NewProvider returns the named provider. An empty model selects the
// provider's default.
func NewProvider(name, model string) (Provider, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = ProviderGemini
	}
	if model == "" {
		model = DefaultModel(name)
	}

	switch name {
	case ProviderGemini:
		return NewGeminiProvider(model), nil
	case ProviderOpenAI:
		return NewOpenAIProvider(model), nil
	default:
		return nil, fmt.Errorf("unknown provider %q (expected one of: %s)", name, strings.Join(Providers(), ", "))
	}
}

// lookupKey returns the first non-empty environment variable among names.
func lookupKey(names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}
