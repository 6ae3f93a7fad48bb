package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/keywordmaster/keywordmaster/internal/tagger"
)

// CurrentVersion is the settings file format version.
const CurrentVersion = 1

// Settings represents the entire user configuration file.
type Settings struct {
	Version   int          `yaml:"version" validate:"eq=1"`
	Provider  string       `yaml:"provider" validate:"required,oneof=gemini openai"`
	Model     string       `yaml:"model" validate:"required"`
	ExportDir string       `yaml:"export_dir,omitempty"` // Where CSV exports are saved; "" means the working directory
	Server    *ServerPrefs `yaml:"server,omitempty" validate:"omitempty"`
}

// ServerPrefs represents the web front end preferences.
type ServerPrefs struct {
	Host          string `yaml:"host" validate:"required"`
	Port          int    `yaml:"port" validate:"min=1,max=65535"`
	Advertise     bool   `yaml:"advertise"`      // Announce the UI over mDNS
	HostClipboard bool   `yaml:"host_clipboard"` // Copy also writes the server's clipboard
}

// NewSettings creates Settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version:  CurrentVersion,
		Provider: tagger.ProviderGemini,
		Model:    tagger.DefaultGeminiModel,
		Server:   NewServerPrefs(),
	}
}

// NewServerPrefs returns the default web front end preferences.
func NewServerPrefs() *ServerPrefs {
	return &ServerPrefs{
		Host: "127.0.0.1",
		Port: 8080,
	}
}

// ModelFor returns the configured model when provider is the configured one,
// otherwise the provider's default model.
func (s *Settings) ModelFor(provider string) string {
	if provider == s.Provider && s.Model != "" {
		return s.Model
	}
	return tagger.DefaultModel(provider)
}

// ServerOrDefault returns the server preferences, falling back to defaults.
func (s *Settings) ServerOrDefault() *ServerPrefs {
	if s.Server == nil {
		return NewServerPrefs()
	}
	return s.Server
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the settings against their constraints.
func (s *Settings) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("invalid settings: %w", err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("invalid settings: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Settings.")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fe.Value())
	case "eq":
		return fmt.Sprintf("unsupported %s %v (expected %s)", field, fe.Value(), fe.Param())
	case "min", "max":
		return fmt.Sprintf("%s %v out of range (%s=%s)", field, fe.Value(), fe.Tag(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}
