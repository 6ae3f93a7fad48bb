// Package config provides user settings for Keyword Master.
//
// Settings live in a YAML file in the OS-specific configuration directory and
// hold the model provider, the model name, the CSV export directory and the
// web server preferences. Values given on the command line override the file.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/keywordmaster/config.yaml or $HOME/.config/keywordmaster/config.yaml
//   - macOS: $HOME/.config/keywordmaster/config.yaml
//   - Windows: %LOCALAPPDATA%\keywordmaster\config.yaml
//
// A missing file is not an error; defaults are returned instead.
//
// # Security
//
// IMPORTANT: This package NEVER stores API keys. Provider credentials are read
// from the environment (GEMINI_API_KEY, API_KEY, OPENAI_API_KEY) at call time.
//
// # Usage Example
//
//	settings, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	settings.Provider = "openai"
//	settings.Model = settings.ModelFor("openai")
//
//	// Validates, then saves atomically
//	if err := settings.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// The global settings use sync.Once for safe initialization across goroutines.
// File operations are protected by a mutex to ensure atomic writes.
package config
