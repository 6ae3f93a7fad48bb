package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/keywordmaster/keywordmaster/internal/config"
	"github.com/keywordmaster/keywordmaster/internal/logging"
	"github.com/keywordmaster/keywordmaster/internal/session"
	"github.com/keywordmaster/keywordmaster/internal/tagger"
	"github.com/keywordmaster/keywordmaster/internal/ui"
)

// errReported is returned when the failure was already shown to the user.
var errReported = errors.New("error already reported")

// Global flags
var (
	providerName string
	modelName    string
	logLevel     string
	configPath   string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&providerName, "provider", "", "AI provider (gemini, openai); overrides the config file")
	rootCmd.PersistentFlags().StringVar(&modelName, "model", "", "Model name; overrides the config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); silent when unset")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the config file (default: OS config dir)")
}

// setup runs before every command.
func setup(cmd *cobra.Command, args []string) error {
	if err := logging.Initialize(logLevel); err != nil {
		return err
	}
	return nil
}

// settingsPath returns the config file in use.
func settingsPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.GetConfigPath()
}

// loadSettings reads the config file. A missing file yields defaults.
func loadSettings() (*config.Settings, error) {
	if configPath != "" {
		return config.LoadFrom(configPath)
	}
	return config.Load()
}

// resolveProvider applies --provider and --model over the settings.
func resolveProvider(settings *config.Settings) (tagger.Provider, error) {
	name := settings.Provider
	if providerName != "" {
		name = providerName
	}
	model := settings.ModelFor(name)
	if modelName != "" {
		model = modelName
	}
	return tagger.NewProvider(name, model)
}

// newTagger builds the tag adapter from the settings and flags.
func newTagger() (*tagger.Tagger, *config.Settings, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, nil, err
	}

	provider, err := resolveProvider(settings)
	if err != nil {
		return nil, nil, err
	}
	return tagger.New(provider), settings, nil
}

// newController wires a session controller to the tag adapter. The host
// clipboard is used only when hostClipboard is set.
func newController(gen session.Generator, hostClipboard bool) *session.Controller {
	opts := session.Options{}
	if hostClipboard {
		opts.Clipboard = session.SystemClipboard{}
	}
	return session.NewController(gen, opts)
}

// signalContext is canceled on Ctrl-C or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// exportDir returns the directory CSV files are saved to.
func exportDir(settings *config.Settings, override string) string {
	if override != "" {
		return override
	}
	if settings.ExportDir != "" {
		return settings.ExportDir
	}
	return "."
}

func requireTerminal() error {
	if !ui.IsTerminal(os.Stdout) || !ui.IsTerminal(os.Stdin) {
		return fmt.Errorf("the interactive UI needs a terminal; use 'keywordmaster generate <topic>' instead")
	}
	return nil
}
