package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/keywordmaster/keywordmaster/internal/config"
	"github.com/keywordmaster/keywordmaster/internal/tagger"
	"github.com/keywordmaster/keywordmaster/internal/ui"
)

var forceInit bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
	Long: `Manage the Keyword Master configuration file.

The file stores the provider, model, CSV export directory and web front end
preferences. API keys are never stored; set GEMINI_API_KEY or OPENAI_API_KEY
in the environment instead.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with default values",
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := settingsPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one configuration value",
	Long: `Change one configuration value and save the file.

Keys: provider, model, export_dir, server.host, server.port,
server.advertise, server.host_clipboard`,
	Example: `  keywordmaster config set provider openai
  keywordmaster config set model gpt-4o
  keywordmaster config set server.port 9090`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing file without asking")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := settingsPath()
	if err != nil {
		return err
	}

	if config.Exists(path) && !forceInit {
		ok := ui.Confirm(cmd.InOrStdin(), cmd.ErrOrStderr(),
			"Configuration file already exists",
			[]string{path, "Its values will be replaced with the defaults."},
			"Overwrite it?")
		if !ok {
			return nil
		}
	}

	if err := config.NewSettings().SaveTo(path); err != nil {
		return err
	}

	ui.NewPrinter(cmd.OutOrStdout()).PrintSuccess("Configuration written", ui.Param{Key: "File", Value: path})
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	path, err := settingsPath()
	if err != nil {
		return err
	}

	settings, err := config.LoadFrom(path)
	if err != nil {
		return err
	}

	if err := applySetting(settings, args[0], args[1]); err != nil {
		return err
	}

	if err := settings.SaveTo(path); err != nil {
		return err
	}

	ui.NewPrinter(cmd.OutOrStdout()).PrintSuccess("Configuration updated",
		ui.Param{Key: args[0], Value: args[1]},
		ui.Param{Key: "File", Value: path},
	)
	return nil
}

// applySetting sets one key. Changing the provider also resets the model to
// that provider's default.
func applySetting(s *config.Settings, key, value string) error {
	switch strings.ToLower(key) {
	case "provider":
		provider := strings.ToLower(strings.TrimSpace(value))
		if provider != s.Provider {
			s.Model = tagger.DefaultModel(provider)
		}
		s.Provider = provider
	case "model":
		s.Model = value
	case "export_dir", "export-dir":
		s.ExportDir = value
	case "server.host":
		serverPrefs(s).Host = value
	case "server.port":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid port %q: %w", value, err)
		}
		serverPrefs(s).Port = port
	case "server.advertise":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q: %w", value, err)
		}
		serverPrefs(s).Advertise = b
	case "server.host_clipboard", "server.host-clipboard":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q: %w", value, err)
		}
		serverPrefs(s).HostClipboard = b
	default:
		return fmt.Errorf("unknown key %q", key)
	}

	return s.Validate()
}

func serverPrefs(s *config.Settings) *config.ServerPrefs {
	if s.Server == nil {
		s.Server = config.NewServerPrefs()
	}
	return s.Server
}
