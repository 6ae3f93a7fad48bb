package main

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/keywordmaster/keywordmaster/internal/logging"
	"github.com/keywordmaster/keywordmaster/internal/ui"
	"github.com/keywordmaster/keywordmaster/internal/web"
	"go.uber.org/zap"
)

// Serve command flags
var (
	serveHost     string
	servePort     int
	advertise     bool
	hostClipboard bool
	instanceName  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web front end",
	Long: `Start the Keyword Master web page and JSON API.

The page shares one session between all open browsers and updates live over
a websocket. Host, port and mDNS advertisement default to the config file.

The page's Copy All button uses the browser clipboard. With --host-clipboard
the server also writes the tags to the clipboard of the machine it runs on.`,
	Example: `  # Serve on the configured address (default 127.0.0.1:8080)
  keywordmaster serve

  # Serve on the local network and announce it over mDNS
  keywordmaster serve --host 0.0.0.0 --advertise

  # Stateless API
  curl -s localhost:8080/api/v1/generate -d '{"topic":"cats"}'`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Interface to listen on (default from config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config)")
	serveCmd.Flags().BoolVar(&advertise, "advertise", false, "Advertise the page over mDNS")
	serveCmd.Flags().BoolVar(&hostClipboard, "host-clipboard", false, "Copy All also writes the server's clipboard")
	serveCmd.Flags().StringVar(&instanceName, "name", ui.AppName, "mDNS instance name")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	gen, settings, err := newTagger()
	if err != nil {
		return err
	}

	prefs := settings.ServerOrDefault()
	cfg := web.Config{
		Host:         prefs.Host,
		Port:         prefs.Port,
		Advertise:    prefs.Advertise,
		InstanceName: instanceName,
	}
	useHostClipboard := prefs.HostClipboard

	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.Host = serveHost
	}
	if flags.Changed("port") {
		cfg.Port = servePort
	}
	if flags.Changed("advertise") {
		cfg.Advertise = advertise
	}
	if flags.Changed("host-clipboard") {
		useHostClipboard = hostClipboard
	}

	if logLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctrl := newController(gen, useHostClipboard)
	defer ctrl.Close()

	srv, err := web.NewServer(cfg, ctrl, gen)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	provider := gen.Provider()
	p := ui.NewPrinter(cmd.ErrOrStderr())
	p.PrintHeader(ui.AppName, "Web front end",
		ui.Param{Key: "Address", Value: "http://" + cfg.Addr()},
		ui.Param{Key: "Provider", Value: provider.Name()},
		ui.Param{Key: "Model", Value: provider.Model()},
	)
	p.Println(ui.HelpStyle.Render("  Press Ctrl-C to stop."))

	logging.Debug("Serve configuration resolved",
		zap.String("addr", cfg.Addr()),
		zap.Bool("advertise", cfg.Advertise),
		zap.Bool("host_clipboard", useHostClipboard),
	)
	return srv.Run(ctx)
}
