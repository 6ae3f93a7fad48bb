package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/keywordmaster/keywordmaster/internal/discovery"
	"github.com/keywordmaster/keywordmaster/internal/ui"
)

var scanTimeout int

// discoverCmd lists servers advertised with 'serve --advertise'
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find Keyword Master servers on the local network",
	Long: `Find Keyword Master web front ends on the local network using mDNS.

Servers started with 'keywordmaster serve --advertise' announce themselves
as _http._tcp services and are listed with their address.`,
	Example: `  # Scan for 3 seconds (default)
  keywordmaster discover

  # Longer scan for slow networks
  keywordmaster discover --timeout 10`,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().IntVar(&scanTimeout, "timeout", int(discovery.DefaultScanTimeout/time.Second), "Scan timeout in seconds")
	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	p := ui.NewPrinter(cmd.OutOrStdout())
	p.PrintPleaseWait("Scanning for Keyword Master servers", fmt.Sprintf("%ds", scanTimeout))

	instances, err := discovery.ScanForInstances(ctx, time.Duration(scanTimeout)*time.Second)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(instances) == 0 {
		p.PrintError("No servers found", nil, []string{
			"Start a server with 'keywordmaster serve --host 0.0.0.0 --advertise'",
			"Check that this machine is on the same network",
			"Allow mDNS (UDP port 5353) through the firewall",
			"Try increasing --timeout for slower networks",
		})
		return nil
	}

	p.Newline()
	p.Println(ui.SectionTitleStyle.Render(fmt.Sprintf("Found %d server(s)", len(instances))))
	for i, inst := range instances {
		line := fmt.Sprintf("  %d. %s  %s", i+1, inst.Name, inst.URL())
		if inst.Version != "" {
			line += ui.HelpStyle.Render("  " + inst.Version)
		}
		p.Println(line)
	}
	return nil
}
