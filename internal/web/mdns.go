package web

import (
	"fmt"

	"github.com/grandcat/zeroconf"
	"github.com/keywordmaster/keywordmaster/internal/discovery"
	"github.com/keywordmaster/keywordmaster/internal/logging"
	"github.com/keywordmaster/keywordmaster/internal/ui"
	"github.com/keywordmaster/keywordmaster/internal/version"
	"go.uber.org/zap"
)

// Advertiser keeps an mDNS registration alive until Shutdown.
type Advertiser struct {
	server *zeroconf.Server
}

// Advertise registers the page on the local network. An empty instance
// name uses the app name.
func Advertise(instance string, port int) (*Advertiser, error) {
	if instance == "" {
		instance = ui.AppName
	}

	srv, err := zeroconf.Register(instance, discovery.ServiceType, discovery.ServiceDomain, port, discovery.TXTRecords(version.Version), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to register mDNS service: %w", err)
	}

	logging.Info("Advertising over mDNS",
		zap.String("instance", instance),
		zap.String("service", discovery.ServiceType),
		zap.Int("port", port),
	)
	return &Advertiser{server: srv}, nil
}

// Shutdown withdraws the registration.
func (a *Advertiser) Shutdown() {
	if a == nil || a.server == nil {
		return
	}
	a.server.Shutdown()
	logging.Debug("mDNS registration withdrawn")
}
