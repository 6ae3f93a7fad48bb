package discovery

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
	"github.com/keywordmaster/keywordmaster/internal/logging"
	"go.uber.org/zap"
)

const (
	// ServiceType is the mDNS service type servers advertise under
	ServiceType = "_http._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default browse duration
	DefaultScanTimeout = 3 * time.Second

	// AppMarker is the value of the TXTApp record
	AppMarker = "keywordmaster"
)

// TXT record keys
const (
	TXTApp     = "app"
	TXTPath    = "path"
	TXTVersion = "version"
)

// TXTRecords returns the TXT records a server advertises.
func TXTRecords(version string) []string {
	return []string{
		TXTPath + "=/",
		TXTApp + "=" + AppMarker,
		TXTVersion + "=" + version,
	}
}

// Scanner handles mDNS discovery.
type Scanner struct {
	// Timeout is how long to browse before returning
	Timeout time.Duration
}

// NewScanner creates a scanner with default settings.
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// Scan browses for servers until the timeout or ctx ends and returns them
// sorted by name. Each instance is reported once.
func (s *Scanner) Scan(ctx context.Context) ([]*Instance, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	var mu sync.Mutex
	found := make(map[string]*Instance)
	go func() {
		for entry := range entries {
			inst := parseServiceEntry(entry)
			if inst == nil {
				continue
			}
			mu.Lock()
			if _, seen := found[entry.ServiceInstanceName()]; !seen {
				logging.Debug("Found server", zap.String("instance", inst.Name), zap.String("url", inst.URL()))
			}
			found[entry.ServiceInstanceName()] = inst
			mu.Unlock()
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	<-ctx.Done()

	mu.Lock()
	defer mu.Unlock()
	return sortInstances(found), nil
}

func sortInstances(found map[string]*Instance) []*Instance {
	instances := make([]*Instance, 0, len(found))
	for _, inst := range found {
		instances = append(instances, inst)
	}
	sort.Slice(instances, func(a, b int) bool {
		if instances[a].Name != instances[b].Name {
			return instances[a].Name < instances[b].Name
		}
		return instances[a].URL() < instances[b].URL()
	})
	return instances
}

// parseServiceEntry converts a zeroconf entry to an Instance.
// Returns nil if the entry is not a Keyword Master server.
func parseServiceEntry(entry *zeroconf.ServiceEntry) *Instance {
	metadata := parseTXT(entry.Text)
	if metadata[TXTApp] != AppMarker {
		return nil
	}

	// Prefer IPv4
	var ip string
	if len(entry.AddrIPv4) > 0 {
		ip = entry.AddrIPv4[0].String()
	} else if len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" || entry.Port == 0 {
		return nil
	}

	return &Instance{
		Name:         unescapeInstance(entry.Instance),
		Hostname:     entry.HostName,
		IP:           ip,
		Port:         entry.Port,
		Version:      metadata[TXTVersion],
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}

// parseTXT splits "key=value" records. A record without "=" maps to "".
func parseTXT(records []string) map[string]string {
	metadata := make(map[string]string, len(records))
	for _, txt := range records {
		key, value, _ := strings.Cut(txt, "=")
		metadata[key] = value
	}
	return metadata
}

// unescapeInstance removes the DNS escaping zeroconf leaves on spaces.
func unescapeInstance(name string) string {
	return strings.ReplaceAll(name, `\ `, " ")
}

// ScanForInstances scans with a custom timeout.
func ScanForInstances(ctx context.Context, timeout time.Duration) ([]*Instance, error) {
	scanner := NewScanner()
	if timeout > 0 {
		scanner.Timeout = timeout
	}
	return scanner.Scan(ctx)
}
