package discovery

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Instance is a Keyword Master server found on the network.
type Instance struct {
	// Name is the mDNS instance name (e.g., "Keyword Master")
	Name string

	// Hostname is the mDNS hostname (e.g., "studio.local.")
	Hostname string

	// IP is the advertised address, IPv4 preferred
	IP string

	// Port is the HTTP port
	Port int

	// Version is the server version from the TXT records
	Version string

	// Metadata holds all TXT record key/value pairs
	Metadata map[string]string

	// DiscoveredAt is when the instance was seen
	DiscoveredAt time.Time
}

// String returns a human-readable description.
func (i *Instance) String() string {
	return fmt.Sprintf("%s (%s) at %s", i.Name, i.Hostname, i.URL())
}

// URL returns the address of the web page.
func (i *Instance) URL() string {
	path := i.GetMetadata(TXTPath)
	if path == "" {
		path = "/"
	}
	return "http://" + net.JoinHostPort(i.IP, strconv.Itoa(i.Port)) + path
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (i *Instance) GetMetadata(key string) string {
	if i.Metadata == nil {
		return ""
	}
	return i.Metadata[key]
}
