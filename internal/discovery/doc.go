// Package discovery finds Keyword Master web front ends on the local network.
//
// A server started with "keywordmaster serve --advertise" registers an mDNS
// "_http._tcp" service whose TXT records carry "app=keywordmaster". The
// scanner browses that service type and keeps only entries with the marker,
// so other HTTP services on the network are ignored.
//
// # Usage Example
//
//	instances, err := discovery.ScanForInstances(ctx, 3*time.Second)
//	if err != nil {
//	    return err
//	}
//	for _, inst := range instances {
//	    fmt.Println(inst.URL())
//	}
//
// # Network Requirements
//
//   - Requires multicast support on the network interface
//   - Servers must be on the same local network segment
//   - Firewall must allow mDNS (UDP port 5353)
package discovery
