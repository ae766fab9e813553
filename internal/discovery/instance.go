package discovery

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Instance is a zeroapi server found on the network.
type Instance struct {
	// Name is the mDNS instance name (e.g., "zeroapi-laptop")
	Name string

	// Hostname is the mDNS hostname (e.g., "laptop.local.")
	Hostname string

	// IP is the advertised address, IPv4 preferred
	IP string

	Port int

	// Metadata contains the TXT record data
	// Common fields: "app=zeroapi", "version=v0.3.0", "path=/login"
	Metadata map[string]string

	// DiscoveredAt is when the instance was seen
	DiscoveredAt time.Time
}

// String returns a human-readable representation of the instance
func (i *Instance) String() string {
	return fmt.Sprintf("%s (%s) at %s", i.Name, i.Hostname, i.hostPort())
}

// BaseURL returns the HTTP base URL of the landing page
func (i *Instance) BaseURL() string {
	return "http://" + i.hostPort()
}

// LoginURL returns the WebSocket URL of the authentication terminal
func (i *Instance) LoginURL() string {
	path := i.GetMetadata(TxtPath)
	if path == "" {
		path = DefaultLoginPath
	}
	return "ws://" + i.hostPort() + path
}

// Version returns the advertised server version, if any
func (i *Instance) Version() string {
	return i.GetMetadata(TxtVersion)
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (i *Instance) GetMetadata(key string) string {
	if i.Metadata == nil {
		return ""
	}
	return i.Metadata[key]
}

func (i *Instance) hostPort() string {
	return net.JoinHostPort(i.IP, strconv.Itoa(i.Port))
}
