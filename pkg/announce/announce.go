// Package announce advertises a running agent instance over mDNS so fleet
// tooling can find switches on the management network. There is no control
// surface behind the advertisement; it carries identity only.
package announce

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/enbility/zeroconf/v3"
)

// ServiceType is the mDNS service type for agent instances.
const ServiceType = "_swal._tcp"

// Domain is the mDNS domain.
const Domain = "local."

// DefaultTTL is the DNS record TTL if none is configured.
const DefaultTTL = 120 * time.Second

// Info describes the advertised agent instance.
type Info struct {
	// AgentID is the agent run ID (UUID).
	AgentID string

	// Version is the library version.
	Version string

	// Adapter names the hardware adapter backend (e.g. "sim").
	Adapter string
}

// EncodeTXT encodes the info as mDNS TXT records.
func EncodeTXT(info Info) []string {
	return []string{
		"id=" + info.AgentID,
		"ver=" + info.Version,
		"adapter=" + info.Adapter,
	}
}

// ParseTXT decodes TXT records produced by EncodeTXT. Unknown keys are
// ignored.
func ParseTXT(records []string) (Info, error) {
	var info Info
	for _, rec := range records {
		key, value, ok := strings.Cut(rec, "=")
		if !ok {
			return Info{}, fmt.Errorf("announce: malformed TXT record %q", rec)
		}
		switch key {
		case "id":
			info.AgentID = value
		case "ver":
			info.Version = value
		case "adapter":
			info.Adapter = value
		}
	}
	return info, nil
}

// Config configures the announcer.
type Config struct {
	// Instance is the advertised instance name.
	Instance string

	// Port is the advertised port.
	Port int

	// TTL is the DNS record TTL. Zero means DefaultTTL.
	TTL time.Duration
}

// Announcer advertises one agent instance. Safe for concurrent use.
type Announcer struct {
	config Config

	mu     sync.Mutex
	server *zeroconf.Server
}

// New creates an announcer with the given configuration.
func New(config Config) *Announcer {
	if config.TTL == 0 {
		config.TTL = DefaultTTL
	}
	return &Announcer{config: config}
}

// Start registers the mDNS service. A second Start replaces the previous
// registration.
func (a *Announcer) Start(info Info) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server != nil {
		a.server.Shutdown()
		a.server = nil
	}

	opts := []zeroconf.ServerOption{
		zeroconf.TTL(uint32(a.config.TTL.Seconds())),
	}

	server, err := zeroconf.Register(
		a.config.Instance,
		ServiceType,
		Domain,
		a.config.Port,
		EncodeTXT(info),
		nil, // all interfaces
		opts...,
	)
	if err != nil {
		return fmt.Errorf("announce: register service: %w", err)
	}

	a.server = server
	return nil
}

// Stop withdraws the advertisement. Safe to call when not started.
func (a *Announcer) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server != nil {
		a.server.Shutdown()
		a.server = nil
	}
}
