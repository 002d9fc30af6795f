// Package warmboot persists the agent's object inventory across restarts.
//
// On shutdown the agent snapshots every manager's live state - re-read from
// hardware through the object engine's bundle gets, not from cached config -
// and writes it to a JSON state file together with a BLAKE2b-256
// fingerprint. On the next start the fingerprint verifies the file was not
// corrupted or edited before the inventory is trusted.
package warmboot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/swal-project/swal-go/pkg/version"
)

// StateVersion is the current version of the state file format.
const StateVersion = 1

// ErrFingerprintMismatch indicates the state file content does not match
// its recorded fingerprint.
var ErrFingerprintMismatch = errors.New("warmboot: state fingerprint mismatch")

// ErrIncompatibleVersion indicates the state was saved by an agent
// implementing a different major interface version.
var ErrIncompatibleVersion = errors.New("warmboot: incompatible interface version")

// State is the persisted object inventory.
type State struct {
	// Version is the state file format version.
	Version int `json:"version"`

	// SavedAt is when the state was last saved.
	SavedAt time.Time `json:"saved_at"`

	// IfaceVersion is the hardware-interface version of the saving agent.
	IfaceVersion string `json:"iface_version"`

	// AgentID is the agent run that saved the state.
	AgentID string `json:"agent_id,omitempty"`

	// Fingerprint is the BLAKE2b-256 hex digest of the inventory.
	Fingerprint string `json:"fingerprint,omitempty"`

	Ports     []PortRecord     `json:"ports,omitempty"`
	Bridges   []uint64         `json:"bridges,omitempty"`
	Vlans     []VlanRecord     `json:"vlans,omitempty"`
	Queues    []uint64         `json:"queues,omitempty"`
	Routes    []RouteRecord    `json:"routes,omitempty"`
	Neighbors []NeighborRecord `json:"neighbors,omitempty"`
}

// PortRecord is the persisted state of one port.
type PortRecord struct {
	OID     uint64   `json:"oid"`
	Lanes   []uint32 `json:"lanes"`
	Speed   uint32   `json:"speed"`
	MTU     uint32   `json:"mtu,omitempty"`
	AdminUp bool     `json:"admin_up,omitempty"`
}

// VlanRecord is the persisted state of one VLAN.
type VlanRecord struct {
	VlanID uint16 `json:"vlan_id"`
	OID    uint64 `json:"oid"`
}

// RouteRecord is the persisted identity of one route entry.
type RouteRecord struct {
	SwitchID uint64 `json:"switch_id"`
	VrID     uint64 `json:"vr_id"`
	Dest     string `json:"dest"`
}

// NeighborRecord is the persisted identity of one neighbor entry.
type NeighborRecord struct {
	SwitchID    uint64 `json:"switch_id"`
	InterfaceID uint64 `json:"interface_id"`
	IP          string `json:"ip"`
}

// ComputeFingerprint returns the BLAKE2b-256 hex digest of the inventory.
// The digest covers only the object records, not the envelope fields, so
// re-saving an unchanged inventory yields the same fingerprint.
func (s *State) ComputeFingerprint() (string, error) {
	inventory := struct {
		Ports     []PortRecord     `json:"ports,omitempty"`
		Bridges   []uint64         `json:"bridges,omitempty"`
		Vlans     []VlanRecord     `json:"vlans,omitempty"`
		Queues    []uint64         `json:"queues,omitempty"`
		Routes    []RouteRecord    `json:"routes,omitempty"`
		Neighbors []NeighborRecord `json:"neighbors,omitempty"`
	}{s.Ports, s.Bridges, s.Vlans, s.Queues, s.Routes, s.Neighbors}

	data, err := json.Marshal(inventory)
	if err != nil {
		return "", err
	}
	sum := blake2b.Sum256(data)
	return fmt.Sprintf("%x", sum), nil
}

// Verify recomputes the fingerprint and compares it with the recorded one.
func (s *State) Verify() error {
	want, err := s.ComputeFingerprint()
	if err != nil {
		return err
	}
	if s.Fingerprint != want {
		return ErrFingerprintMismatch
	}
	return nil
}

// Store manages persistence of agent state to a JSON file.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a state store backed by the given path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Save fingerprints and persists the state to disk.
func (s *Store) Save(state *State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Ensure parent directory exists
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	state.Version = StateVersion
	state.IfaceVersion = version.Current
	if state.SavedAt.IsZero() {
		state.SavedAt = time.Now()
	}
	fp, err := state.ComputeFingerprint()
	if err != nil {
		return err
	}
	state.Fingerprint = fp

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// Load reads and verifies the state from disk.
// Returns nil, nil if the file doesn't exist (empty state).
func (s *Store) Load() (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("warmboot: parse state: %w", err)
	}
	if state.Version != StateVersion {
		return nil, fmt.Errorf("warmboot: unsupported state version %d", state.Version)
	}
	saved, err := version.Parse(state.IfaceVersion)
	if err != nil {
		return nil, fmt.Errorf("warmboot: parse state: %w", err)
	}
	if cur := version.MustParse(version.Current); !saved.Compatible(cur) {
		return nil, fmt.Errorf("%w: state saved by %s, running %s", ErrIncompatibleVersion, saved, cur)
	}
	if err := state.Verify(); err != nil {
		return nil, err
	}
	return &state, nil
}
