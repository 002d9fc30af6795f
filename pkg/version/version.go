// Package version provides the library version and "major.minor" interface
// version parsing and comparison.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Current is the hardware-interface version this library implements.
const Current = "1.0"

// IfaceVersion represents a parsed "major.minor" interface version.
type IfaceVersion struct {
	Major uint16
	Minor uint16
}

// Parse parses a "major.minor" version string.
func Parse(s string) (IfaceVersion, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 2 {
		return IfaceVersion{}, fmt.Errorf("invalid version %q: expected major.minor", s)
	}

	major, err := strconv.ParseUint(parts[0], 10, 16)
	if err != nil || parts[0] == "" {
		return IfaceVersion{}, fmt.Errorf("invalid version %q: bad major component", s)
	}

	minor, err := strconv.ParseUint(parts[1], 10, 16)
	if err != nil || parts[1] == "" {
		return IfaceVersion{}, fmt.Errorf("invalid version %q: bad minor component", s)
	}

	return IfaceVersion{Major: uint16(major), Minor: uint16(minor)}, nil
}

// MustParse parses a "major.minor" version string and panics if it is
// invalid. For known-good constants.
func MustParse(s string) IfaceVersion {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the version as "major.minor".
func (v IfaceVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Compatible returns true if the other version has the same major version.
func (v IfaceVersion) Compatible(other IfaceVersion) bool {
	return v.Major == other.Major
}
