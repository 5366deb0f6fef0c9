package netbox

import (
	"fmt"
	"strconv"
	"strings"
)

// Capabilities describes optional NetBox features detected from the server version.
type Capabilities struct {
	// Version is the raw version string reported by the server.
	Version string
	// Major and Minor are the parsed version components.
	Major int
	Minor int
	// Modules is true when module types and module bays are supported (>= 3.2).
	Modules bool
}

// ParseCapabilities derives the capability set from a dotted version string
// such as "3.2", "4.1.3" or "v3.7".
func ParseCapabilities(version string) (Capabilities, error) {
	caps := Capabilities{Version: version}

	trimmed := strings.TrimPrefix(strings.TrimSpace(version), "v")
	parts := strings.Split(trimmed, ".")
	if trimmed == "" {
		return caps, fmt.Errorf("empty netbox version")
	}

	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return caps, fmt.Errorf("invalid netbox version %q: %w", version, err)
	}
	caps.Major = major

	if len(parts) > 1 {
		// Pre-release suffixes like "2-beta1" only matter after the minor number.
		minorPart, _, _ := strings.Cut(parts[1], "-")
		minor, err := strconv.Atoi(minorPart)
		if err != nil {
			return caps, fmt.Errorf("invalid netbox version %q: %w", version, err)
		}
		caps.Minor = minor
	}

	caps.Modules = caps.Major > 3 || (caps.Major == 3 && caps.Minor >= 2)
	return caps, nil
}
