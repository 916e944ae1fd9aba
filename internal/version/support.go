package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Minimum controller software release this wrapper supports. Only the
// major.minor pair is consulted.
const (
	supportedMajor = 2
	supportedMinor = 11
)

// IsSupported reports whether a controller software version string names
// a release new enough to drive. Strings semver rejects, such as the
// four-field "2.11.0.4" builds the controller embeds, are judged on
// their numeric fields the same way install directories are ordered.
// Strings without a major and minor field are unsupported: the gate
// fails closed.
func IsSupported(v string) bool {
	trimmed := strings.TrimSpace(v)
	if ver, err := semver.NewVersion(trimmed); err == nil {
		return supported(int(ver.Major()), int(ver.Minor()))
	}
	fields := numericFields(trimmed)
	if len(fields) < 2 {
		return false
	}
	return supported(fields[0], fields[1])
}

func supported(major, minor int) bool {
	if major != supportedMajor {
		return major > supportedMajor
	}
	return minor >= supportedMinor
}
