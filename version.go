package bytetape

import (
	"bytetape/internal/kernel"
)

// Library version
const (
	VersionMajor = 1
	VersionMinor = 0
	VersionPatch = 0
)

// Version returns the semantic version parts
func Version() (major, minor, patch int) {
	return VersionMajor, VersionMinor, VersionPatch
}

// Capabilities lists the kernel backends the host supports, baseline
// first, plus the one currently active
func Capabilities() (supported []string, active string) {
	return kernel.Capabilities(), kernel.Active().Name
}

// ResetCapabilities narrows kernel dispatch to the intersection of the
// requested names and what the host supports, returning the chosen
// backend; an empty intersection falls back to the serial baseline
func ResetCapabilities(names ...string) string {
	return kernel.Reset(names)
}
