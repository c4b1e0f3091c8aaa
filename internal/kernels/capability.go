package kernels

import (
	"os"
	"strings"
)

// Backend identifies a scan kernel implementation.
type Backend uint8

const (
	// Generic is the reference element-at-a-time implementation.
	Generic Backend = iota
	// Unrolled tests blocks of eight lanes per iteration and only falls
	// back to element-at-a-time work inside a block that matched.
	Unrolled
)

// EnvOverride selects the backend by name when set.
const EnvOverride = "NDARROW_KERNELS"

func (b Backend) String() string {
	switch b {
	case Generic:
		return "generic"
	case Unrolled:
		return "unrolled"
	default:
		return "unknown"
	}
}

// ParseBackend parses a backend name. The empty string and "auto" yield
// the detected default.
func ParseBackend(s string) (Backend, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return detect(), true
	case "generic":
		return Generic, true
	case "unrolled":
		return Unrolled, true
	default:
		return Generic, false
	}
}

// Set once by init, read only afterwards.
var (
	defaultBackend Backend
	hasOverride    bool

	// set by platform specific init
	hasWideVectors bool
)

func initCapabilities() {
	if override := os.Getenv(EnvOverride); override != "" {
		if b, ok := ParseBackend(override); ok {
			hasOverride = true
			defaultBackend = b
			return
		}
	}
	defaultBackend = detect()
}

func detect() Backend {
	if hasWideVectors {
		return Unrolled
	}
	return Generic
}

// Default is the backend chosen at startup.
func Default() Backend {
	return defaultBackend
}

// IsOverridden reports whether NDARROW_KERNELS picked the default.
func IsOverridden() bool {
	return hasOverride
}

// HasWideVectors reports whether the CPU offers 256-bit (amd64 AVX2) or
// 128-bit (arm64 ASIMD) vector units.
func HasWideVectors() bool {
	return hasWideVectors
}
