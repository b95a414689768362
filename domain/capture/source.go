package capture

import (
	"errors"
	"fmt"
	"image"
	"strings"
)

// ErrUnavailable is returned when the screen cannot be captured right now,
// for example when no display is attached or capture permission is missing.
var ErrUnavailable = errors.New("capture: screen capture unavailable")

// Source acquires one full frame of the primary display.
type Source interface {
	// Available reports whether RequestFrame can be expected to succeed.
	Available() bool
	RequestFrame() (*image.RGBA, error)
}

// Backend names accepted by NewSource.
const (
	BackendScreenshot = "screenshot"
	BackendDisplay    = "display"
	BackendGDI        = "gdi"
)

// Backends lists the backend names in preference order.
func Backends() []string {
	return []string{BackendScreenshot, BackendDisplay, BackendGDI}
}

// NewSource returns the named backend. An empty name selects the default.
func NewSource(name string) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", BackendScreenshot:
		return screenshotSource{}, nil
	case BackendDisplay:
		return displaySource{index: 0}, nil
	case BackendGDI:
		return gdiSource{}, nil
	default:
		return nil, fmt.Errorf("capture: unknown backend %q", name)
	}
}
