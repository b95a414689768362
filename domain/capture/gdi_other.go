//go:build !windows

package capture

import "image"

// gdiSource is only implemented on Windows.
type gdiSource struct{}

func (gdiSource) Available() bool { return false }

func (gdiSource) RequestFrame() (*image.RGBA, error) { return nil, ErrUnavailable }
