package capture

import (
	"fmt"
	"image"

	"github.com/vova616/screenshot"
)

// screenshotSource captures the primary screen via vova616/screenshot.
type screenshotSource struct{}

func (screenshotSource) Available() bool {
	r, err := screenshot.ScreenRect()
	return err == nil && !r.Empty()
}

func (screenshotSource) RequestFrame() (*image.RGBA, error) {
	img, err := screenshot.CaptureScreen()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return img, nil
}
