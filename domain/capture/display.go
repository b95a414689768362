package capture

import (
	"fmt"
	"image"

	"github.com/kbinani/screenshot"
)

// displaySource captures one display by index via kbinani/screenshot.
type displaySource struct {
	index int
}

func (d displaySource) Available() bool {
	return screenshot.NumActiveDisplays() > d.index &&
		!screenshot.GetDisplayBounds(d.index).Empty()
}

func (d displaySource) RequestFrame() (*image.RGBA, error) {
	if !d.Available() {
		return nil, ErrUnavailable
	}
	img, err := screenshot.CaptureDisplay(d.index)
	if err != nil {
		return nil, fmt.Errorf("%w: display %d: %v", ErrUnavailable, d.index, err)
	}
	return img, nil
}
