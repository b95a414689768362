package images

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
)

func TestFitSize(t *testing.T) {
	cases := []struct{ w, h, mw, mh, ww, wh int }{
		{100, 50, 200, 200, 100, 50},
		{400, 200, 200, 200, 200, 100},
		{200, 400, 200, 200, 100, 200},
		{1000, 1, 10, 10, 10, 1},
	}
	for _, c := range cases {
		w, h := FitSize(c.w, c.h, c.mw, c.mh)
		if w != c.ww || h != c.wh {
			t.Fatalf("FitSize(%d,%d,%d,%d)=%d,%d want %d,%d", c.w, c.h, c.mw, c.mh, w, h, c.ww, c.wh)
		}
	}
}

func TestScaleToFit_PreservesColorAndReturnsSmallSources(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3] = 200, 10, 10, 255
	}
	out := ScaleToFit(src, 10, 10)
	if out.Bounds().Dx() != 10 || out.Bounds().Dy() != 5 {
		t.Fatalf("unexpected size %v", out.Bounds())
	}
	r, g, _, _ := out.At(5, 2).RGBA()
	if r>>8 != 200 || g>>8 != 10 {
		t.Fatalf("uniform color changed by scaling: %d,%d", r>>8, g>>8)
	}
	if ScaleToFit(src, 100, 100) != image.Image(src) {
		t.Fatalf("source that fits should be returned as is")
	}
}

func TestEncodePNG_RoundTrip(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	src.Set(1, 1, color.RGBA{R: 255, A: 255})
	data := EncodePNG(src)
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
	if EncodePNG(nil) != nil {
		t.Fatalf("nil image should encode to nil")
	}
}

func TestThumbnailCache_LoadsOnceAndEvicts(t *testing.T) {
	c, err := NewThumbnailCache(2, 8, 8)
	if err != nil {
		t.Fatal(err)
	}
	loads := map[string]int{}
	c.open = func(p string) (image.Image, error) {
		loads[p]++
		if p == "missing" {
			return nil, errors.New("not found")
		}
		return image.NewRGBA(image.Rect(0, 0, 32, 16)), nil
	}

	thumb, err := c.Thumbnail("a")
	if err != nil || thumb.Bounds().Dx() != 8 || thumb.Bounds().Dy() != 4 {
		t.Fatalf("unexpected thumb %v err=%v", thumb, err)
	}
	c.Thumbnail("a")
	if loads["a"] != 1 {
		t.Fatalf("cached thumbnail reloaded %d times", loads["a"])
	}
	c.Thumbnail("b")
	c.Thumbnail("c")
	if c.Len() != 2 {
		t.Fatalf("cache should hold 2 entries, got %d", c.Len())
	}
	c.Thumbnail("a")
	if loads["a"] != 2 {
		t.Fatalf("evicted entry should be reloaded")
	}
	if _, err := c.Thumbnail("missing"); err == nil {
		t.Fatalf("expected load error")
	}
}
