package images

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Default thumbnail bounds for the status preview.
const (
	DefaultThumbWidth  = 240
	DefaultThumbHeight = 160
)

// ThumbnailCache loads exported files and keeps scaled copies of the most
// recently requested ones.
type ThumbnailCache struct {
	cache      *lru.Cache[string, image.Image]
	maxW, maxH int
	open       func(path string) (image.Image, error)
}

// NewThumbnailCache keeps at most size thumbnails bounded by maxW x maxH.
func NewThumbnailCache(size, maxW, maxH int) (*ThumbnailCache, error) {
	if size < 1 {
		size = 1
	}
	c, err := lru.New[string, image.Image](size)
	if err != nil {
		return nil, fmt.Errorf("thumbnail cache: %w", err)
	}
	return &ThumbnailCache{cache: c, maxW: maxW, maxH: maxH, open: func(p string) (image.Image, error) { return imaging.Open(p) }}, nil
}

// Thumbnail returns the scaled image stored at path.
func (t *ThumbnailCache) Thumbnail(path string) (image.Image, error) {
	if img, ok := t.cache.Get(path); ok {
		return img, nil
	}
	src, err := t.open(path)
	if err != nil {
		return nil, err
	}
	thumb := ScaleToFit(src, t.maxW, t.maxH)
	t.cache.Add(path, thumb)
	return thumb, nil
}

// Len reports the number of cached thumbnails.
func (t *ThumbnailCache) Len() int { return t.cache.Len() }
