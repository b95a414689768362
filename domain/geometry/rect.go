package geometry

import (
	"image"
	"math"
)

// Rect is an axis-aligned rectangle in device pixel coordinates.
// Left<=Right and Top<=Bottom hold once a rectangle has been normalized; a
// rectangle still being drawn may be inverted.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// R is shorthand for Rect{l, t, r, b}.
func R(l, t, r, b float64) Rect { return Rect{Left: l, Top: t, Right: r, Bottom: b} }

func (r Rect) Width() float64  { return r.Right - r.Left }
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Area is signed; an inverted rectangle along one axis has negative area.
func (r Rect) Area() float64 { return r.Width() * r.Height() }

// Empty reports whether r encloses no pixels.
func (r Rect) Empty() bool { return r.Width() <= 0 || r.Height() <= 0 }

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

// Contains reports whether (x, y) lies inside r. Edges count as inside.
func (r Rect) Contains(x, y float64) bool {
	return r.Left <= x && x <= r.Right && r.Top <= y && y <= r.Bottom
}

// Normalize returns r with left/right and top/bottom swapped as needed so
// that Left<=Right and Top<=Bottom.
func Normalize(r Rect) Rect {
	if r.Left > r.Right {
		r.Left, r.Right = r.Right, r.Left
	}
	if r.Top > r.Bottom {
		r.Top, r.Bottom = r.Bottom, r.Top
	}
	return r
}

// Corner identifies one of the four resize handles of a rectangle.
type Corner int

const (
	TopLeft Corner = iota
	TopRight
	BottomLeft
	BottomRight
)

func (c Corner) String() string {
	switch c {
	case TopLeft:
		return "topLeft"
	case TopRight:
		return "topRight"
	case BottomLeft:
		return "bottomLeft"
	case BottomRight:
		return "bottomRight"
	default:
		return "unknown"
	}
}

// Point returns the coordinates of corner c of r.
func (r Rect) Point(c Corner) (x, y float64) {
	switch c {
	case TopRight:
		return r.Right, r.Top
	case BottomLeft:
		return r.Left, r.Bottom
	case BottomRight:
		return r.Right, r.Bottom
	default:
		return r.Left, r.Top
	}
}

// cornerOrder is the precedence used when several handles overlap, which
// happens for rectangles smaller than twice the threshold.
var cornerOrder = [...]Corner{TopLeft, TopRight, BottomLeft, BottomRight}

// NearCorner returns the first corner (in TopLeft, TopRight, BottomLeft,
// BottomRight order) within threshold of (x, y) on both axes independently.
func NearCorner(r Rect, x, y, threshold float64) (Corner, bool) {
	for _, c := range cornerOrder {
		cx, cy := r.Point(c)
		if near(x, cx, threshold) && near(y, cy, threshold) {
			return c, true
		}
	}
	return 0, false
}

func near(v, target, threshold float64) bool { return math.Abs(v-target) <= threshold }

// IntersectWithFrame clamps r to [0,w]x[0,h]. ok is false when nothing of
// positive area remains.
func IntersectWithFrame(r Rect, w, h float64) (Rect, bool) {
	r = Normalize(r)
	out := Rect{
		Left:   clamp(r.Left, 0, w),
		Top:    clamp(r.Top, 0, h),
		Right:  clamp(r.Right, 0, w),
		Bottom: clamp(r.Bottom, 0, h),
	}
	if out.Empty() {
		return Rect{}, false
	}
	return out, true
}

// PixelBounds converts r to integer pixel bounds covering every pixel r
// touches (floor on the minimum edges, ceil on the maximum edges).
func PixelBounds(r Rect) image.Rectangle {
	r = Normalize(r)
	return image.Rect(
		int(math.Floor(r.Left)),
		int(math.Floor(r.Top)),
		int(math.Ceil(r.Right)),
		int(math.Ceil(r.Bottom)),
	)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
