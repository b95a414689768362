package presenter

import (
	"image"
	"time"

	"github.com/soocke/sshot-go/domain/export"
	"github.com/soocke/sshot-go/domain/geometry"
	"github.com/soocke/sshot-go/domain/regions"
)

// SurfaceKind identifies one of the floating windows the controller manages.
type SurfaceKind int

const (
	SurfaceAnnotation SurfaceKind = iota // fullscreen transparent drawing layer
	SurfaceToolbar                       // small draggable button bar
)

func (k SurfaceKind) String() string {
	switch k {
	case SurfaceAnnotation:
		return "annotation"
	case SurfaceToolbar:
		return "toolbar"
	default:
		return "unknown"
	}
}

// SurfaceSpec describes a floating window. Fullscreen surfaces ignore X/Y.
type SurfaceSpec struct {
	Kind       SurfaceKind
	X, Y       int
	Fullscreen bool
}

// Handle refers to a surface created by Surfaces. Zero is never a valid
// handle.
type Handle int

// Surfaces creates and positions always-on-top windows. Showing a spec whose
// kind already exists re-shows that surface and returns its handle.
type Surfaces interface {
	ShowSurface(spec SurfaceSpec) Handle
	HideSurface(h Handle)
	UpdateSurfaceGeometry(h Handle, x, y int)
	RemoveSurface(h Handle)
}

// AnnotationView draws the current rectangles. provisional is nil unless a
// rectangle is being drawn.
type AnnotationView interface {
	Render(rs []regions.Region, provisional *geometry.Rect)
}

// OptionsView presents the Renumber/Delete choice for a double-tapped
// rectangle.
type OptionsView interface {
	ShowOptions(r regions.Region, onRenumber func(n int), onDelete func())
}

// NameView prompts for the export base name.
type NameView interface {
	PromptName(current string, onSubmit func(name string))
}

// StatusView reports export outcomes and errors to the user.
type StatusView interface {
	ShowOutcomes(lines []string, summary string)
	ShowError(err error)
	ShowPreview(img image.Image, caption string)
}

// Scheduler runs fn on the UI thread after d.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// FrameSource acquires one full screen frame.
type FrameSource interface {
	Available() bool
	RequestFrame() (*image.RGBA, error)
}

// Exporter turns a frame plus a region snapshot into files.
type Exporter interface {
	Export(frame *image.RGBA, snapshot []regions.Region) export.Result
	SetBaseName(name string)
	BaseName() string
	Dir() string
}

// SaveModel guards the single in-flight save.
type SaveModel interface {
	TryBegin() bool
	End()
	InFlight() bool
}

// StatsRecorder accumulates batch totals.
type StatsRecorder interface {
	Record(saved, skipped, failed int, bytes int64, lastFile string, at time.Time)
}
