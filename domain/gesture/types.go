package gesture

import (
	"time"

	"github.com/soocke/sshot-go/domain/geometry"
	"github.com/soocke/sshot-go/domain/regions"
)

// State enumerates the phases of a pointer gesture.
type State int

const (
	StateIdle State = iota
	StateDrawing
	StateDragging
	StateResizing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDrawing:
		return "drawing"
	case StateDragging:
		return "dragging"
	case StateResizing:
		return "resizing"
	default:
		return "unknown"
	}
}

const (
	// DefaultDoubleTapWindow is the maximum gap between two taps on the same
	// rectangle for them to count as a double tap.
	DefaultDoubleTapWindow = 300 * time.Millisecond
	// DefaultHandleSize is the per-axis reach of a corner handle.
	DefaultHandleSize = 30.0
)

// Event is emitted by the Machine in response to pointer input. It is a closed
// set: RectangleCreated, RectangleChanged, RectangleDeleted, ShowOptions.
type Event interface{ isEvent() }

// RectangleCreated reports a finished drawing gesture that was added to the
// store.
type RectangleCreated struct{ Region regions.Region }

// RectangleChanged reports that a drag or resize gesture finished.
type RectangleChanged struct{ Region regions.Region }

// RectangleDeleted reports a region removed through the options menu.
type RectangleDeleted struct{ Region regions.Region }

// ShowOptions asks the owner to present Renumber/Delete for Region.
type ShowOptions struct{ Region regions.Region }

func (RectangleCreated) isEvent() {}
func (RectangleChanged) isEvent() {}
func (RectangleDeleted) isEvent() {}
func (ShowOptions) isEvent()      {}

// RegionStore is the subset of regions.Store the machine mutates.
type RegionStore interface {
	Add(rect geometry.Rect, number int) regions.Region
	Remove(key uint64) bool
	Get(key uint64) (regions.Region, bool)
	SetRect(key uint64, rect geometry.Rect) bool
	Renumber(key uint64, number int) bool
	FindTopmostAt(x, y float64) (regions.Region, bool)
}

// Options tunes hit-testing. Zero fields fall back to the defaults.
type Options struct {
	DoubleTapWindow time.Duration
	HandleSize      float64
	FirstNumber     int
}

// MachineContract is the surface consumed by presenters.
type MachineContract interface {
	Down(x, y float64, at time.Time) Event
	Move(x, y float64, at time.Time) Event
	Up(x, y float64, at time.Time) Event
	Renumber(key uint64, number int) bool
	Delete(key uint64) Event
	Provisional() (geometry.Rect, bool)
	State() State
	Reset()
	NextNumber() int
}
