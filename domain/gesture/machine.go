package gesture

import (
	"log/slog"
	"time"

	"github.com/soocke/sshot-go/domain/geometry"
)

// Machine turns a stream of pointer down/move/up events into create, move,
// resize and delete operations on a RegionStore.
//
// It is driven synchronously from the UI thread: each call handles exactly
// one pointer event and returns at most one Event. It never blocks.
type Machine struct {
	store  RegionStore
	logger *slog.Logger

	doubleTap  time.Duration
	handleSize float64
	nextNumber int

	state State

	// Drawing
	provisional geometry.Rect

	// Dragging / Resizing
	target       uint64
	grabX, grabY float64 // Dragging: pointer offset from the target's top-left
	width        float64 // Dragging: size snapshot taken on Down
	height       float64
	corner       geometry.Corner
	anchorX      float64 // Resizing: last pointer position
	anchorY      float64
	lastX, lastY float64 // last pointer position seen by Down or Move

	lastTapKey uint64
	lastTapAt  time.Time
	hasLastTap bool
}

// NewMachine returns an idle machine bound to store.
func NewMachine(store RegionStore, opts Options, logger *slog.Logger) *Machine {
	m := &Machine{store: store, logger: logger, doubleTap: opts.DoubleTapWindow, handleSize: opts.HandleSize, nextNumber: opts.FirstNumber}
	if m.doubleTap <= 0 {
		m.doubleTap = DefaultDoubleTapWindow
	}
	if m.handleSize <= 0 {
		m.handleSize = DefaultHandleSize
	}
	if m.nextNumber <= 0 {
		m.nextNumber = 1
	}
	return m
}

// Down starts a gesture at (x, y).
func (m *Machine) Down(x, y float64, at time.Time) Event {
	if m.state != StateIdle {
		// A Down without the matching Up (lost pointer grab); finish the
		// previous gesture where the pointer was last seen.
		m.Up(m.lastX, m.lastY, at)
	}
	m.lastX, m.lastY = x, y
	hit, ok := m.store.FindTopmostAt(x, y)
	if !ok {
		m.provisional = geometry.R(x, y, x, y)
		m.transition(StateDrawing)
		return nil
	}

	if m.hasLastTap && m.lastTapKey == hit.Key && at.Sub(m.lastTapAt) < m.doubleTap {
		m.clearTap()
		if m.logger != nil {
			m.logger.Debug("gesture.double_tap", "number", hit.Number)
		}
		return ShowOptions{Region: hit}
	}
	m.lastTapKey, m.lastTapAt, m.hasLastTap = hit.Key, at, true

	m.target = hit.Key
	if c, near := geometry.NearCorner(hit.Rect, x, y, m.handleSize); near {
		m.corner = c
		m.anchorX, m.anchorY = x, y
		m.transition(StateResizing)
		return nil
	}
	m.grabX, m.grabY = x-hit.Rect.Left, y-hit.Rect.Top
	m.width, m.height = hit.Rect.Width(), hit.Rect.Height()
	m.transition(StateDragging)
	return nil
}

// Move updates the gesture in progress. It never emits an event.
func (m *Machine) Move(x, y float64, _ time.Time) Event {
	if m.state != StateIdle {
		m.lastX, m.lastY = x, y
	}
	switch m.state {
	case StateDrawing:
		m.provisional.Right, m.provisional.Bottom = x, y
	case StateDragging:
		left, top := x-m.grabX, y-m.grabY
		if !m.store.SetRect(m.target, geometry.R(left, top, left+m.width, top+m.height)) {
			m.transition(StateIdle)
		}
	case StateResizing:
		r, ok := m.store.Get(m.target)
		if !ok {
			m.transition(StateIdle)
			return nil
		}
		dx, dy := x-m.anchorX, y-m.anchorY
		rect := r.Rect
		switch m.corner {
		case geometry.TopLeft:
			rect.Left += dx
			rect.Top += dy
		case geometry.TopRight:
			rect.Right += dx
			rect.Top += dy
		case geometry.BottomLeft:
			rect.Left += dx
			rect.Bottom += dy
		case geometry.BottomRight:
			rect.Right += dx
			rect.Bottom += dy
		}
		m.store.SetRect(m.target, rect)
		m.anchorX, m.anchorY = x, y
	}
	return nil
}

// Up finishes the gesture and returns the machine to idle.
func (m *Machine) Up(x, y float64, at time.Time) Event {
	var ev Event
	switch m.state {
	case StateDrawing:
		m.Move(x, y, at)
		rect := geometry.Normalize(m.provisional)
		m.provisional = geometry.Rect{}
		if rect.Area() <= 0 {
			if m.logger != nil {
				m.logger.Debug("gesture.discard_empty", "x", x, "y", y)
			}
			break
		}
		created := m.store.Add(rect, m.nextNumber)
		m.nextNumber++
		ev = RectangleCreated{Region: created}
	case StateDragging, StateResizing:
		m.Move(x, y, at)
		if r, ok := m.store.Get(m.target); ok {
			// A handle dragged past the opposite edge leaves the rect
			// inverted; stored rects are always normalized at rest.
			if n := geometry.Normalize(r.Rect); n != r.Rect {
				m.store.SetRect(r.Key, n)
				r.Rect = n
			}
			ev = RectangleChanged{Region: r}
		}
	}
	m.target = 0
	m.transition(StateIdle)
	return ev
}

// Renumber applies a user-entered number to key. Non-positive input is
// ignored.
func (m *Machine) Renumber(key uint64, number int) bool {
	return m.store.Renumber(key, number)
}

// Delete removes key from the store. It returns nil if key is unknown.
func (m *Machine) Delete(key uint64) Event {
	r, ok := m.store.Get(key)
	if !ok || !m.store.Remove(key) {
		return nil
	}
	if m.hasLastTap && m.lastTapKey == key {
		m.clearTap()
	}
	return RectangleDeleted{Region: r}
}

// Provisional returns the rectangle being drawn, as dragged (possibly
// inverted).
func (m *Machine) Provisional() (geometry.Rect, bool) {
	if m.state != StateDrawing {
		return geometry.Rect{}, false
	}
	return m.provisional, true
}

// State returns the current gesture phase.
func (m *Machine) State() State { return m.state }

// NextNumber returns the number the next drawn rectangle will receive.
func (m *Machine) NextNumber() int { return m.nextNumber }

// SetNextNumber overrides the numbering counter. Non-positive values are
// ignored.
func (m *Machine) SetNextNumber(n int) {
	if n > 0 {
		m.nextNumber = n
	}
}

// Reset abandons any gesture in progress and forgets the last tap. The
// numbering counter is kept.
func (m *Machine) Reset() {
	m.provisional = geometry.Rect{}
	m.target = 0
	m.clearTap()
	m.transition(StateIdle)
}

func (m *Machine) clearTap() {
	m.lastTapKey, m.lastTapAt, m.hasLastTap = 0, time.Time{}, false
}

func (m *Machine) transition(next State) {
	prev := m.state
	if prev == next {
		return
	}
	m.state = next
	if m.logger != nil {
		m.logger.Debug("gesture state transition", "from", prev.String(), "to", next.String())
	}
}

// Ensure contract satisfaction
var _ MachineContract = (*Machine)(nil)
