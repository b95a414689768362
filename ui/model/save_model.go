package model

import (
	"sync/atomic"
)

// SaveModel guards the single in-flight save. The zero value is idle and
// usable. Concurrency-safe because the settle-delay continuation ends a save
// from a different callback than the one that began it.
type SaveModel struct{ inFlight atomic.Bool }

// TryBegin marks a save as started. It reports false when one is already
// running.
func (m *SaveModel) TryBegin() bool {
	if m == nil {
		return false
	}
	return m.inFlight.CompareAndSwap(false, true)
}

// End marks the running save as finished.
func (m *SaveModel) End() {
	if m == nil {
		return
	}
	m.inFlight.Store(false)
}

// InFlight reports whether a save is running.
func (m *SaveModel) InFlight() bool {
	if m == nil {
		return false
	}
	return m.inFlight.Load()
}
