package regions

import (
	"sync"

	"github.com/soocke/sshot-go/domain/geometry"
)

// Region is a numbered rectangle held by a Store. Key is the store-assigned
// identity; Number is the user-visible ordinal baked into labels and export
// filenames and is not guaranteed unique.
type Region struct {
	Key    uint64
	Number int
	Rect   geometry.Rect
}

// Store is an ordered collection of regions. Insertion order is creation
// order and decides both hit-test priority (most recent wins) and export
// order. The zero value is ready to use.
//
// The gesture machine and the session controller share one Store; reads from
// an export are taken through Snapshot so they never alias live regions.
type Store struct {
	mu      sync.RWMutex
	items   []*Region
	nextKey uint64
}

// NewStore returns an empty store.
func NewStore() *Store { return &Store{} }

// Add appends a rectangle with the caller-supplied display number and returns
// the stored copy (with its assigned key).
func (s *Store) Add(rect geometry.Rect, number int) Region {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextKey++
	r := &Region{Key: s.nextKey, Number: number, Rect: rect}
	s.items = append(s.items, r)
	return *r
}

// Remove deletes the region with the given key. It reports whether a region
// was removed.
func (s *Store) Remove(key uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.items {
		if r.Key == key {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveKeys deletes every region whose key is listed and returns how many
// were removed. Unknown keys are ignored.
func (s *Store) RemoveKeys(keys []uint64) int {
	if len(keys) == 0 {
		return 0
	}
	drop := make(map[uint64]struct{}, len(keys))
	for _, k := range keys {
		drop[k] = struct{}{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.items[:0]
	removed := 0
	for _, r := range s.items {
		if _, ok := drop[r.Key]; ok {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	for i := len(kept); i < len(s.items); i++ {
		s.items[i] = nil
	}
	s.items = kept
	return removed
}

// Clear drops every region.
func (s *Store) Clear() {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()
}

// FindTopmostAt scans in reverse insertion order and returns the first region
// containing (x, y).
func (s *Store) FindTopmostAt(x, y float64) (Region, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := len(s.items) - 1; i >= 0; i-- {
		if s.items[i].Rect.Contains(x, y) {
			return *s.items[i], true
		}
	}
	return Region{}, false
}

// Renumber sets the display number of key. Non-positive numbers are ignored
// and duplicates are allowed. It reports whether the region was updated.
func (s *Store) Renumber(key uint64, number int) bool {
	if number <= 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if r := s.find(key); r != nil {
		r.Number = number
		return true
	}
	return false
}

// SetRect replaces the geometry of key. The rectangle is stored as given.
func (s *Store) SetRect(key uint64, rect geometry.Rect) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r := s.find(key); r != nil {
		r.Rect = rect
		return true
	}
	return false
}

// Get returns a copy of the region with the given key.
func (s *Store) Get(key uint64) (Region, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r := s.find(key); r != nil {
		return *r, true
	}
	return Region{}, false
}

// Len returns the number of live regions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Snapshot returns a point-in-time copy of all regions in insertion order.
func (s *Store) Snapshot() []Region {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Region, len(s.items))
	for i, r := range s.items {
		out[i] = *r
	}
	return out
}

func (s *Store) find(key uint64) *Region {
	for _, r := range s.items {
		if r.Key == key {
			return r
		}
	}
	return nil
}
