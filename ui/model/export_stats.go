package model

import (
	"sync"
	"time"
)

// ExportTotals is a point-in-time copy of ExportStats.
type ExportTotals struct {
	Batches  int
	Saved    int
	Skipped  int
	Failed   int
	Bytes    int64
	LastAt   time.Time
	LastFile string
}

// ExportStats accumulates export results for the lifetime of the process.
// The zero value is ready to use.
type ExportStats struct {
	mu     sync.Mutex
	totals ExportTotals
}

// NewExportStats returns a pointer to a ready-to-use ExportStats.
func NewExportStats() *ExportStats { return &ExportStats{} }

// Record adds one finished batch. lastFile is the most recent saved file
// name, or empty when the batch saved nothing.
func (m *ExportStats) Record(saved, skipped, failed int, bytes int64, lastFile string, at time.Time) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totals.Batches++
	m.totals.Saved += saved
	m.totals.Skipped += skipped
	m.totals.Failed += failed
	m.totals.Bytes += bytes
	m.totals.LastAt = at
	if lastFile != "" {
		m.totals.LastFile = lastFile
	}
}

// Values returns the accumulated totals.
func (m *ExportStats) Values() ExportTotals {
	if m == nil {
		return ExportTotals{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.totals
}
