package export

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/dustin/go-humanize"
)

// ErrOutOfFrame marks a region that does not overlap the captured frame.
var ErrOutOfFrame = errors.New("out of frame")

// Status is the terminal state of one region in an export batch.
type Status int

const (
	StatusSaved Status = iota
	StatusSkipped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSaved:
		return "saved"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome reports what happened to one region.
type Outcome struct {
	Key      uint64
	Number   int // number written for saved outcomes, the region's own number otherwise
	Filename string
	Path     string
	Status   Status
	Reason   string
	Err      error
	Bytes    int64
	Bounds   image.Rectangle // pixel bounds cropped from the frame
	BatchID  string
}

func (o Outcome) String() string {
	switch o.Status {
	case StatusSaved:
		return fmt.Sprintf("Saved: %s (%s)", o.Filename, humanize.Bytes(uint64(o.Bytes)))
	case StatusSkipped:
		return fmt.Sprintf("Skipped #%d: %s", o.Number, o.Reason)
	default:
		return fmt.Sprintf("Failed #%d: %s", o.Number, o.Reason)
	}
}

// Result is the outcome list of one export pass, in snapshot order.
type Result struct {
	BatchID  string
	Outcomes []Outcome
	Started  time.Time
	Elapsed  time.Duration
}

// Counts tallies outcomes by status.
func (r Result) Counts() (saved, skipped, failed int) {
	for _, o := range r.Outcomes {
		switch o.Status {
		case StatusSaved:
			saved++
		case StatusSkipped:
			skipped++
		case StatusFailed:
			failed++
		}
	}
	return
}

// Saved returns the saved outcomes in order.
func (r Result) Saved() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Status == StatusSaved {
			out = append(out, o)
		}
	}
	return out
}

// TotalBytes sums the bytes written for the batch.
func (r Result) TotalBytes() int64 {
	var n int64
	for _, o := range r.Outcomes {
		n += o.Bytes
	}
	return n
}

// Summary is a one-line human readable report.
func (r Result) Summary() string {
	saved, skipped, failed := r.Counts()
	return fmt.Sprintf("%d saved (%s), %d skipped, %d failed",
		saved, humanize.Bytes(uint64(r.TotalBytes())), skipped, failed)
}
