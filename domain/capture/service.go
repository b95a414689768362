package capture

import (
	"image"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
)

// Stats summarises frame requests for instrumentation.
type Stats struct {
	Captures    uint64
	Failures    uint64
	AvgCapture  time.Duration
	LastCapture time.Time
	LastSize    image.Point
}

// Service wraps a Source with timing and failure accounting. It is safe for
// concurrent use.
type Service struct {
	src    Source
	name   string
	logger *slog.Logger

	captures     atomic.Uint64
	failures     atomic.Uint64
	captureNanos atomic.Uint64
	last         atomic.Pointer[frameInfo]
}

type frameInfo struct {
	at   time.Time
	size image.Point
}

// NewService wraps src. name identifies the backend in log records.
func NewService(src Source, name string, logger *slog.Logger) *Service {
	return &Service{src: src, name: name, logger: logger}
}

// NewServiceFor builds the named backend and wraps it.
func NewServiceFor(backend string, logger *slog.Logger) (*Service, error) {
	src, err := NewSource(backend)
	if err != nil {
		return nil, err
	}
	if backend == "" {
		backend = BackendScreenshot
	}
	return NewService(src, backend, logger), nil
}

// Name returns the backend name.
func (s *Service) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

func (s *Service) Available() bool {
	if s == nil || s.src == nil {
		return false
	}
	return s.src.Available()
}

// RequestFrame captures one frame and records its timing.
func (s *Service) RequestFrame() (*image.RGBA, error) {
	if s == nil || s.src == nil {
		return nil, ErrUnavailable
	}
	start := time.Now()
	img, err := s.src.RequestFrame()
	if err == nil && img == nil {
		err = ErrUnavailable
	}
	if err != nil {
		s.failures.Add(1)
		if s.logger != nil {
			s.logger.Error("capture.failed", "backend", s.name, "error", err)
		}
		return nil, err
	}
	elapsed := time.Since(start)
	s.captureNanos.Add(uint64(elapsed.Nanoseconds()))
	s.captures.Add(1)
	size := img.Bounds().Size()
	s.last.Store(&frameInfo{at: time.Now(), size: size})
	s.logStats(elapsed, size)
	return img, nil
}

func (s *Service) Stats() Stats {
	captures := s.captures.Load()
	var avg time.Duration
	if total := s.captureNanos.Load(); captures > 0 && total > 0 {
		avg = time.Duration(total / captures)
	}
	st := Stats{Captures: captures, Failures: s.failures.Load(), AvgCapture: avg}
	if fi := s.last.Load(); fi != nil {
		st.LastCapture, st.LastSize = fi.at, fi.size
	}
	return st
}

func (s *Service) logStats(elapsed time.Duration, size image.Point) {
	if s.logger == nil {
		return
	}
	stats := s.Stats()
	s.logger.Debug("capture.stats",
		"backend", s.name,
		"width", size.X,
		"height", size.Y,
		"frame_bytes", humanize.Bytes(uint64(size.X*size.Y*4)),
		"elapsed", elapsed,
		"captures", stats.Captures,
		"failures", stats.Failures,
		"avg_capture", stats.AvgCapture,
	)
}

var _ Source = (*Service)(nil)
