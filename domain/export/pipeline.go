package export

import (
	"errors"
	"image"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/soocke/sshot-go/domain/geometry"
	"github.com/soocke/sshot-go/domain/regions"
)

// maxNumberProbe bounds the collision scan for one region.
const maxNumberProbe = 10000

var errNoFrame = errors.New("no frame captured")

// Renumberer receives the number actually used for a region when the
// collision scan moved it.
type Renumberer interface {
	Renumber(key uint64, number int) bool
}

// Pipeline crops one captured frame into one PNG per region.
type Pipeline struct {
	fs       Filesystem
	renumber Renumberer
	logger   *slog.Logger

	mu   sync.Mutex
	dir  string
	base string

	newBatchID func() string
	now        func() time.Time
}

// NewPipeline builds a pipeline writing "{base}_{NNN}.png" files into dir.
// renumber may be nil.
func NewPipeline(fsys Filesystem, dir, base string, renumber Renumberer, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		fs:         fsys,
		renumber:   renumber,
		logger:     logger,
		dir:        dir,
		base:       SanitizeBaseName(base),
		newBatchID: uuid.NewString,
		now:        time.Now,
	}
}

// SetBaseName changes the filename prefix used by subsequent exports.
func (p *Pipeline) SetBaseName(name string) {
	p.mu.Lock()
	p.base = SanitizeBaseName(name)
	p.mu.Unlock()
}

func (p *Pipeline) BaseName() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.base
}

func (p *Pipeline) Dir() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dir
}

// SetDir changes the output directory used by subsequent exports.
func (p *Pipeline) SetDir(dir string) {
	p.mu.Lock()
	p.dir = dir
	p.mu.Unlock()
}

// Export processes snapshot in order against frame. A failure on one region
// never stops the batch. The frame is not retained after Export returns.
func (p *Pipeline) Export(frame *image.RGBA, snapshot []regions.Region) Result {
	p.mu.Lock()
	dir, base := p.dir, p.base
	p.mu.Unlock()

	res := Result{BatchID: p.newBatchID(), Started: p.now()}
	res.Outcomes = make([]Outcome, 0, len(snapshot))
	for _, r := range snapshot {
		o := p.exportOne(frame, r, dir, base)
		o.BatchID = res.BatchID
		p.logOutcome(o)
		res.Outcomes = append(res.Outcomes, o)
	}
	res.Elapsed = p.now().Sub(res.Started)

	if p.logger != nil {
		saved, skipped, failed := res.Counts()
		p.logger.Info("export.done",
			"batch_id", res.BatchID,
			"saved", saved,
			"skipped", skipped,
			"failed", failed,
			"bytes", humanize.Bytes(uint64(res.TotalBytes())),
			"elapsed", res.Elapsed,
		)
	}
	return res
}

func (p *Pipeline) exportOne(frame *image.RGBA, r regions.Region, dir, base string) Outcome {
	o := Outcome{Key: r.Key, Number: r.Number}
	if frame == nil {
		return failed(o, errNoFrame)
	}

	fb := frame.Bounds()
	clipped, ok := geometry.IntersectWithFrame(r.Rect, float64(fb.Dx()), float64(fb.Dy()))
	if !ok {
		o.Status = StatusSkipped
		o.Err = ErrOutOfFrame
		o.Reason = ErrOutOfFrame.Error()
		return o
	}
	o.Bounds = geometry.PixelBounds(clipped)
	crop := imaging.Crop(frame, o.Bounds.Add(fb.Min))

	number := r.Number
	if number <= 0 {
		number = 1
	}
	for probe := 0; probe < maxNumberProbe; probe, number = probe+1, number+1 {
		name := FileName(base, number)
		path := filepath.Join(dir, name)
		if p.fs.Exists(path) {
			continue
		}
		n, err := p.fs.WriteImage(path, crop)
		if errors.Is(err, fs.ErrExist) {
			// Created between Exists and the write.
			continue
		}
		o.Filename, o.Path = name, path
		if err != nil {
			// Nothing was written under the scanned number, so the
			// report keeps the region's own number.
			return failed(o, err)
		}
		o.Number = number
		o.Status = StatusSaved
		o.Bytes = n
		if number != r.Number && p.renumber != nil {
			p.renumber.Renumber(r.Key, number)
		}
		return o
	}
	return failed(o, errors.New("no free file name"))
}

func failed(o Outcome, err error) Outcome {
	o.Status = StatusFailed
	o.Err = err
	o.Reason = err.Error()
	return o
}

func (p *Pipeline) logOutcome(o Outcome) {
	if p.logger == nil {
		return
	}
	switch o.Status {
	case StatusSaved:
		p.logger.Info("export.saved", "file", o.Filename, "number", o.Number, "bytes", humanize.Bytes(uint64(o.Bytes)))
	case StatusSkipped:
		p.logger.Warn("export.skipped", "number", o.Number, "reason", o.Reason)
	case StatusFailed:
		p.logger.Error("export.failed", "number", o.Number, "file", o.Filename, "error", o.Err)
	}
}
