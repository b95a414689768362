package presenter

import (
	"errors"
	"image"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/soocke/sshot-go/domain/export"
	"github.com/soocke/sshot-go/domain/geometry"
	"github.com/soocke/sshot-go/domain/regions"
	"github.com/soocke/sshot-go/ui/model"
)

type fakeSurfaces struct {
	next    Handle
	byKind  map[SurfaceKind]Handle
	specs   map[Handle]SurfaceSpec
	visible map[Handle]bool
	moves   [][2]int
}

func newFakeSurfaces() *fakeSurfaces {
	return &fakeSurfaces{byKind: map[SurfaceKind]Handle{}, specs: map[Handle]SurfaceSpec{}, visible: map[Handle]bool{}}
}

func (f *fakeSurfaces) ShowSurface(spec SurfaceSpec) Handle {
	h, ok := f.byKind[spec.Kind]
	if !ok {
		f.next++
		h = f.next
		f.byKind[spec.Kind] = h
	}
	f.specs[h] = spec
	f.visible[h] = true
	return h
}

func (f *fakeSurfaces) HideSurface(h Handle) { f.visible[h] = false }

func (f *fakeSurfaces) UpdateSurfaceGeometry(h Handle, x, y int) {
	f.moves = append(f.moves, [2]int{x, y})
}

func (f *fakeSurfaces) RemoveSurface(h Handle) {
	delete(f.byKind, f.specs[h].Kind)
	delete(f.specs, h)
	delete(f.visible, h)
}

func (f *fakeSurfaces) kindVisible(k SurfaceKind) bool {
	h, ok := f.byKind[k]
	return ok && f.visible[h]
}

type fakeCanvas struct {
	renders     int
	last        []regions.Region
	provisional *geometry.Rect
}

func (c *fakeCanvas) Render(rs []regions.Region, p *geometry.Rect) {
	c.renders++
	c.last = rs
	c.provisional = p
}

type fakeOptions struct {
	shown    []regions.Region
	renumber func(int)
	del      func()
}

func (o *fakeOptions) ShowOptions(r regions.Region, onRenumber func(int), onDelete func()) {
	o.shown = append(o.shown, r)
	o.renumber, o.del = onRenumber, onDelete
}

type fakeNames struct{ current string }

func (n *fakeNames) PromptName(current string, onSubmit func(string)) {
	n.current = current
	onSubmit("  invoice  ")
}

type fakeStatus struct {
	lines   []string
	summary string
	errs    []error
	preview string
}

func (s *fakeStatus) ShowOutcomes(lines []string, summary string) { s.lines, s.summary = lines, summary }
func (s *fakeStatus) ShowError(err error)                         { s.errs = append(s.errs, err) }
func (s *fakeStatus) ShowPreview(img image.Image, caption string) { s.preview = caption }

type fakeScheduler struct {
	delays []time.Duration
	queue  []func()
}

func (s *fakeScheduler) After(d time.Duration, fn func()) {
	s.delays = append(s.delays, d)
	s.queue = append(s.queue, fn)
}

func (s *fakeScheduler) runAll() {
	for len(s.queue) > 0 {
		fn := s.queue[0]
		s.queue = s.queue[1:]
		fn()
	}
}

type fakeSource struct {
	available bool
	err       error
	requests  int
}

func (f *fakeSource) Available() bool { return f.available }

func (f *fakeSource) RequestFrame() (*image.RGBA, error) {
	f.requests++
	if f.err != nil {
		return nil, f.err
	}
	return image.NewRGBA(image.Rect(0, 0, 320, 200)), nil
}

type fakePreviews struct{}

func (fakePreviews) Thumbnail(path string) (image.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, 4, 4)), nil
}

type harness struct {
	c        *SessionController
	surfaces *fakeSurfaces
	canvas   *fakeCanvas
	options  *fakeOptions
	status   *fakeStatus
	sched    *fakeScheduler
	source   *fakeSource
	fs       *export.MemFilesystem
	saves    *model.SaveModel
	stats    *model.ExportStats
	clock    time.Time
}

func newHarness() *harness {
	h := &harness{
		surfaces: newFakeSurfaces(),
		canvas:   &fakeCanvas{},
		options:  &fakeOptions{},
		status:   &fakeStatus{},
		sched:    &fakeScheduler{},
		source:   &fakeSource{available: true},
		fs:       export.NewMemFilesystem(),
		saves:    &model.SaveModel{},
		stats:    model.NewExportStats(),
		clock:    time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := regions.NewStore()
	h.c = NewSessionController(SessionDeps{
		Store:    store,
		Surfaces: h.surfaces,
		Canvas:   h.canvas,
		Options:  h.options,
		Names:    &fakeNames{},
		Status:   h.status,
		Sched:    h.sched,
		Source:   h.source,
		Exporter: export.NewPipeline(h.fs, "out", "", store, logger),
		Saves:    h.saves,
		Stats:    h.stats,
		Previews: fakePreviews{},
		Logger:   logger,
		Now:      func() time.Time { return h.clock },
	}, SessionOptions{ToolbarX: 100, ToolbarY: 100})
	return h
}

func (h *harness) advance(d time.Duration) { h.clock = h.clock.Add(d) }

func (h *harness) draw(x1, y1, x2, y2 float64) {
	h.c.PointerDown(x1, y1)
	h.c.PointerMove((x1+x2)/2, (y1+y2)/2)
	h.c.PointerUp(x2, y2)
	h.advance(time.Second)
}

func TestSessionController_SaveWithoutRectangles(t *testing.T) {
	h := newHarness()
	if err := h.c.Save(); !errors.Is(err, ErrNothingToSave) {
		t.Fatalf("expected ErrNothingToSave, got %v", err)
	}
	if len(h.status.errs) != 1 || len(h.sched.queue) != 0 {
		t.Fatalf("expected one reported error and nothing scheduled")
	}
}

func TestSessionController_CaptureUnavailableTouchesNothing(t *testing.T) {
	h := newHarness()
	h.c.ShowToolbar()
	h.c.OpenAnnotation()
	h.draw(10, 10, 60, 60)
	h.source.available = false

	if err := h.c.Save(); !errors.Is(err, ErrCaptureUnavailable) {
		t.Fatalf("expected ErrCaptureUnavailable, got %v", err)
	}
	if !h.surfaces.kindVisible(SurfaceToolbar) || !h.surfaces.kindVisible(SurfaceAnnotation) {
		t.Fatalf("chrome must stay visible when capture is unavailable")
	}
	if h.c.Store().Len() != 1 || h.saves.InFlight() || len(h.fs.Paths()) != 0 {
		t.Fatalf("store, save state or files changed")
	}
	// Retry once capture is back.
	h.source.available = true
	if err := h.c.Save(); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
}

func TestSessionController_SaveFlow(t *testing.T) {
	h := newHarness()
	h.c.ShowToolbar()
	h.c.OpenAnnotation()
	h.draw(10, 10, 60, 60)
	h.draw(100, 100, 150, 180)
	h.draw(1000, 1000, 1100, 1100) // outside the 320x200 frame

	if err := h.c.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	if h.surfaces.kindVisible(SurfaceToolbar) || h.surfaces.kindVisible(SurfaceAnnotation) {
		t.Fatalf("chrome should be hidden while capturing")
	}
	if len(h.sched.delays) != 1 || h.sched.delays[0] != DefaultSettleDelay {
		t.Fatalf("expected one capture after %v, got %v", DefaultSettleDelay, h.sched.delays)
	}
	if err := h.c.Save(); !errors.Is(err, ErrSaveInFlight) {
		t.Fatalf("second save should be rejected, got %v", err)
	}
	if h.source.requests != 0 {
		t.Fatalf("frame requested before the settle delay")
	}

	h.sched.runAll()

	if h.source.requests != 1 {
		t.Fatalf("expected one frame request, got %d", h.source.requests)
	}
	want := []string{filepath.Join("out", "screenshot_001.png"), filepath.Join("out", "screenshot_002.png")}
	got := h.fs.Paths()
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("unexpected files %v", got)
	}
	if h.c.Store().Len() != 0 {
		t.Fatalf("store should be cleared after export, %d left", h.c.Store().Len())
	}
	if !h.surfaces.kindVisible(SurfaceToolbar) || !h.surfaces.kindVisible(SurfaceAnnotation) {
		t.Fatalf("chrome should be restored after export")
	}
	if h.saves.InFlight() {
		t.Fatalf("save should be finished")
	}
	if len(h.status.lines) != 3 || !strings.HasPrefix(h.status.lines[0], "Saved: screenshot_001.png") ||
		h.status.lines[2] != "Skipped #3: out of frame" {
		t.Fatalf("unexpected report %v", h.status.lines)
	}
	if h.status.preview != "screenshot_002.png" {
		t.Fatalf("preview should show the last saved file, got %q", h.status.preview)
	}
	if v := h.stats.Values(); v.Saved != 2 || v.Skipped != 1 || v.Batches != 1 {
		t.Fatalf("stats not recorded: %+v", v)
	}
	if h.c.Machine().NextNumber() != 4 {
		t.Fatalf("numbering should continue after save, got %d", h.c.Machine().NextNumber())
	}
}

func TestSessionController_FailedWriteStillClearsStore(t *testing.T) {
	h := newHarness()
	h.c.ShowToolbar()
	h.c.OpenAnnotation()
	h.draw(10, 10, 60, 60)
	h.draw(100, 100, 150, 180)
	h.fs.FailOn(filepath.Join("out", "screenshot_002.png"), errors.New("disk full"))

	if err := h.c.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	h.sched.runAll()

	if len(h.status.lines) != 2 || h.status.lines[1] != "Failed #2: disk full" {
		t.Fatalf("unexpected report %v", h.status.lines)
	}
	if n := h.c.Store().Len(); n != 0 {
		t.Fatalf("store should be empty after a batch with a failure, %d left", n)
	}
	if h.canvas.last == nil || len(h.canvas.last) != 0 {
		t.Fatalf("overlay should be redrawn empty, got %v", h.canvas.last)
	}
	if v := h.stats.Values(); v.Saved != 1 || v.Failed != 1 {
		t.Fatalf("stats not recorded: %+v", v)
	}
}

func TestSessionController_FrameErrorRestoresChrome(t *testing.T) {
	h := newHarness()
	h.c.ShowToolbar()
	h.c.OpenAnnotation()
	h.draw(10, 10, 60, 60)
	h.source.err = errors.New("permission revoked")

	if err := h.c.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	h.sched.runAll()

	if !h.surfaces.kindVisible(SurfaceToolbar) || !h.surfaces.kindVisible(SurfaceAnnotation) {
		t.Fatalf("chrome should be restored after a frame error")
	}
	if len(h.status.errs) != 1 || !errors.Is(h.status.errs[0], ErrCaptureUnavailable) {
		t.Fatalf("expected capture error to be reported, got %v", h.status.errs)
	}
	if h.c.Store().Len() != 1 || h.saves.InFlight() {
		t.Fatalf("store should be untouched and save finished")
	}
}

func TestSessionController_SaveAfterDoneKeepsAnnotationClosed(t *testing.T) {
	h := newHarness()
	h.c.ShowToolbar()
	h.c.OpenAnnotation()
	h.draw(10, 10, 60, 60)
	h.c.CloseAnnotation()
	if h.c.Annotating() || h.surfaces.kindVisible(SurfaceAnnotation) {
		t.Fatalf("annotation surface should be gone after done")
	}
	if err := h.c.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	h.sched.runAll()
	if h.surfaces.kindVisible(SurfaceAnnotation) {
		t.Fatalf("save must not reopen a closed annotation surface")
	}
	if len(h.fs.Paths()) != 1 {
		t.Fatalf("expected one file, got %v", h.fs.Paths())
	}
}

func TestSessionController_DoubleTapOptions(t *testing.T) {
	h := newHarness()
	h.c.OpenAnnotation()
	h.draw(10, 10, 110, 60)

	h.c.PointerDown(60, 35)
	h.c.PointerUp(60, 35)
	h.advance(100 * time.Millisecond)
	h.c.PointerDown(60, 35)
	h.c.PointerUp(60, 35)

	if len(h.options.shown) != 1 || h.options.shown[0].Number != 1 {
		t.Fatalf("expected options for rectangle 1, got %+v", h.options.shown)
	}
	h.options.renumber(0)
	h.options.renumber(-5)
	snap := h.c.Store().Snapshot()
	if snap[0].Number != 1 {
		t.Fatalf("non-positive renumber applied: %d", snap[0].Number)
	}
	h.options.renumber(5)
	if snap = h.c.Store().Snapshot(); snap[0].Number != 5 {
		t.Fatalf("renumber to 5 not applied: %d", snap[0].Number)
	}
	if h.canvas.last[0].Number != 5 {
		t.Fatalf("canvas not redrawn after renumber")
	}
	h.options.del()
	if h.c.Store().Len() != 0 || len(h.canvas.last) != 0 {
		t.Fatalf("delete did not remove rectangle")
	}
}

func TestSessionController_ProvisionalIsRendered(t *testing.T) {
	h := newHarness()
	h.c.OpenAnnotation()
	h.c.PointerDown(50, 50)
	h.c.PointerMove(20, 30)
	if h.canvas.provisional == nil || *h.canvas.provisional != geometry.R(50, 50, 20, 30) {
		t.Fatalf("provisional rect not rendered: %v", h.canvas.provisional)
	}
	h.c.PointerUp(20, 30)
	if h.canvas.provisional != nil || len(h.canvas.last) != 1 {
		t.Fatalf("expected final render without provisional")
	}
}

func TestSessionController_BaseName(t *testing.T) {
	h := newHarness()
	h.c.SetBaseName("   ")
	if got := h.c.exporter.BaseName(); got != export.DefaultBaseName {
		t.Fatalf("blank name should fall back, got %q", got)
	}
	h.c.SetBaseName("a/b")
	if got := h.c.exporter.BaseName(); got != "ab" {
		t.Fatalf("separators should be stripped, got %q", got)
	}
	h.c.PromptName()
	if got := h.c.exporter.BaseName(); got != "invoice" {
		t.Fatalf("prompted name not applied, got %q", got)
	}
}

func TestSessionController_ToolbarDrag(t *testing.T) {
	h := newHarness()
	var persisted [2]int
	h.c.opts.ToolbarMovedHook = func(x, y int) { persisted = [2]int{x, y} }
	h.c.ShowToolbar()

	h.c.ToolbarDragMove(900, 900) // no drag in progress
	if len(h.surfaces.moves) != 0 {
		t.Fatalf("move without begin should be ignored")
	}
	h.c.ToolbarDragBegin(500, 500)
	h.c.ToolbarDragMove(520, 490)
	h.c.ToolbarDragMove(540, 530)
	h.c.ToolbarDragEnd()

	if last := h.surfaces.moves[len(h.surfaces.moves)-1]; last != [2]int{140, 130} {
		t.Fatalf("toolbar at %v, want [140 130]", last)
	}
	if persisted != [2]int{140, 130} {
		t.Fatalf("position not persisted: %v", persisted)
	}
	// The restored toolbar after a save uses the dragged position.
	h.c.OpenAnnotation()
	h.draw(10, 10, 60, 60)
	_ = h.c.Save()
	h.sched.runAll()
	tb := h.surfaces.specs[h.surfaces.byKind[SurfaceToolbar]]
	if tb.X != 140 || tb.Y != 130 {
		t.Fatalf("toolbar restored at %d,%d", tb.X, tb.Y)
	}
}

func TestStatusPresenter_PushesChanges(t *testing.T) {
	stats := model.NewExportStats()
	probe := &fakeSource{available: true}
	view := &fakeIndicator{}
	p := NewStatusPresenter(stats, probe, view)
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	p.Tick(now)
	if view.readyCalls != 1 || !view.ready || view.totals != "No exports yet" {
		t.Fatalf("unexpected first tick %+v", view)
	}
	p.Tick(now.Add(time.Second))
	if view.readyCalls != 1 || view.totalsCalls != 1 {
		t.Fatalf("unchanged values should not be pushed again: %+v", view)
	}
	probe.available = false
	stats.Record(2, 0, 0, 3000, "shot_002.png", now)
	p.Tick(now.Add(3 * time.Second))
	if view.ready || view.readyCalls != 2 {
		t.Fatalf("readiness change not pushed: %+v", view)
	}
	if !strings.HasPrefix(view.totals, "2 saved, 3.0 kB | last shot_002.png") {
		t.Fatalf("unexpected totals %q", view.totals)
	}
}

type fakeIndicator struct {
	ready       bool
	readyCalls  int
	totals      string
	totalsCalls int
}

func (f *fakeIndicator) SetCaptureReady(b bool) { f.ready = b; f.readyCalls++ }
func (f *fakeIndicator) SetTotals(s string)     { f.totals = s; f.totalsCalls++ }
