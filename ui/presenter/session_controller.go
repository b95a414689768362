package presenter

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/soocke/sshot-go/domain/export"
	"github.com/soocke/sshot-go/domain/gesture"
	"github.com/soocke/sshot-go/domain/regions"
	"github.com/soocke/sshot-go/ui/model"
)

var (
	ErrNothingToSave      = errors.New("no rectangles to save")
	ErrSaveInFlight       = errors.New("a save is already in progress")
	ErrCaptureUnavailable = errors.New("screen capture unavailable")
)

// DefaultSettleDelay gives the window system time to remove the hidden
// chrome before the frame is grabbed.
const DefaultSettleDelay = 500 * time.Millisecond

// PreviewSource returns a small image of a written file.
type PreviewSource interface {
	Thumbnail(path string) (image.Image, error)
}

// SessionOptions tunes the controller.
type SessionOptions struct {
	SettleDelay      time.Duration
	ToolbarX         int
	ToolbarY         int
	PDFBundle        bool
	DoubleTapWindow  time.Duration
	HandleSize       float64
	ToolbarMovedHook func(x, y int) // persists the toolbar position; may be nil
}

// SessionController owns the rectangle store and drives one annotation
// session at a time: pointer input goes to the gesture machine, Save hides
// the chrome, grabs a frame after the settle delay and exports it.
//
// All methods must be called from the UI thread.
type SessionController struct {
	store    *regions.Store
	machine  *gesture.Machine
	surfaces Surfaces
	canvas   AnnotationView
	options  OptionsView
	names    NameView
	status   StatusView
	sched    Scheduler
	source   FrameSource
	exporter Exporter
	saves    SaveModel
	stats    StatsRecorder
	previews PreviewSource
	logger   *slog.Logger
	now      func() time.Time

	opts SessionOptions

	annotation Handle
	toolbar    Handle
	annotating bool // annotation surface is shown (or hidden only for a save)
	toolbarX   int
	toolbarY   int
	drag       gesture.WindowDrag
}

// SessionDeps bundles the collaborators of a SessionController.
type SessionDeps struct {
	Store    *regions.Store
	Surfaces Surfaces
	Canvas   AnnotationView
	Options  OptionsView
	Names    NameView
	Status   StatusView
	Sched    Scheduler
	Source   FrameSource
	Exporter Exporter
	Saves    SaveModel
	Stats    StatsRecorder
	Previews PreviewSource
	Logger   *slog.Logger
	Now      func() time.Time
}

func NewSessionController(d SessionDeps, opts SessionOptions) *SessionController {
	if d.Store == nil {
		d.Store = regions.NewStore()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Saves == nil {
		d.Saves = &model.SaveModel{}
	}
	if opts.SettleDelay <= 0 {
		opts.SettleDelay = DefaultSettleDelay
	}
	m := gesture.NewMachine(d.Store, gesture.Options{
		DoubleTapWindow: opts.DoubleTapWindow,
		HandleSize:      opts.HandleSize,
	}, d.Logger)
	return &SessionController{
		store:    d.Store,
		machine:  m,
		surfaces: d.Surfaces,
		canvas:   d.Canvas,
		options:  d.Options,
		names:    d.Names,
		status:   d.Status,
		sched:    d.Sched,
		source:   d.Source,
		exporter: d.Exporter,
		saves:    d.Saves,
		stats:    d.Stats,
		previews: d.Previews,
		logger:   d.Logger,
		now:      d.Now,
		opts:     opts,
		toolbarX: opts.ToolbarX,
		toolbarY: opts.ToolbarY,
	}
}

// Store exposes the owned rectangle store.
func (c *SessionController) Store() *regions.Store { return c.store }

// Machine exposes the gesture machine.
func (c *SessionController) Machine() *gesture.Machine { return c.machine }

// Annotating reports whether the annotation surface is open.
func (c *SessionController) Annotating() bool { return c.annotating }

// ShowToolbar puts the floating toolbar on screen.
func (c *SessionController) ShowToolbar() {
	if c.surfaces == nil {
		return
	}
	c.toolbar = c.surfaces.ShowSurface(c.toolbarSpec())
}

// OpenAnnotation shows the fullscreen drawing surface. It is a no-op when
// already open.
func (c *SessionController) OpenAnnotation() {
	if c.annotating || c.surfaces == nil {
		return
	}
	c.annotation = c.surfaces.ShowSurface(SurfaceSpec{Kind: SurfaceAnnotation, Fullscreen: true})
	c.annotating = true
	c.machine.Reset()
	c.render()
	c.logDebug("session.annotation_open", "regions", c.store.Len(), "next_number", c.machine.NextNumber())
}

// CloseAnnotation removes the drawing surface. Rectangles stay in the store
// and are still exported by Save.
func (c *SessionController) CloseAnnotation() {
	if !c.annotating {
		return
	}
	c.machine.Reset()
	if c.surfaces != nil && c.annotation != 0 {
		c.surfaces.RemoveSurface(c.annotation)
	}
	c.annotation = 0
	c.annotating = false
	c.logDebug("session.annotation_close", "regions", c.store.Len())
}

func (c *SessionController) PointerDown(x, y float64) { c.handle(c.machine.Down(x, y, c.now())) }
func (c *SessionController) PointerMove(x, y float64) { c.handle(c.machine.Move(x, y, c.now())) }
func (c *SessionController) PointerUp(x, y float64)   { c.handle(c.machine.Up(x, y, c.now())) }

func (c *SessionController) handle(ev gesture.Event) {
	switch e := ev.(type) {
	case gesture.ShowOptions:
		c.render()
		if c.options != nil {
			key := e.Region.Key
			c.options.ShowOptions(e.Region,
				func(n int) { c.Renumber(key, n) },
				func() { c.Delete(key) },
			)
		}
		return
	case gesture.RectangleCreated:
		c.logDebug("session.rect_created", "number", e.Region.Number, "rect", e.Region.Rect)
	case gesture.RectangleChanged:
		c.logDebug("session.rect_changed", "number", e.Region.Number, "rect", e.Region.Rect)
	}
	c.render()
}

// Renumber applies a user-entered number. Non-positive input is ignored.
func (c *SessionController) Renumber(key uint64, n int) bool {
	ok := c.machine.Renumber(key, n)
	if ok {
		c.render()
	}
	return ok
}

// Delete removes a rectangle chosen from the options menu.
func (c *SessionController) Delete(key uint64) {
	if ev, ok := c.machine.Delete(key).(gesture.RectangleDeleted); ok {
		c.logDebug("session.rect_deleted", "number", ev.Region.Number)
		c.render()
	}
}

// PromptName asks the user for a new base name.
func (c *SessionController) PromptName() {
	if c.names == nil || c.exporter == nil {
		return
	}
	c.names.PromptName(c.exporter.BaseName(), c.SetBaseName)
}

// SetBaseName changes the export filename prefix. Blank names fall back to
// the default and path separators are dropped.
func (c *SessionController) SetBaseName(name string) {
	if c.exporter == nil {
		return
	}
	c.exporter.SetBaseName(export.SanitizeBaseName(name))
	if c.logger != nil {
		c.logger.Info("session.base_name", "name", c.exporter.BaseName())
	}
}

// SetPDFBundle toggles bundling each batch's saved crops into one PDF.
func (c *SessionController) SetPDFBundle(on bool) { c.opts.PDFBundle = on }

// ToolbarDragBegin starts moving the toolbar. Coordinates are raw screen
// positions.
func (c *SessionController) ToolbarDragBegin(rawX, rawY float64) {
	c.drag.Begin(rawX, rawY, c.toolbarX, c.toolbarY)
}

func (c *SessionController) ToolbarDragMove(rawX, rawY float64) {
	x, y, ok := c.drag.Move(rawX, rawY)
	if !ok {
		return
	}
	c.toolbarX, c.toolbarY = x, y
	if c.surfaces != nil && c.toolbar != 0 {
		c.surfaces.UpdateSurfaceGeometry(c.toolbar, x, y)
	}
}

func (c *SessionController) ToolbarDragEnd() {
	if !c.drag.Active() {
		return
	}
	c.drag.End()
	if c.opts.ToolbarMovedHook != nil {
		c.opts.ToolbarMovedHook(c.toolbarX, c.toolbarY)
	}
}

// ToolbarPosition returns the current toolbar origin.
func (c *SessionController) ToolbarPosition() (x, y int) { return c.toolbarX, c.toolbarY }

// Save captures the screen and exports every rectangle. The capture runs
// after the settle delay; the returned error only covers rejection before
// anything on screen changed.
func (c *SessionController) Save() error {
	if c.store.Len() == 0 {
		c.reportError(ErrNothingToSave)
		return ErrNothingToSave
	}
	if !c.saves.TryBegin() {
		return ErrSaveInFlight
	}
	if c.source == nil || !c.source.Available() {
		c.saves.End()
		c.reportError(ErrCaptureUnavailable)
		return ErrCaptureUnavailable
	}
	c.machine.Reset()
	c.hideChrome()
	c.sched.After(c.opts.SettleDelay, c.captureAndExport)
	return nil
}

func (c *SessionController) captureAndExport() {
	defer c.saves.End()
	defer func() {
		if r := recover(); r != nil {
			if c.logger != nil {
				c.logger.Error("session.save_panic", "panic", r, "stack", string(debug.Stack()))
			}
			c.restoreChrome()
			c.reportError(fmt.Errorf("save aborted: %v", r))
		}
	}()

	frame, err := c.source.RequestFrame()
	if err != nil {
		c.restoreChrome()
		c.reportError(fmt.Errorf("%w: %w", ErrCaptureUnavailable, err))
		return
	}

	res := c.exporter.Export(frame, c.store.Snapshot())

	// Every export consumes the drawn set, failures included.
	removed := c.store.Len()
	c.store.Clear()
	c.logDebug("session.export_done", "batch_id", res.BatchID, "removed", removed)

	if c.opts.PDFBundle {
		c.bundle(res)
	}

	saved, skipped, failed := res.Counts()
	last := ""
	if s := res.Saved(); len(s) > 0 {
		last = s[len(s)-1].Filename
	}
	if c.stats != nil {
		c.stats.Record(saved, skipped, failed, res.TotalBytes(), last, c.now())
	}

	c.restoreChrome()
	c.report(res)
}

func (c *SessionController) bundle(res export.Result) {
	saved := res.Saved()
	if len(saved) == 0 {
		return
	}
	name := export.PDFName(c.exporter.BaseName(), saved[0].Number, saved[len(saved)-1].Number)
	out := filepath.Join(c.exporter.Dir(), name)
	if err := export.BundlePDF(out, c.exporter.BaseName(), saved); err != nil {
		if c.logger != nil {
			c.logger.Error("session.pdf_failed", "file", name, "error", err)
		}
		return
	}
	if c.logger != nil {
		c.logger.Info("session.pdf_saved", "file", name, "pages", len(saved))
	}
}

func (c *SessionController) report(res export.Result) {
	if c.status == nil {
		return
	}
	lines := make([]string, 0, len(res.Outcomes))
	for _, o := range res.Outcomes {
		lines = append(lines, o.String())
	}
	c.status.ShowOutcomes(lines, res.Summary())

	saved := res.Saved()
	if len(saved) == 0 || c.previews == nil {
		return
	}
	last := saved[len(saved)-1]
	thumb, err := c.previews.Thumbnail(last.Path)
	if err != nil {
		c.logDebug("session.preview_failed", "file", last.Filename, "error", err)
		return
	}
	c.status.ShowPreview(thumb, last.Filename)
}

// hideChrome takes every controller-owned surface off screen so it does not
// end up in the capture.
func (c *SessionController) hideChrome() {
	if c.surfaces == nil {
		return
	}
	if c.toolbar != 0 {
		c.surfaces.HideSurface(c.toolbar)
	}
	if c.annotating && c.annotation != 0 {
		c.surfaces.HideSurface(c.annotation)
	}
}

func (c *SessionController) restoreChrome() {
	if c.surfaces == nil {
		return
	}
	if c.annotating && c.annotation != 0 {
		c.annotation = c.surfaces.ShowSurface(SurfaceSpec{Kind: SurfaceAnnotation, Fullscreen: true})
	}
	if c.toolbar != 0 {
		c.toolbar = c.surfaces.ShowSurface(c.toolbarSpec())
	}
	c.render()
}

func (c *SessionController) toolbarSpec() SurfaceSpec {
	return SurfaceSpec{Kind: SurfaceToolbar, X: c.toolbarX, Y: c.toolbarY}
}

func (c *SessionController) render() {
	if c.canvas == nil || !c.annotating {
		return
	}
	if p, ok := c.machine.Provisional(); ok {
		c.canvas.Render(c.store.Snapshot(), &p)
		return
	}
	c.canvas.Render(c.store.Snapshot(), nil)
}

func (c *SessionController) reportError(err error) {
	if c.logger != nil {
		c.logger.Warn("session.error", "error", err)
	}
	if c.status != nil {
		c.status.ShowError(err)
	}
}

func (c *SessionController) logDebug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
