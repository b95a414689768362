package app

import (
	"fmt"
	"log/slog"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/sshot-go/config"
	"github.com/soocke/sshot-go/ui/presenter"
	"github.com/soocke/sshot-go/ui/theme"
	"github.com/soocke/sshot-go/ui/view"
)

const (
	tick = 250 * time.Millisecond
)

type app struct {
	c       *AppContainer
	logger  *slog.Logger
	afterID string

	editable    bool
	editableSet bool
}

func NewApp(title string, width, height int, cfg *config.Config, cfgPath string, logger *slog.Logger) *app {
	a := &app{logger: logger}
	theme.InitStyles(cfg.DarkMode)
	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", width, height))
	a.c = BuildContainer(cfg, cfgPath, logger)
	return a
}

func (a *app) Start() {
	s := a.c.Session
	a.c.Surfaces.SetHandlers(
		view.PointerHandlers{
			Down:   s.PointerDown,
			Move:   s.PointerMove,
			Up:     s.PointerUp,
			Escape: s.CloseAnnotation,
		},
		view.ToolbarHandlers{
			Crop:      s.OpenAnnotation,
			Save:      a.save,
			Name:      s.PromptName,
			Done:      s.CloseAnnotation,
			Close:     a.exitHandler,
			DragBegin: s.ToolbarDragBegin,
			DragMove:  s.ToolbarDragMove,
			DragEnd:   s.ToolbarDragEnd,
		},
	)
	a.c.RootView.Build(view.RootHandlers{
		Annotate: s.OpenAnnotation,
		Save:     a.save,
		Name:     s.PromptName,
		Exit:     a.exitHandler,
		Applied:  a.applyConfig,
	})
	s.ShowToolbar()

	a.c.Loop = presenter.NewLoop(a.c.Status, a.scheduleUpdate)
	a.c.Loop.Tick()

	a.logger.Info("app started", "output_dir", a.c.Pipeline.Dir(), "base_name", a.c.Pipeline.BaseName(), "backend", a.c.Capture.Name())
	App.Wait()
}

// save starts a save; rejections are already reported to the status view.
func (a *app) save() {
	if err := a.c.Session.Save(); err != nil {
		a.logger.Debug("save rejected", "error", err)
	}
}

// applyConfig pushes settings that can change at runtime. Backend and
// gesture timing take effect on the next start.
func (a *app) applyConfig(cfg *config.Config) {
	a.c.Pipeline.SetDir(cfg.OutputDir)
	a.c.Session.SetBaseName(cfg.BaseName)
	a.c.Session.SetPDFBundle(cfg.PDFBundle)
	if cfg.DarkMode != theme.IsDark() {
		theme.InitStyles(cfg.DarkMode)
	}
}

func (a *app) update() {
	// Settings stay read-only while a capture is pending.
	editable := !a.c.Saves.InFlight()
	if !a.editableSet || editable != a.editable {
		a.c.RootView.SetConfigEditable(editable)
		a.editable, a.editableSet = editable, true
	}
	a.c.Loop.Tick()
}

func (a *app) exitHandler() {
	// Cancel scheduled after event if any.
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	if a.c != nil && a.c.Store.Len() > 0 {
		a.logger.Info("exiting with unsaved rectangles", "count", a.c.Store.Len())
	}
	Destroy(App)
}

func (a *app) scheduleUpdate() {
	// Schedule the next update using TclAfter to stay on Tk's event loop thread.
	a.afterID = TclAfter(tick, func() { a.update() })
}
