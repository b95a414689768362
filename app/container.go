package app

import (
	"log/slog"
	"time"

	"github.com/soocke/sshot-go/config"
	"github.com/soocke/sshot-go/domain/capture"
	"github.com/soocke/sshot-go/domain/export"
	"github.com/soocke/sshot-go/domain/regions"
	"github.com/soocke/sshot-go/ui/images"
	"github.com/soocke/sshot-go/ui/model"
	"github.com/soocke/sshot-go/ui/presenter"
	"github.com/soocke/sshot-go/ui/view"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// AppContainer assembles models, services, presenters and views.
type AppContainer struct {
	Config     *config.Config
	ConfigPath string
	Logger     *slog.Logger

	// Models
	Store *regions.Store
	Saves *model.SaveModel
	Stats *model.ExportStats

	// Services
	Capture  *capture.Service
	Pipeline *export.Pipeline
	Thumbs   *images.ThumbnailCache

	// Views
	RootView *view.RootView
	Surfaces *view.Surfaces
	Dialogs  *view.Dialogs

	// Presenters
	Session *presenter.SessionController
	Status  *presenter.StatusPresenter
	Loop    *presenter.Loop
}

// tclScheduler runs continuations on the Tk event loop.
type tclScheduler struct{}

func (tclScheduler) After(d time.Duration, fn func()) { TclAfter(d, fn) }

// BuildContainer constructs all components. No window is shown until the
// app starts.
func BuildContainer(cfg *config.Config, cfgPath string, logger *slog.Logger) *AppContainer {
	c := &AppContainer{Config: cfg, ConfigPath: cfgPath, Logger: logger}
	c.Store = regions.NewStore()
	c.Saves = &model.SaveModel{}
	c.Stats = model.NewExportStats()

	svc, err := capture.NewServiceFor(cfg.CaptureBackend, logger)
	if err != nil {
		logger.Warn("capture backend rejected, using default", "backend", cfg.CaptureBackend, "error", err)
		svc, _ = capture.NewServiceFor(capture.BackendScreenshot, logger)
	}
	c.Capture = svc

	c.Pipeline = export.NewPipeline(export.OSFilesystem{}, cfg.OutputDir, cfg.BaseName, c.Store, logger)

	thumbs, err := images.NewThumbnailCache(cfg.ThumbnailCache, images.DefaultThumbWidth, images.DefaultThumbHeight)
	if err != nil {
		logger.Warn("thumbnail cache disabled", "error", err)
	} else {
		c.Thumbs = thumbs
	}

	c.RootView = view.NewRootView(cfg, cfgPath, logger)
	c.Surfaces = view.NewSurfaces(logger)
	c.Dialogs = view.NewDialogs()

	deps := presenter.SessionDeps{
		Store:    c.Store,
		Surfaces: c.Surfaces,
		Canvas:   c.Surfaces,
		Options:  c.Dialogs,
		Names:    c.Dialogs,
		Status:   c.RootView,
		Sched:    tclScheduler{},
		Source:   c.Capture,
		Exporter: c.Pipeline,
		Saves:    c.Saves,
		Stats:    c.Stats,
		Logger:   logger,
	}
	if c.Thumbs != nil {
		deps.Previews = c.Thumbs
	}
	c.Session = presenter.NewSessionController(deps, presenter.SessionOptions{
		SettleDelay:      time.Duration(cfg.SettleDelayMs) * time.Millisecond,
		ToolbarX:         cfg.ToolbarX,
		ToolbarY:         cfg.ToolbarY,
		PDFBundle:        cfg.PDFBundle,
		DoubleTapWindow:  time.Duration(cfg.DoubleTapMs) * time.Millisecond,
		HandleSize:       cfg.HandleSize,
		ToolbarMovedHook: c.persistToolbar,
	})
	c.Status = presenter.NewStatusPresenter(c.Stats, c.Capture, c.RootView)
	return c
}

// persistToolbar stores the toolbar origin so it reopens where it was left.
func (c *AppContainer) persistToolbar(x, y int) {
	c.Config.ToolbarX, c.Config.ToolbarY = x, y
	if err := c.Config.Save(c.ConfigPath); err != nil {
		c.Logger.Error("config save failed", "error", err)
	}
}
