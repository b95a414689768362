package view

import (
	"log/slog"

	"github.com/soocke/sshot-go/domain/geometry"
	"github.com/soocke/sshot-go/domain/regions"
	"github.com/soocke/sshot-go/ui/presenter"
)

const (
	annotationHandle presenter.Handle = iota + 1
	toolbarHandle
)

// Surfaces is the Tk implementation of the floating windows: one fullscreen
// annotation surface and one toolbar. Windows are built lazily on first show
// and withdrawn rather than destroyed when hidden.
type Surfaces struct {
	logger     *slog.Logger
	pointer    PointerHandlers
	tools      ToolbarHandlers
	annotation *annotationSurface
	toolbar    *toolbar
}

func NewSurfaces(logger *slog.Logger) *Surfaces { return &Surfaces{logger: logger} }

// SetHandlers binds user input to the controller. It must be called before
// the first ShowSurface.
func (s *Surfaces) SetHandlers(p PointerHandlers, t ToolbarHandlers) {
	s.pointer, s.tools = p, t
}

func (s *Surfaces) ShowSurface(spec presenter.SurfaceSpec) presenter.Handle {
	switch spec.Kind {
	case presenter.SurfaceAnnotation:
		if s.annotation == nil {
			s.annotation = newAnnotationSurface(s.pointer, s.logger)
		}
		s.annotation.show()
		// Keep the toolbar reachable above the overlay.
		if s.toolbar != nil && s.toolbar.win != nil {
			s.toolbar.win.Raise(nil)
		}
		return annotationHandle
	case presenter.SurfaceToolbar:
		if s.toolbar == nil {
			s.toolbar = newToolbar(s.tools, spec.X, spec.Y)
		}
		s.toolbar.show(spec.X, spec.Y)
		return toolbarHandle
	}
	if s.logger != nil {
		s.logger.Warn("view.unknown_surface", "kind", spec.Kind.String())
	}
	return 0
}

func (s *Surfaces) HideSurface(h presenter.Handle) {
	switch h {
	case annotationHandle:
		s.annotation.hide()
	case toolbarHandle:
		s.toolbar.hide()
	}
}

func (s *Surfaces) UpdateSurfaceGeometry(h presenter.Handle, x, y int) {
	if h == toolbarHandle {
		s.toolbar.move(x, y)
	}
}

func (s *Surfaces) RemoveSurface(h presenter.Handle) {
	switch h {
	case annotationHandle:
		s.annotation.destroy()
		s.annotation = nil
	case toolbarHandle:
		s.toolbar.destroy()
		s.toolbar = nil
	}
}

// Render implements presenter.AnnotationView.
func (s *Surfaces) Render(rs []regions.Region, provisional *geometry.Rect) {
	s.annotation.render(rs, provisional)
}

var (
	_ presenter.Surfaces       = (*Surfaces)(nil)
	_ presenter.AnnotationView = (*Surfaces)(nil)
)
