package view

import (
	"fmt"
	"log/slog"
	"runtime"
	"strconv"

	"github.com/soocke/sshot-go/domain/geometry"
	"github.com/soocke/sshot-go/domain/regions"
	"github.com/soocke/sshot-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders
	. "modernc.org/tk9.0"
)

// PointerHandlers receives canvas-relative pointer input from the annotation
// surface. The surface covers the whole screen, so canvas coordinates equal
// screen coordinates.
type PointerHandlers struct {
	Down   func(x, y float64)
	Move   func(x, y float64)
	Up     func(x, y float64)
	Escape func()
}

// annotationSurface is the fullscreen, translucent, always-on-top window the
// rectangles are drawn on.
type annotationSurface struct {
	logger *slog.Logger
	win    *ToplevelWidget
	canvas *CanvasWidget
}

func newAnnotationSurface(h PointerHandlers, logger *slog.Logger) *annotationSurface {
	win := App.Toplevel(Borderwidth(0), Background(theme.OverlayBg))
	win.WmTitle("sshot-go overlay")
	w, hgt := screenSize()
	WmGeometry(win.Window, fmt.Sprintf("%dx%d+0+0", w, hgt))
	WmAttributes(win.Window, "-topmost", 1)
	WmAttributes(win.Window, "-alpha", theme.OverlayAlpha)
	if runtime.GOOS == "windows" {
		WmAttributes(win.Window, "-toolwindow", true)
	}
	WmAttributes(win.Window, "-fullscreen", 1)

	canvas := win.Canvas(Background(theme.OverlayBg), Highlightthickness(0), Cursor("crosshair"))
	Pack(canvas, Fill("both"), Expand(true))

	Bind(canvas, "<ButtonPress-1>", Command(func(e *Event) {
		if h.Down != nil {
			h.Down(float64(e.X), float64(e.Y))
		}
	}))
	Bind(canvas, "<B1-Motion>", Command(func(e *Event) {
		if h.Move != nil {
			h.Move(float64(e.X), float64(e.Y))
		}
	}))
	Bind(canvas, "<ButtonRelease-1>", Command(func(e *Event) {
		if h.Up != nil {
			h.Up(float64(e.X), float64(e.Y))
		}
	}))
	if h.Escape != nil {
		Bind(win, "<Escape>", Command(h.Escape))
	}
	if logger != nil {
		logger.Debug("view.annotation_created", "width", w, "height", hgt)
	}
	return &annotationSurface{logger: logger, win: win, canvas: canvas}
}

func (a *annotationSurface) show() {
	if a == nil || a.win == nil {
		return
	}
	WmDeiconify(a.win.Window)
	WmAttributes(a.win.Window, "-topmost", 1)
	Focus(a.canvas)
}

func (a *annotationSurface) hide() {
	if a == nil || a.win == nil {
		return
	}
	WmWithdraw(a.win.Window)
}

func (a *annotationSurface) destroy() {
	if a == nil || a.win == nil {
		return
	}
	Destroy(a.win)
	a.win, a.canvas = nil, nil
}

// render redraws every rectangle, its number label and its corner handles.
// Earlier regions are drawn first so the topmost one for hit-testing is also
// the one painted on top.
func (a *annotationSurface) render(rs []regions.Region, provisional *geometry.Rect) {
	if a == nil || a.canvas == nil {
		return
	}
	c := a.canvas
	c.Delete("all")
	for _, r := range rs {
		rect := r.Rect
		c.CreateRectangle(rect.Left, rect.Top, rect.Right, rect.Bottom,
			Outline(theme.RectOutline), Width(theme.RectOutlineWidth), Tags("region"))
		for _, p := range cornerPoints(rect) {
			c.CreateOval(p[0]-theme.HandleRadius, p[1]-theme.HandleRadius, p[0]+theme.HandleRadius, p[1]+theme.HandleRadius,
				Fill(theme.HandleFill), Outline(theme.RectOutline), Tags("handle"))
		}
		c.CreateText(rect.Left+8, rect.Top+6, Txt(regionLabel(r.Number)), Anchor("nw"),
			Fill(theme.LabelFill), Font(theme.LabelFont, theme.LabelFontSize, "bold"), Tags("label"))
	}
	if provisional != nil {
		p := *provisional
		c.CreateRectangle(p.Left, p.Top, p.Right, p.Bottom,
			Outline(theme.ProvisionalOutline), Width(2), Dash(6, 4), Tags("provisional"))
	}
}

func regionLabel(n int) string { return fmt.Sprintf("%03d", n) }

func cornerPoints(r geometry.Rect) [4][2]float64 {
	return [4][2]float64{
		{r.Left, r.Top},
		{r.Right, r.Top},
		{r.Left, r.Bottom},
		{r.Right, r.Bottom},
	}
}

// screenSize returns the size of the screen App lives on.
func screenSize() (int, int) {
	w, errW := strconv.Atoi(WinfoScreenWidth(App))
	h, errH := strconv.Atoi(WinfoScreenHeight(App))
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return 1920, 1080
	}
	return w, h
}
