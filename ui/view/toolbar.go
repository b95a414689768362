package view

import (
	"fmt"
	"runtime"

	"github.com/soocke/sshot-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ToolbarHandlers are the actions offered by the floating toolbar. Drag
// callbacks receive raw screen coordinates.
type ToolbarHandlers struct {
	Crop  func()
	Save  func()
	Name  func()
	Done  func()
	Close func()

	DragBegin func(rawX, rawY float64)
	DragMove  func(rawX, rawY float64)
	DragEnd   func()
}

type toolbar struct {
	win *ToplevelWidget
}

func newToolbar(h ToolbarHandlers, x, y int) *toolbar {
	win := App.Toplevel(Borderwidth(1), Relief("raised"))
	win.WmTitle("sshot-go")
	WmAttributes(win.Window, "-topmost", 1)
	if runtime.GOOS == "windows" {
		WmAttributes(win.Window, "-toolwindow", true)
	}
	WmGeometry(win.Window, fmt.Sprintf("+%d+%d", x, y))
	WmProtocol(win.Window, "WM_DELETE_WINDOW", orNop(h.Close))

	grip := win.Label(Txt("::"), Width(2), Cursor("fleur"), Padx("1m"))
	Grid(grip, Row(0), Column(0), Sticky("ns"))
	Bind(grip, "<ButtonPress-1>", Command(func(e *Event) {
		if h.DragBegin != nil {
			h.DragBegin(float64(e.XRoot), float64(e.YRoot))
		}
	}))
	Bind(grip, "<B1-Motion>", Command(func(e *Event) {
		if h.DragMove != nil {
			h.DragMove(float64(e.XRoot), float64(e.YRoot))
		}
	}))
	Bind(grip, "<ButtonRelease-1>", Command(orNop(h.DragEnd)))

	buttons := []struct {
		label string
		style string
		fn    func()
	}{
		{"Crop", theme.StyleToolButton, h.Crop},
		{"Save", theme.StylePrimaryButton, h.Save},
		{"Name", theme.StyleToolButton, h.Name},
		{"Done", theme.StyleToolButton, h.Done},
		{"Close", theme.StyleDangerButton, h.Close},
	}
	for i, b := range buttons {
		btn := win.TButton(Txt(b.label), Style(b.style), Command(orNop(b.fn)))
		Grid(btn, Row(0), Column(i+1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	}
	return &toolbar{win: win}
}

func (t *toolbar) show(x, y int) {
	if t == nil || t.win == nil {
		return
	}
	WmDeiconify(t.win.Window)
	t.move(x, y)
	WmAttributes(t.win.Window, "-topmost", 1)
	t.win.Raise(nil)
}

func (t *toolbar) move(x, y int) {
	if t == nil || t.win == nil {
		return
	}
	WmGeometry(t.win.Window, fmt.Sprintf("+%d+%d", x, y))
}

func (t *toolbar) hide() {
	if t == nil || t.win == nil {
		return
	}
	WmWithdraw(t.win.Window)
}

func (t *toolbar) destroy() {
	if t == nil || t.win == nil {
		return
	}
	Destroy(t.win)
	t.win = nil
}

func orNop(fn func()) func() {
	if fn == nil {
		return func() {}
	}
	return fn
}
