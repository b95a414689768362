package view

import (
	"fmt"
	"strconv"

	"github.com/soocke/sshot-go/domain/regions"
	"github.com/soocke/sshot-go/ui/presenter"
	"github.com/soocke/sshot-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Dialogs shows the small modal-ish prompts: rectangle options and the base
// name prompt. At most one dialog is open at a time; opening another replaces
// it.
type Dialogs struct {
	win *ToplevelWidget
}

func NewDialogs() *Dialogs { return &Dialogs{} }

// ShowOptions offers Renumber and Delete for r.
func (d *Dialogs) ShowOptions(r regions.Region, onRenumber func(n int), onDelete func()) {
	win := d.open(fmt.Sprintf("Rectangle %s", regionLabel(r.Number)))

	lbl := win.TLabel(Txt("Number"))
	Grid(lbl, Row(0), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.3m"))
	entry := win.TEntry(Textvariable(strconv.Itoa(r.Number)), Width(8))
	Grid(entry, Row(0), Column(1), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))

	renumber := func() {
		// Anything that is not a positive integer is ignored.
		if n, ok := parseIntField(entry.Textvariable()); ok && onRenumber != nil {
			onRenumber(n)
		}
		d.close()
	}
	del := func() {
		if onDelete != nil {
			onDelete()
		}
		d.close()
	}
	Grid(win.TButton(Txt("Renumber"), Style(theme.StylePrimaryButton), Command(renumber)),
		Row(1), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	Grid(win.TButton(Txt("Delete"), Style(theme.StyleDangerButton), Command(del)),
		Row(1), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	Grid(win.TButton(Txt("Cancel"), Command(d.close)),
		Row(1), Column(2), Sticky("we"), Padx("0.2m"), Pady("0.2m"))

	Bind(win, "<Return>", Command(renumber))
	Bind(win, "<Escape>", Command(d.close))
	Focus(entry)
}

// PromptName asks for the export base name, prefilled with current.
func (d *Dialogs) PromptName(current string, onSubmit func(name string)) {
	win := d.open("Base name")

	lbl := win.TLabel(Txt("Files are saved as <name>_NNN.png"))
	Grid(lbl, Row(0), Column(0), Columnspan(2), Sticky("w"), Padx("0.4m"), Pady("0.3m"))
	entry := win.TEntry(Textvariable(current), Width(28))
	Grid(entry, Row(1), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))

	submit := func() {
		if onSubmit != nil {
			onSubmit(entry.Textvariable())
		}
		d.close()
	}
	Grid(win.TButton(Txt("OK"), Style(theme.StylePrimaryButton), Command(submit)),
		Row(2), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	Grid(win.TButton(Txt("Cancel"), Command(d.close)),
		Row(2), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))

	Bind(win, "<Return>", Command(submit))
	Bind(win, "<Escape>", Command(d.close))
	Focus(entry)
}

func (d *Dialogs) open(title string) *ToplevelWidget {
	d.close()
	win := App.Toplevel(Borderwidth(1), Relief("raised"))
	win.WmTitle(title)
	WmAttributes(win.Window, "-topmost", 1)
	WmProtocol(win.Window, "WM_DELETE_WINDOW", d.close)
	w, h := screenSize()
	WmGeometry(win.Window, fmt.Sprintf("+%d+%d", w/2-120, h/2-60))
	d.win = win
	return win
}

func (d *Dialogs) close() {
	if d.win == nil {
		return
	}
	Destroy(d.win)
	d.win = nil
}

var (
	_ presenter.OptionsView = (*Dialogs)(nil)
	_ presenter.NameView    = (*Dialogs)(nil)
)
