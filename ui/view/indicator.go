package view

import (
	"github.com/soocke/sshot-go/ui/theme"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// Indicator shows whether screen capture is possible and the running export
// totals.
type Indicator interface {
	SetCaptureReady(ready bool)
	SetTotals(text string)
}

type indicator struct {
	readyLbl  *TLabelWidget
	totalsLbl *TLabelWidget
}

// NewIndicator creates the readiness and totals labels at (row, startCol) and
// (row, startCol+1) inside parent, or inside App when parent is nil.
func NewIndicator(parent *FrameWidget, row, startCol int) Indicator {
	s := &indicator{
		readyLbl:  TLabel(Txt("Capture: ?"), Width(16), Style(theme.StyleBlockedLabel)),
		totalsLbl: TLabel(Txt("No exports yet"), Anchor("w")),
	}
	if parent != nil {
		Grid(s.readyLbl, In(parent), Row(row), Column(startCol), Sticky("w"), Padx("0.2m"))
		Grid(s.totalsLbl, In(parent), Row(row), Column(startCol+1), Sticky("we"), Padx("0.2m"))
	} else {
		Grid(s.readyLbl, Row(row), Column(startCol), Sticky("w"), Padx("0.2m"))
		Grid(s.totalsLbl, Row(row), Column(startCol+1), Sticky("we"), Padx("0.2m"))
	}
	return s
}

func (s *indicator) SetCaptureReady(ready bool) {
	if s == nil || s.readyLbl == nil {
		return
	}
	if ready {
		s.readyLbl.Configure(Txt("Capture: ready"), Style(theme.StyleReadyLabel))
		return
	}
	s.readyLbl.Configure(Txt("Capture: unavailable"), Style(theme.StyleBlockedLabel))
}

func (s *indicator) SetTotals(text string) {
	if s == nil || s.totalsLbl == nil {
		return
	}
	s.totalsLbl.Configure(Txt(text))
}
