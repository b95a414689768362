package presenter

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/soocke/sshot-go/ui/model"
)

// TotalsSource provides accumulated export totals.
type TotalsSource interface{ Values() model.ExportTotals }

// AvailabilityProbe reports whether capture is currently possible.
type AvailabilityProbe interface{ Available() bool }

// IndicatorView displays the capture readiness and running totals.
type IndicatorView interface {
	SetCaptureReady(ready bool)
	SetTotals(text string)
}

// StatusPresenter pushes capture readiness and export totals to the view.
// Availability is probed at most once per probeEvery since some backends
// open a display connection to answer.
type StatusPresenter struct {
	totals TotalsSource
	probe  AvailabilityProbe
	view   IndicatorView

	probeEvery time.Duration
	lastProbe  time.Time
	ready      bool
	probed     bool
	lastText   string
}

func NewStatusPresenter(totals TotalsSource, probe AvailabilityProbe, view IndicatorView) *StatusPresenter {
	return &StatusPresenter{totals: totals, probe: probe, view: view, probeEvery: 2 * time.Second}
}

// Tick refreshes the view. Unchanged values are not pushed again.
func (p *StatusPresenter) Tick(now time.Time) {
	if p == nil || p.view == nil {
		return
	}
	if p.probe != nil && (!p.probed || now.Sub(p.lastProbe) >= p.probeEvery) {
		ready := p.probe.Available()
		if !p.probed || ready != p.ready {
			p.view.SetCaptureReady(ready)
		}
		p.ready, p.probed, p.lastProbe = ready, true, now
	}
	if p.totals == nil {
		return
	}
	text := FormatTotals(p.totals.Values(), now)
	if text != p.lastText {
		p.lastText = text
		p.view.SetTotals(text)
	}
}

// FormatTotals renders totals as a single status line.
func FormatTotals(t model.ExportTotals, now time.Time) string {
	if t.Batches == 0 {
		return "No exports yet"
	}
	s := fmt.Sprintf("%d saved, %s", t.Saved, humanize.Bytes(uint64(t.Bytes)))
	if t.Skipped > 0 {
		s += fmt.Sprintf(", %d skipped", t.Skipped)
	}
	if t.Failed > 0 {
		s += fmt.Sprintf(", %d failed", t.Failed)
	}
	if t.LastFile != "" {
		s += fmt.Sprintf(" | last %s %s", t.LastFile, humanize.RelTime(t.LastAt, now, "ago", "from now"))
	}
	return s
}
