package view

import (
	"image"
	"log/slog"
	"strings"

	"github.com/soocke/sshot-go/config"
	"github.com/soocke/sshot-go/ui/presenter"
	"github.com/soocke/sshot-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// RootView composes the main window: capture readiness and totals, the
// action buttons, the last batch report, a preview of the last saved crop and
// the settings form.
type RootView struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	// Subviews
	Indicator   Indicator
	ConfigPanel ConfigPanel
	Preview     Preview

	// Widgets
	ErrorLabel *TLabelWidget
	Report     *TextWidget
}

// RootHandlers are the main window actions.
type RootHandlers struct {
	Annotate func()
	Save     func()
	Name     func()
	Exit     func()
	Applied  func(cfg *config.Config) // settings saved
}

func NewRootView(cfg *config.Config, cfgPath string, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, cfgPath: cfgPath, logger: logger}
}

// Build constructs the layout. Handlers are invoked on user actions.
func (rv *RootView) Build(h RootHandlers) {
	if rv == nil {
		return
	}
	// Row 0: indicator, buttons
	top := Frame()
	Grid(top, Row(0), Column(0), Columnspan(2), Sticky("we"), Padx("0.3m"), Pady("0.3m"))
	rv.Indicator = NewIndicator(top, 0, 0)

	btnFrame := Frame()
	Grid(btnFrame, Row(0), Column(2), Sticky("ne"), Padx("0.3m"), Pady("0.3m"))
	buttons := []struct {
		label string
		style string
		fn    func()
	}{
		{"Annotate", theme.StylePrimaryButton, h.Annotate},
		{"Save", theme.StylePrimaryButton, h.Save},
		{"Name", "", h.Name},
		{"Exit", theme.StyleDangerButton, h.Exit},
	}
	for i, b := range buttons {
		opts := []Opt{Txt(b.label), Command(orNop(b.fn))}
		if b.style != "" {
			opts = append(opts, Style(b.style))
		}
		Grid(TButton(opts...), In(btnFrame), Row(i), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	}

	// Row 1: last error
	rv.ErrorLabel = TLabel(Txt(""), Style(theme.StyleErrorLabel), Anchor("w"))
	Grid(rv.ErrorLabel, Row(1), Column(0), Columnspan(3), Sticky("we"), Padx("0.4m"))

	// Row 2: batch report
	rv.Report = Text(Height(8), Width(60), Wrap("none"))
	Grid(rv.Report, Row(2), Column(0), Columnspan(3), Sticky("we"), Padx("0.4m"), Pady("0.3m"))

	// Rows 3-4: preview
	rv.Preview = NewPreview(3)

	// Settings rows
	rv.ConfigPanel = NewConfigPanel(rv.cfg, rv.cfgPath, rv.logger, h.Applied)
	rv.ConfigPanel.Build(5)
}

// ShowOutcomes replaces the report with one line per region and a summary.
func (rv *RootView) ShowOutcomes(lines []string, summary string) {
	if rv == nil || rv.Report == nil {
		return
	}
	rv.clearError()
	rv.Report.Delete("1.0", END)
	rv.Report.Insert("1.0", strings.Join(append(lines, summary), "\n"))
}

// ShowError displays err until the next successful report.
func (rv *RootView) ShowError(err error) {
	if rv == nil || rv.ErrorLabel == nil || err == nil {
		return
	}
	rv.ErrorLabel.Configure(Txt(err.Error()))
}

func (rv *RootView) ShowPreview(img image.Image, caption string) {
	if rv != nil && rv.Preview != nil {
		rv.Preview.Update(img, caption)
	}
}

func (rv *RootView) SetCaptureReady(ready bool) {
	if rv != nil && rv.Indicator != nil {
		rv.Indicator.SetCaptureReady(ready)
	}
}

func (rv *RootView) SetTotals(text string) {
	if rv != nil && rv.Indicator != nil {
		rv.Indicator.SetTotals(text)
	}
}

// SetConfigEditable toggles settings editability.
func (rv *RootView) SetConfigEditable(enabled bool) {
	if rv != nil && rv.ConfigPanel != nil {
		rv.ConfigPanel.SetEditable(enabled)
	}
}

func (rv *RootView) clearError() {
	if rv.ErrorLabel != nil {
		rv.ErrorLabel.Configure(Txt(""))
	}
}

var (
	_ presenter.StatusView    = (*RootView)(nil)
	_ presenter.IndicatorView = (*RootView)(nil)
)
