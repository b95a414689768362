package view

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/sshot-go/config"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ConfigPanel encapsulates the settings form widgets and apply logic.
// It owns its widgets and writes back into *config.Config on ApplyChanges.
type ConfigPanel interface {
	Build(startRow int) (endRow int) // constructs widgets starting at startRow, returns next free row
	SetEditable(enabled bool)
	ApplyChanges() // parses widget text into underlying config and persists
}

type configPanel struct {
	cfg      *config.Config
	cfgPath  string
	logger   *slog.Logger
	onApply  func(cfg *config.Config)
	applyBtn *ButtonWidget
	widgets  map[string]*TextWidget // keyed by internal field id
}

// NewConfigPanel creates the view bound to cfg. onApply runs after a
// successful save so live components can pick up the new values.
func NewConfigPanel(cfg *config.Config, cfgPath string, logger *slog.Logger, onApply func(cfg *config.Config)) ConfigPanel {
	return &configPanel{cfg: cfg, cfgPath: cfgPath, logger: logger, onApply: onApply, widgets: make(map[string]*TextWidget)}
}

func (v *configPanel) Build(startRow int) (row int) {
	c := v.cfg
	row = startRow
	makeRow := func(id, label, value string) {
		lbl := Label(Txt(label), Anchor("w"))
		Grid(lbl, Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		w := Text(Height(1), Width(32))
		Grid(w, Row(row), Column(1), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		w.Delete("1.0", END)
		w.Insert("1.0", value)
		v.widgets[id] = w
		row++
	}
	makeRow("baseName", "Base Name", c.BaseName)
	makeRow("outputDir", "Output Directory", c.OutputDir)
	makeRow("pdfBundle", "PDF Bundle (true/false)", fmt.Sprintf("%t", c.PDFBundle))
	makeRow("captureBackend", "Capture Backend (screenshot/display/gdi)", c.CaptureBackend)
	makeRow("settleDelayMs", "Settle Delay ms", fmt.Sprintf("%d", c.SettleDelayMs))
	makeRow("doubleTapMs", "Double Tap ms", fmt.Sprintf("%d", c.DoubleTapMs))
	makeRow("handleSize", "Handle Size px", fmt.Sprintf("%.0f", c.HandleSize))
	makeRow("darkMode", "Dark Mode (true/false)", fmt.Sprintf("%t", c.DarkMode))
	v.applyBtn = Button(Txt("Apply Changes"), Command(func() { v.ApplyChanges() }))
	Grid(v.applyBtn, Row(row), Column(0), Columnspan(3), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	row++
	return row
}

func (v *configPanel) SetEditable(enabled bool) {
	state := "disabled"
	if enabled {
		state = "normal"
	}
	for _, w := range v.widgets {
		if w != nil {
			w.Configure(State(state))
		}
	}
	if v.applyBtn != nil {
		v.applyBtn.Configure(State(state))
	}
}

func (v *configPanel) text(w *TextWidget) string {
	if w == nil {
		return ""
	}
	parts := w.Get("1.0", END)
	return strings.Join(parts, "")
}

func (v *configPanel) ApplyChanges() {
	if v.cfg == nil {
		return
	}
	cfg := *v.cfg // copy
	assignString := func(id string, dst *string) {
		if w := v.widgets[id]; w != nil {
			if s := strings.TrimSpace(v.text(w)); s != "" {
				*dst = s
			}
		}
	}
	assignFloat := func(id string, dst *float64) {
		w := v.widgets[id]
		if w == nil {
			return
		}
		if f, ok := parseFloatField(v.text(w)); ok {
			*dst = f
		}
	}
	assignInt := func(id string, dst *int) {
		w := v.widgets[id]
		if w == nil {
			return
		}
		if i, ok := parseIntField(v.text(w)); ok {
			*dst = i
		}
	}
	assignBool := func(id string, dst *bool) {
		w := v.widgets[id]
		if w == nil {
			return
		}
		if b, ok := parseBoolLoose(v.text(w)); ok {
			*dst = b
		}
	}
	assignString("baseName", &cfg.BaseName)
	assignString("outputDir", &cfg.OutputDir)
	assignBool("pdfBundle", &cfg.PDFBundle)
	assignString("captureBackend", &cfg.CaptureBackend)
	assignInt("settleDelayMs", &cfg.SettleDelayMs)
	assignInt("doubleTapMs", &cfg.DoubleTapMs)
	assignFloat("handleSize", &cfg.HandleSize)
	assignBool("darkMode", &cfg.DarkMode)
	if verr := cfg.Validate(); verr != nil {
		return
	}
	*v.cfg = cfg
	if err := v.cfg.Save(v.cfgPath); err != nil {
		if v.logger != nil {
			v.logger.Error("config save failed", "error", err)
		}
		return
	}
	if v.logger != nil {
		v.logger.Info("config saved", "path", v.cfgPath)
	}
	if v.onApply != nil {
		v.onApply(v.cfg)
	}
}

// parsing helpers (unexported)
func parseFloatField(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
func parseIntField(s string) (int, bool) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return i, true
}
func parseBoolLoose(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y", "on", "t":
		return true, true
	case "false", "0", "no", "n", "off", "f":
		return false, true
	default:
		return false, false
	}
}
