package theme

// Centralized palette and ttk style setup for the root window, the floating
// toolbar and the annotation overlay.

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Palette defines core semantic colors used across widgets.
const (
	ColorBg        = "#f7f9fb" // app background
	ColorSurface   = "#ffffff" // panels, cards
	ColorBorder    = "#d0d7de"
	ColorPrimary   = "#2563eb" // buttons, accents
	ColorPrimaryHi = "#1d4ed8"
	ColorDanger    = "#dc2626"
	ColorDangerHi  = "#b91c1c"
	ColorAccent    = "#10b981"
	ColorText      = "#1e293b"
	ColorTextMuted = "#64748b"
)

// Overlay colors. The annotation window is drawn with reduced alpha so the
// desktop stays visible underneath.
const (
	OverlayBg          = "#0b1220"
	OverlayAlpha       = 0.35
	RectOutline        = "#f97316"
	RectOutlineWidth   = 3
	HandleFill         = "#fde047"
	HandleRadius       = 6
	LabelFill          = "#ffffff"
	LabelFont          = "Helvetica"
	LabelFontSize      = 14
	ProvisionalOutline = "#38bdf8"
)

// PaletteSnapshot represents resolved colors for the active mode.
type PaletteSnapshot struct {
	AppBg     string
	Surface   string
	Border    string
	Primary   string
	Danger    string
	Accent    string
	Text      string
	TextMuted string
}

// CurrentPalette returns colors for the current dark/light mode.
func CurrentPalette() PaletteSnapshot {
	if darkMode {
		return PaletteSnapshot{
			AppBg:     "#0f172a",
			Surface:   "#1e293b",
			Border:    "#334155",
			Primary:   "#3b82f6",
			Danger:    "#ef4444",
			Accent:    "#10b981",
			Text:      "#f1f5f9",
			TextMuted: "#94a3b8",
		}
	}
	return PaletteSnapshot{
		AppBg:     ColorBg,
		Surface:   ColorSurface,
		Border:    ColorBorder,
		Primary:   ColorPrimary,
		Danger:    ColorDanger,
		Accent:    ColorAccent,
		Text:      ColorText,
		TextMuted: ColorTextMuted,
	}
}

// style names used with Style("primary.TButton") etc.
const (
	StylePrimaryButton = "primary.TButton"
	StyleDangerButton  = "danger.TButton"
	StyleToolButton    = "tool.TButton"
	StyleReadyLabel    = "ready.TLabel"
	StyleBlockedLabel  = "blocked.TLabel"
	StyleErrorLabel    = "error.TLabel"
)

// internal flag for current mode
var darkMode bool

// InitStyles applies styles for the requested mode.
func InitStyles(dark bool) {
	darkMode = dark
	applyStyles(darkMode)
}

// IsDark reports current mode.
func IsDark() bool { return darkMode }

func applyStyles(dark bool) {
	p := CurrentPalette()
	_ = ActivateTheme("azure light") // baseline metrics
	App.Configure(Background(p.AppBg))

	StyleConfigure(StylePrimaryButton,
		Background(p.Primary),
		Foreground("white"),
		Padding("4p 3p"),
		Borderwidth(1),
		Relief("ridge"),
	)
	StyleConfigure(StyleDangerButton,
		Background(p.Danger),
		Foreground("white"),
		Padding("4p 3p"),
		Borderwidth(1),
		Relief("ridge"),
	)
	// Toolbar buttons are compact; the toolbar floats over other windows.
	StyleConfigure(StyleToolButton,
		Padding("2p 1p"),
		Borderwidth(1),
	)
	StyleConfigure(StyleReadyLabel,
		Foreground("white"),
		Background(p.Accent),
		Padding("4p 2p"),
		Borderwidth(1),
		Relief("groove"),
	)
	StyleConfigure(StyleBlockedLabel,
		Foreground("white"),
		Background(p.Danger),
		Padding("4p 2p"),
		Borderwidth(1),
		Relief("groove"),
	)
	errFg := ColorDangerHi
	if dark {
		errFg = "#fca5a5"
	}
	StyleConfigure(StyleErrorLabel,
		Foreground(errFg),
		Background(p.AppBg),
		Padding("2p 1p"),
	)
}
