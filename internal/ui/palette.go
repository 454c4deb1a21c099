package ui

import "github.com/jimezsa/adscli/internal/theme"

// Palette holds the foreground colors used for one theme. Values are
// anything termenv.Output.Color accepts.
type Palette struct {
	Error   string
	Warn    string
	Info    string
	Success string
	Heading string
	Muted   string
	Link    string
}

var (
	lightPalette = Palette{
		Error:   "#B91C1C",
		Warn:    "#B45309",
		Info:    "#1D4ED8",
		Success: "#15803D",
		Heading: "#111827",
		Muted:   "#6B7280",
		Link:    "#2563EB",
	}
	darkPalette = Palette{
		Error:   "#FCA5A5",
		Warn:    "#FCD34D",
		Info:    "#93C5FD",
		Success: "#86EFAC",
		Heading: "#F3F4F6",
		Muted:   "#9CA3AF",
		Link:    "#87CEEB",
	}
)

func PaletteFor(t theme.Theme) Palette {
	if t == theme.Dark {
		return darkPalette
	}
	return lightPalette
}
