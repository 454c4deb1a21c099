package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jimezsa/adscli/internal/theme"
	"github.com/muesli/termenv"
)

type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

type UI struct {
	Out          io.Writer
	Err          io.Writer
	Output       *termenv.Output
	ErrOutput    *termenv.Output
	ColorEnabled bool
	Palette      Palette
}

func New(out io.Writer, err io.Writer, mode ColorMode, disableColor bool, t theme.Theme) *UI {
	output := termenv.NewOutput(out)
	errOutput := termenv.NewOutput(err)

	colorEnabled := shouldEnableColor(output, mode, disableColor)
	return &UI{
		Out:          out,
		Err:          err,
		Output:       output,
		ErrOutput:    errOutput,
		ColorEnabled: colorEnabled,
		Palette:      PaletteFor(t),
	}
}

// SetTheme swaps the palette after a toggle.
func (u *UI) SetTheme(t theme.Theme) {
	u.Palette = PaletteFor(t)
}

func shouldEnableColor(output *termenv.Output, mode ColorMode, disableColor bool) bool {
	if disableColor {
		return false
	}

	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}

	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return output.ColorProfile() != termenv.Ascii
	}
}

func (u *UI) Errorf(format string, args ...any) {
	fmt.Fprintln(u.Err, u.paint(u.ErrOutput, u.Palette.Error, format, args...))
}

func (u *UI) Warnf(format string, args ...any) {
	fmt.Fprintln(u.Err, u.paint(u.ErrOutput, u.Palette.Warn, format, args...))
}

func (u *UI) Infof(format string, args ...any) {
	fmt.Fprintln(u.Out, u.paint(u.Output, u.Palette.Info, format, args...))
}

func (u *UI) Successf(format string, args ...any) {
	fmt.Fprintln(u.Out, u.paint(u.Output, u.Palette.Success, format, args...))
}

// Headingf prints a bold line in the heading color.
func (u *UI) Headingf(format string, args ...any) {
	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	if u.ColorEnabled {
		msg = u.Output.String(msg).Foreground(u.Output.Color(u.Palette.Heading)).Bold().String()
	}
	fmt.Fprintln(u.Out, msg)
}

// Muted renders secondary text such as disabled controls.
func (u *UI) Muted(text string) string {
	if !u.ColorEnabled {
		return text
	}
	return u.Output.String(text).Foreground(u.Output.Color(u.Palette.Muted)).String()
}

func (u *UI) paint(output *termenv.Output, color string, format string, args ...any) string {
	msg := fmt.Sprintf(format, args...)
	msg = strings.TrimRight(msg, "\n")
	if u.ColorEnabled {
		msg = output.String(msg).Foreground(output.Color(color)).String()
	}
	return msg
}

func ColorizeLink(output *termenv.Output, enabled bool, color string, text string) string {
	if !enabled || output == nil {
		return text
	}
	return output.String(text).Foreground(output.Color(color)).String()
}

func (u *UI) LinkText(text string) string {
	return ColorizeLink(u.Output, u.ColorEnabled, u.Palette.Link, text)
}

func NormalizeColorMode(value string) ColorMode {
	value = strings.ToLower(strings.TrimSpace(value))
	switch value {
	case string(ColorAlways):
		return ColorAlways
	case string(ColorNever):
		return ColorNever
	default:
		return ColorAuto
	}
}
