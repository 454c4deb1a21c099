package ui

import (
	"bytes"
	"testing"

	"github.com/jimezsa/adscli/internal/theme"
)

func TestNormalizeColorMode(t *testing.T) {
	cases := map[string]ColorMode{
		"":        ColorAuto,
		"ALWAYS":  ColorAlways,
		" never ": ColorNever,
		"bogus":   ColorAuto,
	}
	for input, want := range cases {
		if got := NormalizeColorMode(input); got != want {
			t.Fatalf("NormalizeColorMode(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestPlainOutputWhenColorDisabled(t *testing.T) {
	var out, errOut bytes.Buffer
	u := New(&out, &errOut, ColorAlways, true, theme.Dark)

	u.Infof("page %d\n", 2)
	u.Errorf("boom")
	if out.String() != "page 2\n" {
		t.Fatalf("Infof() wrote %q", out.String())
	}
	if errOut.String() != "boom\n" {
		t.Fatalf("Errorf() wrote %q", errOut.String())
	}
	if u.Muted("x") != "x" || u.LinkText("y") != "y" {
		t.Fatalf("expected undecorated text with colors disabled")
	}
}

func TestSetThemeSwapsPalette(t *testing.T) {
	u := New(&bytes.Buffer{}, &bytes.Buffer{}, ColorNever, false, theme.Light)
	if u.Palette != PaletteFor(theme.Light) {
		t.Fatalf("expected light palette")
	}
	u.SetTheme(theme.Dark)
	if u.Palette != PaletteFor(theme.Dark) {
		t.Fatalf("expected dark palette after SetTheme")
	}
}
