package cmd

import (
	"io"

	"github.com/jimezsa/adscli/internal/config"
	"github.com/jimezsa/adscli/internal/results"
	"github.com/jimezsa/adscli/internal/theme"
	"github.com/jimezsa/adscli/internal/ui"
	"github.com/rs/zerolog"
)

// FetcherFactory builds the backend client for a --proxies value.
type FetcherFactory func(ctx *Context, proxies string) (results.Fetcher, error)

type Context struct {
	In         io.Reader
	Out        io.Writer
	Err        io.Writer
	UI         *ui.UI
	Config     config.Config
	ConfigDir  string
	Logger     zerolog.Logger
	Verbose    bool
	JSONOutput bool
	PlainText  bool
	Version    string
	ColorMode  ui.ColorMode

	// Theme is the active preference; ThemeStore persists changes to it.
	Theme      theme.Theme
	ThemeStore theme.Store

	NewFetcher FetcherFactory
}

func (c *Context) fetcher(proxies string) (results.Fetcher, error) {
	if c.NewFetcher != nil {
		return c.NewFetcher(c, proxies)
	}
	return NewBackendFetcher(c, proxies)
}

// setTheme records a new theme and repaints the UI with it.
func (c *Context) setTheme(t theme.Theme) {
	c.Theme = t
	if c.UI != nil {
		c.UI.SetTheme(t)
	}
}
