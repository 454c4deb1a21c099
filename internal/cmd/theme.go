package cmd

import (
	"fmt"

	"github.com/jimezsa/adscli/internal/theme"
)

type ThemeCmd struct {
	Show   ThemeShowCmd   `cmd:"" default:"1" help:"Print the current theme."`
	Toggle ThemeToggleCmd `cmd:"" help:"Switch between light and dark."`
	Set    ThemeSetCmd    `cmd:"" help:"Set the theme explicitly."`
}

type ThemeShowCmd struct{}

type ThemeToggleCmd struct{}

type ThemeSetCmd struct {
	Value string `arg:"" enum:"light,dark" help:"light or dark."`
}

func (c *ThemeShowCmd) Run(ctx *Context) error {
	current := ctx.Theme
	if ctx.ThemeStore != nil {
		loaded, err := ctx.ThemeStore.Load()
		if err != nil {
			return err
		}
		current = loaded
	}
	if current == "" {
		current = theme.Default
	}
	_, err := fmt.Fprintln(ctx.Out, current)
	return err
}

func (c *ThemeToggleCmd) Run(ctx *Context) error {
	if ctx.ThemeStore == nil {
		return fmt.Errorf("no theme store configured")
	}
	next, err := theme.Toggle(ctx.ThemeStore, ctx.Theme)
	if err != nil {
		return fmt.Errorf("toggle theme: %w", err)
	}
	ctx.setTheme(next)
	_, err = fmt.Fprintln(ctx.Out, next)
	return err
}

func (c *ThemeSetCmd) Run(ctx *Context) error {
	if ctx.ThemeStore == nil {
		return fmt.Errorf("no theme store configured")
	}
	value, err := theme.Parse(c.Value)
	if err != nil {
		return err
	}
	if err := ctx.ThemeStore.Save(value); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	ctx.setTheme(value)
	_, err = fmt.Fprintln(ctx.Out, value)
	return err
}
