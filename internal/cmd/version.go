package cmd

import "fmt"

type VersionCmd struct{}

func (v *VersionCmd) Run(ctx *Context) error {
	if ctx.Verbose {
		_, err := fmt.Fprintf(ctx.Out, "%s (backend %s)\n", ctx.Version, ctx.Config.BackendURL)
		return err
	}
	_, err := fmt.Fprintln(ctx.Out, ctx.Version)
	return err
}
