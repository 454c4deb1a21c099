package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/jimezsa/adscli/internal/search"
)

type CountriesCmd struct {
	Filter string `arg:"" optional:"" help:"Case-insensitive substring to match."`
}

func (c *CountriesCmd) Run(ctx *Context) error {
	matches := search.FilterCountries(c.Filter)

	if ctx.JSONOutput {
		if matches == nil {
			matches = []string{}
		}
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(matches)
	}

	if len(matches) == 0 {
		ctx.UI.Warnf("No countries found")
		return nil
	}
	for _, country := range matches {
		if _, err := fmt.Fprintln(ctx.Out, country); err != nil {
			return err
		}
	}
	return nil
}
