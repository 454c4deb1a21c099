package cmd

import (
	"fmt"

	"github.com/jimezsa/adscli/internal/seen"
)

type SeenCmd struct {
	Diff   SeenDiffCmd   `cmd:"" help:"Write unseen ads (A-B) to JSON."`
	Update SeenUpdateCmd `cmd:"" help:"Merge new ads into seen history JSON."`
}

type SeenDiffCmd struct {
	New   string `name:"new" required:"" help:"Path to new ads JSON file (A)."`
	Seen  string `name:"seen" required:"" help:"Path to seen ads JSON file (B). Missing file is treated as empty."`
	Out   string `name:"out" required:"" help:"Output path for unseen ads JSON file (C)."`
	Stats bool   `name:"stats" help:"Print comparison stats."`
}

type SeenUpdateCmd struct {
	Seen  string `name:"seen" required:"" help:"Path to seen ads JSON file (B). Missing file is treated as empty."`
	Input string `name:"input" required:"" help:"Path to input ads JSON file to merge into seen history."`
	Out   string `name:"out" required:"" help:"Output path for updated seen ads JSON."`
	Stats bool   `name:"stats" help:"Print merge stats."`
}

func (c *SeenDiffCmd) Run(ctx *Context) error {
	newAds, err := seen.ReadAds(c.New)
	if err != nil {
		return fmt.Errorf("read --new: %w", err)
	}
	seenAds, err := seen.ReadAdsAllowMissing(c.Seen)
	if err != nil {
		return fmt.Errorf("read --seen: %w", err)
	}

	unseen, stats := seen.Diff(newAds, seenAds)
	if err := seen.WriteAds(c.Out, unseen); err != nil {
		return fmt.Errorf("write --out: %w", err)
	}

	if !c.Stats {
		return nil
	}
	_, err = fmt.Fprintf(
		ctx.Out,
		"total_new=%d total_seen=%d invalid_skipped=%d unseen_emitted=%d\n",
		stats.TotalNew,
		stats.TotalSeen,
		stats.InvalidSkipped(),
		stats.Unseen,
	)
	return err
}

func (c *SeenUpdateCmd) Run(ctx *Context) error {
	seenAds, err := seen.ReadAdsAllowMissing(c.Seen)
	if err != nil {
		return fmt.Errorf("read --seen: %w", err)
	}
	inputAds, err := seen.ReadAds(c.Input)
	if err != nil {
		return fmt.Errorf("read --input: %w", err)
	}

	merged, stats := seen.Merge(seenAds, inputAds)
	if err := seen.WriteAds(c.Out, merged); err != nil {
		return fmt.Errorf("write --out: %w", err)
	}

	if !c.Stats {
		return nil
	}
	_, err = fmt.Fprintf(
		ctx.Out,
		"total_seen=%d total_input=%d invalid_skipped=%d added=%d total_out=%d\n",
		stats.TotalSeen,
		stats.TotalInput,
		stats.InvalidSkipped(),
		stats.Added,
		stats.TotalOut,
	)
	return err
}
