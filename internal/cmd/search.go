package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jimezsa/adscli/internal/adsapi"
	"github.com/jimezsa/adscli/internal/export"
	"github.com/jimezsa/adscli/internal/models"
	"github.com/jimezsa/adscli/internal/results"
	"github.com/jimezsa/adscli/internal/search"
	"github.com/jimezsa/adscli/internal/seen"
)

type SearchCmd struct {
	Phrase     string `arg:"" help:"Search phrase."`
	Country    string `help:"Country name, or a part of it that matches one country." env:"ADSCLI_DEFAULT_COUNTRY"`
	Page       int    `help:"Page to start from (1-based)." default:"1"`
	Pages      int    `help:"How many pages to fetch while the backend reports more." default:"1"`
	Format     string `help:"Output format: table, csv, tsv, json, md." enum:",table,csv,tsv,json,md" default:""`
	Links      string `help:"Table link display: short or full." enum:"short,full" default:"short"`
	Output     string `name:"output" short:"o" help:"Write output to a file."`
	Proxies    string `help:"Comma-separated proxy URLs." env:"ADSCLI_PROXIES"`
	Seen       string `help:"Path to seen ads JSON file."`
	NewOnly    bool   `help:"Output only ads missing from --seen."`
	SeenUpdate bool   `help:"Merge fetched ads into the --seen file afterwards."`
}

func (s *SearchCmd) Run(ctx *Context) error {
	if (s.NewOnly || s.SeenUpdate) && strings.TrimSpace(s.Seen) == "" {
		return fmt.Errorf("--new-only and --seen-update require --seen")
	}
	if s.Page < 1 {
		return fmt.Errorf("--page must be >= 1")
	}
	pages := s.Pages
	if pages < 1 {
		pages = 1
	}
	if strings.TrimSpace(s.Output) != "" && pathsEqual(s.Output, s.Seen) {
		return fmt.Errorf("--output path must differ from --seen")
	}

	q, err := search.Form{
		Phrase:  s.Phrase,
		Country: firstNonEmpty(s.Country, ctx.Config.DefaultCountry),
	}.Submit()
	if err != nil {
		return err
	}

	fetcher, err := ctx.fetcher(s.Proxies)
	if err != nil {
		return err
	}
	controller := results.NewController(fetcher, ctx.Logger)
	if err := controller.Start(q); err != nil {
		return err
	}

	stop := startIndicator(ctx, "Searching...")
	fetched, err := collectPages(context.Background(), controller, q, s.Page, pages)
	stop()
	if err != nil {
		return describeFetchError(err)
	}

	ads := flattenPages(fetched)
	if len(ads) == 0 {
		ctx.UI.Warnf("%s", results.MessageNoAds)
	}

	outputAds := ads
	if strings.TrimSpace(s.Seen) != "" {
		seenAds, err := seen.ReadAdsAllowMissing(s.Seen)
		if err != nil {
			return fmt.Errorf("read --seen: %w", err)
		}
		unseen, _ := seen.Diff(ads, seenAds)
		if s.NewOnly {
			outputAds = unseen
		}
		if s.SeenUpdate {
			merged, _ := seen.Merge(seenAds, unseen)
			if err := seen.WriteAds(s.Seen, merged); err != nil {
				return fmt.Errorf("write --seen: %w", err)
			}
		}
	}

	if err := s.write(ctx, outputAds); err != nil {
		return err
	}

	printSearchSummary(ctx, q, fetched)
	return nil
}

func (s *SearchCmd) write(ctx *Context, ads []models.Ad) error {
	format, err := resolveFormat(ctx, s.Format, s.Output)
	if err != nil {
		return err
	}

	writer := ctx.Out
	if s.Output != "" {
		file, err := os.Create(s.Output)
		if err != nil {
			return err
		}
		defer file.Close()
		writer = file
	}

	return export.WriteAds(writer, ads, format, writeOptions(ctx, s.Links, isTTY(writer)))
}

func writeOptions(ctx *Context, links string, tty bool) export.WriteOptions {
	colorEnabled := ctx.UI != nil && ctx.UI.ColorEnabled
	opts := export.WriteOptions{
		ColorEnabled: colorEnabled,
		Hyperlinks:   colorEnabled && tty,
		LinkStyle:    export.LinkStyleShort,
	}
	if ctx.UI != nil {
		opts.LinkColor = ctx.UI.Palette.Link
	}
	if strings.EqualFold(links, string(export.LinkStyleFull)) {
		opts.LinkStyle = export.LinkStyleFull
	}
	return opts
}

// collectPages fetches up to count pages starting at start, stopping early
// once the backend reports no more results.
func collectPages(ctx context.Context, controller *results.Controller, q models.Query, start, count int) ([]models.Page, error) {
	pages := make([]models.Page, 0, count)
	for number := start; len(pages) < count; number++ {
		page, err := controller.EnsurePage(ctx, q, number)
		if err != nil {
			return pages, err
		}
		pages = append(pages, page)
		if !page.HasMore {
			break
		}
	}
	return pages, nil
}

func flattenPages(pages []models.Page) []models.Ad {
	var ads []models.Ad
	for _, page := range pages {
		ads = append(ads, page.Ads...)
	}
	return ads
}

// describeFetchError puts the user-facing message in front of the cause.
func describeFetchError(err error) error {
	switch {
	case errors.Is(err, adsapi.ErrFormat):
		return fmt.Errorf("%s (%w)", results.MessageBadFormat, err)
	case errors.Is(err, adsapi.ErrTransport):
		return fmt.Errorf("%s (%w)", results.MessageFetchFailed, err)
	default:
		return err
	}
}

func printSearchSummary(ctx *Context, q models.Query, pages []models.Page) {
	if ctx == nil || ctx.Err == nil {
		return
	}
	_, _ = fmt.Fprintf(ctx.Err, "%s\n", formatSearchSummary(q, pages))
}

func formatSearchSummary(q models.Query, pages []models.Page) string {
	if len(pages) == 0 {
		return fmt.Sprintf("summary: phrase=%q country=%q ads=0 pages=none", q.Phrase, q.Country)
	}
	first := pages[0].Number
	last := pages[len(pages)-1]
	return fmt.Sprintf(
		"summary: phrase=%q country=%q ads=%d pages=%d-%d has_more=%t",
		q.Phrase,
		q.Country,
		len(flattenPages(pages)),
		first,
		last.Number,
		last.HasMore,
	)
}

func resolveFormat(ctx *Context, format string, outputPath string) (export.Format, error) {
	if ctx.JSONOutput {
		return export.FormatJSON, nil
	}
	if ctx.PlainText {
		return export.FormatTSV, nil
	}
	if format != "" {
		return export.ParseFormat(format)
	}
	if outputPath != "" {
		return export.FormatCSV, nil
	}
	if isTTY(ctx.Out) {
		return export.FormatTable, nil
	}
	return export.FormatCSV, nil
}

func pathsEqual(a, b string) bool {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return false
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA == nil && errB == nil {
		return absA == absB
	}
	return filepath.Clean(a) == filepath.Clean(b)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
