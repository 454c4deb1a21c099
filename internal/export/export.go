package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"text/tabwriter"

	"github.com/jimezsa/adscli/internal/models"
	"github.com/muesli/termenv"
)

type Format string

const (
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
	FormatTSV      Format = "tsv"
)

// MultiMediaNote stands in for ads that carry several product images.
const MultiMediaNote = "multiple images, visit the FB ads page to know more"

type WriteOptions struct {
	ColorEnabled bool
	Hyperlinks   bool
	LinkStyle    LinkStyle
	LinkColor    string
}

type LinkStyle string

const (
	LinkStyleShort LinkStyle = "short"
	LinkStyleFull  LinkStyle = "full"
)

func WriteAds(w io.Writer, ads []models.Ad, format Format, opts WriteOptions) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, ads)
	case FormatCSV:
		return writeCSV(w, ads, ',')
	case FormatTSV:
		return writeCSV(w, ads, '\t')
	case FormatMarkdown:
		return writeMarkdown(w, ads)
	default:
		return writeTable(w, ads, opts)
	}
}

func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "tsv":
		return FormatTSV, nil
	case "table", "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("unknown format: %s", value)
	}
}

func writeJSON(w io.Writer, ads []models.Ad) error {
	if ads == nil {
		ads = []models.Ad{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ads)
}

func writeCSV(w io.Writer, ads []models.Ad, delim rune) error {
	writer := csv.NewWriter(w)
	writer.Comma = delim
	if err := writer.Write(csvHeader()); err != nil {
		return err
	}
	for _, ad := range ads {
		if err := writer.Write(csvRow(ad)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeTable(w io.Writer, ads []models.Ad, opts WriteOptions) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(tableHeader(), "\t"))
	output := termenv.NewOutput(w)
	for _, ad := range ads {
		fmt.Fprintln(tw, strings.Join(tableRow(ad, output, opts), "\t"))
	}
	return tw.Flush()
}

func writeMarkdown(w io.Writer, ads []models.Ad) error {
	if len(ads) == 0 {
		_, err := fmt.Fprintln(w, "No results.")
		return err
	}
	for _, ad := range ads {
		lines := []string{
			fmt.Sprintf("- **%s** (library ID %s)", orDash(ad.AccountName), orDash(ad.LibraryID)),
			fmt.Sprintf("  Title: %s", orDash(ad.Title)),
		}
		if ad.Description != "" {
			lines = append(lines, fmt.Sprintf("  Description: %s", safe(ad.Description)))
		}
		switch ad.MediaKind() {
		case models.MediaNone:
			lines = append(lines, fmt.Sprintf("  Media: %s", MultiMediaNote))
		default:
			lines = append(lines, fmt.Sprintf("  Media (%s): [Open](<%s>)", ad.MediaKind(), safe(ad.Media)))
		}
		if link := safe(ad.FBLink); link != "" {
			lines = append(lines, fmt.Sprintf("  Facebook: [Open](<%s>)", link))
		}
		if link := safe(ad.IGLink); link != "" {
			lines = append(lines, fmt.Sprintf("  Instagram: [Open](<%s>)", link))
		}
		for _, line := range lines {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

func csvHeader() []string {
	return []string{
		"library_id",
		"account_name",
		"title",
		"description",
		"media",
		"media_kind",
		"fb_link",
		"ig_link",
	}
}

func csvRow(ad models.Ad) []string {
	return []string{
		ad.LibraryID,
		ad.AccountName,
		ad.Title,
		ad.Description,
		ad.Media,
		string(ad.MediaKind()),
		ad.FBLink,
		ad.IGLink,
	}
}

func safe(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

func orDash(value string) string {
	if value = safe(value); value == "" {
		return "-"
	}
	return value
}

func tableHeader() []string {
	return []string{
		"account",
		"library_id",
		"title",
		"media",
		"links",
	}
}

func tableRow(ad models.Ad, output *termenv.Output, opts WriteOptions) []string {
	media := "-"
	if ad.MediaKind() != models.MediaNone {
		media = string(ad.MediaKind()) + " " + displayLink(ad.Media, output, opts)
	}

	var links []string
	if link := safe(ad.FBLink); link != "" {
		links = append(links, "fb "+displayLink(link, output, opts))
	}
	if link := safe(ad.IGLink); link != "" {
		links = append(links, "ig "+displayLink(link, output, opts))
	}
	linkCell := "-"
	if len(links) > 0 {
		linkCell = strings.Join(links, " ")
	}

	return []string{
		orDash(ad.AccountName),
		orDash(ad.LibraryID),
		truncate(orDash(ad.Title), 60),
		media,
		linkCell,
	}
}

func displayLink(raw string, output *termenv.Output, opts WriteOptions) string {
	link := safe(raw)
	if link == "" {
		return "-"
	}
	display := link
	if opts.LinkStyle == LinkStyleShort {
		display = shortURLLabel(link)
	}
	if opts.ColorEnabled && opts.LinkColor != "" {
		display = output.String(display).Foreground(output.Color(opts.LinkColor)).String()
	}
	if opts.Hyperlinks {
		display = hyperlink(link, display)
	}
	return display
}

func hyperlink(url string, text string) string {
	const esc = "\x1b"
	return esc + "]8;;" + url + esc + "\\" + text + esc + "]8;;" + esc + "\\"
}

func shortURLLabel(raw string) string {
	const maxLen = 40
	label := strings.TrimSpace(raw)
	if parsed, err := url.Parse(raw); err == nil {
		host := strings.TrimPrefix(parsed.Host, "www.")
		if host != "" {
			label = host + parsed.Path
		}
	}
	label = strings.TrimSpace(label)
	if label == "" {
		label = raw
	}
	return truncate(label, maxLen)
}

func truncate(value string, max int) string {
	if max <= 3 || len(value) <= max {
		return value
	}
	return value[:max-3] + "..."
}
