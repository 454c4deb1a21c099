package adsapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/jimezsa/adscli/internal/models"
)

const maxErrorMessage = 240

func decodePage(body []byte) (models.Page, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return models.Page{}, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	rawAds, ok := fields["ads"]
	if !ok {
		return models.Page{}, fmt.Errorf("%w: missing \"ads\" field", ErrFormat)
	}
	rawAds = bytes.TrimSpace(rawAds)
	if len(rawAds) == 0 || rawAds[0] != '[' {
		return models.Page{}, fmt.Errorf("%w: \"ads\" is not a list", ErrFormat)
	}

	var page models.Page
	if err := json.Unmarshal(rawAds, &page.Ads); err != nil {
		return models.Page{}, fmt.Errorf("%w: ads: %v", ErrFormat, err)
	}
	if page.Ads == nil {
		page.Ads = []models.Ad{}
	}

	if rawMore, ok := fields["hasMore"]; ok && !isNull(rawMore) {
		if err := json.Unmarshal(rawMore, &page.HasMore); err != nil {
			return models.Page{}, fmt.Errorf("%w: hasMore: %v", ErrFormat, err)
		}
	}
	return page, nil
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

// describeErrorBody pulls a human readable message out of an error reply:
// the JSON "error" field, the title of an HTML error page, or the raw text.
func describeErrorBody(contentType string, body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}

	if trimmed[0] == '{' {
		var payload struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(trimmed, &payload); err == nil {
			if msg := cleanText(payload.Error); msg != "" {
				return truncate(msg, maxErrorMessage)
			}
			if msg := cleanText(payload.Message); msg != "" {
				return truncate(msg, maxErrorMessage)
			}
		}
	}

	if strings.Contains(strings.ToLower(contentType), "html") || trimmed[0] == '<' {
		if msg := htmlErrorText(trimmed); msg != "" {
			return truncate(msg, maxErrorMessage)
		}
	}

	return truncate(cleanText(string(trimmed)), maxErrorMessage)
}

func htmlErrorText(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	heading := cleanText(doc.Find("title").First().Text())
	if heading == "" {
		heading = cleanText(doc.Find("h1").First().Text())
	}

	var detail string
	doc.Find("body div").Each(func(_ int, s *goquery.Selection) {
		if text := cleanText(s.Text()); text != "" {
			detail = text
		}
	})

	switch {
	case heading != "" && detail != "" && detail != heading:
		return heading + ": " + detail
	case heading != "":
		return heading
	default:
		return cleanText(doc.Find("body").Text())
	}
}

func cleanText(value string) string {
	value = html.UnescapeString(value)
	return strings.Join(strings.Fields(value), " ")
}

func truncate(value string, max int) string {
	if max <= 0 {
		return value
	}
	value = strings.TrimSpace(value)
	if len(value) <= max {
		return value
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(value[cut]) {
		cut--
	}
	return strings.TrimSpace(value[:cut]) + "..."
}
