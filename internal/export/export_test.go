package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/jimezsa/adscli/internal/models"
)

var sampleAds = []models.Ad{
	{
		AccountName: "Acme Shoes",
		LibraryID:   "1234567890",
		Title:       "Run faster",
		Media:       "https://video.fbcdn.net/clip.mp4",
		FBLink:      "https://www.facebook.com/acme",
		IGLink:      "https://www.instagram.com/acme",
	},
	{
		AccountName: "Beta",
		LibraryID:   "42",
		Title:       "Walk, don't run",
	},
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteAds(&buf, sampleAds, FormatCSV, WriteOptions{}); err != nil {
		t.Fatalf("WriteAds() error = %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("csv ReadAll() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(records))
	}
	if records[0][0] != "library_id" {
		t.Fatalf("unexpected header: %v", records[0])
	}
	if records[1][5] != "video" || records[2][5] != "none" {
		t.Fatalf("unexpected media kinds: %q %q", records[1][5], records[2][5])
	}
	if records[2][2] != "Walk, don't run" {
		t.Fatalf("title not preserved: %q", records[2][2])
	}
}

func TestWriteTSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteAds(&buf, sampleAds[:1], FormatTSV, WriteOptions{}); err != nil {
		t.Fatalf("WriteAds() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 || !strings.Contains(lines[1], "\tAcme Shoes\t") {
		t.Fatalf("unexpected tsv: %q", buf.String())
	}
}

func TestWriteJSONEmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteAds(&buf, nil, FormatJSON, WriteOptions{}); err != nil {
		t.Fatalf("WriteAds() error = %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Fatalf("WriteAds(nil) = %q, want []", buf.String())
	}

	buf.Reset()
	if err := WriteAds(&buf, sampleAds, FormatJSON, WriteOptions{}); err != nil {
		t.Fatalf("WriteAds() error = %v", err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if decoded[0]["libraryID"] != "1234567890" || decoded[0]["fbLink"] != "https://www.facebook.com/acme" {
		t.Fatalf("wire names not kept: %v", decoded[0])
	}
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteAds(&buf, sampleAds, FormatMarkdown, WriteOptions{}); err != nil {
		t.Fatalf("WriteAds() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"- **Acme Shoes** (library ID 1234567890)",
		"  Media (video): [Open](<https://video.fbcdn.net/clip.mp4>)",
		"  Instagram: [Open](<https://www.instagram.com/acme>)",
		"  Media: " + MultiMediaNote,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("markdown missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	_ = WriteAds(&buf, nil, FormatMarkdown, WriteOptions{})
	if buf.String() != "No results.\n" {
		t.Fatalf("empty markdown = %q", buf.String())
	}
}

func TestWriteTableShortLinks(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteAds(&buf, sampleAds, FormatTable, WriteOptions{LinkStyle: LinkStyleShort}); err != nil {
		t.Fatalf("WriteAds() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "fb facebook.com/acme") {
		t.Fatalf("expected short fb link:\n%s", out)
	}
	if strings.Contains(out, "\x1b]8;;") {
		t.Fatalf("unexpected hyperlink escapes without Hyperlinks option")
	}
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{
		"":         FormatTable,
		"markdown": FormatMarkdown,
		"CSV":      FormatCSV,
		"tsv":      FormatTSV,
		"json":     FormatJSON,
	}
	for input, want := range cases {
		got, err := ParseFormat(input)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v; want %q", input, got, err, want)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatalf("ParseFormat(xml) error = nil, want error")
	}
}
