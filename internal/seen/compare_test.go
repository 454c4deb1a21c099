package seen

import (
	"testing"

	"github.com/jimezsa/adscli/internal/models"
)

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"  123456 ":            "123456",
		"Library ID: 98 76 54": "987654",
		"":                     "",
	}
	for input, want := range cases {
		if got := Normalize(input); got != want {
			t.Fatalf("Normalize(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestKey(t *testing.T) {
	got, ok := Key(models.Ad{LibraryID: "Library ID: 111"})
	if !ok || got != "111" {
		t.Fatalf("Key() = %q, %v; want 111, true", got, ok)
	}
	if _, ok := Key(models.Ad{AccountName: "Acme"}); ok {
		t.Fatalf("expected invalid key for ad without library ID")
	}
}

func TestDiff(t *testing.T) {
	newAds := []models.Ad{
		{LibraryID: "1", Title: "seen already"},
		{LibraryID: "2", Title: "fresh"},
		{LibraryID: " 2 ", Title: "fresh duplicate"},
		{Title: "no id"},
	}
	seenAds := []models.Ad{
		{LibraryID: "Library ID: 1"},
		{AccountName: "broken"},
	}

	unseen, stats := Diff(newAds, seenAds)
	if len(unseen) != 1 || unseen[0].Title != "fresh" {
		t.Fatalf("unexpected unseen ads: %+v", unseen)
	}
	if stats.TotalNew != 4 || stats.TotalSeen != 2 {
		t.Fatalf("unexpected totals: %+v", stats)
	}
	if stats.InvalidSkipped() != 2 {
		t.Fatalf("InvalidSkipped = %d, want 2", stats.InvalidSkipped())
	}
	if stats.Unseen != 1 {
		t.Fatalf("Unseen = %d, want 1", stats.Unseen)
	}
}

func TestMergeAndIdempotency(t *testing.T) {
	existing := []models.Ad{
		{LibraryID: "1", Title: "original"},
		{Title: "kept without id"},
	}
	input := []models.Ad{
		{LibraryID: "1", Title: "collision"},
		{LibraryID: "2", Title: "new"},
		{Title: "dropped without id"},
	}

	merged, stats := Merge(existing, input)
	if len(merged) != 3 {
		t.Fatalf("expected merged len=3, got %d", len(merged))
	}
	if merged[0].Title != "original" {
		t.Fatalf("existing entry should win collisions, got %q", merged[0].Title)
	}
	if stats.Added != 1 || stats.InvalidSeen != 1 || stats.InvalidInput != 1 || stats.TotalOut != 3 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	again, statsAgain := Merge(merged, input)
	if len(again) != len(merged) || statsAgain.Added != 0 {
		t.Fatalf("expected idempotent merge, got len=%d added=%d", len(again), statsAgain.Added)
	}
}
