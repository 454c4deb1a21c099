package seen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jimezsa/adscli/internal/models"
)

func TestReadWriteAds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ads.json")

	ads := []models.Ad{{LibraryID: "1", AccountName: "Acme", Title: "Run"}}
	if err := WriteAds(path, ads); err != nil {
		t.Fatalf("WriteAds() error = %v", err)
	}

	got, err := ReadAds(path)
	if err != nil {
		t.Fatalf("ReadAds() error = %v", err)
	}
	if len(got) != 1 || got[0] != ads[0] {
		t.Fatalf("unexpected ads read back: %+v", got)
	}
}

func TestReadAdsAllowMissing(t *testing.T) {
	got, err := ReadAdsAllowMissing(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("ReadAdsAllowMissing() error = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty history for missing file, got %d", len(got))
	}
}

func TestReadAdsRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ads.json")
	if err := os.WriteFile(path, []byte(`{"ads":`), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := ReadAdsAllowMissing(path); err == nil {
		t.Fatalf("ReadAdsAllowMissing() error = nil, want parse error")
	}
}
