package seen

import (
	"strings"

	"github.com/jimezsa/adscli/internal/models"
)

// DiffStats captures stats for A-B unseen filtering.
type DiffStats struct {
	TotalNew    int
	TotalSeen   int
	InvalidNew  int
	InvalidSeen int
	Unseen      int
}

// InvalidSkipped returns the total invalid records skipped during comparison.
func (s DiffStats) InvalidSkipped() int {
	return s.InvalidNew + s.InvalidSeen
}

// MergeStats captures stats for seen history updates.
type MergeStats struct {
	TotalSeen    int
	TotalInput   int
	InvalidSeen  int
	InvalidInput int
	Added        int
	TotalOut     int
}

// InvalidSkipped returns the total invalid records skipped during merge.
func (s MergeStats) InvalidSkipped() int {
	return s.InvalidSeen + s.InvalidInput
}

// Normalize trims a library ID and drops the "Library ID:" label the ad
// library prints in front of it.
func Normalize(value string) string {
	value = strings.TrimSpace(value)
	if idx := strings.LastIndex(value, ":"); idx >= 0 {
		value = value[idx+1:]
	}
	return strings.Join(strings.Fields(value), "")
}

// Key returns the normalized library ID of an ad.
func Key(ad models.Ad) (string, bool) {
	key := Normalize(ad.LibraryID)
	if key == "" {
		return "", false
	}
	return key, true
}

// Diff returns ads from newAds whose library ID is not in seenAds.
func Diff(newAds []models.Ad, seenAds []models.Ad) ([]models.Ad, DiffStats) {
	stats := DiffStats{
		TotalNew:  len(newAds),
		TotalSeen: len(seenAds),
	}

	seenKeys := make(map[string]struct{}, len(seenAds))
	for _, ad := range seenAds {
		key, ok := Key(ad)
		if !ok {
			stats.InvalidSeen++
			continue
		}
		seenKeys[key] = struct{}{}
	}

	newKeys := make(map[string]struct{}, len(newAds))
	unseen := make([]models.Ad, 0, len(newAds))
	for _, ad := range newAds {
		key, ok := Key(ad)
		if !ok {
			stats.InvalidNew++
			continue
		}
		if _, exists := newKeys[key]; exists {
			continue
		}
		newKeys[key] = struct{}{}
		if _, exists := seenKeys[key]; exists {
			continue
		}
		unseen = append(unseen, ad)
	}

	stats.Unseen = len(unseen)
	return unseen, stats
}

// Merge appends ads with new library IDs to the seen history.
// Existing seen entries win collisions.
func Merge(existingSeen []models.Ad, inputAds []models.Ad) ([]models.Ad, MergeStats) {
	stats := MergeStats{
		TotalSeen:  len(existingSeen),
		TotalInput: len(inputAds),
	}

	keys := make(map[string]struct{}, len(existingSeen)+len(inputAds))
	out := make([]models.Ad, 0, len(existingSeen)+len(inputAds))

	for _, ad := range existingSeen {
		key, ok := Key(ad)
		if !ok {
			stats.InvalidSeen++
			out = append(out, ad)
			continue
		}
		if _, exists := keys[key]; exists {
			continue
		}
		keys[key] = struct{}{}
		out = append(out, ad)
	}

	for _, ad := range inputAds {
		key, ok := Key(ad)
		if !ok {
			stats.InvalidInput++
			continue
		}
		if _, exists := keys[key]; exists {
			continue
		}
		keys[key] = struct{}{}
		out = append(out, ad)
		stats.Added++
	}

	stats.TotalOut = len(out)
	return out, stats
}
