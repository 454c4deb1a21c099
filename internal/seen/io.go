package seen

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jimezsa/adscli/internal/models"
)

// ReadAds reads a JSON array of ads from path.
func ReadAds(path string) ([]models.Ad, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return []models.Ad{}, nil
	}

	var ads []models.Ad
	if err := json.Unmarshal(data, &ads); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if ads == nil {
		return []models.Ad{}, nil
	}
	return ads, nil
}

// ReadAdsAllowMissing reads ads and treats a missing file as empty history.
func ReadAdsAllowMissing(path string) ([]models.Ad, error) {
	ads, err := ReadAds(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []models.Ad{}, nil
		}
		return nil, err
	}
	return ads, nil
}

// WriteAds writes ads as pretty JSON.
func WriteAds(path string, ads []models.Ad) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("path is required")
	}
	if ads == nil {
		ads = []models.Ad{}
	}
	data, err := json.MarshalIndent(ads, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
