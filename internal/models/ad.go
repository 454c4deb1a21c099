package models

import "strings"

// Ad is one entry of the ad library as returned by the scrape-ads backend.
type Ad struct {
	AccountName string `json:"accountName"`
	LibraryID   string `json:"libraryID"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Media       string `json:"media,omitempty"`
	FBLink      string `json:"fbLink,omitempty"`
	IGLink      string `json:"igLink,omitempty"`
}

type MediaKind string

const (
	MediaNone  MediaKind = "none"
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// MediaKind reports how the media URL should be presented. Ads that carry
// several product images come back without a media URL.
func (a Ad) MediaKind() MediaKind {
	media := strings.TrimSpace(a.Media)
	if media == "" {
		return MediaNone
	}
	if strings.HasSuffix(media, ".mp4") || strings.Contains(media, "video") {
		return MediaVideo
	}
	return MediaImage
}
