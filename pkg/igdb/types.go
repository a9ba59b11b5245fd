// Package igdb provides a client for the IGDB game catalog API.
package igdb

import (
	"strings"
	"time"
)

// Game represents an IGDB catalog record.
type Game struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Summary          string  `json:"summary,omitempty"`
	Rating           float64 `json:"total_rating,omitempty"` // aggregate rating, 0-100
	FirstReleaseDate int64   `json:"first_release_date,omitempty"` // epoch seconds
	Cover            *Cover  `json:"cover,omitempty"`
}

// Cover is the nested cover image reference.
type Cover struct {
	ID  int64  `json:"id"`
	URL string `json:"url"` // protocol-relative, thumbnail sized
}

// Year extracts the release year, or 0 when unknown.
func (g *Game) Year() int {
	if g.FirstReleaseDate == 0 {
		return 0
	}
	return time.Unix(g.FirstReleaseDate, 0).UTC().Year()
}

// CoverURL returns an absolute cover image URL at the given size.
// Size can be: t_thumb, t_cover_small, t_cover_big, t_720p, t_1080p.
func (g *Game) CoverURL(size string) string {
	if g.Cover == nil || g.Cover.URL == "" {
		return ""
	}
	url := strings.Replace(g.Cover.URL, "t_thumb", size, 1)
	if strings.HasPrefix(url, "//") {
		url = "https:" + url
	}
	return url
}
