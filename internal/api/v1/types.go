package v1

import "time"

// Request types

type addGameRequest struct {
	Title      string   `json:"title"`
	Status     string   `json:"status,omitempty"`
	IGDBID     *int64   `json:"igdb_id,omitempty"`
	SteamAppID *int64   `json:"steam_appid,omitempty"`
	Rating     *float64 `json:"rating,omitempty"`
	Summary    string   `json:"summary,omitempty"`
	CoverURL   string   `json:"cover_url,omitempty"`
}

type updateGameRequest struct {
	Status          *string `json:"status,omitempty"`
	PlaytimeMinutes *int    `json:"playtime_minutes,omitempty"`
}

type searchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

// Response types

type gameResponse struct {
	ID              int64      `json:"id"`
	IGDBID          *int64     `json:"igdb_id,omitempty"`
	SteamAppID      *int64     `json:"steam_appid,omitempty"`
	Title           string     `json:"title"`
	Status          string     `json:"status"`
	Rating          *float64   `json:"rating,omitempty"`
	Summary         string     `json:"summary,omitempty"`
	CoverURL        string     `json:"cover_url,omitempty"`
	ReleaseDate     *time.Time `json:"release_date,omitempty"`
	PlaytimeMinutes int        `json:"playtime_minutes"`
	AddedAt         time.Time  `json:"added_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type listGamesResponse struct {
	Items  []gameResponse `json:"items"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

type searchResultResponse struct {
	IGDBID   int64    `json:"igdb_id"`
	Name     string   `json:"name"`
	Year     int      `json:"year,omitempty"`
	Rating   *float64 `json:"rating,omitempty"`
	Summary  string   `json:"summary,omitempty"`
	CoverURL string   `json:"cover_url,omitempty"`
}

type searchResponse struct {
	Query   string                 `json:"query"`
	Results []searchResultResponse `json:"results"`
}

type importResponse struct {
	RunID             string         `json:"run_id"`
	TotalProcessed    int            `json:"total_processed"`
	TotalMatched      int            `json:"total_matched"`
	TotalSkippedOwned int            `json:"total_skipped_owned"`
	TotalNoMatch      int            `json:"total_no_match"`
	TotalImported     int            `json:"total_imported"`
	DurationMS        int64          `json:"duration_ms"`
	Imported          []gameResponse `json:"imported"`
}

type importRunResponse struct {
	RunID             string    `json:"run_id"`
	Source            string    `json:"source"`
	StartedAt         time.Time `json:"started_at"`
	FinishedAt        time.Time `json:"finished_at"`
	TotalProcessed    int       `json:"total_processed"`
	TotalMatched      int       `json:"total_matched"`
	TotalSkippedOwned int       `json:"total_skipped_owned"`
	TotalNoMatch      int       `json:"total_no_match"`
	TotalImported     int       `json:"total_imported"`
}

type statusResponse struct {
	Status     string `json:"status"`
	Version    string `json:"version"`
	TotalGames int    `json:"total_games"`
}
