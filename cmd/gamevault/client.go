package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client wraps HTTP calls to the gamevault server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new gamevault API client.
func NewClient(serverURL string) *Client {
	return &Client{
		baseURL: serverURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Minute, // imports can take a while
		},
	}
}

func (c *Client) get(path string, result any) error {
	resp, err := c.httpClient.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return serverError(resp)
	}

	return json.NewDecoder(resp.Body).Decode(result)
}

func (c *Client) post(path string, body any, result any) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal error: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	resp, err := c.httpClient.Post(c.baseURL+path, "application/json", reader)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return serverError(resp)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

func (c *Client) put(path string, body any, result any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	req, err := http.NewRequest(http.MethodPut, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("request creation failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return serverError(resp)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

func (c *Client) delete(path string) error {
	req, err := http.NewRequest(http.MethodDelete, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("request creation failed: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return serverError(resp)
	}

	return nil
}

// serverError extracts the API error message when possible.
func serverError(resp *http.Response) error {
	var errResp struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
		return fmt.Errorf("server error %d: %s", resp.StatusCode, errResp.Error)
	}
	return fmt.Errorf("server error %d", resp.StatusCode)
}

// API response types (mirror server types)

type StatusResponse struct {
	Status     string `json:"status"`
	Version    string `json:"version"`
	TotalGames int    `json:"total_games"`
}

type GameResponse struct {
	ID              int64    `json:"id"`
	IGDBID          *int64   `json:"igdb_id,omitempty"`
	SteamAppID      *int64   `json:"steam_appid,omitempty"`
	Title           string   `json:"title"`
	Status          string   `json:"status"`
	Rating          *float64 `json:"rating,omitempty"`
	Summary         string   `json:"summary,omitempty"`
	CoverURL        string   `json:"cover_url,omitempty"`
	ReleaseDate     *string  `json:"release_date,omitempty"`
	PlaytimeMinutes int      `json:"playtime_minutes"`
	AddedAt         string   `json:"added_at"`
	UpdatedAt       string   `json:"updated_at"`
}

type ListGamesResponse struct {
	Items  []GameResponse `json:"items"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

type SearchResultResponse struct {
	IGDBID   int64    `json:"igdb_id"`
	Name     string   `json:"name"`
	Year     int      `json:"year,omitempty"`
	Rating   *float64 `json:"rating,omitempty"`
	Summary  string   `json:"summary,omitempty"`
	CoverURL string   `json:"cover_url,omitempty"`
}

type SearchResponse struct {
	Query   string                 `json:"query"`
	Results []SearchResultResponse `json:"results"`
}

type ImportResponse struct {
	RunID             string         `json:"run_id"`
	TotalProcessed    int            `json:"total_processed"`
	TotalMatched      int            `json:"total_matched"`
	TotalSkippedOwned int            `json:"total_skipped_owned"`
	TotalNoMatch      int            `json:"total_no_match"`
	TotalImported     int            `json:"total_imported"`
	DurationMS        int64          `json:"duration_ms"`
	Imported          []GameResponse `json:"imported"`
}

type ImportRunResponse struct {
	RunID             string `json:"run_id"`
	Source            string `json:"source"`
	StartedAt         string `json:"started_at"`
	FinishedAt        string `json:"finished_at"`
	TotalProcessed    int    `json:"total_processed"`
	TotalMatched      int    `json:"total_matched"`
	TotalSkippedOwned int    `json:"total_skipped_owned"`
	TotalNoMatch      int    `json:"total_no_match"`
	TotalImported     int    `json:"total_imported"`
}

// API methods

func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.get("/api/v1/status", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Games(status string, limit int) (*ListGamesResponse, error) {
	params := url.Values{}
	if status != "" {
		params.Set("status", status)
	}
	params.Set("limit", fmt.Sprintf("%d", limit))

	var resp ListGamesResponse
	if err := c.get("/api/v1/games?"+params.Encode(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Game(id int64) (*GameResponse, error) {
	var resp GameResponse
	if err := c.get(fmt.Sprintf("/api/v1/games/%d", id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) AddGame(title, status string, igdbID *int64) (*GameResponse, error) {
	req := map[string]any{"title": title}
	if status != "" {
		req["status"] = status
	}
	if igdbID != nil {
		req["igdb_id"] = *igdbID
	}

	var resp GameResponse
	if err := c.post("/api/v1/games", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) SetGameStatus(id int64, status string) (*GameResponse, error) {
	req := map[string]any{"status": status}

	var resp GameResponse
	if err := c.put(fmt.Sprintf("/api/v1/games/%d", id), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) DeleteGame(id int64) error {
	return c.delete(fmt.Sprintf("/api/v1/games/%d", id))
}

func (c *Client) Search(query string, limit int) (*SearchResponse, error) {
	req := map[string]any{"query": query}
	if limit > 0 {
		req["limit"] = limit
	}

	var resp SearchResponse
	if err := c.post("/api/v1/search", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ImportSteam() (*ImportResponse, error) {
	var resp ImportResponse
	if err := c.post("/api/v1/import/steam", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ImportHistory(limit int) ([]ImportRunResponse, error) {
	var resp []ImportRunResponse
	if err := c.get(fmt.Sprintf("/api/v1/import/history?limit=%d", limit), &resp); err != nil {
		return nil, err
	}
	return resp, nil
}
