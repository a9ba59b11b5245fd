package steam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.steampowered.com"
const defaultCacheTTL = 15 * time.Minute

// Sentinel errors for Steam API responses.
var (
	// ErrUnauthorized is returned when the API key is rejected.
	ErrUnauthorized = errors.New("unauthorized: invalid Steam API key")

	// ErrPrivateProfile is returned when the profile's game list is not
	// visible. Steam reports this as an empty response envelope.
	ErrPrivateProfile = errors.New("steam profile is private or has no games")
)

// Client is a Steam Web API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	cache      *cache
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithCacheTTL sets the owned-games cache TTL.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = newCache(ttl)
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new Steam client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		cache: newCache(defaultCacheTTL),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetOwnedGames fetches the user's owned games with names and playtime.
// Responses are cached per steamID for the configured TTL.
func (c *Client) GetOwnedGames(ctx context.Context, steamID string) ([]OwnedGame, error) {
	if games, ok := c.cache.get(steamID); ok {
		return games, nil
	}

	params := url.Values{
		"key":                       {c.apiKey},
		"steamid":                   {steamID},
		"include_appinfo":           {"1"},
		"include_played_free_games": {"1"},
		"format":                    {"json"},
	}
	reqURL := fmt.Sprintf("%s/IPlayerService/GetOwnedGames/v0001/?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("steam API error: %s", resp.Status)
	}

	var ownedResp ownedGamesResponse
	if err := json.NewDecoder(resp.Body).Decode(&ownedResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	// Private profiles yield an empty envelope with no games array.
	if ownedResp.Response.Games == nil && ownedResp.Response.GameCount == 0 {
		return nil, ErrPrivateProfile
	}

	c.cache.set(steamID, ownedResp.Response.Games)
	return ownedResp.Response.Games, nil
}
