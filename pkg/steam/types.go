// Package steam provides a client for the Steam Web API owned-games endpoint.
package steam

// OwnedGame is one title from a user's Steam library.
type OwnedGame struct {
	AppID           int64  `json:"appid"`
	Name            string `json:"name"`
	PlaytimeMinutes int    `json:"playtime_forever"` // 0 means never played
}

// ownedGamesResponse mirrors the GetOwnedGames envelope.
type ownedGamesResponse struct {
	Response struct {
		GameCount int         `json:"game_count"`
		Games     []OwnedGame `json:"games"`
	} `json:"response"`
}
