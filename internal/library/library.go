// Package library manages the user's tracked game collection.
package library

import (
	"time"
)

// GameStatus tracks where a game sits in the user's collection.
type GameStatus string

const (
	StatusWantToPlay GameStatus = "want-to-play"
	StatusPlaying    GameStatus = "playing"
	StatusPlayed     GameStatus = "played"
)

// Valid reports whether s is a known status value.
func (s GameStatus) Valid() bool {
	switch s {
	case StatusWantToPlay, StatusPlaying, StatusPlayed:
		return true
	}
	return false
}

// Game represents one tracked title in the library.
type Game struct {
	ID              int64
	IGDBID          *int64 // nil for manually added titles with no catalog match
	SteamAppID      *int64 // nil unless imported from Steam
	Title           string
	Status          GameStatus
	Rating          *float64 // catalog aggregate rating, 0-100
	Summary         string
	CoverURL        string
	ReleaseDate     *time.Time
	PlaytimeMinutes int
	AddedAt         time.Time
	UpdatedAt       time.Time
}
