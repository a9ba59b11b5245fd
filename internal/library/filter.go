package library

// GameFilter specifies criteria for listing games.
type GameFilter struct {
	Status     *GameStatus
	Title      *string // exact match on title
	IGDBID     *int64
	SteamAppID *int64
	Limit      int // 0 = no limit
	Offset     int
}
