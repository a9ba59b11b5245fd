package library

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// mapSQLiteError converts SQLite errors to custom error types.
func mapSQLiteError(err error) error {
	if err == nil {
		return nil
	}
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	// modernc.org/sqlite wraps errors; check error message for constraint violations
	errStr := err.Error()
	if strings.Contains(errStr, "UNIQUE constraint failed") ||
		strings.Contains(errStr, "PRIMARY KEY constraint failed") {
		return ErrDuplicate
	}
	if strings.Contains(errStr, "FOREIGN KEY constraint failed") ||
		strings.Contains(errStr, "CHECK constraint failed") {
		return ErrConstraint
	}
	return err
}

const gameColumns = `id, igdb_id, steam_appid, title, status, rating, summary,
	cover_url, release_date, playtime_minutes, added_at, updated_at`

func scanGame(row interface{ Scan(...any) error }) (*Game, error) {
	g := &Game{}
	err := row.Scan(&g.ID, &g.IGDBID, &g.SteamAppID, &g.Title, &g.Status, &g.Rating,
		&g.Summary, &g.CoverURL, &g.ReleaseDate, &g.PlaytimeMinutes, &g.AddedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return g, nil
}

func addGame(q querier, g *Game) error {
	now := time.Now()
	result, err := q.Exec(`
		INSERT INTO games (igdb_id, steam_appid, title, status, rating, summary,
			cover_url, release_date, playtime_minutes, added_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.IGDBID, g.SteamAppID, g.Title, g.Status, g.Rating, g.Summary,
		g.CoverURL, g.ReleaseDate, g.PlaytimeMinutes, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert game: %w", mapSQLiteError(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	g.ID = id
	g.AddedAt = now
	g.UpdatedAt = now
	return nil
}

// AddGame inserts a new game into the database.
// Sets ID, AddedAt, and UpdatedAt on the struct.
// Returns ErrDuplicate if the catalog ID is already in the library.
func (s *Store) AddGame(g *Game) error { return addGame(s.db, g) }

// AddGame inserts a new game within a transaction.
func (t *Tx) AddGame(g *Game) error { return addGame(t.tx, g) }

func getGame(q querier, id int64) (*Game, error) {
	g, err := scanGame(q.QueryRow(`SELECT `+gameColumns+` FROM games WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("get game %d: %w", id, mapSQLiteError(err))
	}
	return g, nil
}

// GetGame retrieves a game by ID.
// Returns ErrNotFound if the game does not exist.
func (s *Store) GetGame(id int64) (*Game, error) { return getGame(s.db, id) }

// GetGame retrieves a game by ID within a transaction.
func (t *Tx) GetGame(id int64) (*Game, error) { return getGame(t.tx, id) }

func updateGame(q querier, g *Game) error {
	now := time.Now()
	result, err := q.Exec(`
		UPDATE games
		SET igdb_id = ?, steam_appid = ?, title = ?, status = ?, rating = ?,
			summary = ?, cover_url = ?, release_date = ?, playtime_minutes = ?,
			updated_at = ?
		WHERE id = ?`,
		g.IGDBID, g.SteamAppID, g.Title, g.Status, g.Rating, g.Summary,
		g.CoverURL, g.ReleaseDate, g.PlaytimeMinutes, now, g.ID,
	)
	if err != nil {
		return fmt.Errorf("update game %d: %w", g.ID, mapSQLiteError(err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update game %d: %w", g.ID, ErrNotFound)
	}
	g.UpdatedAt = now
	return nil
}

// UpdateGame persists changes to an existing game.
// Returns ErrNotFound if the game does not exist.
func (s *Store) UpdateGame(g *Game) error { return updateGame(s.db, g) }

// UpdateGame persists changes within a transaction.
func (t *Tx) UpdateGame(g *Game) error { return updateGame(t.tx, g) }

func deleteGame(q querier, id int64) error {
	result, err := q.Exec(`DELETE FROM games WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete game %d: %w", id, mapSQLiteError(err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete game %d: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteGame removes a game from the library.
// Returns ErrNotFound if the game does not exist.
func (s *Store) DeleteGame(id int64) error { return deleteGame(s.db, id) }

// DeleteGame removes a game within a transaction.
func (t *Tx) DeleteGame(id int64) error { return deleteGame(t.tx, id) }

func listGames(q querier, f GameFilter) ([]*Game, int, error) {
	var conditions []string
	var args []any

	if f.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, *f.Status)
	}
	if f.Title != nil {
		conditions = append(conditions, "title = ?")
		args = append(args, *f.Title)
	}
	if f.IGDBID != nil {
		conditions = append(conditions, "igdb_id = ?")
		args = append(args, *f.IGDBID)
	}
	if f.SteamAppID != nil {
		conditions = append(conditions, "steam_appid = ?")
		args = append(args, *f.SteamAppID)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := q.QueryRow(`SELECT COUNT(*) FROM games`+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count games: %w", err)
	}

	query := `SELECT ` + gameColumns + ` FROM games` + whereClause + ` ORDER BY title COLLATE NOCASE`
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Limit, f.Offset)
	}

	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list games: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var games []*Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan game: %w", err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate games: %w", err)
	}

	return games, total, nil
}

// ListGames returns games matching the filter plus the total count ignoring
// limit/offset.
func (s *Store) ListGames(f GameFilter) ([]*Game, int, error) { return listGames(s.db, f) }

// ListGames lists games within a transaction.
func (t *Tx) ListGames(f GameFilter) ([]*Game, int, error) { return listGames(t.tx, f) }

// OwnedIGDBIDs returns the set of catalog IDs already in the library.
// Reconciliation takes this snapshot once before a run starts.
func (s *Store) OwnedIGDBIDs() (map[int64]struct{}, error) {
	rows, err := s.db.Query(`SELECT igdb_id FROM games WHERE igdb_id IS NOT NULL`)
	if err != nil {
		return nil, fmt.Errorf("query owned catalog ids: %w", err)
	}
	defer func() { _ = rows.Close() }()

	owned := make(map[int64]struct{})
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan catalog id: %w", err)
		}
		owned[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalog ids: %w", err)
	}
	return owned, nil
}
