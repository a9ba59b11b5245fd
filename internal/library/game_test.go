package library

import (
	"errors"
	"testing"
	"time"
)

func TestStore_AddGame(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	g := &Game{
		IGDBID:          ptr(int64(72)),
		SteamAppID:      ptr(int64(620)),
		Title:           "Portal 2",
		Status:          StatusPlayed,
		Rating:          ptr(92.1),
		Summary:         "Sequel to the acclaimed Portal.",
		PlaytimeMinutes: 734,
	}

	before := time.Now()
	if err := store.AddGame(g); err != nil {
		t.Fatalf("AddGame: %v", err)
	}
	after := time.Now()

	if g.ID == 0 {
		t.Error("ID should be set after AddGame")
	}
	if g.AddedAt.Before(before) || g.AddedAt.After(after) {
		t.Errorf("AddedAt %v not in expected range [%v, %v]", g.AddedAt, before, after)
	}
	if g.UpdatedAt.Before(before) || g.UpdatedAt.After(after) {
		t.Errorf("UpdatedAt %v not in expected range [%v, %v]", g.UpdatedAt, before, after)
	}
}

func TestStore_AddGame_DuplicateCatalogID(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	g := &Game{IGDBID: ptr(int64(72)), Title: "Portal 2", Status: StatusPlayed}
	if err := store.AddGame(g); err != nil {
		t.Fatalf("AddGame: %v", err)
	}

	dup := &Game{IGDBID: ptr(int64(72)), Title: "Portal 2 again", Status: StatusWantToPlay}
	err := store.AddGame(dup)
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestStore_AddGame_InvalidStatus(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	g := &Game{Title: "Broken", Status: GameStatus("abandoned")}
	err := store.AddGame(g)
	if !errors.Is(err, ErrConstraint) {
		t.Errorf("expected ErrConstraint, got %v", err)
	}
}

func TestStore_GetGame(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	g := &Game{IGDBID: ptr(int64(1020)), Title: "Grand Theft Auto V", Status: StatusPlaying}
	if err := store.AddGame(g); err != nil {
		t.Fatalf("AddGame: %v", err)
	}

	got, err := store.GetGame(g.ID)
	if err != nil {
		t.Fatalf("GetGame: %v", err)
	}
	if got.Title != "Grand Theft Auto V" {
		t.Errorf("Title = %q", got.Title)
	}
	if got.IGDBID == nil || *got.IGDBID != 1020 {
		t.Errorf("IGDBID = %v", got.IGDBID)
	}
	if got.Status != StatusPlaying {
		t.Errorf("Status = %q", got.Status)
	}
}

func TestStore_GetGame_NotFound(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	_, err := store.GetGame(999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_UpdateGame(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	g := &Game{Title: "Hades", Status: StatusWantToPlay}
	if err := store.AddGame(g); err != nil {
		t.Fatalf("AddGame: %v", err)
	}

	g.Status = StatusPlayed
	g.PlaytimeMinutes = 3600
	if err := store.UpdateGame(g); err != nil {
		t.Fatalf("UpdateGame: %v", err)
	}

	got, err := store.GetGame(g.ID)
	if err != nil {
		t.Fatalf("GetGame: %v", err)
	}
	if got.Status != StatusPlayed {
		t.Errorf("Status = %q, want played", got.Status)
	}
	if got.PlaytimeMinutes != 3600 {
		t.Errorf("PlaytimeMinutes = %d, want 3600", got.PlaytimeMinutes)
	}
}

func TestStore_UpdateGame_NotFound(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	g := &Game{ID: 404, Title: "Ghost", Status: StatusPlayed}
	if err := store.UpdateGame(g); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_DeleteGame(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	g := &Game{Title: "Celeste", Status: StatusPlayed}
	if err := store.AddGame(g); err != nil {
		t.Fatalf("AddGame: %v", err)
	}

	if err := store.DeleteGame(g.ID); err != nil {
		t.Fatalf("DeleteGame: %v", err)
	}
	if _, err := store.GetGame(g.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestStore_ListGames(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	seed := []*Game{
		{Title: "Celeste", Status: StatusPlayed},
		{Title: "Baba Is You", Status: StatusWantToPlay},
		{Title: "Animal Well", Status: StatusWantToPlay},
	}
	for _, g := range seed {
		if err := store.AddGame(g); err != nil {
			t.Fatalf("AddGame %q: %v", g.Title, err)
		}
	}

	want := StatusWantToPlay
	games, total, err := store.ListGames(GameFilter{Status: &want})
	if err != nil {
		t.Fatalf("ListGames: %v", err)
	}
	if total != 2 || len(games) != 2 {
		t.Fatalf("got %d games (total %d), want 2", len(games), total)
	}
	// Ordered by title, case-insensitive.
	if games[0].Title != "Animal Well" || games[1].Title != "Baba Is You" {
		t.Errorf("unexpected order: %q, %q", games[0].Title, games[1].Title)
	}
}

func TestStore_ListGames_Pagination(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	for _, title := range []string{"A", "B", "C", "D"} {
		if err := store.AddGame(&Game{Title: title, Status: StatusPlayed}); err != nil {
			t.Fatalf("AddGame: %v", err)
		}
	}

	games, total, err := store.ListGames(GameFilter{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("ListGames: %v", err)
	}
	if total != 4 {
		t.Errorf("total = %d, want 4", total)
	}
	if len(games) != 2 || games[0].Title != "C" {
		t.Errorf("unexpected page: %+v", games)
	}
}

func TestStore_OwnedIGDBIDs(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	if err := store.AddGame(&Game{IGDBID: ptr(int64(72)), Title: "Portal 2", Status: StatusPlayed}); err != nil {
		t.Fatalf("AddGame: %v", err)
	}
	if err := store.AddGame(&Game{Title: "Homebrew Game", Status: StatusPlayed}); err != nil {
		t.Fatalf("AddGame: %v", err)
	}

	owned, err := store.OwnedIGDBIDs()
	if err != nil {
		t.Fatalf("OwnedIGDBIDs: %v", err)
	}
	if len(owned) != 1 {
		t.Fatalf("got %d ids, want 1", len(owned))
	}
	if _, ok := owned[72]; !ok {
		t.Error("expected catalog id 72 in ownership set")
	}
}

func TestTx_RollbackDiscardsChanges(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	tx, err := store.Begin()
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	g := &Game{Title: "Outer Wilds", Status: StatusWantToPlay}
	if err := tx.AddGame(g); err != nil {
		t.Fatalf("AddGame in tx: %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("Rollback: %v", err)
	}

	_, total, err := store.ListGames(GameFilter{})
	if err != nil {
		t.Fatalf("ListGames: %v", err)
	}
	if total != 0 {
		t.Errorf("total = %d after rollback, want 0", total)
	}
}
