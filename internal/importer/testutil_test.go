// internal/importer/testutil_test.go
package importer

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/gamevault/gamevault/internal/migrations"
	"github.com/gamevault/gamevault/pkg/steam"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return db
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubSteam returns a fixed owned-games list.
type stubSteam struct {
	games []steam.OwnedGame
	err   error
}

func (s *stubSteam) GetOwnedGames(ctx context.Context, steamID string) ([]steam.OwnedGame, error) {
	return s.games, s.err
}
