// Package importer drives external library imports end to end: fetch the
// external library, reconcile it against the catalog, and persist the
// accepted matches.
package importer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gamevault/gamevault/internal/library"
	"github.com/gamevault/gamevault/internal/reconcile"
	"github.com/gamevault/gamevault/pkg/steam"
)

// SteamLibrary fetches a user's owned games from Steam.
type SteamLibrary interface {
	GetOwnedGames(ctx context.Context, steamID string) ([]steam.OwnedGame, error)
}

// Importer processes Steam library imports.
type Importer struct {
	steam      SteamLibrary
	steamID    string
	reconciler *reconcile.Reconciler
	library    *library.Store
	history    *HistoryStore
	log        *slog.Logger
}

// New creates a new importer.
func New(db *sql.DB, steamClient SteamLibrary, steamID string, rec *reconcile.Reconciler, log *slog.Logger) *Importer {
	return &Importer{
		steam:      steamClient,
		steamID:    steamID,
		reconciler: rec,
		library:    library.NewStore(db),
		history:    NewHistoryStore(db),
		log:        log,
	}
}

// Result summarizes a completed import run.
type Result struct {
	RunID             string
	Imported          []*library.Game
	TotalProcessed    int
	TotalMatched      int
	TotalSkippedOwned int
	TotalNoMatch      int
	Duration          time.Duration
}

// ImportSteam runs a full Steam library import.
//
// It orchestrates three phases: fetch the owned-games list and snapshot the
// current ownership set, reconcile every entry against the catalog, then
// persist accepted matches. The ownership snapshot is not re-read mid-run;
// rows that became duplicates while the run was in flight are dropped at
// write time instead.
func (i *Importer) ImportSteam(ctx context.Context) (*Result, error) {
	if i.steam == nil || i.steamID == "" {
		return nil, ErrSteamNotConfigured
	}

	started := time.Now()
	i.log.Info("steam import started", "steam_id", i.steamID)

	// Phase 1: fetch external library and ownership snapshot.
	entries, err := i.steam.GetOwnedGames(ctx, i.steamID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchLibrary, err)
	}

	owned, err := i.library.OwnedIGDBIDs()
	if err != nil {
		return nil, fmt.Errorf("ownership snapshot: %w", err)
	}

	// Phase 2: reconcile against the catalog.
	recRes, err := i.reconciler.Run(ctx, entries, owned)
	if err != nil {
		return nil, err
	}

	// Phase 3: persist accepted matches.
	result := &Result{
		RunID:             uuid.NewString(),
		TotalProcessed:    recRes.TotalProcessed,
		TotalMatched:      recRes.TotalMatched,
		TotalSkippedOwned: recRes.TotalSkippedOwned,
		TotalNoMatch:      recRes.TotalNoMatch,
	}
	for _, d := range recRes.Decisions {
		g := gameFromDecision(d)
		if err := i.library.AddGame(g); err != nil {
			if errors.Is(err, library.ErrDuplicate) {
				// The title was added between snapshot and write.
				i.log.Debug("skipping duplicate at write time", "title", g.Title)
				continue
			}
			return nil, fmt.Errorf("persist %q: %w", g.Title, err)
		}
		result.Imported = append(result.Imported, g)
	}
	result.Duration = time.Since(started)

	run := &ImportRun{
		RunID:             result.RunID,
		Source:            "steam",
		StartedAt:         started,
		FinishedAt:        time.Now(),
		TotalProcessed:    result.TotalProcessed,
		TotalMatched:      result.TotalMatched,
		TotalSkippedOwned: result.TotalSkippedOwned,
		TotalNoMatch:      result.TotalNoMatch,
		TotalImported:     len(result.Imported),
	}
	if err := i.history.Add(run); err != nil {
		return nil, fmt.Errorf("record import run: %w", err)
	}

	i.log.Info("steam import complete",
		"run_id", result.RunID,
		"processed", result.TotalProcessed,
		"imported", len(result.Imported),
		"skipped_owned", result.TotalSkippedOwned,
		"no_match", result.TotalNoMatch,
		"duration", result.Duration,
	)
	return result, nil
}

// gameFromDecision converts an accepted match decision into a library row.
func gameFromDecision(d reconcile.Decision) *library.Game {
	c := d.Candidate
	g := &library.Game{
		IGDBID:          &c.ID,
		SteamAppID:      &d.Entry.AppID,
		Title:           c.Name,
		Status:          d.Status,
		Summary:         c.Summary,
		CoverURL:        c.CoverURL("t_cover_big"),
		PlaytimeMinutes: d.Entry.PlaytimeMinutes,
	}
	if c.Rating > 0 {
		g.Rating = &c.Rating
	}
	if c.FirstReleaseDate > 0 {
		released := time.Unix(c.FirstReleaseDate, 0).UTC()
		g.ReleaseDate = &released
	}
	return g
}
