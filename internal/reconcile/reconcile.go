// Package reconcile matches an externally sourced game library against the
// catalog, deciding which titles to import and which to skip.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gamevault/gamevault/internal/library"
	"github.com/gamevault/gamevault/pkg/igdb"
	"github.com/gamevault/gamevault/pkg/match"
	"github.com/gamevault/gamevault/pkg/steam"
)

//go:generate mockgen -destination mocks/searcher.go -package mocks github.com/gamevault/gamevault/internal/reconcile CatalogSearcher

// CatalogSearcher queries the game catalog by free-text title.
type CatalogSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]igdb.Game, error)
}

// SkipReason explains why an entry was not imported.
type SkipReason string

const (
	SkipNone         SkipReason = ""
	SkipAlreadyOwned SkipReason = "already-owned"
	SkipNoMatch      SkipReason = "no-suitable-match"
)

// Decision records the outcome of reconciling one external entry.
type Decision struct {
	Entry      steam.OwnedGame
	Matched    bool
	Candidate  *igdb.Game // set iff Matched
	Status     library.GameStatus
	SkipReason SkipReason
}

// Result is the outcome of a full reconciliation run.
type Result struct {
	// Decisions holds only the matched entries, in input order.
	Decisions []Decision

	TotalProcessed    int
	TotalMatched      int
	TotalSkippedOwned int
	TotalNoMatch      int
}

// Options tune batching and search behavior. The defaults follow the
// catalog's rate limits; they are policy, not structure.
type Options struct {
	BatchSize   int           // entries searched concurrently per batch
	BatchDelay  time.Duration // pause between consecutive batches
	SearchLimit int           // candidates requested per search
}

// DefaultOptions returns the stock batching parameters.
func DefaultOptions() Options {
	return Options{
		BatchSize:   10,
		BatchDelay:  100 * time.Millisecond,
		SearchLimit: 5,
	}
}

// Reconciler drives end-to-end reconciliation of an external library.
type Reconciler struct {
	searcher CatalogSearcher
	policy   match.Policy
	opts     Options
	log      *slog.Logger

	// sleep is replaceable so tests can count inter-batch delays.
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a reconciler. Zero-value option fields fall back to defaults.
func New(searcher CatalogSearcher, policy match.Policy, opts Options, log *slog.Logger) *Reconciler {
	def := DefaultOptions()
	if opts.BatchSize <= 0 {
		opts.BatchSize = def.BatchSize
	}
	if opts.BatchDelay <= 0 {
		opts.BatchDelay = def.BatchDelay
	}
	if opts.SearchLimit <= 0 {
		opts.SearchLimit = def.SearchLimit
	}
	if log == nil {
		log = slog.Default()
	}
	return &Reconciler{
		searcher: searcher,
		policy:   policy,
		opts:     opts,
		log:      log,
		sleep:    sleepCtx,
	}
}

// Run reconciles entries against the catalog.
//
// owned is a snapshot of catalog IDs already in the library, taken once
// before the run; it is never re-checked mid-run. Entries are processed in
// fixed-size batches with all searches inside a batch issued concurrently,
// and a fixed delay between consecutive batches. Per-entry search failures
// degrade to no-suitable-match; only a missing or unauthenticated catalog
// capability aborts the run, with ErrConfiguration.
func (r *Reconciler) Run(ctx context.Context, entries []steam.OwnedGame, owned map[int64]struct{}) (*Result, error) {
	if r.searcher == nil {
		return nil, fmt.Errorf("%w: no searcher configured", ErrConfiguration)
	}

	decisions := make([]Decision, len(entries))

	for start := 0; start < len(entries); start += r.opts.BatchSize {
		if start > 0 {
			if err := r.sleep(ctx, r.opts.BatchDelay); err != nil {
				return nil, err
			}
		}

		end := min(start+r.opts.BatchSize, len(entries))
		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			g.Go(func() error {
				d, err := r.reconcileOne(gctx, entries[i], owned)
				if err != nil {
					return err
				}
				// Each goroutine writes its own slot; no locking needed.
				decisions[i] = d
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	result := &Result{TotalProcessed: len(entries)}
	for _, d := range decisions {
		switch {
		case d.Matched:
			result.TotalMatched++
			result.Decisions = append(result.Decisions, d)
		case d.SkipReason == SkipAlreadyOwned:
			result.TotalSkippedOwned++
		default:
			result.TotalNoMatch++
		}
	}

	r.log.Info("reconciliation complete",
		"processed", result.TotalProcessed,
		"matched", result.TotalMatched,
		"skipped_owned", result.TotalSkippedOwned,
		"no_match", result.TotalNoMatch,
	)
	return result, nil
}

// reconcileOne resolves a single external entry. The returned error is
// non-nil only for run-fatal conditions.
func (r *Reconciler) reconcileOne(ctx context.Context, entry steam.OwnedGame, owned map[int64]struct{}) (Decision, error) {
	query := match.Normalize(entry.Name)

	candidates, err := r.searcher.Search(ctx, query, r.opts.SearchLimit)
	if err != nil {
		if errors.Is(err, igdb.ErrUnauthorized) {
			return Decision{}, fmt.Errorf("%w: %v", ErrConfiguration, err)
		}
		r.log.Warn("catalog search failed", "title", entry.Name, "error", err)
		return Decision{Entry: entry, SkipReason: SkipNoMatch}, nil
	}

	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.Name
	}

	res := match.Best(entry.Name, names, r.policy)
	if res.Kind == match.MatchNone {
		return Decision{Entry: entry, SkipReason: SkipNoMatch}, nil
	}

	chosen := candidates[res.Index]
	if _, ok := owned[chosen.ID]; ok {
		r.log.Debug("already owned", "title", entry.Name, "igdb_id", chosen.ID)
		return Decision{Entry: entry, SkipReason: SkipAlreadyOwned}, nil
	}

	r.log.Debug("matched",
		"title", entry.Name,
		"candidate", chosen.Name,
		"igdb_id", chosen.ID,
		"kind", res.Kind.String(),
		"score", res.Score,
	)
	return Decision{
		Entry:     entry,
		Matched:   true,
		Candidate: &chosen,
		Status:    derivedStatus(entry),
	}, nil
}

// derivedStatus maps playtime onto a library status: anything played at all
// is played, otherwise want-to-play.
func derivedStatus(entry steam.OwnedGame) library.GameStatus {
	if entry.PlaytimeMinutes > 0 {
		return library.StatusPlayed
	}
	return library.StatusWantToPlay
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
