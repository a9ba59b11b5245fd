package importer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/gamevault/gamevault/internal/library"
	"github.com/gamevault/gamevault/internal/reconcile"
	"github.com/gamevault/gamevault/internal/reconcile/mocks"
	"github.com/gamevault/gamevault/pkg/igdb"
	"github.com/gamevault/gamevault/pkg/match"
	"github.com/gamevault/gamevault/pkg/steam"
)

func newTestReconciler(searcher reconcile.CatalogSearcher) *reconcile.Reconciler {
	return reconcile.New(searcher, match.DefaultPolicy(), reconcile.Options{}, testLogger())
}

func TestImportSteam(t *testing.T) {
	db := setupTestDB(t)
	ctrl := gomock.NewController(t)
	searcher := mocks.NewMockCatalogSearcher(ctrl)

	searcher.EXPECT().Search(gomock.Any(), "portal 2", 5).
		Return([]igdb.Game{{ID: 72, Name: "Portal 2", Rating: 92.1, FirstReleaseDate: 1303171200}}, nil)
	searcher.EXPECT().Search(gomock.Any(), "halflife 3", 5).
		Return(nil, nil)

	src := &stubSteam{games: []steam.OwnedGame{
		{AppID: 620, Name: "Portal 2", PlaytimeMinutes: 734},
		{AppID: 999, Name: "Half-Life 3", PlaytimeMinutes: 0},
	}}

	imp := New(db, src, "7656119", newTestReconciler(searcher), testLogger())

	res, err := imp.ImportSteam(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, 2, res.TotalProcessed)
	assert.Equal(t, 1, res.TotalMatched)
	assert.Equal(t, 1, res.TotalNoMatch)
	require.Len(t, res.Imported, 1)

	g := res.Imported[0]
	assert.Equal(t, "Portal 2", g.Title)
	assert.Equal(t, library.StatusPlayed, g.Status)
	require.NotNil(t, g.IGDBID)
	assert.Equal(t, int64(72), *g.IGDBID)
	require.NotNil(t, g.ReleaseDate)
	assert.Equal(t, 2011, g.ReleaseDate.Year())

	// The game landed in the library store.
	store := library.NewStore(db)
	games, total, err := store.ListGames(library.GameFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "Portal 2", games[0].Title)

	// A history row was recorded.
	runs, err := NewHistoryStore(db).List(0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, res.RunID, runs[0].RunID)
	assert.Equal(t, "steam", runs[0].Source)
	assert.Equal(t, 1, runs[0].TotalImported)
}

func TestImportSteam_SkipsOwnedTitles(t *testing.T) {
	db := setupTestDB(t)
	ctrl := gomock.NewController(t)
	searcher := mocks.NewMockCatalogSearcher(ctrl)

	// Seed the library with the game we are about to re-import.
	store := library.NewStore(db)
	igdbID := int64(72)
	require.NoError(t, store.AddGame(&library.Game{
		IGDBID: &igdbID, Title: "Portal 2", Status: library.StatusPlayed,
	}))

	searcher.EXPECT().Search(gomock.Any(), "portal 2", 5).
		Return([]igdb.Game{{ID: 72, Name: "Portal 2"}}, nil)

	src := &stubSteam{games: []steam.OwnedGame{{AppID: 620, Name: "Portal 2", PlaytimeMinutes: 10}}}
	imp := New(db, src, "7656119", newTestReconciler(searcher), testLogger())

	res, err := imp.ImportSteam(context.Background())
	require.NoError(t, err)

	assert.Empty(t, res.Imported)
	assert.Equal(t, 1, res.TotalSkippedOwned)

	_, total, err := store.ListGames(library.GameFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, total, "no duplicate row may be written")
}

func TestImportSteam_FetchFailure(t *testing.T) {
	db := setupTestDB(t)
	ctrl := gomock.NewController(t)
	searcher := mocks.NewMockCatalogSearcher(ctrl)

	src := &stubSteam{err: steam.ErrPrivateProfile}
	imp := New(db, src, "7656119", newTestReconciler(searcher), testLogger())

	_, err := imp.ImportSteam(context.Background())
	assert.ErrorIs(t, err, ErrFetchLibrary)
}

func TestImportSteam_NotConfigured(t *testing.T) {
	db := setupTestDB(t)

	imp := New(db, nil, "", nil, testLogger())
	_, err := imp.ImportSteam(context.Background())
	assert.ErrorIs(t, err, ErrSteamNotConfigured)
}

func TestImportSteam_ConfigurationErrorPropagates(t *testing.T) {
	db := setupTestDB(t)
	ctrl := gomock.NewController(t)
	searcher := mocks.NewMockCatalogSearcher(ctrl)

	searcher.EXPECT().Search(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, igdb.ErrUnauthorized).AnyTimes()

	src := &stubSteam{games: []steam.OwnedGame{{AppID: 1, Name: "Doom"}}}
	imp := New(db, src, "7656119", newTestReconciler(searcher), testLogger())

	_, err := imp.ImportSteam(context.Background())
	assert.ErrorIs(t, err, reconcile.ErrConfiguration)

	// A failed run must not leave a history row behind.
	runs, listErr := NewHistoryStore(db).List(0)
	require.NoError(t, listErr)
	assert.Empty(t, runs)
}

func TestGameFromDecision_OptionalFields(t *testing.T) {
	d := reconcile.Decision{
		Entry:     steam.OwnedGame{AppID: 10, Name: "Obscure", PlaytimeMinutes: 0},
		Matched:   true,
		Candidate: &igdb.Game{ID: 7, Name: "Obscure"},
		Status:    library.StatusWantToPlay,
	}

	g := gameFromDecision(d)
	assert.Nil(t, g.Rating, "zero rating maps to nil")
	assert.Nil(t, g.ReleaseDate, "zero release date maps to nil")
	assert.Equal(t, "", g.CoverURL)
}
