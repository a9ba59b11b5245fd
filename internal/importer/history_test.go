package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryStore_AddAndList(t *testing.T) {
	db := setupTestDB(t)
	store := NewHistoryStore(db)

	first := &ImportRun{
		RunID:          "run-1",
		Source:         "steam",
		StartedAt:      time.Now().Add(-2 * time.Hour),
		FinishedAt:     time.Now().Add(-2 * time.Hour).Add(30 * time.Second),
		TotalProcessed: 100,
		TotalMatched:   80,
		TotalImported:  78,
	}
	second := &ImportRun{
		RunID:          "run-2",
		Source:         "steam",
		StartedAt:      time.Now().Add(-time.Hour),
		FinishedAt:     time.Now().Add(-time.Hour).Add(10 * time.Second),
		TotalProcessed: 5,
		TotalMatched:   2,
		TotalImported:  2,
	}
	require.NoError(t, store.Add(first))
	require.NoError(t, store.Add(second))
	assert.NotZero(t, first.ID)

	runs, err := store.List(0)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Most recent first.
	assert.Equal(t, "run-2", runs[0].RunID)
	assert.Equal(t, "run-1", runs[1].RunID)
	assert.Equal(t, 80, runs[1].TotalMatched)
}

func TestHistoryStore_ListLimit(t *testing.T) {
	db := setupTestDB(t)
	store := NewHistoryStore(db)

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Add(&ImportRun{
			RunID:     string(rune('a' + i)),
			Source:    "steam",
			StartedAt: time.Now().Add(time.Duration(i) * time.Minute),
		}))
	}

	runs, err := store.List(2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestHistoryStore_DuplicateRunID(t *testing.T) {
	db := setupTestDB(t)
	store := NewHistoryStore(db)

	run := &ImportRun{RunID: "dup", Source: "steam", StartedAt: time.Now()}
	require.NoError(t, store.Add(run))

	err := store.Add(&ImportRun{RunID: "dup", Source: "steam", StartedAt: time.Now()})
	assert.Error(t, err)
}
