package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBest_ExactMatchShortCircuits(t *testing.T) {
	// "portal 2" normalizes equal to "Portal 2" and must win without scoring.
	res := Best("Portal 2", []string{"portal 2", "Portal"}, DefaultPolicy())

	assert.Equal(t, MatchExact, res.Kind)
	assert.Equal(t, 0, res.Index)
	assert.Equal(t, 1.0, res.Score)
}

func TestBest_ExactBeatsSequel(t *testing.T) {
	res := Best("Torchlight", []string{"Torchlight", "Torchlight II"}, DefaultPolicy())

	assert.Equal(t, MatchExact, res.Kind)
	assert.Equal(t, 0, res.Index, "must pick the exact title, not the sequel")
}

func TestBest_SequelAloneIsNoMatch(t *testing.T) {
	// "torchlight" vs "torchlight ii" scores below the similarity floor.
	res := Best("Torchlight", []string{"Torchlight II"}, DefaultPolicy())

	assert.Equal(t, MatchNone, res.Kind)
	assert.Equal(t, -1, res.Index)
}

func TestBest_ScoredMatch(t *testing.T) {
	// Pluralization difference: high similarity, full word coverage,
	// identical word counts.
	res := Best("Plants vs Zombies", []string{"Plants vs. Zombie"}, DefaultPolicy())

	assert.Equal(t, MatchScored, res.Kind)
	assert.Equal(t, 0, res.Index)
	assert.Greater(t, res.Score, 0.9)
	assert.Less(t, res.Score, 1.0)
}

func TestBest_WordCoverageDiscardsMismatchedNumbers(t *testing.T) {
	// "portal 22" vs "portal 23" passes the similarity floor but "22" is not
	// a substring relative of "23", so word coverage must reject it.
	res := Best("Portal 22", []string{"Portal 23"}, DefaultPolicy())

	assert.Equal(t, MatchNone, res.Kind)
}

func TestBest_WordCountPenaltyDiscards(t *testing.T) {
	// Similar enough, words covered, but the extra word drops the adjusted
	// score below the floor.
	res := Best("Final Fantasy X", []string{"Final Fantasy X 2"}, DefaultPolicy())

	assert.Equal(t, MatchNone, res.Kind)
}

func TestBest_TieKeepsFirstCandidate(t *testing.T) {
	res := Best("Halo 3", []string{"Halo 33", "Halo 33"}, DefaultPolicy())

	assert.Equal(t, MatchScored, res.Kind)
	assert.Equal(t, 0, res.Index, "equal scores must keep list order")
}

func TestBest_EmptyCandidates(t *testing.T) {
	res := Best("Portal 2", nil, DefaultPolicy())

	assert.Equal(t, MatchNone, res.Kind)
	assert.Equal(t, -1, res.Index)
}

func TestBest_CustomPolicy(t *testing.T) {
	// Loosening the floors lets the sequel-only case through.
	loose := Policy{SimilarityFloor: 0.5, WordPenalty: 0.0, ScoreFloor: 0.5}

	res := Best("Torchlight", []string{"Torchlight 2"}, loose)

	assert.Equal(t, MatchScored, res.Kind)
	assert.Equal(t, 0, res.Index)
}

func TestMatchKindString(t *testing.T) {
	assert.Equal(t, "exact", MatchExact.String())
	assert.Equal(t, "scored", MatchScored.String())
	assert.Equal(t, "none", MatchNone.String())
}
