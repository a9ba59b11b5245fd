package match

import (
	"math"
	"strings"
)

// MatchKind tags how a candidate was selected.
type MatchKind int

const (
	MatchNone   MatchKind = iota // no candidate survived selection
	MatchExact                   // normalized names were equal
	MatchScored                  // won on adjusted similarity score
)

func (k MatchKind) String() string {
	switch k {
	case MatchExact:
		return "exact"
	case MatchScored:
		return "scored"
	default:
		return "none"
	}
}

// Policy holds the tunable thresholds for candidate selection.
type Policy struct {
	SimilarityFloor float64 // minimum raw similarity before a candidate is considered
	WordPenalty     float64 // score deduction per word-count difference
	ScoreFloor      float64 // minimum adjusted score to accept a candidate
}

// DefaultPolicy returns the stock selection thresholds.
func DefaultPolicy() Policy {
	return Policy{
		SimilarityFloor: 0.85,
		WordPenalty:     0.1,
		ScoreFloor:      0.8,
	}
}

// Result describes the outcome of selecting a best candidate.
type Result struct {
	Index int     // index into the candidate slice; -1 when Kind is MatchNone
	Score float64 // adjusted score; 1.0 for exact matches
	Kind  MatchKind
}

// Best picks the candidate most likely to name the same game as external,
// or reports no suitable match. Selection order:
//
//  1. An exact normalized-name match wins immediately, skipping all scoring.
//  2. Candidates below the similarity floor are dropped.
//  3. Every word of the external name must appear in the candidate's word
//     list under a bidirectional substring test.
//  4. Scores are penalized per word-count difference, so "Torchlight" does
//     not land on "Torchlight 2".
//  5. Highest adjusted score above the floor wins; ties keep the earliest
//     candidate.
//
// An empty candidate list is simply no match, never an error.
func Best(external string, candidates []string, p Policy) Result {
	ext := Normalize(external)

	normalized := make([]string, len(candidates))
	for i, c := range candidates {
		normalized[i] = Normalize(c)
		if normalized[i] == ext {
			return Result{Index: i, Score: 1.0, Kind: MatchExact}
		}
	}

	extWords := strings.Split(ext, " ")
	best := Result{Index: -1, Kind: MatchNone}
	for i, cand := range normalized {
		sim := Similarity(ext, cand)
		if sim < p.SimilarityFloor {
			continue
		}

		candWords := strings.Split(cand, " ")
		if !coversWords(extWords, candWords) {
			continue
		}

		score := sim - p.WordPenalty*math.Abs(float64(len(candWords)-len(extWords)))
		if score < p.ScoreFloor {
			continue
		}
		if score > best.Score {
			best = Result{Index: i, Score: score, Kind: MatchScored}
		}
	}
	return best
}

// coversWords reports whether every external word is present in the candidate
// word list, where a candidate word counts if either string contains the other.
func coversWords(external, candidate []string) bool {
	for _, ew := range external {
		found := false
		for _, cw := range candidate {
			if strings.Contains(cw, ew) || strings.Contains(ew, cw) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
