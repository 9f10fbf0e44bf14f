// Copyright (c) 2025 OptimisticPessimist.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"

	"github.com/OptimisticPessimist/pscweb3-sub000/models"
)

// Rank orders all non-poll-blocked candidate slots and returns the top limit
// recommendations with a generated rationale. An empty slot list yields an
// empty list, not an error.
func Rank(snap Snapshot, limit int) ([]models.Recommendation, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive, got %d", ErrInvalidArgument, limit)
	}

	analyses, err := AnalyzeAll(snap)
	if err != nil {
		return nil, err
	}

	// Poll-blocked slots are never recommended, whatever their coverage.
	candidates := make([]models.SlotAnalysis, 0, len(analyses))
	for _, a := range analyses {
		if !a.PollBlocked {
			candidates = append(candidates, a)
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]

		// 1. More fully rehearsable scenes wins
		if len(a.PossibleScenes) != len(b.PossibleScenes) {
			return len(a.PossibleScenes) > len(b.PossibleScenes)
		}

		// 2. More reach scenes wins (one confirmation from higher coverage)
		if len(a.ReachScenes) != len(b.ReachScenes) {
			return len(a.ReachScenes) > len(b.ReachScenes)
		}

		// 3. Earlier start wins
		if !a.StartAt.Equal(b.StartAt) {
			return a.StartAt.Before(b.StartAt)
		}

		// 4. Stable tie-break by candidate ID
		return a.CandidateID < b.CandidateID
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	recs := make([]models.Recommendation, 0, len(candidates))
	for i, a := range candidates {
		recs = append(recs, models.Recommendation{
			CandidateID:    a.CandidateID,
			StartAt:        a.StartAt,
			EndAt:          a.EndAt,
			PossibleScenes: a.PossibleScenes,
			ReachCount:     len(a.ReachScenes),
			Reason:         reason(i+1, a),
		})
	}
	return recs, nil
}

// reason renders the winning criteria for one ranked slot. Regenerated on
// every call, identical for identical input.
func reason(rank int, a models.SlotAnalysis) string {
	ord := humanize.Ordinal(rank)
	switch {
	case len(a.PossibleScenes) > 0:
		return fmt.Sprintf("%s choice: %d scenes rehearsable, %d within one answer",
			ord, len(a.PossibleScenes), len(a.ReachScenes))
	case len(a.ReachScenes) > 0:
		return fmt.Sprintf("%s choice: no scene fully covered yet, %d within one answer",
			ord, len(a.ReachScenes))
	default:
		return fmt.Sprintf("%s choice: earliest open slot, %d members available",
			ord, len(a.AvailableIDs))
	}
}
