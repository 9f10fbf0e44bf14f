// Copyright (c) 2025 OptimisticPessimist.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"sort"

	"github.com/OptimisticPessimist/pscweb3-sub000/models"
)

// Aggregate combines the poll, its candidates, the effective answers, and
// per-slot analyses into one read projection. Purely derived; nothing here
// mutates underlying records, and a chosen slot is committed only by the
// separate finalize action.
func Aggregate(snap Snapshot) (models.PollAggregate, error) {
	analyses, err := AnalyzeAll(snap)
	if err != nil {
		return models.PollAggregate{}, err
	}

	candidates := make([]models.Candidate, len(snap.Candidates))
	copy(candidates, snap.Candidates)
	sort.Slice(candidates, func(i, j int) bool {
		if !candidates[i].StartAt.Equal(candidates[j].StartAt) {
			return candidates[i].StartAt.Before(candidates[j].StartAt)
		}
		return candidates[i].ID < candidates[j].ID
	})

	// Expose the effective answer per (candidate, participant) pair after
	// last-write-wins resolution, in a stable order.
	ledger := NewLedger(snap.Answers)
	answers := []models.Answer{}
	for _, c := range candidates {
		slot := ledger.answersFor(c.ID)
		memberIDs := make([]string, 0, len(slot))
		for id := range slot {
			memberIDs = append(memberIDs, id)
		}
		sort.Strings(memberIDs)
		for _, id := range memberIDs {
			answers = append(answers, slot[id])
		}
	}

	return models.PollAggregate{
		Poll:       snap.Poll,
		Candidates: candidates,
		Answers:    answers,
		Analyses:   analyses,
	}, nil
}
