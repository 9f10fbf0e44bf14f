// Copyright (c) 2025 OptimisticPessimist.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"github.com/OptimisticPessimist/pscweb3-sub000/models"
)

// Ledger maps (candidate, participant) to the recorded answer status.
// Duplicate answers for one pair resolve last-write-wins by answered_at;
// equal timestamps fall back to input order.
type Ledger struct {
	byCandidate map[string]map[string]models.Answer
}

// NewLedger indexes answers by candidate and participant.
func NewLedger(answers []models.Answer) Ledger {
	idx := make(map[string]map[string]models.Answer)
	for _, a := range answers {
		slot, ok := idx[a.CandidateID]
		if !ok {
			slot = make(map[string]models.Answer)
			idx[a.CandidateID] = slot
		}
		if prev, ok := slot[a.MemberID]; ok && a.AnsweredAt.Before(prev.AnsweredAt) {
			continue
		}
		slot[a.MemberID] = a
	}
	return Ledger{byCandidate: idx}
}

// StatusOf is a pure lookup. A missing row is AnswerUnanswered, which is
// distinct from an explicit "ng" in every report, but treated at least as
// pessimistically for hard-constraint checks.
func (l Ledger) StatusOf(candidateID, memberID string) string {
	if a, ok := l.byCandidate[candidateID][memberID]; ok {
		return a.Status
	}
	return models.AnswerUnanswered
}

// answersFor returns the effective (deduplicated) answers for one candidate.
func (l Ledger) answersFor(candidateID string) map[string]models.Answer {
	return l.byCandidate[candidateID]
}
