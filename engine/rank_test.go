// Copyright (c) 2025 OptimisticPessimist.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/OptimisticPessimist/pscweb3-sub000/models"
)

func recommendationIDs(recs []models.Recommendation) []string {
	ids := make([]string, len(recs))
	for i, r := range recs {
		ids[i] = r.CandidateID
	}
	return ids
}

func TestRankPrefersCoverageOverReach(t *testing.T) {
	// t1: scene fully possible; t3: one unanswered gap (reach only).
	snap := twoPerformerSnapshot(
		[]models.Candidate{makeCandidate("t1", 0), makeCandidate("t3", 1)},
		[]models.Answer{
			makeAnswer("t1", "member-a", models.AnswerOK),
			makeAnswer("t1", "member-b", models.AnswerOK),
			makeAnswer("t3", "member-a", models.AnswerOK),
		},
	)

	recs, err := Rank(snap, 3)
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}

	if !reflect.DeepEqual(recommendationIDs(recs), []string{"t1", "t3"}) {
		t.Errorf("Expected [t1 t3], got %v", recommendationIDs(recs))
	}
	if recs[0].ReachCount != 0 || recs[1].ReachCount != 1 {
		t.Errorf("Unexpected reach counts: %d, %d", recs[0].ReachCount, recs[1].ReachCount)
	}
}

func TestRankExcludesPollBlockedSlots(t *testing.T) {
	// t1 would score highest on coverage but its Lighting holder declined.
	snap := twoPerformerSnapshot(
		[]models.Candidate{makeCandidate("t1", 0), makeCandidate("t2", 1)},
		[]models.Answer{
			makeAnswer("t1", "member-a", models.AnswerOK),
			makeAnswer("t1", "member-b", models.AnswerOK),
			makeAnswer("t1", "member-x", models.AnswerNG),
			makeAnswer("t2", "member-a", models.AnswerOK),
			makeAnswer("t2", "member-x", models.AnswerOK),
		},
	)
	snap.Poll.RequiredRoles = []string{"Lighting"}

	recs, err := Rank(snap, 3)
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}

	if !reflect.DeepEqual(recommendationIDs(recs), []string{"t2"}) {
		t.Errorf("Expected poll-blocked t1 excluded, got %v", recommendationIDs(recs))
	}
}

func TestRankBreaksTiesByEarlierStart(t *testing.T) {
	snap := twoPerformerSnapshot(
		[]models.Candidate{makeCandidate("late", 5), makeCandidate("early", 1)},
		nil,
	)
	snap.Scenes = nil // identical (zero) coverage everywhere

	recs, err := Rank(snap, 3)
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}

	if !reflect.DeepEqual(recommendationIDs(recs), []string{"early", "late"}) {
		t.Errorf("Expected earlier slot first, got %v", recommendationIDs(recs))
	}
}

func TestRankCapsAtLimit(t *testing.T) {
	snap := twoPerformerSnapshot(
		[]models.Candidate{
			makeCandidate("t1", 0), makeCandidate("t2", 1),
			makeCandidate("t3", 2), makeCandidate("t4", 3),
		},
		nil,
	)

	recs, err := Rank(snap, 3)
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	if len(recs) != 3 {
		t.Errorf("Expected limit of 3 recommendations, got %d", len(recs))
	}
}

func TestRankRejectsNonPositiveLimit(t *testing.T) {
	snap := twoPerformerSnapshot([]models.Candidate{makeCandidate("t1", 0)}, nil)

	for _, limit := range []int{0, -1} {
		_, err := Rank(snap, limit)
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Rank(limit=%d): expected ErrInvalidArgument, got %v", limit, err)
		}
	}
}

func TestRankOverEmptySlotListReturnsEmpty(t *testing.T) {
	snap := twoPerformerSnapshot(nil, nil)

	recs, err := Rank(snap, 3)
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("Expected empty recommendation list, got %v", recs)
	}
}

func TestRankWithoutScenesRanksByStartOnly(t *testing.T) {
	snap := twoPerformerSnapshot(
		[]models.Candidate{makeCandidate("t2", 2), makeCandidate("t1", 1)},
		nil,
	)
	snap.Scenes = nil

	recs, err := Rank(snap, 3)
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}

	if !reflect.DeepEqual(recommendationIDs(recs), []string{"t1", "t2"}) {
		t.Errorf("Expected pure start ordering, got %v", recommendationIDs(recs))
	}
	for _, rec := range recs {
		if len(rec.PossibleScenes) != 0 {
			t.Errorf("Expected empty possible_scenes, got %v", rec.PossibleScenes)
		}
	}
}

func TestRankReasonsAreDeterministic(t *testing.T) {
	snap := twoPerformerSnapshot(
		[]models.Candidate{makeCandidate("t1", 0), makeCandidate("t3", 1)},
		[]models.Answer{
			makeAnswer("t1", "member-a", models.AnswerOK),
			makeAnswer("t1", "member-b", models.AnswerOK),
			makeAnswer("t3", "member-a", models.AnswerOK),
		},
	)

	first, err := Rank(snap, 3)
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	second, err := Rank(snap, 3)
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("Repeated ranking of the same snapshot diverged")
	}
	if !strings.Contains(first[0].Reason, "1st choice") {
		t.Errorf("Expected rank ordinal in reason, got %q", first[0].Reason)
	}
	if !strings.Contains(first[0].Reason, "1 scenes rehearsable") {
		t.Errorf("Expected coverage in reason, got %q", first[0].Reason)
	}
}

func TestAggregateCombinesPollCandidatesAnswersAnalyses(t *testing.T) {
	snap := twoPerformerSnapshot(
		[]models.Candidate{makeCandidate("t2", 1), makeCandidate("t1", 0)},
		[]models.Answer{
			makeAnswer("t1", "member-b", models.AnswerMaybe),
			makeAnswer("t1", "member-a", models.AnswerOK),
		},
	)

	agg, err := Aggregate(snap)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	if agg.Poll.ID != "poll-1" {
		t.Errorf("Unexpected poll: %s", agg.Poll.ID)
	}
	if agg.Candidates[0].ID != "t1" || agg.Candidates[1].ID != "t2" {
		t.Errorf("Expected candidates sorted by start, got %v", agg.Candidates)
	}
	if len(agg.Analyses) != 2 {
		t.Fatalf("Expected one analysis per candidate, got %d", len(agg.Analyses))
	}
	// Answers come back deduplicated and in stable (candidate, member) order
	if len(agg.Answers) != 2 || agg.Answers[0].MemberID != "member-a" {
		t.Errorf("Unexpected answers: %v", agg.Answers)
	}
}
