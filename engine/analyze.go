// Copyright (c) 2025 OptimisticPessimist.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"fmt"
	"sort"

	"github.com/OptimisticPessimist/pscweb3-sub000/models"
)

// Analyze classifies every scene for one candidate slot and evaluates the
// poll-level required-role hard constraint.
func Analyze(snap Snapshot, candidateID string) (models.SlotAnalysis, error) {
	if err := snap.validate(); err != nil {
		return models.SlotAnalysis{}, err
	}
	cand, err := snap.candidate(candidateID)
	if err != nil {
		return models.SlotAnalysis{}, err
	}
	return newAnalyzer(snap).analyze(cand), nil
}

// AnalyzeAll runs the analyzer over every candidate slot, ordered by start
// time (then ID, for identical starts).
func AnalyzeAll(snap Snapshot) ([]models.SlotAnalysis, error) {
	if err := snap.validate(); err != nil {
		return nil, err
	}

	candidates := make([]models.Candidate, len(snap.Candidates))
	copy(candidates, snap.Candidates)
	sort.Slice(candidates, func(i, j int) bool {
		if !candidates[i].StartAt.Equal(candidates[j].StartAt) {
			return candidates[i].StartAt.Before(candidates[j].StartAt)
		}
		return candidates[i].ID < candidates[j].ID
	})

	a := newAnalyzer(snap)
	analyses := make([]models.SlotAnalysis, 0, len(candidates))
	for _, cand := range candidates {
		analyses = append(analyses, a.analyze(cand))
	}
	return analyses, nil
}

// analyzer holds the derived indexes shared across slots of one snapshot.
type analyzer struct {
	snap    Snapshot
	reqs    Requirements
	ledger  Ledger
	members map[string]models.Member
	scenes  []models.Scene
}

func newAnalyzer(snap Snapshot) *analyzer {
	return &analyzer{
		snap:    snap,
		reqs:    NewRequirements(snap.Castings),
		ledger:  NewLedger(snap.Answers),
		members: snap.memberIndex(),
		scenes:  snap.sortedScenes(),
	}
}

func (a *analyzer) analyze(cand models.Candidate) models.SlotAnalysis {
	analysis := models.SlotAnalysis{
		CandidateID:    cand.ID,
		StartAt:        cand.StartAt,
		EndAt:          cand.EndAt,
		PossibleScenes: []models.SceneRef{},
		ReachScenes:    []models.ReachScene{},
	}

	warnings := a.unknownParticipantWarnings(cand.ID)

	// Hard constraint first: if any required role has no holder answering
	// ok or maybe, the slot is poll-blocked and scene results are suppressed.
	missingRoles, roleWarnings := a.checkRequiredRoles(cand.ID)
	warnings = append(warnings, roleWarnings...)
	analysis.MissingRoles = missingRoles
	analysis.PollBlocked = len(missingRoles) > 0

	if !analysis.PollBlocked {
		for _, scene := range a.scenes {
			classification, missing := a.classifyScene(cand.ID, scene)
			switch classification {
			case models.ScenePossible:
				analysis.PossibleScenes = append(analysis.PossibleScenes, sceneRef(scene))
			case models.SceneReach:
				analysis.ReachScenes = append(analysis.ReachScenes, models.ReachScene{
					SceneID:          scene.ID,
					Number:           scene.Number,
					Heading:          scene.Heading,
					MissingMemberIDs: missing,
					MissingNames:     a.names(missing),
				})
			}
		}
	}

	analysis.AvailableIDs, analysis.MaybeIDs = a.splitByStatus(cand.ID)
	analysis.AvailableNames = a.names(analysis.AvailableIDs)
	analysis.MaybeNames = a.names(analysis.MaybeIDs)
	analysis.Warnings = warnings
	return analysis
}

// classifyScene partitions the scene's required performers by answer status.
// An explicit "ng" blocks outright; only unanswered gaps are reach-eligible,
// and only when the gap is exactly one performer.
func (a *analyzer) classifyScene(candidateID string, scene models.Scene) (string, []string) {
	required := a.reqs.RequiredPerformers(scene)

	var missingHard, missingSoft []string
	for performer := range required {
		switch a.ledger.StatusOf(candidateID, performer) {
		case models.AnswerOK, models.AnswerMaybe:
			// maybe counts as available for scheduling, never as blocking
		case models.AnswerNG:
			missingHard = append(missingHard, performer)
		default:
			missingSoft = append(missingSoft, performer)
		}
	}

	switch {
	case len(missingHard) == 0 && len(missingSoft) == 0:
		return models.ScenePossible, nil
	case len(missingHard) == 0 && len(missingSoft) == 1:
		return models.SceneReach, missingSoft
	default:
		return models.SceneBlocked, nil
	}
}

// checkRequiredRoles reports every required role with no holder answering ok
// or maybe for this slot. An unanswered holder blocks exactly as an explicit
// "ng" would; a role nobody in the member set holds can never be satisfied.
func (a *analyzer) checkRequiredRoles(candidateID string) (missingRoles, warnings []string) {
	for _, role := range RequiredStaffRoles(a.snap.Poll) {
		var holders []string
		for _, m := range a.snap.Members {
			if m.DefaultRole == role {
				holders = append(holders, m.ID)
			}
		}
		if len(holders) == 0 {
			warnings = append(warnings, fmt.Sprintf("no project member holds required role %q", role))
			missingRoles = append(missingRoles, role)
			continue
		}

		satisfied := false
		for _, holder := range holders {
			switch a.ledger.StatusOf(candidateID, holder) {
			case models.AnswerOK, models.AnswerMaybe:
				satisfied = true
			}
		}
		if !satisfied {
			missingRoles = append(missingRoles, role)
		}
	}
	return missingRoles, warnings
}

// splitByStatus aggregates ok and maybe answers across ALL participants for
// the slot, not just required ones. Both lists are sorted by display name
// (then id) so output is stable.
func (a *analyzer) splitByStatus(candidateID string) (available, maybe []string) {
	available, maybe = []string{}, []string{}
	for memberID, answer := range a.ledger.answersFor(candidateID) {
		switch answer.Status {
		case models.AnswerOK:
			available = append(available, memberID)
		case models.AnswerMaybe:
			maybe = append(maybe, memberID)
		}
	}
	a.sortByName(available)
	a.sortByName(maybe)
	return available, maybe
}

// unknownParticipantWarnings surfaces answers from identities outside the
// member set. Such answers stay valid for availability aggregates but are
// excluded from required-role evaluation, and the exclusion must be
// observable by the caller.
func (a *analyzer) unknownParticipantWarnings(candidateID string) []string {
	var unknown []string
	for memberID := range a.ledger.answersFor(candidateID) {
		if _, ok := a.members[memberID]; !ok {
			unknown = append(unknown, memberID)
		}
	}
	sort.Strings(unknown)

	warnings := make([]string, 0, len(unknown))
	for _, id := range unknown {
		warnings = append(warnings, fmt.Sprintf("answer from unknown member %q counted for availability only", id))
	}
	return warnings
}

func (a *analyzer) sortByName(ids []string) {
	sort.Slice(ids, func(i, j int) bool {
		ni, nj := a.name(ids[i]), a.name(ids[j])
		if ni != nj {
			return ni < nj
		}
		return ids[i] < ids[j]
	})
}

// name resolves a member id for display; unknown identities fall back to the
// raw id.
func (a *analyzer) name(memberID string) string {
	if m, ok := a.members[memberID]; ok {
		return m.Name
	}
	return memberID
}

func (a *analyzer) names(ids []string) []string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = a.name(id)
	}
	return names
}

func sceneRef(scene models.Scene) models.SceneRef {
	return models.SceneRef{SceneID: scene.ID, Number: scene.Number, Heading: scene.Heading}
}
