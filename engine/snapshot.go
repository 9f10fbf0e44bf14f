// Copyright (c) 2025 OptimisticPessimist.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"errors"
	"fmt"
	"sort"

	"github.com/OptimisticPessimist/pscweb3-sub000/models"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
)

// Snapshot is the consistent read the caller assembles before invoking the
// engine. The engine never fetches or writes anything; two concurrent calls
// over different snapshots simply produce different, equally valid results.
type Snapshot struct {
	Poll       models.Poll
	Candidates []models.Candidate
	Scenes     []models.Scene
	Castings   []models.Casting
	Members    []models.Member
	Answers    []models.Answer
}

// validate rejects malformed input before any computation. Expected states
// (blocked slots, missing answers) are results, never errors.
func (s Snapshot) validate() error {
	if s.Poll.ID == "" {
		return fmt.Errorf("%w: poll missing from snapshot", ErrNotFound)
	}
	for _, c := range s.Candidates {
		if c.PollID != s.Poll.ID {
			return fmt.Errorf("%w: candidate %s belongs to poll %s, not poll %s",
				ErrInvalidArgument, c.ID, c.PollID, s.Poll.ID)
		}
		if !c.EndAt.After(c.StartAt) {
			return fmt.Errorf("%w: candidate %s has end <= start", ErrInvalidArgument, c.ID)
		}
	}
	return nil
}

func (s Snapshot) candidate(candidateID string) (models.Candidate, error) {
	for _, c := range s.Candidates {
		if c.ID == candidateID {
			return c, nil
		}
	}
	return models.Candidate{}, fmt.Errorf("%w: candidate %s not in snapshot", ErrNotFound, candidateID)
}

// sortedScenes returns scenes ordered by scene number, then ID. All engine
// output follows this order so repeated calls are byte-identical.
func (s Snapshot) sortedScenes() []models.Scene {
	scenes := make([]models.Scene, len(s.Scenes))
	copy(scenes, s.Scenes)
	sort.Slice(scenes, func(i, j int) bool {
		if scenes[i].Number != scenes[j].Number {
			return scenes[i].Number < scenes[j].Number
		}
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

func (s Snapshot) memberIndex() map[string]models.Member {
	idx := make(map[string]models.Member, len(s.Members))
	for _, m := range s.Members {
		idx[m.ID] = m
	}
	return idx
}
