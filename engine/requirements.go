// Copyright (c) 2025 OptimisticPessimist.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"github.com/OptimisticPessimist/pscweb3-sub000/models"
)

// Requirements derives per-scene required performers from the casting graph.
// It is rebuilt from snapshot data on every analysis, never cached across
// script edits.
type Requirements struct {
	performersByCharacter map[string][]string
}

// NewRequirements indexes castings by character.
func NewRequirements(castings []models.Casting) Requirements {
	idx := make(map[string][]string)
	for _, c := range castings {
		idx[c.CharacterID] = append(idx[c.CharacterID], c.MemberID)
	}
	return Requirements{performersByCharacter: idx}
}

// RequiredPerformers returns the set of performer ids needed to rehearse the
// scene: every performer cast as any character with at least one line in it.
// A scene with no character lines (pure stage direction) yields an empty set
// and never blocks scheduling. An uncast character contributes nothing.
func (r Requirements) RequiredPerformers(scene models.Scene) map[string]struct{} {
	required := make(map[string]struct{})
	for _, line := range scene.Lines {
		if line.CharacterID == nil {
			continue
		}
		for _, performer := range r.performersByCharacter[*line.CharacterID] {
			required[performer] = struct{}{}
		}
	}
	return required
}

// RequiredStaffRoles returns the poll's configured required-role labels, a
// hard constraint independent of any scene.
func RequiredStaffRoles(poll models.Poll) []string {
	return poll.RequiredRoles
}
