// Copyright (c) 2025 OptimisticPessimist.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"testing"

	"github.com/OptimisticPessimist/pscweb3-sub000/models"
)

func TestRequiredPerformersUnionsDoubleCasting(t *testing.T) {
	reqs := NewRequirements([]models.Casting{
		{CharacterID: "c1", MemberID: "member-a"},
		{CharacterID: "c1", MemberID: "member-b"}, // double cast
		{CharacterID: "c2", MemberID: "member-c"},
	})

	required := reqs.RequiredPerformers(makeScene("s1", 1, "c1"))

	if len(required) != 2 {
		t.Fatalf("Expected 2 required performers, got %d", len(required))
	}
	for _, id := range []string{"member-a", "member-b"} {
		if _, ok := required[id]; !ok {
			t.Errorf("Expected %s in required set", id)
		}
	}
	if _, ok := required["member-c"]; ok {
		t.Error("member-c has no line in the scene and must not be required")
	}
}

func TestPerformerCastInMultipleCharactersCountsOnce(t *testing.T) {
	reqs := NewRequirements([]models.Casting{
		{CharacterID: "c1", MemberID: "member-a"},
		{CharacterID: "c2", MemberID: "member-a"},
	})

	required := reqs.RequiredPerformers(makeScene("s1", 1, "c1", "c2", "c1"))

	if len(required) != 1 {
		t.Errorf("Expected the multi-role performer once, got %d entries", len(required))
	}
}

func TestUncastCharacterContributesNothing(t *testing.T) {
	reqs := NewRequirements(nil)

	required := reqs.RequiredPerformers(makeScene("s1", 1, "c1"))

	if len(required) != 0 {
		t.Errorf("Expected empty set for uncast character, got %v", required)
	}
}

func TestStageDirectionLinesAreIgnored(t *testing.T) {
	reqs := NewRequirements([]models.Casting{{CharacterID: "c1", MemberID: "member-a"}})

	required := reqs.RequiredPerformers(makeScene("s1", 1, "", "c1", ""))

	if len(required) != 1 {
		t.Errorf("Expected only the spoken line to count, got %v", required)
	}
}

func TestRequiredStaffRolesComeStraightOffThePoll(t *testing.T) {
	poll := models.Poll{ID: "poll-1", RequiredRoles: []string{"Lighting", "Sound"}}

	roles := RequiredStaffRoles(poll)

	if len(roles) != 2 || roles[0] != "Lighting" || roles[1] != "Sound" {
		t.Errorf("Expected configured role list in order, got %v", roles)
	}
}
