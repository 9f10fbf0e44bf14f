// Copyright (c) 2025 OptimisticPessimist.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"testing"
	"time"

	"github.com/OptimisticPessimist/pscweb3-sub000/models"
)

func TestStatusOfMissingRowIsUnanswered(t *testing.T) {
	ledger := NewLedger(nil)

	if got := ledger.StatusOf("t1", "member-a"); got != models.AnswerUnanswered {
		t.Errorf("Expected unanswered, got %s", got)
	}
}

func TestStatusOfLooksUpRecordedAnswer(t *testing.T) {
	ledger := NewLedger([]models.Answer{
		makeAnswer("t1", "member-a", models.AnswerOK),
		makeAnswer("t1", "member-b", models.AnswerNG),
		makeAnswer("t2", "member-a", models.AnswerMaybe),
	})

	cases := []struct {
		candidate, member, want string
	}{
		{"t1", "member-a", models.AnswerOK},
		{"t1", "member-b", models.AnswerNG},
		{"t2", "member-a", models.AnswerMaybe},
		{"t2", "member-b", models.AnswerUnanswered},
	}
	for _, c := range cases {
		if got := ledger.StatusOf(c.candidate, c.member); got != c.want {
			t.Errorf("StatusOf(%s, %s) = %s, want %s", c.candidate, c.member, got, c.want)
		}
	}
}

func TestDuplicateAnswersResolveLastWriteWins(t *testing.T) {
	early := makeAnswer("t1", "member-a", models.AnswerNG)
	late := makeAnswer("t1", "member-a", models.AnswerOK)
	late.AnsweredAt = early.AnsweredAt.Add(time.Minute)

	// Input order must not matter when timestamps differ.
	for _, answers := range [][]models.Answer{{early, late}, {late, early}} {
		ledger := NewLedger(answers)
		if got := ledger.StatusOf("t1", "member-a"); got != models.AnswerOK {
			t.Errorf("Expected latest answer to win, got %s", got)
		}
	}
}

func TestEqualTimestampsFallBackToInputOrder(t *testing.T) {
	first := makeAnswer("t1", "member-a", models.AnswerNG)
	second := makeAnswer("t1", "member-a", models.AnswerMaybe)

	ledger := NewLedger([]models.Answer{first, second})
	if got := ledger.StatusOf("t1", "member-a"); got != models.AnswerMaybe {
		t.Errorf("Expected later input to win on equal timestamps, got %s", got)
	}
}
