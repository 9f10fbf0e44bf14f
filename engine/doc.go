// Copyright (c) 2025 OptimisticPessimist.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package engine implements the availability-constrained rehearsal scheduling
engine: given candidate slots, per-slot availability answers, and a script's
scene → character → performer casting graph, it classifies what each slot can
rehearse and ranks the slots.

The engine is a pure, stateless function over a caller-supplied Snapshot. It
performs no I/O, holds no mutable state, and is safe to invoke concurrently.
Results are recomputed fresh on every call; nothing is cached across casting
or answer changes.

# Operations

	analyses, err := engine.AnalyzeAll(snap)       // one SlotAnalysis per slot
	analysis, err := engine.Analyze(snap, slotID)  // a single slot
	recs, err := engine.Rank(snap, 3)              // top-N recommendations
	agg, err := engine.Aggregate(snap)             // the full read projection

# Scene classification

For one slot, a scene's required performers (every performer cast as a
character with a line in the scene) partition by answer status:

  - possible: every required performer answered ok or maybe
  - reach: nobody answered ng and exactly one performer has not answered
  - blocked: anything else

An explicit "ng" always blocks; only unanswered gaps are reach-eligible.
A scene with no character lines is possible at every non-blocked slot.

# Poll-level hard constraint

A slot is poll-blocked when any of the poll's required staff roles has no
holder answering ok or maybe (an unanswered holder counts as declined, and a
role nobody holds can never be satisfied). Poll-blocked slots report no
possible or reach scenes and are excluded from ranking.

# Errors

Malformed input (a slot with end <= start, a candidate from another poll, a
non-positive ranking limit) fails with ErrInvalidArgument before any
computation; a missing poll or slot fails with ErrNotFound. Blocked slots
and missing answers are ordinary results, never errors. Answers from
identities outside the member set count for availability aggregates only and
are reported through the analysis warnings list.
*/
package engine
