// Copyright (c) 2025 OptimisticPessimist.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the pscweb3 scheduling API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - ProjectHandler: Project and member management
  - ScriptHandler: Structured script upload and casting
  - PollHandler: Poll lifecycle, candidates, and availability answers
  - ScheduleHandler: Slot analysis, recommendations, and finalization

Handlers are created via constructor functions that accept *sql.DB and Config:

	pollHandler := handlers.NewPollHandler(db, cfg)

# Scheduling Flow

A poll collects availability answers against candidate slots:

	POST /projects/{id}/polls  → CreatePoll (returns admin_key and candidate_ids)
	POST /polls/{id}/candidates → AddCandidate (admin, open polls only)
	POST /polls/{id}/answers    → SubmitAnswer (upsert, newest wins)

Admin operations require the X-Admin-Key header.

# Analysis

Read endpoints assemble an engine.Snapshot from the database and hand it to
the pure analysis engine:

	snap, err := loadSnapshot(db, projectID, pollID)
	analyses, err := engine.AnalyzeAll(snap)
	recommendations, err := engine.Rank(snap, limit)

The snapshot covers the poll, its candidates and answers, the project roster,
and the scenes and castings of the newest script revision. The engine never
touches the database.

# Finalization

The engine only recommends. Committing a slot is an explicit admin action:

	POST /projects/{projectID}/polls/{pollID}/finalize

This records a rehearsal for the chosen candidate and closes the poll in one
transaction.
*/
package handlers
