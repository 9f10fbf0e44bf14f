// Copyright (c) 2025 OptimisticPessimist.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The DDL is portable between postgres (lib/pq) and sqlite (modernc.org/sqlite):
TEXT ids, TIMESTAMP columns, CURRENT_TIMESTAMP defaults, JSON stored as TEXT.

# Tables

The schema includes:

  - project: a production group
  - member: performers and staff with an optional default role label
  - script: one immutable script revision
  - scene: scenes of a script revision
  - character: characters of a script revision
  - line: ordered dialogue lines, optionally referencing a character
  - casting: character ↔ performer assignments
  - poll: availability polls with required-role labels
  - candidate: proposed rehearsal time slots
  - answer: per (candidate, member) availability answers
  - rehearsal: finalized rehearsal events

# Relationships

	project 1──* member
	project 1──* script
	script 1──* scene
	script 1──* character
	scene 1──* line (line *──1 character, nullable)
	character *──* member (via casting)
	project 1──* poll
	poll 1──* candidate
	candidate 1──* answer
	poll 1──* rehearsal

All foreign keys use ON DELETE CASCADE, except line.character_id which is
set NULL so deleting a character degrades its lines to stage directions.

# Invariants enforced here

  - candidate: end_at > start_at
  - answer: one row per (candidate_id, member_id); writers upsert
  - answer.status limited to ok / maybe / ng ("unanswered" is the absence
    of a row, never stored)
*/
package db
