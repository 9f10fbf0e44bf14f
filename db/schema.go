// Copyright (c) 2025 OptimisticPessimist.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS. The DDL sticks to the
// subset both postgres and sqlite accept.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Projects
CREATE TABLE IF NOT EXISTS project (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Members (performers and staff)
CREATE TABLE IF NOT EXISTS member (
    id TEXT PRIMARY KEY,
    project_id TEXT NOT NULL REFERENCES project(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    default_role TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_member_project_id ON member(project_id);

-- Script revisions (scenes are immutable once uploaded)
CREATE TABLE IF NOT EXISTS script (
    id TEXT PRIMARY KEY,
    project_id TEXT NOT NULL REFERENCES project(id) ON DELETE CASCADE,
    title TEXT NOT NULL,
    revision INTEGER NOT NULL DEFAULT 1,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_script_project_id ON script(project_id);

-- Scenes
CREATE TABLE IF NOT EXISTS scene (
    id TEXT PRIMARY KEY,
    script_id TEXT NOT NULL REFERENCES script(id) ON DELETE CASCADE,
    number INTEGER NOT NULL,
    heading TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_scene_script_id ON scene(script_id);

-- Characters
CREATE TABLE IF NOT EXISTS character (
    id TEXT PRIMARY KEY,
    script_id TEXT NOT NULL REFERENCES script(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    UNIQUE (script_id, name)
);

CREATE INDEX IF NOT EXISTS idx_character_script_id ON character(script_id);

-- Dialogue lines; character_id NULL marks a stage direction
CREATE TABLE IF NOT EXISTS line (
    scene_id TEXT NOT NULL REFERENCES scene(id) ON DELETE CASCADE,
    ordinal INTEGER NOT NULL,
    character_id TEXT REFERENCES character(id) ON DELETE SET NULL,
    text TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (scene_id, ordinal)
);

CREATE INDEX IF NOT EXISTS idx_line_character_id ON line(character_id);

-- Castings (double casting allowed)
CREATE TABLE IF NOT EXISTS casting (
    character_id TEXT NOT NULL REFERENCES character(id) ON DELETE CASCADE,
    member_id TEXT NOT NULL REFERENCES member(id) ON DELETE CASCADE,
    PRIMARY KEY (character_id, member_id)
);

CREATE INDEX IF NOT EXISTS idx_casting_member_id ON casting(member_id);

-- Availability polls; required_roles is a JSON array of role labels
CREATE TABLE IF NOT EXISTS poll (
    id TEXT PRIMARY KEY,
    project_id TEXT NOT NULL REFERENCES project(id) ON DELETE CASCADE,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    creator_name TEXT NOT NULL,
    required_roles TEXT NOT NULL DEFAULT '[]',
    status TEXT NOT NULL DEFAULT 'open' CHECK (status IN ('open', 'closed')),
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_poll_project_id ON poll(project_id);

-- Candidate slots
CREATE TABLE IF NOT EXISTS candidate (
    id TEXT PRIMARY KEY,
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    start_at TIMESTAMP NOT NULL,
    end_at TIMESTAMP NOT NULL,
    CHECK (end_at > start_at)
);

CREATE INDEX IF NOT EXISTS idx_candidate_poll_id ON candidate(poll_id);

-- Answers; at most one per (candidate, member), last write wins
CREATE TABLE IF NOT EXISTS answer (
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    candidate_id TEXT NOT NULL REFERENCES candidate(id) ON DELETE CASCADE,
    member_id TEXT NOT NULL,
    status TEXT NOT NULL CHECK (status IN ('ok', 'maybe', 'ng')),
    answered_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (candidate_id, member_id)
);

CREATE INDEX IF NOT EXISTS idx_answer_poll_id ON answer(poll_id);

-- Finalized rehearsals; scene_ids is a JSON array of scene ids
CREATE TABLE IF NOT EXISTS rehearsal (
    id TEXT PRIMARY KEY,
    project_id TEXT NOT NULL REFERENCES project(id) ON DELETE CASCADE,
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    candidate_id TEXT NOT NULL REFERENCES candidate(id) ON DELETE CASCADE,
    start_at TIMESTAMP NOT NULL,
    end_at TIMESTAMP NOT NULL,
    scene_ids TEXT NOT NULL DEFAULT '[]',
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_rehearsal_project_id ON rehearsal(project_id);
`
