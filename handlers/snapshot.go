// Copyright (c) 2025 OptimisticPessimist.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/OptimisticPessimist/pscweb3-sub000/engine"
	"github.com/OptimisticPessimist/pscweb3-sub000/models"
)

// loadSnapshot assembles the consistent read the engine consumes: the poll,
// its candidates and answers, the project roster, and the scenes and castings
// of the project's newest script revision. Returns engine.ErrNotFound when
// the poll does not exist under the project.
func loadSnapshot(db *sql.DB, projectID, pollID string) (engine.Snapshot, error) {
	var snap engine.Snapshot

	var rolesJSON string
	err := db.QueryRow(`
		SELECT id, project_id, title, description, creator_name, required_roles, status, created_at
		FROM poll
		WHERE id = $1 AND project_id = $2
	`, pollID, projectID).Scan(
		&snap.Poll.ID, &snap.Poll.ProjectID, &snap.Poll.Title, &snap.Poll.Description,
		&snap.Poll.CreatorName, &rolesJSON, &snap.Poll.Status, &snap.Poll.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return snap, fmt.Errorf("%w: poll %s", engine.ErrNotFound, pollID)
	}
	if err != nil {
		return snap, fmt.Errorf("querying poll: %w", err)
	}
	if err := json.Unmarshal([]byte(rolesJSON), &snap.Poll.RequiredRoles); err != nil {
		return snap, fmt.Errorf("decoding required roles: %w", err)
	}

	snap.Candidates, err = loadCandidates(db, pollID)
	if err != nil {
		return snap, err
	}

	snap.Members, err = loadMembers(db, projectID)
	if err != nil {
		return snap, err
	}

	scriptID, err := latestScriptID(db, projectID)
	if err != nil {
		return snap, err
	}
	if scriptID != "" {
		snap.Scenes, err = loadScenes(db, scriptID)
		if err != nil {
			return snap, err
		}
		snap.Castings, err = loadCastings(db, scriptID)
		if err != nil {
			return snap, err
		}
	}

	snap.Answers, err = loadAnswers(db, pollID)
	if err != nil {
		return snap, err
	}

	return snap, nil
}

func loadCandidates(db *sql.DB, pollID string) ([]models.Candidate, error) {
	rows, err := db.Query(`
		SELECT id, poll_id, start_at, end_at
		FROM candidate
		WHERE poll_id = $1
		ORDER BY start_at, id
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("querying candidates: %w", err)
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.ID, &c.PollID, &c.StartAt, &c.EndAt); err != nil {
			return nil, fmt.Errorf("scanning candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

func loadMembers(db *sql.DB, projectID string) ([]models.Member, error) {
	rows, err := db.Query(`
		SELECT id, project_id, name, default_role, created_at
		FROM member
		WHERE project_id = $1
		ORDER BY name, id
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("querying members: %w", err)
	}
	defer rows.Close()

	members := []models.Member{}
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.ProjectID, &m.Name, &m.DefaultRole, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// latestScriptID returns the project's newest script revision, or empty when
// no script has been uploaded yet.
func latestScriptID(db *sql.DB, projectID string) (string, error) {
	var scriptID string
	err := db.QueryRow(`
		SELECT id FROM script
		WHERE project_id = $1
		ORDER BY revision DESC, created_at DESC, id
		LIMIT 1
	`, projectID).Scan(&scriptID)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("querying script: %w", err)
	}
	return scriptID, nil
}

func loadScenes(db *sql.DB, scriptID string) ([]models.Scene, error) {
	rows, err := db.Query(`
		SELECT id, script_id, number, heading
		FROM scene
		WHERE script_id = $1
		ORDER BY number, id
	`, scriptID)
	if err != nil {
		return nil, fmt.Errorf("querying scenes: %w", err)
	}
	defer rows.Close()

	scenes := []models.Scene{}
	index := map[string]int{}
	for rows.Next() {
		var s models.Scene
		if err := rows.Scan(&s.ID, &s.ScriptID, &s.Number, &s.Heading); err != nil {
			return nil, fmt.Errorf("scanning scene: %w", err)
		}
		index[s.ID] = len(scenes)
		scenes = append(scenes, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	lineRows, err := db.Query(`
		SELECT l.scene_id, l.ordinal, l.character_id, l.text
		FROM line l
		JOIN scene s ON s.id = l.scene_id
		WHERE s.script_id = $1
		ORDER BY l.scene_id, l.ordinal
	`, scriptID)
	if err != nil {
		return nil, fmt.Errorf("querying lines: %w", err)
	}
	defer lineRows.Close()

	for lineRows.Next() {
		var l models.Line
		if err := lineRows.Scan(&l.SceneID, &l.Ordinal, &l.CharacterID, &l.Text); err != nil {
			return nil, fmt.Errorf("scanning line: %w", err)
		}
		if i, ok := index[l.SceneID]; ok {
			scenes[i].Lines = append(scenes[i].Lines, l)
		}
	}
	return scenes, lineRows.Err()
}

func loadCastings(db *sql.DB, scriptID string) ([]models.Casting, error) {
	rows, err := db.Query(`
		SELECT ca.character_id, ca.member_id
		FROM casting ca
		JOIN character ch ON ch.id = ca.character_id
		WHERE ch.script_id = $1
		ORDER BY ca.character_id, ca.member_id
	`, scriptID)
	if err != nil {
		return nil, fmt.Errorf("querying castings: %w", err)
	}
	defer rows.Close()

	castings := []models.Casting{}
	for rows.Next() {
		var c models.Casting
		if err := rows.Scan(&c.CharacterID, &c.MemberID); err != nil {
			return nil, fmt.Errorf("scanning casting: %w", err)
		}
		castings = append(castings, c)
	}
	return castings, rows.Err()
}

func loadAnswers(db *sql.DB, pollID string) ([]models.Answer, error) {
	rows, err := db.Query(`
		SELECT poll_id, candidate_id, member_id, status, answered_at
		FROM answer
		WHERE poll_id = $1
		ORDER BY candidate_id, member_id
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("querying answers: %w", err)
	}
	defer rows.Close()

	answers := []models.Answer{}
	for rows.Next() {
		var a models.Answer
		if err := rows.Scan(&a.PollID, &a.CandidateID, &a.MemberID, &a.Status, &a.AnsweredAt); err != nil {
			return nil, fmt.Errorf("scanning answer: %w", err)
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}
