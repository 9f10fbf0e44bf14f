// Copyright (c) 2025 OptimisticPessimist.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/OptimisticPessimist/pscweb3-sub000/auth"
	"github.com/OptimisticPessimist/pscweb3-sub000/cliparse"
	"github.com/OptimisticPessimist/pscweb3-sub000/db"
	_ "modernc.org/sqlite"
)

// SetupTestDB creates a fresh in-memory database with the full schema.
// Each test gets its own database; it disappears when the connection closes.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// :memory: is per-connection; a second pooled connection would see an
	// empty database.
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3411,
		DatabaseURL:  ":memory:",
		DatabaseType: "sqlite",
		AdminKeySalt: "test-admin-salt",
	}
}

// CreateTestProject inserts a project and returns its ID
func CreateTestProject(t *testing.T, conn *sql.DB, name string) string {
	t.Helper()

	projectID := auth.NewID()
	_, err := conn.Exec(`
		INSERT INTO project (id, name, created_at)
		VALUES ($1, $2, $3)
	`, projectID, name, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test project: %v", err)
	}

	return projectID
}

// AddTestMember inserts a member and returns the member ID
func AddTestMember(t *testing.T, conn *sql.DB, projectID, name, defaultRole string) string {
	t.Helper()

	memberID := auth.NewID()
	_, err := conn.Exec(`
		INSERT INTO member (id, project_id, name, default_role, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, memberID, projectID, name, defaultRole, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test member: %v", err)
	}

	return memberID
}

// AddTestScript inserts a script with a single scene and returns the
// script ID and scene ID.
func AddTestScript(t *testing.T, conn *sql.DB, projectID, title string) (scriptID, sceneID string) {
	t.Helper()

	scriptID = auth.NewID()
	_, err := conn.Exec(`
		INSERT INTO script (id, project_id, title, revision, created_at)
		VALUES ($1, $2, $3, 1, $4)
	`, scriptID, projectID, title, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test script: %v", err)
	}

	sceneID = auth.NewID()
	_, err = conn.Exec(`
		INSERT INTO scene (id, script_id, number, heading)
		VALUES ($1, $2, 1, 'Act 1 Scene 1')
	`, sceneID, scriptID)
	if err != nil {
		t.Fatalf("Failed to create test scene: %v", err)
	}

	return scriptID, sceneID
}

// AddTestCharacter inserts a character and returns its ID
func AddTestCharacter(t *testing.T, conn *sql.DB, scriptID, name string) string {
	t.Helper()

	characterID := auth.NewID()
	_, err := conn.Exec(`
		INSERT INTO character (id, script_id, name)
		VALUES ($1, $2, $3)
	`, characterID, scriptID, name)
	if err != nil {
		t.Fatalf("Failed to create test character: %v", err)
	}

	return characterID
}

// AddTestLine inserts a dialogue line for a character into a scene.
// Pass an empty characterID for a stage direction.
func AddTestLine(t *testing.T, conn *sql.DB, sceneID string, ordinal int, characterID, text string) {
	t.Helper()

	var charRef *string
	if characterID != "" {
		charRef = &characterID
	}
	_, err := conn.Exec(`
		INSERT INTO line (scene_id, ordinal, character_id, text)
		VALUES ($1, $2, $3, $4)
	`, sceneID, ordinal, charRef, text)
	if err != nil {
		t.Fatalf("Failed to create test line: %v", err)
	}
}

// AddTestCasting assigns a member to a character
func AddTestCasting(t *testing.T, conn *sql.DB, characterID, memberID string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO casting (character_id, member_id)
		VALUES ($1, $2)
	`, characterID, memberID)
	if err != nil {
		t.Fatalf("Failed to create test casting: %v", err)
	}
}

// CreateTestPoll inserts a poll and returns its ID and admin key.
// requiredRoles is marshaled into the stored JSON array.
func CreateTestPoll(t *testing.T, conn *sql.DB, cfg cliparse.Config, projectID, status string, requiredRoles []string) (pollID, adminKey string) {
	t.Helper()

	pollID = auth.NewID()
	adminKey = auth.GenerateAdminKey(pollID, cfg.AdminKeySalt)

	if requiredRoles == nil {
		requiredRoles = []string{}
	}
	rolesJSON, err := json.Marshal(requiredRoles)
	if err != nil {
		t.Fatalf("Failed to marshal required roles: %v", err)
	}

	_, err = conn.Exec(`
		INSERT INTO poll (id, project_id, title, description, creator_name, required_roles, status, created_at)
		VALUES ($1, $2, 'Rehearsal Poll', 'November scheduling', 'Director', $3, $4, $5)
	`, pollID, projectID, string(rolesJSON), status, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	return pollID, adminKey
}

// AddTestCandidate inserts a candidate slot and returns its ID
func AddTestCandidate(t *testing.T, conn *sql.DB, pollID string, startAt, endAt time.Time) string {
	t.Helper()

	candidateID := auth.NewID()
	_, err := conn.Exec(`
		INSERT INTO candidate (id, poll_id, start_at, end_at)
		VALUES ($1, $2, $3, $4)
	`, candidateID, pollID, startAt, endAt)
	if err != nil {
		t.Fatalf("Failed to create test candidate: %v", err)
	}

	return candidateID
}

// SubmitTestAnswer upserts an availability answer for a member
func SubmitTestAnswer(t *testing.T, conn *sql.DB, pollID, candidateID, memberID, status string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO answer (poll_id, candidate_id, member_id, status, answered_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (candidate_id, member_id) DO UPDATE SET status = $4, answered_at = $5
	`, pollID, candidateID, memberID, status, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to submit test answer: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
