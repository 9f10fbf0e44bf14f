// Copyright (c) 2025 OptimisticPessimist.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/OptimisticPessimist/pscweb3-sub000/auth"
	"github.com/OptimisticPessimist/pscweb3-sub000/cliparse"
	"github.com/OptimisticPessimist/pscweb3-sub000/middleware"
	"github.com/OptimisticPessimist/pscweb3-sub000/models"
)

type PollHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewPollHandler(db *sql.DB, cfg cliparse.Config) *PollHandler {
	return &PollHandler{db: db, cfg: cfg}
}

// CreatePoll handles POST /projects/:id/polls
// Creates the poll with its initial candidate slots and returns the admin key
// alongside the generated candidate IDs, in request order.
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	if projectID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "project_id is required")
		return
	}

	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.CreatorName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "creator_name is required")
		return
	}
	for _, c := range req.Candidates {
		if !c.EndAt.After(c.StartAt) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "candidate end_datetime must be after start_datetime")
			return
		}
	}

	if !projectExists(h.db, projectID) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Project not found")
		return
	}

	pollID := auth.NewID()
	adminKey := auth.GenerateAdminKey(pollID, h.cfg.AdminKeySalt)

	requiredRoles := req.RequiredRoles
	if requiredRoles == nil {
		requiredRoles = []string{}
	}
	rolesJSON, err := json.Marshal(requiredRoles)
	if err != nil {
		slog.Error("failed to marshal required roles", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO poll (id, project_id, title, description, creator_name, required_roles, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, pollID, projectID, req.Title, req.Description, req.CreatorName,
		string(rolesJSON), models.StatusOpen, time.Now().UTC())

	if err != nil {
		slog.Error("failed to insert poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}

	candidateIDs := []string{}
	for _, c := range req.Candidates {
		candidateID := auth.NewID()
		_, err = tx.Exec(`
			INSERT INTO candidate (id, poll_id, start_at, end_at)
			VALUES ($1, $2, $3, $4)
		`, candidateID, pollID, c.StartAt.UTC(), c.EndAt.UTC())
		if err != nil {
			slog.Error("failed to insert candidate", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
			return
		}
		candidateIDs = append(candidateIDs, candidateID)
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}

	slog.Info("poll created",
		"poll_id", pollID,
		"project_id", projectID,
		"creator", req.CreatorName,
		"candidates", len(candidateIDs),
	)

	middleware.JSONResponse(w, http.StatusCreated, models.CreatePollResponse{
		PollID:       pollID,
		AdminKey:     adminKey,
		CandidateIDs: candidateIDs,
	})
}

// AddCandidate handles POST /polls/:id/candidates
func (h *PollHandler) AddCandidate(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	// Validate admin key
	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(pollID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	var req models.AddCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if !req.EndAt.After(req.StartAt) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "end_datetime must be after start_datetime")
		return
	}

	// Check poll exists and is still open
	var status string
	err := h.db.QueryRow("SELECT status FROM poll WHERE id = $1", pollID).Scan(&status)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to query poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if status != models.StatusOpen {
		middleware.ErrorResponse(w, http.StatusConflict, "Cannot add candidates to a closed poll")
		return
	}

	candidateID := auth.NewID()

	_, err = h.db.Exec(`
		INSERT INTO candidate (id, poll_id, start_at, end_at)
		VALUES ($1, $2, $3, $4)
	`, candidateID, pollID, req.StartAt.UTC(), req.EndAt.UTC())

	if err != nil {
		slog.Error("failed to insert candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add candidate")
		return
	}

	slog.Info("candidate added", "poll_id", pollID, "candidate_id", candidateID)

	middleware.JSONResponse(w, http.StatusCreated, models.AddCandidateResponse{
		CandidateID: candidateID,
	})
}

// SubmitAnswer handles POST /polls/:id/answers
// Upserts the member's availability for one candidate. Resubmitting replaces
// the previous answer; the newest submission wins.
func (h *PollHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	var req models.SubmitAnswerRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.CandidateID == "" || req.MemberID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate_id and member_id are required")
		return
	}
	switch req.Status {
	case models.AnswerOK, models.AnswerMaybe, models.AnswerNG:
	default:
		middleware.ErrorResponse(w, http.StatusBadRequest, "status must be ok, maybe, or ng")
		return
	}

	// Check poll exists and is still open
	var projectID, status string
	err := h.db.QueryRow("SELECT project_id, status FROM poll WHERE id = $1", pollID).Scan(&projectID, &status)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to query poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if status != models.StatusOpen {
		middleware.ErrorResponse(w, http.StatusConflict, "Poll is closed")
		return
	}

	// The candidate must belong to this poll
	var one int
	err = h.db.QueryRow(`
		SELECT 1 FROM candidate WHERE id = $1 AND poll_id = $2
	`, req.CandidateID, pollID).Scan(&one)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Candidate not found")
		return
	}
	if err != nil {
		slog.Error("failed to query candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// The member must belong to the poll's project
	err = h.db.QueryRow(`
		SELECT 1 FROM member WHERE id = $1 AND project_id = $2
	`, req.MemberID, projectID).Scan(&one)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Member not found")
		return
	}
	if err != nil {
		slog.Error("failed to query member", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var existing int
	updated := false
	err = h.db.QueryRow(`
		SELECT 1 FROM answer WHERE candidate_id = $1 AND member_id = $2
	`, req.CandidateID, req.MemberID).Scan(&existing)
	if err == nil {
		updated = true
	} else if err != sql.ErrNoRows {
		slog.Error("failed to query answer", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	_, err = h.db.Exec(`
		INSERT INTO answer (poll_id, candidate_id, member_id, status, answered_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (candidate_id, member_id) DO UPDATE SET status = $4, answered_at = $5
	`, pollID, req.CandidateID, req.MemberID, req.Status, time.Now().UTC())

	if err != nil {
		slog.Error("failed to upsert answer", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit answer")
		return
	}

	slog.Info("answer submitted",
		"poll_id", pollID,
		"candidate_id", req.CandidateID,
		"member_id", req.MemberID,
		"status", req.Status,
		"updated", updated,
	)

	middleware.JSONResponse(w, http.StatusOK, models.SubmitAnswerResponse{
		CandidateID: req.CandidateID,
		MemberID:    req.MemberID,
		Status:      req.Status,
		Updated:     updated,
	})
}
