// Copyright (c) 2025 OptimisticPessimist.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/OptimisticPessimist/pscweb3-sub000/auth"
	"github.com/OptimisticPessimist/pscweb3-sub000/cliparse"
	"github.com/OptimisticPessimist/pscweb3-sub000/engine"
	"github.com/OptimisticPessimist/pscweb3-sub000/middleware"
	"github.com/OptimisticPessimist/pscweb3-sub000/models"
)

// defaultRecommendationLimit caps the ranked list when the client does not
// ask for a specific count.
const defaultRecommendationLimit = 3

type ScheduleHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewScheduleHandler(db *sql.DB, cfg cliparse.Config) *ScheduleHandler {
	return &ScheduleHandler{db: db, cfg: cfg}
}

// GetPollAggregate handles GET /projects/:projectID/polls/:pollID
// Returns the poll, its candidates, the effective answers, and the per-slot
// analyses the calendar grid renders.
func (h *ScheduleHandler) GetPollAggregate(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.loadSnapshotOrError(w, r)
	if !ok {
		return
	}

	aggregate, err := engine.Aggregate(snap)
	if err != nil {
		h.engineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, aggregate)
}

// GetRecommendations handles GET /projects/:projectID/polls/:pollID/recommendations
// Accepts ?limit=; defaults to 3.
func (h *ScheduleHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecommendationLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = parsed
	}

	snap, ok := h.loadSnapshotOrError(w, r)
	if !ok {
		return
	}

	recommendations, err := engine.Rank(snap, limit)
	if err != nil {
		h.engineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, struct {
		Recommendations []models.Recommendation `json:"recommendations"`
	}{recommendations})
}

// GetCalendar handles GET /projects/:projectID/polls/:pollID/calendar
func (h *ScheduleHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.loadSnapshotOrError(w, r)
	if !ok {
		return
	}

	analyses, err := engine.AnalyzeAll(snap)
	if err != nil {
		h.engineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CalendarResponse{
		Analyses: analyses,
	})
}

// Finalize handles POST /projects/:projectID/polls/:pollID/finalize
// Records a rehearsal for the chosen candidate and closes the poll. The
// engine only recommends; committing a slot is always this explicit action.
func (h *ScheduleHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("projectID")
	pollID := r.PathValue("pollID")
	if projectID == "" || pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "project_id and poll_id are required")
		return
	}

	// Validate admin key
	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(pollID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	var req models.FinalizeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.CandidateID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate_id is required")
		return
	}

	var status string
	err := h.db.QueryRow(`
		SELECT status FROM poll WHERE id = $1 AND project_id = $2
	`, pollID, projectID).Scan(&status)
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
		middleware.ErrorResponse(w, http.StatusConflict, "Poll is already closed")
		return
	}

	var startAt, endAt time.Time
	err = h.db.QueryRow(`
		SELECT start_at, end_at FROM candidate WHERE id = $1 AND poll_id = $2
	`, req.CandidateID, pollID).Scan(&startAt, &endAt)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Candidate not found")
		return
	}
	if err != nil {
		slog.Error("failed to query candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	sceneIDs := req.SceneIDs
	if sceneIDs == nil {
		sceneIDs = []string{}
	}
	sceneJSON, err := json.Marshal(sceneIDs)
	if err != nil {
		slog.Error("failed to marshal scene ids", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to finalize")
		return
	}

	rehearsalID := auth.NewID()
	closedAt := time.Now().UTC()

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO rehearsal (id, project_id, poll_id, candidate_id, start_at, end_at, scene_ids, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, rehearsalID, projectID, pollID, req.CandidateID, startAt, endAt, string(sceneJSON), closedAt)
	if err != nil {
		slog.Error("failed to insert rehearsal", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to finalize")
		return
	}

	_, err = tx.Exec(`
		UPDATE poll SET status = $1 WHERE id = $2
	`, models.StatusClosed, pollID)
	if err != nil {
		slog.Error("failed to close poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to finalize")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to finalize")
		return
	}

	slog.Info("poll finalized",
		"poll_id", pollID,
		"candidate_id", req.CandidateID,
		"rehearsal_id", rehearsalID,
		"scenes", len(sceneIDs),
	)

	middleware.JSONResponse(w, http.StatusOK, models.FinalizeResponse{
		RehearsalID: rehearsalID,
		ClosedAt:    closedAt,
	})
}

// loadSnapshotOrError loads the engine snapshot for the request's project
// and poll, writing the error response itself on failure.
func (h *ScheduleHandler) loadSnapshotOrError(w http.ResponseWriter, r *http.Request) (engine.Snapshot, bool) {
	projectID := r.PathValue("projectID")
	pollID := r.PathValue("pollID")
	if projectID == "" || pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "project_id and poll_id are required")
		return engine.Snapshot{}, false
	}

	snap, err := loadSnapshot(h.db, projectID, pollID)
	if err != nil {
		if errors.Is(err, engine.ErrNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
			return engine.Snapshot{}, false
		}
		slog.Error("failed to load snapshot", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return engine.Snapshot{}, false
	}
	return snap, true
}

func (h *ScheduleHandler) engineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrInvalidArgument):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, engine.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
	default:
		slog.Error("engine failure", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Analysis failed")
	}
}
