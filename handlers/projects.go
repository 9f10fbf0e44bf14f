// Copyright (c) 2025 OptimisticPessimist.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/OptimisticPessimist/pscweb3-sub000/auth"
	"github.com/OptimisticPessimist/pscweb3-sub000/cliparse"
	"github.com/OptimisticPessimist/pscweb3-sub000/middleware"
	"github.com/OptimisticPessimist/pscweb3-sub000/models"
)

type ProjectHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewProjectHandler(db *sql.DB, cfg cliparse.Config) *ProjectHandler {
	return &ProjectHandler{db: db, cfg: cfg}
}

// CreateProject handles POST /projects
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProjectRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	projectID := auth.NewID()

	_, err := h.db.Exec(`
		INSERT INTO project (id, name, created_at)
		VALUES ($1, $2, $3)
	`, projectID, req.Name, time.Now().UTC())

	if err != nil {
		slog.Error("failed to insert project", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create project")
		return
	}

	slog.Info("project created", "project_id", projectID, "name", req.Name)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateProjectResponse{
		ProjectID: projectID,
	})
}

// GetProject handles GET /projects/:id
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	if projectID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "project_id is required")
		return
	}

	var project models.Project
	err := h.db.QueryRow(`
		SELECT id, name, created_at
		FROM project
		WHERE id = $1
	`, projectID).Scan(&project.ID, &project.Name, &project.CreatedAt)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Project not found")
		return
	}
	if err != nil {
		slog.Error("failed to query project", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, project)
}

// AddMember handles POST /projects/:id/members
func (h *ProjectHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	if projectID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "project_id is required")
		return
	}

	var req models.AddMemberRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	if !projectExists(h.db, projectID) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Project not found")
		return
	}

	memberID := auth.NewID()

	_, err := h.db.Exec(`
		INSERT INTO member (id, project_id, name, default_role, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, memberID, projectID, req.Name, req.DefaultRole, time.Now().UTC())

	if err != nil {
		slog.Error("failed to insert member", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add member")
		return
	}

	slog.Info("member added", "project_id", projectID, "member_id", memberID)

	middleware.JSONResponse(w, http.StatusCreated, models.AddMemberResponse{
		MemberID: memberID,
	})
}

// ListMembers handles GET /projects/:id/members
func (h *ProjectHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	if projectID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "project_id is required")
		return
	}

	if !projectExists(h.db, projectID) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Project not found")
		return
	}

	members, err := loadMembers(h.db, projectID)
	if err != nil {
		slog.Error("failed to query members", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, members)
}

func projectExists(db *sql.DB, projectID string) bool {
	var one int
	err := db.QueryRow("SELECT 1 FROM project WHERE id = $1", projectID).Scan(&one)
	return err == nil
}
