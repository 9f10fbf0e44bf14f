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

type ScriptHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewScriptHandler(db *sql.DB, cfg cliparse.Config) *ScriptHandler {
	return &ScriptHandler{db: db, cfg: cfg}
}

// UploadScript handles POST /projects/:id/scripts
// The body carries an already-structured script: scenes in order, each with
// its lines. Characters are created from the distinct speaker names; a line
// with an empty character name is stored as a stage direction.
func (h *ScriptHandler) UploadScript(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	if projectID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "project_id is required")
		return
	}

	var req models.UploadScriptRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if len(req.Scenes) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "at least one scene is required")
		return
	}

	if !projectExists(h.db, projectID) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Project not found")
		return
	}

	revision := req.Revision
	if revision == 0 {
		next, err := nextRevision(h.db, projectID)
		if err != nil {
			slog.Error("failed to compute revision", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		revision = next
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	scriptID := auth.NewID()
	_, err = tx.Exec(`
		INSERT INTO script (id, project_id, title, revision, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, scriptID, projectID, req.Title, revision, time.Now().UTC())
	if err != nil {
		slog.Error("failed to insert script", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to upload script")
		return
	}

	characterIDs := map[string]string{}
	for _, scene := range req.Scenes {
		sceneID := auth.NewID()
		_, err = tx.Exec(`
			INSERT INTO scene (id, script_id, number, heading)
			VALUES ($1, $2, $3, $4)
		`, sceneID, scriptID, scene.Number, scene.Heading)
		if err != nil {
			slog.Error("failed to insert scene", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to upload script")
			return
		}

		for ordinal, line := range scene.Lines {
			var characterRef *string
			if line.Character != "" {
				characterID, ok := characterIDs[line.Character]
				if !ok {
					characterID = auth.NewID()
					_, err = tx.Exec(`
						INSERT INTO character (id, script_id, name)
						VALUES ($1, $2, $3)
					`, characterID, scriptID, line.Character)
					if err != nil {
						slog.Error("failed to insert character", "error", err)
						middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to upload script")
						return
					}
					characterIDs[line.Character] = characterID
				}
				characterRef = &characterID
			}

			_, err = tx.Exec(`
				INSERT INTO line (scene_id, ordinal, character_id, text)
				VALUES ($1, $2, $3, $4)
			`, sceneID, ordinal+1, characterRef, line.Text)
			if err != nil {
				slog.Error("failed to insert line", "error", err)
				middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to upload script")
				return
			}
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to upload script")
		return
	}

	slog.Info("script uploaded",
		"project_id", projectID,
		"script_id", scriptID,
		"revision", revision,
		"scenes", len(req.Scenes),
		"characters", len(characterIDs),
	)

	middleware.JSONResponse(w, http.StatusCreated, models.UploadScriptResponse{
		ScriptID:     scriptID,
		SceneCount:   len(req.Scenes),
		CharacterIDs: characterIDs,
	})
}

// GetScript handles GET /projects/:id/scripts/:scriptID
// Returns the script with its scenes and lines.
func (h *ScriptHandler) GetScript(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	scriptID := r.PathValue("scriptID")
	if projectID == "" || scriptID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "project_id and script_id are required")
		return
	}

	var script models.Script
	err := h.db.QueryRow(`
		SELECT id, project_id, title, revision, created_at
		FROM script
		WHERE id = $1 AND project_id = $2
	`, scriptID, projectID).Scan(
		&script.ID, &script.ProjectID, &script.Title, &script.Revision, &script.CreatedAt,
	)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Script not found")
		return
	}
	if err != nil {
		slog.Error("failed to query script", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	scenes, err := loadScenes(h.db, scriptID)
	if err != nil {
		slog.Error("failed to query scenes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, struct {
		models.Script
		Scenes []models.Scene `json:"scenes"`
	}{script, scenes})
}

// AddCasting handles POST /projects/:id/characters/:characterID/castings
// Double casting is allowed; repeating an existing assignment is a no-op.
func (h *ScriptHandler) AddCasting(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	characterID := r.PathValue("characterID")
	if projectID == "" || characterID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "project_id and character_id are required")
		return
	}

	var req models.AddCastingRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.MemberID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "member_id is required")
		return
	}

	if !characterInProject(h.db, characterID, projectID) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Character not found")
		return
	}

	var one int
	err := h.db.QueryRow(`
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

	_, err = h.db.Exec(`
		INSERT INTO casting (character_id, member_id)
		VALUES ($1, $2)
		ON CONFLICT (character_id, member_id) DO NOTHING
	`, characterID, req.MemberID)
	if err != nil {
		slog.Error("failed to insert casting", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add casting")
		return
	}

	slog.Info("casting added", "character_id", characterID, "member_id", req.MemberID)

	middleware.JSONResponse(w, http.StatusCreated, models.Casting{
		CharacterID: characterID,
		MemberID:    req.MemberID,
	})
}

// RemoveCasting handles DELETE /projects/:id/characters/:characterID/castings
func (h *ScriptHandler) RemoveCasting(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	characterID := r.PathValue("characterID")
	if projectID == "" || characterID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "project_id and character_id are required")
		return
	}

	var req models.AddCastingRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.MemberID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "member_id is required")
		return
	}

	if !characterInProject(h.db, characterID, projectID) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Character not found")
		return
	}

	result, err := h.db.Exec(`
		DELETE FROM casting WHERE character_id = $1 AND member_id = $2
	`, characterID, req.MemberID)
	if err != nil {
		slog.Error("failed to delete casting", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to remove casting")
		return
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Casting not found")
		return
	}

	slog.Info("casting removed", "character_id", characterID, "member_id", req.MemberID)

	w.WriteHeader(http.StatusNoContent)
}

func nextRevision(db *sql.DB, projectID string) (int, error) {
	var max sql.NullInt64
	err := db.QueryRow(`
		SELECT MAX(revision) FROM script WHERE project_id = $1
	`, projectID).Scan(&max)
	if err != nil {
		return 0, err
	}
	return int(max.Int64) + 1, nil
}

func characterInProject(db *sql.DB, characterID, projectID string) bool {
	var one int
	err := db.QueryRow(`
		SELECT 1
		FROM character ch
		JOIN script s ON s.id = ch.script_id
		WHERE ch.id = $1 AND s.project_id = $2
	`, characterID, projectID).Scan(&one)
	return err == nil
}
