// Copyright (c) 2025 OptimisticPessimist.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/OptimisticPessimist/pscweb3-sub000/cliparse"
	"github.com/OptimisticPessimist/pscweb3-sub000/handlers"
	"github.com/OptimisticPessimist/pscweb3-sub000/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	projectHandler := handlers.NewProjectHandler(db, cfg)
	scriptHandler := handlers.NewScriptHandler(db, cfg)
	pollHandler := handlers.NewPollHandler(db, cfg)
	scheduleHandler := handlers.NewScheduleHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Project and member management
	mux.HandleFunc("POST /projects", middleware.WithLogging(projectHandler.CreateProject))
	mux.HandleFunc("GET /projects/{id}", middleware.WithLogging(projectHandler.GetProject))
	mux.HandleFunc("POST /projects/{id}/members", middleware.WithLogging(projectHandler.AddMember))
	mux.HandleFunc("GET /projects/{id}/members", middleware.WithLogging(projectHandler.ListMembers))

	// Scripts and casting
	mux.HandleFunc("POST /projects/{id}/scripts", middleware.WithLogging(scriptHandler.UploadScript))
	mux.HandleFunc("GET /projects/{id}/scripts/{scriptID}", middleware.WithLogging(scriptHandler.GetScript))
	mux.HandleFunc("POST /projects/{id}/characters/{characterID}/castings", middleware.WithLogging(scriptHandler.AddCasting))
	mux.HandleFunc("DELETE /projects/{id}/characters/{characterID}/castings", middleware.WithLogging(scriptHandler.RemoveCasting))

	// Scheduling polls (creation returns the admin key)
	mux.HandleFunc("POST /projects/{id}/polls", middleware.WithLogging(pollHandler.CreatePoll))
	mux.HandleFunc("POST /polls/{id}/candidates", middleware.WithLogging(pollHandler.AddCandidate))
	mux.HandleFunc("POST /polls/{id}/answers", middleware.WithLogging(pollHandler.SubmitAnswer))

	// Schedule analysis and finalization
	mux.HandleFunc("GET /projects/{projectID}/polls/{pollID}", middleware.WithLogging(scheduleHandler.GetPollAggregate))
	mux.HandleFunc("GET /projects/{projectID}/polls/{pollID}/recommendations", middleware.WithLogging(scheduleHandler.GetRecommendations))
	mux.HandleFunc("GET /projects/{projectID}/polls/{pollID}/calendar", middleware.WithLogging(scheduleHandler.GetCalendar))
	mux.HandleFunc("POST /projects/{projectID}/polls/{pollID}/finalize", middleware.WithLogging(scheduleHandler.Finalize))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pscweb3 scheduling API v1"))
	})

	return mux
}
