// Copyright (c) 2025 OptimisticPessimist.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the pscweb3 scheduling API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Project and member management:

	POST /projects               - Create project
	GET  /projects/{id}          - Get project details
	POST /projects/{id}/members  - Add member
	GET  /projects/{id}/members  - List members

Scripts and casting:

	POST   /projects/{id}/scripts                             - Upload a structured script
	GET    /projects/{id}/scripts/{scriptID}                  - Get script with scenes and lines
	POST   /projects/{id}/characters/{characterID}/castings   - Cast a member as a character
	DELETE /projects/{id}/characters/{characterID}/castings   - Remove a casting

Scheduling polls (candidate management requires X-Admin-Key):

	POST /projects/{id}/polls   - Create poll with candidates, returns admin key
	POST /polls/{id}/candidates - Add candidate slot (admin)
	POST /polls/{id}/answers    - Submit or update a member's availability answer

Schedule analysis:

	GET  /projects/{projectID}/polls/{pollID}                 - Poll aggregate with per-slot analysis
	GET  /projects/{projectID}/polls/{pollID}/recommendations - Ranked slot recommendations (?limit=)
	GET  /projects/{projectID}/polls/{pollID}/calendar        - Per-slot calendar analysis
	POST /projects/{projectID}/polls/{pollID}/finalize        - Record a rehearsal, close poll (admin)

# Handler Initialization

The router creates handler instances with dependency injection:

	projectHandler := handlers.NewProjectHandler(db, cfg)
	scriptHandler := handlers.NewScriptHandler(db, cfg)
	pollHandler := handlers.NewPollHandler(db, cfg)
	scheduleHandler := handlers.NewScheduleHandler(db, cfg)

All handlers receive the database connection and configuration.
*/
package router
