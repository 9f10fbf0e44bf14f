// Copyright (c) 2025 OptimisticPessimist.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/OptimisticPessimist/pscweb3-sub000/models"
	"github.com/OptimisticPessimist/pscweb3-sub000/testutil"
)

func TestCreateProject(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewProjectHandler(db, cfg)

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
	}{
		{
			name:           "valid project creation",
			requestBody:    models.CreateProjectRequest{Name: "Hamlet Spring Run"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing name",
			requestBody:    models.CreateProjectRequest{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid JSON",
			requestBody:    "invalid json",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body []byte
			var err error

			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatalf("Failed to marshal request body: %v", err)
				}
			}

			req := httptest.NewRequest("POST", "/projects", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.CreateProject(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d. Body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}

			if tt.expectedStatus == http.StatusCreated {
				var resp models.CreateProjectResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.ProjectID == "" {
					t.Error("Expected non-empty project_id")
				}

				var name string
				if err := db.QueryRow("SELECT name FROM project WHERE id = $1", resp.ProjectID).Scan(&name); err != nil {
					t.Fatalf("Failed to query project: %v", err)
				}
				if name != "Hamlet Spring Run" {
					t.Errorf("Expected name 'Hamlet Spring Run', got '%s'", name)
				}
			}
		})
	}
}

func TestGetProject(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewProjectHandler(db, cfg)

	projectID := testutil.CreateTestProject(t, db, "Hamlet Spring Run")

	t.Run("existing project", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/projects/"+projectID, nil)
		req.SetPathValue("id", projectID)
		w := httptest.NewRecorder()

		handler.GetProject(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.Project
		testutil.AssertJSON(t, w, &resp)
		if resp.ID != projectID {
			t.Errorf("Expected project ID %s, got %s", projectID, resp.ID)
		}
		if resp.Name != "Hamlet Spring Run" {
			t.Errorf("Expected name 'Hamlet Spring Run', got '%s'", resp.Name)
		}
	})

	t.Run("unknown project", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/projects/nonexistent", nil)
		req.SetPathValue("id", "nonexistent")
		w := httptest.NewRecorder()

		handler.GetProject(w, req)
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestAddMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewProjectHandler(db, cfg)

	projectID := testutil.CreateTestProject(t, db, "Hamlet Spring Run")

	tests := []struct {
		name           string
		projectID      string
		requestBody    models.AddMemberRequest
		expectedStatus int
	}{
		{
			name:           "performer without role",
			projectID:      projectID,
			requestBody:    models.AddMemberRequest{Name: "Asami"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "staff with default role",
			projectID:      projectID,
			requestBody:    models.AddMemberRequest{Name: "Xiu", DefaultRole: "Lighting"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing name",
			projectID:      projectID,
			requestBody:    models.AddMemberRequest{DefaultRole: "Sound"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown project",
			projectID:      "nonexistent",
			requestBody:    models.AddMemberRequest{Name: "Ben"},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := json.Marshal(tt.requestBody)
			if err != nil {
				t.Fatalf("Failed to marshal request body: %v", err)
			}

			req := httptest.NewRequest("POST", "/projects/"+tt.projectID+"/members", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req.SetPathValue("id", tt.projectID)
			w := httptest.NewRecorder()

			handler.AddMember(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d. Body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestListMembers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewProjectHandler(db, cfg)

	projectID := testutil.CreateTestProject(t, db, "Hamlet Spring Run")
	testutil.AddTestMember(t, db, projectID, "Ben", "")
	testutil.AddTestMember(t, db, projectID, "Asami", "")
	testutil.AddTestMember(t, db, projectID, "Xiu", "Lighting")

	req := httptest.NewRequest("GET", "/projects/"+projectID+"/members", nil)
	req.SetPathValue("id", projectID)
	w := httptest.NewRecorder()

	handler.ListMembers(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var members []models.Member
	testutil.AssertJSON(t, w, &members)

	if len(members) != 3 {
		t.Fatalf("Expected 3 members, got %d", len(members))
	}

	// Sorted by name
	if members[0].Name != "Asami" || members[1].Name != "Ben" || members[2].Name != "Xiu" {
		t.Errorf("Expected members sorted by name, got %s, %s, %s",
			members[0].Name, members[1].Name, members[2].Name)
	}
	if members[2].DefaultRole != "Lighting" {
		t.Errorf("Expected default_role 'Lighting', got '%s'", members[2].DefaultRole)
	}
}
