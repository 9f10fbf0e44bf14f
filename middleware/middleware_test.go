// Copyright (c) 2025 OptimisticPessimist.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/OptimisticPessimist/pscweb3-sub000/models"
)

func TestJSONResponse(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		data       any
		wantBody   string
	}{
		{
			name:       "simple map",
			statusCode: http.StatusOK,
			data:       map[string]string{"status": "OK"},
			wantBody:   `{"status":"OK"}`,
		},
		{
			name:       "project response",
			statusCode: http.StatusCreated,
			data:       models.CreateProjectResponse{ProjectID: "p1"},
			wantBody:   `{"project_id":"p1"}`,
		},
		{
			name:       "error response",
			statusCode: http.StatusNotFound,
			data:       models.ErrorResponse{Error: "Not Found", Message: "Poll not found"},
			wantBody:   `{"error":"Not Found","message":"Poll not found"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			JSONResponse(w, tt.statusCode, tt.data)

			if w.Code != tt.statusCode {
				t.Errorf("status = %d, want %d", w.Code, tt.statusCode)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", ct)
			}
			got := strings.TrimSpace(w.Body.String())
			if got != tt.wantBody {
				t.Errorf("body = %q, want %q", got, tt.wantBody)
			}
		})
	}
}

func TestErrorResponse(t *testing.T) {
	w := httptest.NewRecorder()
	ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	var resp models.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if resp.Error != "Bad Request" {
		t.Errorf("error = %q, want %q", resp.Error, "Bad Request")
	}
	if resp.Message != "Invalid JSON" {
		t.Errorf("message = %q, want %q", resp.Message, "Invalid JSON")
	}
}

func TestParseJSONBody(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		body := `{"name":"Hamlet Spring Run"}`
		r := httptest.NewRequest("POST", "/projects", strings.NewReader(body))

		var req models.CreateProjectRequest
		if err := ParseJSONBody(r, &req); err != nil {
			t.Fatalf("ParseJSONBody() error = %v", err)
		}
		if req.Name != "Hamlet Spring Run" {
			t.Errorf("name = %q, want %q", req.Name, "Hamlet Spring Run")
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/projects", strings.NewReader(`{"name":`))

		var req models.CreateProjectRequest
		if err := ParseJSONBody(r, &req); err == nil {
			t.Error("ParseJSONBody() expected error for malformed JSON")
		}
	})

	t.Run("empty body", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/projects", strings.NewReader(""))

		var req models.CreateProjectRequest
		if err := ParseJSONBody(r, &req); err == nil {
			t.Error("ParseJSONBody() expected error for empty body")
		}
	})
}

func TestWithLogging(t *testing.T) {
	called := false
	handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/health", nil)
	handler(w, r)

	if !called {
		t.Error("wrapped handler was not called")
	}
	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNoContent)
	}
}

func TestCORS(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := CORS(inner)

	t.Run("preflight", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("OPTIONS", "/polls", nil)
		r.Header.Set("Origin", "http://localhost:5173")
		handler.ServeHTTP(w, r)

		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
			t.Errorf("Allow-Origin = %q, want request origin", got)
		}
		if got := w.Header().Get("Access-Control-Allow-Headers"); !strings.Contains(got, "X-Admin-Key") {
			t.Errorf("Allow-Headers = %q, want X-Admin-Key included", got)
		}
	})

	t.Run("normal request", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/health", nil)
		handler.ServeHTTP(w, r)

		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("Allow-Origin = %q, want *", got)
		}
	})
}
