package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gorm.io/gorm"

	"github.com/KBesada24/CSC430-SWE/v1/models"
	"github.com/KBesada24/CSC430-SWE/v1/services"
	v1utils "github.com/KBesada24/CSC430-SWE/v1/utils"
)

// setupTestHandler wires a V1Handler against an in-memory database with no
// stream publisher, plus a mux with the full route table.
func setupTestHandler(t *testing.T) (*http.ServeMux, *gorm.DB) {
	t.Helper()

	db := services.SetupSQLiteTestDB(t)
	handler := NewV1Handler(db, "http://localhost:5173", nil)

	mux := http.NewServeMux()
	handler.SetupV1Routes(mux)
	return mux, db
}

// doRequest builds a request authenticated as the given student (nil for an
// anonymous request), serves it through the mux and returns the recorder.
func doRequest(t *testing.T, mux *http.ServeMux, method, target string, body interface{}, as *models.Student) *httptest.ResponseRecorder {
	t.Helper()

	var buf *bytes.Buffer
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		buf = bytes.NewBuffer(payload)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, target, buf)
	req.Header.Set("Content-Type", "application/json")

	if as != nil {
		principal, err := models.NewAuthenticatedStudent(as.StudentID, as.Email, as.Role)
		if err != nil {
			t.Fatalf("Failed to build test principal: %v", err)
		}
		req = req.WithContext(v1utils.SetAuthenticatedStudent(req.Context(), principal))
	}

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

// decodeBody unmarshals a JSON response body into out
func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("Failed to decode response body %q: %v", w.Body.String(), err)
	}
}
