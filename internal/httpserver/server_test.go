package httpserver

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestRouterLogsRequests(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	r := NewRouter(logger, func(r chi.Router) {
		r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
			WriteJSON(w, http.StatusOK, map[string]string{"pong": "yes"})
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decoding log line: %v (%s)", err, buf.String())
	}
	if entry["msg"] != "http request" || entry["path"] != "/ping" || entry["status"] != float64(200) {
		t.Errorf("unexpected log entry %v", entry)
	}
	if id, _ := entry["request_id"].(string); id == "" {
		t.Error("expected a request id")
	}
}

func TestRouterRecoversPanics(t *testing.T) {
	var buf bytes.Buffer
	r := NewRouter(slog.New(slog.NewTextHandler(&buf, nil)), func(r chi.Router) {
		r.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}

func TestReadJSON(t *testing.T) {
	var v struct {
		Title string `json:"title"`
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"a"}`))
	if err := ReadJSON(req, &v); err != nil || v.Title != "a" {
		t.Errorf("ReadJSON = %v, title %q", err, v.Title)
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":`))
	if err := ReadJSON(req, &v); err == nil {
		t.Error("expected error for truncated body")
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, http.StatusConflict, "nope")

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"error":"nope"}` {
		t.Errorf("body = %s", got)
	}
}
