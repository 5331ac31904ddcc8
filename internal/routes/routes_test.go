package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/PY-Dev20/traint-5x5/internal/config"
	"github.com/PY-Dev20/traint-5x5/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type emptyRow struct{}

func (emptyRow) Scan(_ ...any) error {
	return pgx.ErrNoRows
}

// emptyDB behaves like a database with no catalog rows.
type emptyDB struct{}

func (emptyDB) Exec(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (emptyDB) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
	return nil, errors.New("query not supported")
}

func (emptyDB) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row {
	return emptyRow{}
}

const testSecret = "routes-secret"

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	app := fiber.New()
	cfg := &config.Config{JWTSecret: testSecret}
	deps := Dependencies{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	if err := RegisterRoutes(app, cfg, emptyDB{}, deps); err != nil {
		t.Fatalf("RegisterRoutes: %v", err)
	}
	return app
}

func TestRegisterRoutesMissingResourcesReturnNotFound(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		path    string
		message string
	}{
		{path: "/api/programs/999/?lang=fr", message: "Program not found"},
		{path: "/api/programs/999", message: "Program not found"},
		{path: "/api/exercises/12/", message: "Exercise not found"},
	}
	for _, tt := range tests {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil))
		if err != nil {
			t.Fatalf("app.Test %s: %v", tt.path, err)
		}
		if resp.StatusCode != fiber.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", tt.path, resp.StatusCode)
		}
		var body map[string]string
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("%s: decode: %v", tt.path, err)
		}
		if body["error"] != tt.message {
			t.Fatalf("%s: unexpected body %v", tt.path, body)
		}
	}
}

func TestRegisterRoutesEnrollmentRequiresAuth(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/api/programs/user-plans/", "/api/user-plans"} {
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(`{"program": 1}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test %s: %v", path, err)
		}
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", path, resp.StatusCode)
		}
	}
}

func TestRegisterRoutesEnrollUnknownProgram(t *testing.T) {
	app := newTestApp(t)
	token, err := utils.GenerateToken("3", "user", testSecret)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/user-plans/", bytes.NewBufferString(`{"program": 55}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var body map[string][]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := body["program"]; len(got) != 1 || got[0] != `Invalid pk "55" - object does not exist.` {
		t.Fatalf("unexpected body %v", body)
	}
}
