package handlers_test

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"inventory/internal/config"
	"inventory/internal/http/handlers"
	"inventory/internal/repos"
)

func testConfig() config.Config {
	return config.Config{
		Port:         "0",
		DB:           config.DB{Driver: "sqlite", URL: ":memory:", CreateSchema: true},
		LogLevel:     "info",
		PasswordHash: "sha256",
	}
}

// newTestApp wires the real middleware stack and routes over an in-memory store.
func newTestApp(t *testing.T, cfg config.Config) (*fiber.App, *sqlx.DB) {
	t.Helper()
	db, err := repos.OpenDB(cfg.DB)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	deps, err := handlers.NewDeps(db, cfg)
	if err != nil {
		t.Fatalf("deps: %v", err)
	}
	app := handlers.NewApp(cfg, nil)
	handlers.Routes(app, deps, cfg)
	return app, db
}

func do(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	b, _ := io.ReadAll(resp.Body)
	return resp, b
}

func expectStatus(t *testing.T, resp *http.Response, body []byte, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("want %d, got %d body=%s", want, resp.StatusCode, body)
	}
}

func decodeJSON(t *testing.T, body []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("bad json %q: %v", body, err)
	}
}
