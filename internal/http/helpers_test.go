package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"atelier/internal/config"
	"atelier/internal/http/handlers"
	"atelier/internal/repos"
)

func testConfig() config.Config {
	return config.Config{
		JWTSecret:   "test-secret",
		AccessTTL:   30 * time.Minute,
		RefreshTTL:  7 * 24 * time.Hour,
		PageSizeMax: 100,
	}
}

func newTestApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	return handlers.NewApp(db, testConfig()), db
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}

// adminToken logs in as the seeded bootstrap admin.
func adminToken(t *testing.T, app *fiber.App) string {
	t.Helper()
	return login(t, app, "admin@atelier.test", "ChangeMe1!")
}

// commonToken registers and logs in a fresh non-admin user.
func commonToken(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	resp := doJSON(t, app, "POST", "/auth/register", "", fiber.Map{
		"name": "Common", "email": email, "password": "Passw0rd!",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register %s: status %d", email, resp.StatusCode)
	}
	return login(t, app, email, "Passw0rd!")
}

func login(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()
	resp := doJSON(t, app, "POST", "/auth/login", "", fiber.Map{
		"email": email, "password": password,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s: status %d", email, resp.StatusCode)
	}
	var out struct {
		AccessToken string `json:"access_token"`
	}
	decode(t, resp, &out)
	if out.AccessToken == "" {
		t.Fatal("login returned no access token")
	}
	return out.AccessToken
}

func seedClientPayload(i int) fiber.Map {
	return fiber.Map{
		"name":  fmt.Sprintf("Client %02d", i),
		"email": fmt.Sprintf("client%02d@example.com", i),
		"cpf":   fmt.Sprintf("%011d", 10000000000+i),
	}
}
