package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/localnerve/lessonsync/internal/server"
	"github.com/localnerve/lessonsync/internal/services"
	"github.com/localnerve/lessonsync/internal/store"
)

// setupTestApp creates the full API over an in-memory store
func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()
	svc := services.New(store.New(store.NewMemoryBackend()))
	return server.New(svc, nil, server.Options{})
}

type brokenBackend struct{}

func (brokenBackend) Load(context.Context, string) ([]byte, error) {
	return nil, errors.New("disk on fire")
}

func (brokenBackend) Save(context.Context, string, []byte) error {
	return errors.New("disk on fire")
}

func do(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response: %v", err)
	}
	return resp, data
}

func decodeMap(t *testing.T, data []byte) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("Failed to decode %q: %v", data, err)
	}
	return m
}

func decodeList(t *testing.T, data []byte) []map[string]interface{} {
	t.Helper()
	var l []map[string]interface{}
	if err := json.Unmarshal(data, &l); err != nil {
		t.Fatalf("Failed to decode %q: %v", data, err)
	}
	return l
}

func TestMaterialsRoundTrip(t *testing.T) {
	app := setupTestApp(t)

	resp, body := do(t, app, "POST", "/api/materials/photos", `{"name":"cat.png","url":"/img/cat.png"}`)
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d: %s", resp.StatusCode, body)
	}
	saved := decodeMap(t, body)
	id, _ := saved["id"].(string)
	if id == "" {
		t.Fatalf("Expected a generated id, got %v", saved)
	}
	if saved["createdAt"] == nil || saved["updatedAt"] == nil {
		t.Errorf("Expected timestamps, got %v", saved)
	}

	_, body = do(t, app, "GET", "/api/materials/photos", "")
	list := decodeList(t, body)
	if len(list) != 1 || list[0]["id"] != id {
		t.Fatalf("Expected the saved photo, got %v", list)
	}

	// same id replaces
	do(t, app, "POST", "/api/materials/photos", `{"id":"`+id+`","name":"dog.png"}`)
	_, body = do(t, app, "GET", "/api/materials/photos", "")
	list = decodeList(t, body)
	if len(list) != 1 || list[0]["name"] != "dog.png" {
		t.Errorf("Expected one replaced photo, got %v", list)
	}

	// other categories are unaffected
	_, body = do(t, app, "GET", "/api/materials/texts", "")
	if string(body) != "[]" {
		t.Errorf("Expected empty texts, got %s", body)
	}

	resp, body = do(t, app, "DELETE", "/api/materials/photos/"+id, "")
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	if diff := cmp.Diff(map[string]interface{}{"success": true}, decodeMap(t, body)); diff != "" {
		t.Errorf("delete body (-want +got):\n%s", diff)
	}
	_, body = do(t, app, "GET", "/api/materials/photos", "")
	if string(body) != "[]" {
		t.Errorf("Expected no photos after delete, got %s", body)
	}
}

func TestNumericIDsKeepTheirType(t *testing.T) {
	app := setupTestApp(t)

	do(t, app, "POST", "/api/materials/texts", `{"id":1700000000123,"title":"t"}`)
	do(t, app, "POST", "/api/materials/texts", `{"id":1700000000123,"title":"u"}`)

	_, body := do(t, app, "GET", "/api/materials/texts", "")
	if !strings.Contains(string(body), `"id":1700000000123`) {
		t.Errorf("numeric id should round-trip unchanged, got %s", body)
	}
	if list := decodeList(t, body); len(list) != 1 {
		t.Errorf("Expected numeric id to match on upsert, got %d items", len(list))
	}

	resp, body := do(t, app, "DELETE", "/api/materials/texts/1700000000123", "")
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	_, body = do(t, app, "GET", "/api/materials/texts", "")
	if string(body) != "[]" {
		t.Errorf("Expected numeric id to be deleted by path, got %s", body)
	}
}

func TestDeleteUnknownIDSucceeds(t *testing.T) {
	app := setupTestApp(t)

	for _, path := range []string{"/api/materials/photos/nope", "/api/tests/nope"} {
		resp, body := do(t, app, "DELETE", path, "")
		if resp.StatusCode != 200 {
			t.Errorf("%s: expected status 200, got %d", path, resp.StatusCode)
		}
		if decodeMap(t, body)["success"] != true {
			t.Errorf("%s: expected success, got %s", path, body)
		}
	}
}

func TestUnknownCategory(t *testing.T) {
	app := setupTestApp(t)

	for _, tc := range []struct{ method, path, body string }{
		{"GET", "/api/materials/videos", ""},
		{"POST", "/api/materials/videos", `{"name":"x"}`},
		{"DELETE", "/api/materials/videos/1", ""},
		{"GET", "/api/selected/videos", ""},
	} {
		resp, body := do(t, app, tc.method, tc.path, tc.body)
		if resp.StatusCode != 400 {
			t.Errorf("%s %s: expected status 400, got %d", tc.method, tc.path, resp.StatusCode)
			continue
		}
		if got := decodeMap(t, body)["error"]; got != "Unknown material type" {
			t.Errorf("%s %s: error = %v", tc.method, tc.path, got)
		}
	}
}

func TestInvalidInput(t *testing.T) {
	app := setupTestApp(t)

	for _, tc := range []struct{ path, body string }{
		{"/api/materials/photos", `{"name":`},
		{"/api/materials/photos", `[1,2]`},
		{"/api/tests", `null`},
		{"/api/homework", `"text"`},
		{"/api/selected/photos", `{"id":`},
	} {
		resp, body := do(t, app, "POST", tc.path, tc.body)
		if resp.StatusCode != 400 {
			t.Errorf("%s %q: expected status 400, got %d", tc.path, tc.body, resp.StatusCode)
			continue
		}
		m := decodeMap(t, body)
		if m["error"] != "Invalid input" || m["ok"] != false {
			t.Errorf("%s: unexpected body %v", tc.path, m)
		}
	}
}

func TestTestsReplaceByName(t *testing.T) {
	app := setupTestApp(t)

	_, body := do(t, app, "POST", "/api/tests", `{"name":"Unit1","questions":["a"]}`)
	first := decodeMap(t, body)
	_, body = do(t, app, "POST", "/api/tests", `{"name":"unit1","questions":["a","b"]}`)
	second := decodeMap(t, body)

	if first["id"] != second["id"] {
		t.Errorf("Expected the stored id to be kept, got %v then %v", first["id"], second["id"])
	}

	_, body = do(t, app, "GET", "/api/tests", "")
	list := decodeList(t, body)
	if len(list) != 1 {
		t.Fatalf("Expected one test, got %v", list)
	}
	if q := list[0]["questions"].([]interface{}); len(q) != 2 {
		t.Errorf("Expected the second write to win, got %v", list[0])
	}
}

func TestSelectedReplace(t *testing.T) {
	app := setupTestApp(t)

	_, body := do(t, app, "POST", "/api/selected/photos", `[{"id":"1"},{"id":"2"}]`)
	if got := decodeList(t, body); len(got) != 2 {
		t.Errorf("Expected the stored array back, got %s", body)
	}
	do(t, app, "POST", "/api/selected/photos", `[{"id":"3"}]`)

	_, body = do(t, app, "GET", "/api/selected/photos", "")
	if diff := cmp.Diff([]map[string]interface{}{{"id": "3"}}, decodeList(t, body)); diff != "" {
		t.Errorf("selection (-want +got):\n%s", diff)
	}

	// a single object is a one-item selection
	do(t, app, "POST", "/api/selected/texts", `{"id":"t"}`)
	_, body = do(t, app, "GET", "/api/selected/texts", "")
	if len(decodeList(t, body)) != 1 {
		t.Errorf("Expected one selected text, got %s", body)
	}

	do(t, app, "POST", "/api/selected/texts", `[]`)
	_, body = do(t, app, "GET", "/api/selected/texts", "")
	if string(body) != "[]" {
		t.Errorf("Expected an emptied selection, got %s", body)
	}

	// null clears a selection too
	do(t, app, "POST", "/api/selected/texts", `[{"id":"t"}]`)
	resp, body := do(t, app, "POST", "/api/selected/texts", `null`)
	if resp.StatusCode != 200 || string(body) != "[]" {
		t.Errorf("POST null: expected 200 [], got %d %s", resp.StatusCode, body)
	}
	_, body = do(t, app, "GET", "/api/selected/texts", "")
	if string(body) != "[]" {
		t.Errorf("Expected null to empty the selection, got %s", body)
	}
}

func TestSingletons(t *testing.T) {
	app := setupTestApp(t)

	defaults := map[string]string{
		"/api/homework":    `{"content":""}`,
		"/api/whiteboard":  `{"drawing":null}`,
		"/api/preferences": `{}`,
		"/api/progress":    `{}`,
	}
	for path, want := range defaults {
		resp, body := do(t, app, "GET", path, "")
		if resp.StatusCode != 200 || string(body) != want {
			t.Errorf("GET %s = %d %s, want %s", path, resp.StatusCode, body, want)
		}
	}

	resp, body := do(t, app, "POST", "/api/homework", `{"content":"Read chapter 3"}`)
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	saved := decodeMap(t, body)
	if saved["content"] != "Read chapter 3" || saved["updatedAt"] == nil {
		t.Errorf("Expected the stored record back, got %v", saved)
	}

	_, body = do(t, app, "GET", "/api/homework", "")
	if diff := cmp.Diff(saved, decodeMap(t, body)); diff != "" {
		t.Errorf("GET after POST (-want +got):\n%s", diff)
	}

	do(t, app, "POST", "/api/preferences", `{"theme":"dark","backgroundAnimation":"off"}`)
	do(t, app, "POST", "/api/preferences", `{"theme":"light"}`)
	_, body = do(t, app, "GET", "/api/preferences", "")
	prefs := decodeMap(t, body)
	if _, ok := prefs["backgroundAnimation"]; ok || prefs["theme"] != "light" {
		t.Errorf("Expected a whole-record replace, got %v", prefs)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	app := setupTestApp(t)

	for _, tc := range []struct{ method, path string }{
		{"PUT", "/api/tests"},
		{"DELETE", "/api/homework"},
		{"GET", "/api/tests/abc"},
		{"POST", "/api/health"},
		{"PATCH", "/api/materials/photos"},
	} {
		resp, body := do(t, app, tc.method, tc.path, "")
		if resp.StatusCode != 405 {
			t.Errorf("%s %s: expected status 405, got %d", tc.method, tc.path, resp.StatusCode)
			continue
		}
		if got := decodeMap(t, body)["error"]; got != "Method not allowed" {
			t.Errorf("%s %s: error = %v", tc.method, tc.path, got)
		}
		if resp.Header.Get("Access-Control-Allow-Origin") != "*" {
			t.Errorf("%s %s: missing CORS header", tc.method, tc.path)
		}
	}
}

func TestPreflight(t *testing.T) {
	app := setupTestApp(t)

	tests := map[string]string{
		"/api/materials/photos":   "GET, POST, OPTIONS",
		"/api/materials/photos/1": "DELETE, OPTIONS",
		"/api/tests":              "GET, POST, OPTIONS",
		"/api/tests/1":            "DELETE, OPTIONS",
		"/api/health":             "GET, OPTIONS",
	}
	for path, methods := range tests {
		resp, body := do(t, app, "OPTIONS", path, "")
		if resp.StatusCode != 200 || len(body) != 0 {
			t.Errorf("OPTIONS %s = %d %q, want empty 200", path, resp.StatusCode, body)
		}
		if got := resp.Header.Get("Access-Control-Allow-Methods"); got != methods {
			t.Errorf("OPTIONS %s allow methods = %q, want %q", path, got, methods)
		}
		if got := resp.Header.Get("Access-Control-Allow-Credentials"); got != "true" {
			t.Errorf("OPTIONS %s allow credentials = %q", path, got)
		}
	}
}

func TestStorageFailure(t *testing.T) {
	svc := services.New(store.New(brokenBackend{}))
	app := server.New(svc, nil, server.Options{})

	for _, tc := range []struct{ method, path, body, want string }{
		{"GET", "/api/tests", "", "Failed to fetch tests"},
		{"POST", "/api/tests", `{"name":"x"}`, "Failed to save test"},
		{"DELETE", "/api/materials/photos/1", "", "Failed to delete material"},
		{"GET", "/api/homework", "", "Failed to fetch homework"},
		{"POST", "/api/selected/photos", `[]`, "Failed to save selected materials"},
	} {
		resp, body := do(t, app, tc.method, tc.path, tc.body)
		if resp.StatusCode != 500 {
			t.Errorf("%s %s: expected status 500, got %d", tc.method, tc.path, resp.StatusCode)
			continue
		}
		if strings.Contains(string(body), "disk on fire") {
			t.Errorf("%s %s: internal error leaked: %s", tc.method, tc.path, body)
		}
		if got := decodeMap(t, body)["error"]; got != tc.want {
			t.Errorf("%s %s: error = %v, want %q", tc.method, tc.path, got, tc.want)
		}
	}

	resp, _ := do(t, app, "GET", "/api/health", "")
	if resp.StatusCode != 503 {
		t.Errorf("health with a broken store: expected 503, got %d", resp.StatusCode)
	}
}

func TestHealth(t *testing.T) {
	app := setupTestApp(t)

	resp, body := do(t, app, "GET", "/api/health", "")
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	m := decodeMap(t, body)
	if m["status"] != "ok" || m["timestamp"] == "" {
		t.Errorf("unexpected health body %v", m)
	}
}

func TestNotFound(t *testing.T) {
	app := setupTestApp(t)

	resp, body := do(t, app, "GET", "/api/nothing/here/at/all", "")
	if resp.StatusCode != 404 {
		t.Fatalf("Expected status 404, got %d", resp.StatusCode)
	}
	if decodeMap(t, body)["ok"] != false {
		t.Errorf("Expected the error envelope, got %s", body)
	}
}
