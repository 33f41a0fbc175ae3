package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/apihub/apihub/internal/handler"
	"github.com/apihub/apihub/internal/middleware"
	"github.com/apihub/apihub/internal/service"
	"github.com/apihub/apihub/internal/testutil"
)

func newTestRouter(store *testutil.MemStore) http.Handler {
	logger := testutil.NewLogger()
	authService := service.NewAuthService(store, nil)
	entryService := service.NewEntryService(store, nil)

	return setupRouter(routerDeps{
		base:    handler.New(),
		health:  handler.NewHealthHandler(nil, nil),
		auth:    handler.NewAuthHandler(authService, logger),
		entries: handler.NewEntryHandler(entryService, logger),
		feed:    handler.NewFeedHandler(entryService, logger),
		authCfg: middleware.AuthConfig{Logger: logger, Store: store},
		logger:  logger,
	})
}

func doRequest(router http.Handler, method, target, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func registerAndLogin(t *testing.T, router http.Handler, username string) string {
	t.Helper()

	rec := doRequest(router, http.MethodPost, "/api/register", "", `{"username":"`+username+`","password":"secret1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("registration failed with %d: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(router, http.MethodPost, "/api/login", "", `{"username":"`+username+`","password":"secret1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed with %d: %s", rec.Code, rec.Body.String())
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	return body["token"]
}

func TestRouter_UnknownPath(t *testing.T) {
	router := newTestRouter(testutil.NewMemStore())

	rec := doRequest(router, http.MethodGet, "/api/unknown", "", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}

func TestRouter_WrongMethod(t *testing.T) {
	router := newTestRouter(testutil.NewMemStore())

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/register"},
		{http.MethodDelete, "/api/login"},
		{http.MethodPost, "/api/json"},
	}

	for _, tt := range tests {
		rec := doRequest(router, tt.method, tt.path, "", "")
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s %s: expected status 405, got %d", tt.method, tt.path, rec.Code)
		}
	}
}

func TestRouter_OptionsShortCircuitsEverywhere(t *testing.T) {
	store := testutil.NewMemStore()
	store.FailWith = testutil.ErrForced // the store must never be touched
	router := newTestRouter(store)

	paths := []string{"/api/register", "/api/login", "/api/me", "/api/apis", "/api/json", "/api/unknown"}
	for _, path := range paths {
		rec := doRequest(router, http.MethodOptions, path, "", "")

		if rec.Code != http.StatusOK {
			t.Errorf("OPTIONS %s: expected status 200, got %d", path, rec.Code)
		}
		if rec.Body.Len() != 0 {
			t.Errorf("OPTIONS %s: expected empty body, got %q", path, rec.Body.String())
		}
		if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
			t.Errorf("OPTIONS %s: missing CORS headers", path)
		}
	}
}

func TestRouter_CORSHeadersOnErrors(t *testing.T) {
	router := newTestRouter(testutil.NewMemStore())

	rec := doRequest(router, http.MethodGet, "/api/unknown", "", "")
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("expected CORS headers on a 404 response")
	}

	rec = doRequest(router, http.MethodGet, "/api/me", "", "")
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("expected CORS headers on a 401 response")
	}
}

func TestRouter_MeRequiresAuth(t *testing.T) {
	router := newTestRouter(testutil.NewMemStore())

	rec := doRequest(router, http.MethodGet, "/api/me", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401 without a token, got %d", rec.Code)
	}

	rec = doRequest(router, http.MethodGet, "/api/me", "bogus-token", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401 with an unknown token, got %d", rec.Code)
	}
}

func TestRouter_ApisAuthBeforeMethodBranch(t *testing.T) {
	router := newTestRouter(testutil.NewMemStore())

	// Unauthenticated PUT: 401, not 405.
	rec := doRequest(router, http.MethodPut, "/api/apis", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rec.Code)
	}

	token := registerAndLogin(t, router, "alice")

	// Authenticated PUT: 405.
	rec = doRequest(router, http.MethodPut, "/api/apis", token, "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", rec.Code)
	}
}

func TestRouter_FullFlow(t *testing.T) {
	router := newTestRouter(testutil.NewMemStore())

	aliceToken := registerAndLogin(t, router, "alice")
	bobToken := registerAndLogin(t, router, "bob")

	// Alice adds an entry.
	rec := doRequest(router, http.MethodPost, "/api/apis", aliceToken, `{"name":"weather","url":"https://api.example.com/weather"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("create failed with %d: %s", rec.Code, rec.Body.String())
	}

	// Bob sees nothing.
	rec = doRequest(router, http.MethodGet, "/api/apis", bobToken, "")
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("expected bob's list to be empty, got %s", got)
	}

	// Alice sees her entry.
	rec = doRequest(router, http.MethodGet, "/api/apis", aliceToken, "")
	var entries []map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&entries); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	// Bob cannot delete it.
	rec = doRequest(router, http.MethodDelete, "/api/apis?id=1", bobToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("cross-user delete returned %d", rec.Code)
	}
	rec = doRequest(router, http.MethodGet, "/api/apis", aliceToken, "")
	if err := json.NewDecoder(rec.Body).Decode(&entries); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected alice's entry to survive, got %d entries", len(entries))
	}

	// The public feed needs no token.
	rec = doRequest(router, http.MethodGet, "/api/json?user=1", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("feed failed with %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"weather"`) {
		t.Errorf("expected feed to contain alice's entry, got %s", rec.Body.String())
	}
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(testutil.NewMemStore())

	rec := doRequest(router, http.MethodGet, "/healthz", "", "")
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
}
