package app

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/config"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/infrastructure/credstore"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/infrastructure/upstream"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/pkg/response"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/usecase/resolver"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/ws"
)

// fakeMatcherBackend imitates the remote matcher API for the flows the
// gateway drives: login and the student profile check.
func fakeMatcherBackend(t *testing.T, hasProfile *bool) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"token":"tok-1","user":{"id":"u1","name":"Ada","role":"student"}}`))
		case "/api/match/student/profile":
			if !*hasProfile {
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`{"message":"no profile"}`))
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"researchInterests":["AI","Data Science"],"careerGoals":["Data Scientist","Web Developer"],"yearLevel":"Year 2","hasMatched":false}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"not found"}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestApp(t *testing.T, backendURL string) *App {
	t.Helper()
	logger := log.New(io.Discard, "", 0)

	cfg := config.Config{}
	cfg.App.AppName = "matcher-gateway-test"
	cfg.App.Environment = "test"
	cfg.Backend.BaseURL = backendURL

	store := credstore.NewRedis("", "", time.Hour, logger)
	backend := upstream.NewClient(backendURL, 2*time.Second, logger, nil)
	registry := resolver.NewRegistry(store, backend, logger, nil)
	hub := ws.NewHub(logger, nil)
	go hub.Run()

	c := &Container{
		Config:   cfg,
		Logger:   logger,
		Store:    store,
		Backend:  backend,
		Registry: registry,
		Hub:      hub,
	}
	return New(c)
}

func decodeEnvelope(t *testing.T, resp *http.Response) response.SemanticResponse {
	t.Helper()
	defer resp.Body.Close()
	var out response.SemanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return out
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, ck := range resp.Cookies() {
		if ck.Name == "matcher_sid" {
			return ck
		}
	}
	return nil
}

func TestAnonymousSessionResolvesToLogin(t *testing.T) {
	hasProfile := false
	srv := fakeMatcherBackend(t, &hasProfile)
	a := newTestApp(t, srv.URL)

	resp, err := a.Fiber.Test(httptest.NewRequest(http.MethodGet, "/api/session", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	env := decodeEnvelope(t, resp)
	if env.Status != http.StatusOK {
		t.Fatalf("expected 200, got %d", env.Status)
	}
	if env.Redirect != "/login" {
		t.Fatalf("expected /login redirect, got %q", env.Redirect)
	}
}

func TestLandingRouteShowsHomeToVisitors(t *testing.T) {
	hasProfile := false
	srv := fakeMatcherBackend(t, &hasProfile)
	a := newTestApp(t, srv.URL)

	resp, err := a.Fiber.Test(httptest.NewRequest(http.MethodGet, "/api/session?landing=true", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	env := decodeEnvelope(t, resp)
	if env.Redirect != "/" {
		t.Fatalf("expected home redirect for landing, got %q", env.Redirect)
	}
}

func TestLoginFlow_FreshStudent(t *testing.T) {
	hasProfile := false
	srv := fakeMatcherBackend(t, &hasProfile)
	a := newTestApp(t, srv.URL)

	body := strings.NewReader(`{"identifier":"REG123","password":"pw","role":"student"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.Fiber.Test(req)
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	ck := sessionCookie(resp)
	if ck == nil {
		t.Fatalf("login did not establish a gateway session cookie")
	}
	env := decodeEnvelope(t, resp)
	if env.Status != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", env.Status, env.Message)
	}
	// Fresh account, no profile: the one and only destination is the
	// profile screen, with no dashboard in between.
	if env.Redirect != "/complete-profile" {
		t.Fatalf("expected /complete-profile redirect, got %q", env.Redirect)
	}

	// The guard admits the resolved screen...
	req = httptest.NewRequest(http.MethodGet, "/api/screens/complete-profile/", nil)
	req.AddCookie(ck)
	resp, err = a.Fiber.Test(req)
	if err != nil {
		t.Fatalf("screen request: %v", err)
	}
	if env := decodeEnvelope(t, resp); env.Status != http.StatusOK {
		t.Fatalf("expected 200 on resolved screen, got %d", env.Status)
	}

	// ...and bounces the wrong one back to it.
	req = httptest.NewRequest(http.MethodGet, "/api/screens/student-dashboard/", nil)
	req.AddCookie(ck)
	resp, err = a.Fiber.Test(req)
	if err != nil {
		t.Fatalf("dashboard request: %v", err)
	}
	env = decodeEnvelope(t, resp)
	if env.Status != http.StatusForbidden {
		t.Fatalf("expected 403 for wrong screen, got %d", env.Status)
	}
	if env.Redirect != "/complete-profile" {
		t.Fatalf("expected redirect to resolved screen, got %q", env.Redirect)
	}
}

func TestCompletedProfileRoutesToMatchScreen(t *testing.T) {
	hasProfile := true
	srv := fakeMatcherBackend(t, &hasProfile)
	a := newTestApp(t, srv.URL)

	body := strings.NewReader(`{"identifier":"REG123","password":"pw","role":"student"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.Fiber.Test(req)
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	env := decodeEnvelope(t, resp)
	if env.Redirect != "/match" {
		t.Fatalf("expected /match redirect, got %q", env.Redirect)
	}
}

func TestLogoutForgetsSession(t *testing.T) {
	hasProfile := false
	srv := fakeMatcherBackend(t, &hasProfile)
	a := newTestApp(t, srv.URL)

	body := strings.NewReader(`{"identifier":"REG123","password":"pw","role":"student"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := a.Fiber.Test(req)
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	ck := sessionCookie(resp)
	if ck == nil {
		t.Fatalf("missing session cookie")
	}
	_ = resp.Body.Close()

	req = httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(ck)
	resp, err = a.Fiber.Test(req)
	if err != nil {
		t.Fatalf("logout request: %v", err)
	}
	if env := decodeEnvelope(t, resp); env.Redirect != "/login" {
		t.Fatalf("expected /login redirect after logout, got %q", env.Redirect)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req.AddCookie(ck)
	resp, err = a.Fiber.Test(req)
	if err != nil {
		t.Fatalf("session request: %v", err)
	}
	env := decodeEnvelope(t, resp)
	if env.Redirect != "/login" {
		t.Fatalf("session survived logout: redirect %q", env.Redirect)
	}
}

func TestListenAddr(t *testing.T) {
	if _, err := ListenAddr(""); err == nil {
		t.Fatalf("expected error for empty port")
	}
	if addr, err := ListenAddr("8080"); err != nil || addr != ":8080" {
		t.Fatalf("expected :8080, got %q (%v)", addr, err)
	}
	if addr, err := ListenAddr(":9090"); err != nil || addr != ":9090" {
		t.Fatalf("expected :9090, got %q (%v)", addr, err)
	}
}
