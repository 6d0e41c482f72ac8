package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 2*time.Second, nil, nil), srv
}

func TestLogin_Success(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/auth/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected json content type, got %q", ct)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"tok-9","user":{"id":"u1","name":"Ada","role":"student"}}`))
	})

	res, err := c.Login(context.Background(), Credentials{Identifier: "REG123", Password: "pw", Role: "student"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Token != "tok-9" || res.User.Name != "Ada" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestStudentProfile_SendsBearer(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("expected bearer header, got %q", got)
		}
		_, _ = w.Write([]byte(`{"researchInterests":["AI"],"careerGoals":["Data Scientist"],"hasMatched":false}`))
	})

	p, err := c.StudentProfile(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(p.ResearchInterests) != 1 || p.ResearchInterests[0] != "AI" {
		t.Fatalf("unexpected profile: %+v", p)
	}
}

func TestStatusClassification(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "401 is unauthorized",
			status: http.StatusUnauthorized,
			body:   `{"message":"token expired"}`,
			check: func(t *testing.T, err error) {
				if !errors.Is(err, ErrUnauthorized) {
					t.Fatalf("expected ErrUnauthorized, got %v", err)
				}
			},
		},
		{
			name:   "404 is not found",
			status: http.StatusNotFound,
			body:   `{"message":"no profile"}`,
			check: func(t *testing.T, err error) {
				if !errors.Is(err, ErrNotFound) {
					t.Fatalf("expected ErrNotFound, got %v", err)
				}
			},
		},
		{
			name:   "400 carries the backend message",
			status: http.StatusBadRequest,
			body:   `{"message":"pick more interests"}`,
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				if !errors.As(err, &apiErr) {
					t.Fatalf("expected APIError, got %v", err)
				}
				if apiErr.Message != "pick more interests" {
					t.Fatalf("expected backend message, got %q", apiErr.Message)
				}
			},
		},
		{
			name:   "500 is transient",
			status: http.StatusInternalServerError,
			body:   "boom",
			check: func(t *testing.T, err error) {
				if !IsTransient(err) {
					t.Fatalf("expected transient error, got %v", err)
				}
				if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrNotFound) {
					t.Fatalf("5xx must not map to a terminal classification: %v", err)
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})
			_, err := c.StudentProfile(context.Background(), "tok")
			if err == nil {
				t.Fatalf("expected error")
			}
			tc.check(t, err)
		})
	}
}

func TestMalformedBodyIsTransient(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"researchInterests": [`))
	})

	_, err := c.StudentProfile(context.Background(), "tok")
	if !IsTransient(err) {
		t.Fatalf("expected transient error for malformed body, got %v", err)
	}
}

func TestConnectionFailureIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(url, time.Second, nil, nil)
	_, err := c.StudentProfile(context.Background(), "tok")
	if !IsTransient(err) {
		t.Fatalf("expected transient error for refused connection, got %v", err)
	}
}

func TestAdvisorProfile_ReadsEnvelope(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/advisors/profile" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"success":true,"advisor":{"researchInterests":["Robotics"],"maxStudents":5,"availableSlots":3,"completedProfile":true}}`))
	})

	p, err := c.AdvisorProfile(context.Background(), "tok")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !p.CompletedProfile || p.AvailableSlots != 3 {
		t.Fatalf("unexpected profile: %+v", p)
	}
}

func TestAdvisorProfile_EmptyEnvelopeIsNotFound(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false}`))
	})

	_, err := c.AdvisorProfile(context.Background(), "tok")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty envelope, got %v", err)
	}
}

func TestFindMatch(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/match/find-match" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"success":true,"message":"matched","matchedAdvisor":{"name":"Dr. Lovelace","researchInterests":["AI"]}}`))
	})

	res, err := c.FindMatch(context.Background(), "tok")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !res.Success || res.MatchedAdvisor == nil || res.MatchedAdvisor.Name != "Dr. Lovelace" {
		t.Fatalf("unexpected result: %+v", res)
	}
}
