// Package upstream is the HTTP client for the remote matcher backend. All
// auth, profile and matching calls the screens trigger go through here;
// responses are classified into the small error taxonomy the session layer
// keys on (unauthorized / not-found / user-caused / transient).
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/domain/profile"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/domain/session"
)

type Credentials struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
	Role       string `json:"role"`
}

type Registration struct {
	Name       string `json:"name"`
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
	Role       string `json:"role"`
}

type AuthResult struct {
	Token string       `json:"token"`
	User  session.User `json:"user"`
}

type StudentProfileInput struct {
	ResearchInterests []string `json:"researchInterests"`
	CareerGoals       []string `json:"careerGoals"`
	YearLevel         string   `json:"yearLevel"`
}

type AdvisorProfileInput struct {
	ResearchInterests []string `json:"researchInterests"`
	ExpertiseAreas    []string `json:"expertiseAreas"`
	MaxStudents       int      `json:"maxStudents"`
	AvailableSlots    int      `json:"availableSlots"`
	Bio               string   `json:"bio"`
	CompletedProfile  bool     `json:"completedProfile"`
}

type MatchResult struct {
	Success        bool                    `json:"success"`
	Message        string                  `json:"message"`
	MatchedAdvisor *profile.AdvisorSummary `json:"matchedAdvisor,omitempty"`
}

type Client interface {
	Login(ctx context.Context, in Credentials) (AuthResult, error)
	Register(ctx context.Context, in Registration) (AuthResult, error)

	StudentProfile(ctx context.Context, token string) (profile.Student, error)
	AdvisorProfile(ctx context.Context, token string) (profile.Advisor, error)
	CompleteStudentProfile(ctx context.Context, token string, in StudentProfileInput) (profile.Student, error)
	CompleteAdvisorProfile(ctx context.Context, token string, in AdvisorProfileInput) (profile.Advisor, error)

	FindMatch(ctx context.Context, token string) (MatchResult, error)
	StudentDashboard(ctx context.Context, token string) (json.RawMessage, error)
	AdvisorDashboard(ctx context.Context, token string) (json.RawMessage, error)
	AllAdvisors(ctx context.Context, token string) (json.RawMessage, error)
}

// Metrics is the slice of the collector backend calls report to.
type Metrics interface {
	RecordUpstreamFailure(op, kind string)
	ObserveUpstreamLatency(seconds float64)
}

type httpClient struct {
	baseURL string
	client  *http.Client
	logger  *log.Logger
	metrics Metrics
}

func NewClient(baseURL string, timeout time.Duration, logger *log.Logger, metrics Metrics) Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &httpClient{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
		metrics: metrics,
	}
}

func (c *httpClient) Login(ctx context.Context, in Credentials) (AuthResult, error) {
	var out AuthResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", in, &out); err != nil {
		return AuthResult{}, err
	}
	return out, nil
}

func (c *httpClient) Register(ctx context.Context, in Registration) (AuthResult, error) {
	var out AuthResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", "", in, &out); err != nil {
		return AuthResult{}, err
	}
	return out, nil
}

func (c *httpClient) StudentProfile(ctx context.Context, token string) (profile.Student, error) {
	var out profile.Student
	if err := c.do(ctx, http.MethodGet, "/api/match/student/profile", token, nil, &out); err != nil {
		return profile.Student{}, err
	}
	return out, nil
}

// advisorProfileEnvelope mirrors the backend's advisor profile response,
// which wraps the record unlike the student endpoint.
type advisorProfileEnvelope struct {
	Success bool             `json:"success"`
	Advisor *profile.Advisor `json:"advisor"`
}

func (c *httpClient) AdvisorProfile(ctx context.Context, token string) (profile.Advisor, error) {
	// The backend exposes the advisor profile read as a POST with an empty
	// body.
	var env advisorProfileEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/advisors/profile", token, struct{}{}, &env); err != nil {
		return profile.Advisor{}, err
	}
	if env.Advisor == nil {
		return profile.Advisor{}, ErrNotFound
	}
	return *env.Advisor, nil
}

// studentSaveEnvelope wraps the saved student record.
type studentSaveEnvelope struct {
	Student *profile.Student `json:"student"`
}

func (c *httpClient) CompleteStudentProfile(ctx context.Context, token string, in StudentProfileInput) (profile.Student, error) {
	var env studentSaveEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/match/complete-profile", token, in, &env); err != nil {
		return profile.Student{}, err
	}
	if env.Student == nil {
		return profile.Student{}, &TransportError{Op: "complete student profile", Err: errors.New("missing student record in response")}
	}
	return *env.Student, nil
}

func (c *httpClient) CompleteAdvisorProfile(ctx context.Context, token string, in AdvisorProfileInput) (profile.Advisor, error) {
	var env advisorProfileEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/advisors/complete-profile", token, in, &env); err != nil {
		return profile.Advisor{}, err
	}
	if env.Advisor != nil {
		return *env.Advisor, nil
	}
	// Some backend deployments return the bare record.
	return profile.Advisor{
		ResearchInterests: in.ResearchInterests,
		ExpertiseAreas:    in.ExpertiseAreas,
		MaxStudents:       in.MaxStudents,
		AvailableSlots:    in.AvailableSlots,
		Bio:               in.Bio,
		CompletedProfile:  true,
	}, nil
}

func (c *httpClient) FindMatch(ctx context.Context, token string) (MatchResult, error) {
	var out MatchResult
	if err := c.do(ctx, http.MethodPost, "/api/match/find-match", token, struct{}{}, &out); err != nil {
		return MatchResult{}, err
	}
	return out, nil
}

func (c *httpClient) StudentDashboard(ctx context.Context, token string) (json.RawMessage, error) {
	return c.raw(ctx, "/api/match/student/dashboard", token)
}

func (c *httpClient) AdvisorDashboard(ctx context.Context, token string) (json.RawMessage, error) {
	return c.raw(ctx, "/api/advisors/dashboard", token)
}

func (c *httpClient) AllAdvisors(ctx context.Context, token string) (json.RawMessage, error) {
	return c.raw(ctx, "/api/match/all-advisors", token)
}

func (c *httpClient) raw(ctx context.Context, path string, token string) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// do issues one backend call and classifies the outcome: 401 is always
// ErrUnauthorized, 404 is ErrNotFound, other 4xx carry the backend message
// as APIError, and 5xx / network / decode failures become TransportError.
func (c *httpClient) do(ctx context.Context, method, path, token string, body any, out any) error {
	endpoint := c.baseURL + path
	started := time.Now()
	defer func() {
		if c.metrics != nil {
			c.metrics.ObserveUpstreamLatency(time.Since(started).Seconds())
		}
	}()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.recordFailure(path, "network")
		return &TransportError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		c.recordFailure(path, "unauthorized")
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 500:
		msg := readErrorBody(resp.Body)
		if c.logger != nil {
			c.logger.Printf("[Upstream] server error | endpoint=%s status=%d body=%q", endpoint, resp.StatusCode, msg)
		}
		c.recordFailure(path, "server")
		return &TransportError{Op: method + " " + path, Err: fmt.Errorf("status %d: %s", resp.StatusCode, msg)}
	case resp.StatusCode >= 300:
		return &APIError{Status: resp.StatusCode, Message: decodeMessage(resp.Body, resp.StatusCode)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.recordFailure(path, "decode")
		return &TransportError{Op: method + " " + path, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (c *httpClient) recordFailure(op, kind string) {
	if c.metrics != nil {
		c.metrics.RecordUpstreamFailure(op, kind)
	}
}

func readErrorBody(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 4096))
	return strings.TrimSpace(string(b))
}

// decodeMessage pulls {message} out of a failure body, falling back to the
// status text when the body is not the expected shape.
func decodeMessage(r io.Reader, status int) string {
	var body struct {
		Message string `json:"message"`
	}
	raw := readErrorBody(r)
	if err := json.Unmarshal([]byte(raw), &body); err == nil && body.Message != "" {
		return body.Message
	}
	return http.StatusText(status)
}

var _ Client = (*httpClient)(nil)
