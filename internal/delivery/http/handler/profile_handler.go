package handler

import (
	"errors"
	"strings"

	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/delivery/http/middleware"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/domain/profile"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/domain/redirect"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/infrastructure/upstream"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/pkg/response"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/usecase/resolver"

	"github.com/gofiber/fiber/v3"
)

const (
	minSelections = 2
	maxSelections = 4
)

var yearLevels = []string{"Year 1", "Year 2", "Year 3", "Year 4"}

type ProfileHandler struct {
	backend  upstream.Client
	registry *resolver.Registry
}

type studentProfileRequest struct {
	ResearchInterests []string `json:"researchInterests"`
	CareerGoals       []string `json:"careerGoals"`
	YearLevel         string   `json:"yearLevel"`
}

type advisorProfileRequest struct {
	ResearchInterests []string `json:"researchInterests"`
	ExpertiseAreas    []string `json:"expertiseAreas"`
	MaxStudents       int      `json:"maxStudents"`
	AvailableSlots    int      `json:"availableSlots"`
	Bio               string   `json:"bio"`
}

func NewProfileHandler(backend upstream.Client, registry *resolver.Registry) *ProfileHandler {
	return &ProfileHandler{backend: backend, registry: registry}
}

func (h *ProfileHandler) RegisterStudentRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.StudentScreen)
	r.Post("/", h.SaveStudent)
}

func (h *ProfileHandler) RegisterAdvisorRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.AdvisorScreen)
	r.Post("/", h.SaveAdvisor)
}

func (h *ProfileHandler) StudentScreen(c fiber.Ctx) error {
	snap, ok := middleware.Snapshot(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, nil)
	}

	var current *profile.Student
	p, err := h.backend.StudentProfile(c.Context(), snap.Token)
	switch {
	case err == nil:
		current = &p
	case errors.Is(err, upstream.ErrNotFound):
		// First visit: nothing saved yet.
	default:
		return middleware.MapUpstreamError(err, redirect.Login.Path())
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{
		"profile": current,
		"options": fiber.Map{
			"researchInterests": profile.StudentResearchOptions,
			"careerGoals":       profile.CareerGoalOptions,
			"yearLevels":        yearLevels,
		},
	})
}

func (h *ProfileHandler) SaveStudent(c fiber.Ctx) error {
	snap, ok := middleware.Snapshot(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, nil)
	}

	var req studentProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if msg := validateStudentProfile(req); msg != "" {
		return middleware.NewAppError(fiber.StatusBadRequest, msg, nil, nil)
	}

	saved, err := h.backend.CompleteStudentProfile(c.Context(), snap.Token, upstream.StudentProfileInput{
		ResearchInterests: dedupe(req.ResearchInterests),
		CareerGoals:       dedupe(req.CareerGoals),
		YearLevel:         req.YearLevel,
	})
	if err != nil {
		return h.mapSaveError(c, err)
	}

	// The saved profile changes the resolved screen; re-run the policy so
	// the client gets its next stop in the same response.
	next := h.registry.Resolve(c.Context(), middleware.SessionID(c))
	return response.WithRedirect(c, fiber.StatusOK, "Profile completed", fiber.Map{"profile": saved}, next.Target.Path())
}

func (h *ProfileHandler) AdvisorScreen(c fiber.Ctx) error {
	snap, ok := middleware.Snapshot(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, nil)
	}

	var current *profile.Advisor
	p, err := h.backend.AdvisorProfile(c.Context(), snap.Token)
	switch {
	case err == nil:
		current = &p
	case errors.Is(err, upstream.ErrNotFound):
	default:
		return middleware.MapUpstreamError(err, redirect.Login.Path())
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{
		"profile": current,
		"options": fiber.Map{
			"researchInterests": profile.AdvisorResearchOptions,
			"expertiseAreas":    profile.ExpertiseOptions,
		},
	})
}

func (h *ProfileHandler) SaveAdvisor(c fiber.Ctx) error {
	snap, ok := middleware.Snapshot(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, nil)
	}

	var req advisorProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if msg := validateAdvisorProfile(req); msg != "" {
		return middleware.NewAppError(fiber.StatusBadRequest, msg, nil, nil)
	}

	saved, err := h.backend.CompleteAdvisorProfile(c.Context(), snap.Token, upstream.AdvisorProfileInput{
		ResearchInterests: dedupe(req.ResearchInterests),
		ExpertiseAreas:    dedupe(req.ExpertiseAreas),
		MaxStudents:       req.MaxStudents,
		AvailableSlots:    req.AvailableSlots,
		Bio:               strings.TrimSpace(req.Bio),
		CompletedProfile:  true,
	})
	if err != nil {
		return h.mapSaveError(c, err)
	}

	next := h.registry.Resolve(c.Context(), middleware.SessionID(c))
	return response.WithRedirect(c, fiber.StatusOK, "Profile completed", fiber.Map{"profile": saved}, next.Target.Path())
}

func (h *ProfileHandler) mapSaveError(c fiber.Ctx, err error) error {
	if errors.Is(err, upstream.ErrUnauthorized) {
		// The incidental 401 path: the save exposed a dead token, so the
		// session goes with it.
		h.registry.Controller(middleware.SessionID(c)).Logout(c.Context())
	}
	return middleware.MapUpstreamError(err, redirect.Login.Path())
}

func validateStudentProfile(req studentProfileRequest) string {
	if n := len(dedupe(req.ResearchInterests)); n < minSelections || n > maxSelections {
		return "Select between 2 and 4 research interests"
	}
	if n := len(dedupe(req.CareerGoals)); n < minSelections || n > maxSelections {
		return "Select between 2 and 4 career goals"
	}
	if !validYearLevel(req.YearLevel) {
		return "Select your year level"
	}
	return ""
}

func validateAdvisorProfile(req advisorProfileRequest) string {
	if len(dedupe(req.ResearchInterests)) == 0 {
		return "Select at least one research interest"
	}
	if len(dedupe(req.ExpertiseAreas)) == 0 {
		return "Select at least one expertise area"
	}
	if req.MaxStudents < 1 {
		return "Maximum students must be at least 1"
	}
	if req.AvailableSlots < 0 || req.AvailableSlots > req.MaxStudents {
		return "Available slots must be between 0 and maximum students"
	}
	return ""
}

func validYearLevel(level string) bool {
	for _, y := range yearLevels {
		if level == y {
			return true
		}
	}
	return false
}

func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" {
			continue
		}
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}
