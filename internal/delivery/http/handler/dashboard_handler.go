package handler

import (
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/delivery/http/middleware"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/domain/redirect"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/infrastructure/upstream"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// DashboardHandler proxies the role dashboards. The payloads are passed
// through untouched; their shape belongs to the backend.
type DashboardHandler struct {
	backend upstream.Client
}

func NewDashboardHandler(backend upstream.Client) *DashboardHandler {
	return &DashboardHandler{backend: backend}
}

func (h *DashboardHandler) RegisterStudentRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.Student)
}

func (h *DashboardHandler) RegisterAdvisorRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.Advisor)
}

func (h *DashboardHandler) Student(c fiber.Ctx) error {
	snap, ok := middleware.Snapshot(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, nil)
	}

	data, err := h.backend.StudentDashboard(c.Context(), snap.Token)
	if err != nil {
		return middleware.MapUpstreamError(err, redirect.Login.Path())
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func (h *DashboardHandler) Advisor(c fiber.Ctx) error {
	snap, ok := middleware.Snapshot(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, nil)
	}

	data, err := h.backend.AdvisorDashboard(c.Context(), snap.Token)
	if err != nil {
		return middleware.MapUpstreamError(err, redirect.Login.Path())
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}
