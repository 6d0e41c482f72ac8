package handler

import (
	"errors"
	"strings"

	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/delivery/http/dto"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/delivery/http/middleware"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/domain/redirect"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/domain/session"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/infrastructure/upstream"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/pkg/response"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/usecase/resolver"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	backend  upstream.Client
	registry *resolver.Registry
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
	Role       string `json:"role"`
}

type registerRequest struct {
	Name       string `json:"name"`
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
	Role       string `json:"role"`
}

func NewAuthHandler(backend upstream.Client, registry *resolver.Registry) *AuthHandler {
	return &AuthHandler{backend: backend, registry: registry}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/login", h.Login)
	r.Post("/register", h.Register)
	r.Post("/logout", h.Logout)
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	role, err := session.ParseRole(req.Role)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Role must be student or advisor", nil, err)
	}
	if strings.TrimSpace(req.Identifier) == "" || req.Password == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "Identifier and password are required", nil, nil)
	}

	res, err := h.backend.Login(c.Context(), upstream.Credentials{
		Identifier: strings.TrimSpace(req.Identifier),
		Password:   req.Password,
		Role:       string(role),
	})
	if err != nil {
		if errors.Is(err, upstream.ErrUnauthorized) {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid credentials", nil, err)
		}
		return middleware.MapUpstreamError(err, redirect.Login.Path())
	}

	return h.establish(c, res)
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req registerRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	role, err := session.ParseRole(req.Role)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Role must be student or advisor", nil, err)
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Identifier) == "" || req.Password == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "Name, identifier and password are required", nil, nil)
	}

	res, err := h.backend.Register(c.Context(), upstream.Registration{
		Name:       strings.TrimSpace(req.Name),
		Identifier: strings.TrimSpace(req.Identifier),
		Password:   req.Password,
		Role:       string(role),
	})
	if err != nil {
		return middleware.MapUpstreamError(err, redirect.Login.Path())
	}

	return h.establish(c, res)
}

// establish persists the freshly issued credentials and resolves the first
// screen before answering, so the client never guesses where to navigate.
func (h *AuthHandler) establish(c fiber.Ctx, res upstream.AuthResult) error {
	if res.Token == "" || !res.User.Role.Valid() {
		return middleware.NewAppError(fiber.StatusBadGateway, response.MessageUpstreamUnavailable, nil,
			errors.New("auth response missing token or role"))
	}

	ctrl := h.registry.Controller(middleware.SessionID(c))
	snap, err := ctrl.Login(c.Context(), res.User, res.Token)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.WithRedirect(c, fiber.StatusOK, response.MessageOK, dto.SessionResponse{
		State:     snap.State.String(),
		User:      dto.NewUserResponse(snap.User),
		Retryable: snap.Retryable,
	}, snap.Target.Path())
}

func (h *AuthHandler) Logout(c fiber.Ctx) error {
	sid := middleware.SessionID(c)
	h.registry.Controller(sid).Logout(c.Context())
	h.registry.Drop(sid)

	return response.WithRedirect(c, fiber.StatusOK, response.MessageOK, nil, redirect.Login.Path())
}
