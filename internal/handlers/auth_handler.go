package handlers

import (
	"errors"
	"strings"

	"chatroom/internal/dto"
	"chatroom/internal/metrics"
	"chatroom/internal/middleware"
	"chatroom/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// AuthHandler handles HTTP requests for the session lifecycle.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
	metrics     *metrics.Metrics
	log         logrus.FieldLogger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, m *metrics.Metrics, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    newValidator(),
		metrics:     m,
		log:         log,
	}
}

// RegisterRoutes registers the authentication routes. protected guards logout.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, protected ...fiber.Handler) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
	logout := append(append([]fiber.Handler{}, protected...), h.HandleLogout)
	authRoutes.Post("/logout", logout...)
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=150"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6"`
}

// HandleRegister creates a member and returns its first token.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, h.log, err)
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if err := validateStruct(h.validate, req); err != nil {
		return respondError(c, h.log, err)
	}

	member, token, err := h.authService.Register(services.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	h.metrics.RegisterSuccess.Inc()

	return c.Status(fiber.StatusCreated).JSON(dto.Registration{
		ID:       member.ID,
		Username: member.Username,
		Email:    member.Email,
		Token:    token.Key,
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin checks credentials and issues a fresh token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, h.log, err)
	}
	req.Username = strings.TrimSpace(req.Username)
	if err := validateStruct(h.validate, req); err != nil {
		return respondError(c, h.log, err)
	}

	member, token, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownMember):
			h.metrics.LoginFailure.WithLabelValues("unknown_user").Inc()
		case errors.Is(err, services.ErrWrongPassword):
			h.metrics.LoginFailure.WithLabelValues("wrong_password").Inc()
		}
		return respondError(c, h.log, err)
	}
	h.metrics.LoginSuccess.Inc()

	return c.JSON(dto.Login{
		Token: token.Key,
		User:  dto.NewMemberSummary(member),
	})
}

// HandleLogout revokes the token used for this request.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	if err := h.authService.Logout(middleware.IdentityFrom(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"message": "Successfully logged out",
	})
}
