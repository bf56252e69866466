package handlers

import (
	"strings"

	"chatroom/internal/dto"
	"chatroom/internal/middleware"
	"chatroom/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// ProfileHandler serves the caller's own profile.
type ProfileHandler struct {
	service  *services.ProfileService
	validate *validator.Validate
	log      logrus.FieldLogger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(service *services.ProfileService, log logrus.FieldLogger) *ProfileHandler {
	return &ProfileHandler{
		service:  service,
		validate: newValidator(),
		log:      log,
	}
}

// RegisterRoutes registers the profile routes behind the protected handlers.
func (h *ProfileHandler) RegisterRoutes(router fiber.Router, protected ...fiber.Handler) {
	profileRoutes := router.Group("/profile", protected...)
	profileRoutes.Get("/", h.HandleGetProfile)
	profileRoutes.Put("/", h.HandleUpdateProfile)
	profileRoutes.Patch("/", h.HandleUpdateProfile)
}

// HandleGetProfile returns the authenticated member.
func (h *ProfileHandler) HandleGetProfile(c *fiber.Ctx) error {
	id := middleware.IdentityFrom(c)
	return c.JSON(dto.NewProfile(id.Member))
}

// UpdateProfileRequest is a partial profile update. An explicit null email
// clears it.
type UpdateProfileRequest struct {
	Username *string `json:"username" validate:"omitnil,min=3,max=150"`
	Email    *string `json:"email" validate:"omitnil,email,max=254"`
}

// HandleUpdateProfile applies the supplied fields and returns the new profile.
func (h *ProfileHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, h.log, err)
	}
	nulls := nullFields(c)
	if nulls["username"] {
		verr := services.NewValidationError()
		verr.Add("username", "This field may not be null.")
		return respondError(c, h.log, verr)
	}
	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		req.Username = &username
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		req.Email = &email
	}
	if err := validateStruct(h.validate, req); err != nil {
		return respondError(c, h.log, err)
	}

	id := middleware.IdentityFrom(c)
	member, err := h.service.Update(id.Member, services.ProfileUpdate{
		Username:   req.Username,
		Email:      req.Email,
		ClearEmail: nulls["email"],
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.NewProfile(member))
}
