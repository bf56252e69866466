package handlers

import (
	"strconv"
	"strings"

	"chatroom/internal/dto"
	"chatroom/internal/metrics"
	"chatroom/internal/middleware"
	"chatroom/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// MessageHandler handles HTTP requests for chat messages.
type MessageHandler struct {
	service  *services.MessageService
	validate *validator.Validate
	metrics  *metrics.Metrics
	log      logrus.FieldLogger
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(service *services.MessageService, m *metrics.Metrics, log logrus.FieldLogger) *MessageHandler {
	return &MessageHandler{
		service:  service,
		validate: newValidator(),
		metrics:  m,
		log:      log,
	}
}

// RegisterRoutes registers the message routes behind the protected handlers.
func (h *MessageHandler) RegisterRoutes(router fiber.Router, protected ...fiber.Handler) {
	messageRoutes := router.Group("/messages", protected...)
	messageRoutes.Get("/", h.HandleListMessages)
	messageRoutes.Post("/", h.HandleCreateMessage)
}

// HandleListMessages returns one page of messages, oldest first.
func (h *MessageHandler) HandleListMessages(c *fiber.Ctx) error {
	verr := services.NewValidationError()
	limit := queryInt(c, "limit", services.DefaultPageSize, verr)
	offset := queryInt(c, "offset", 0, verr)
	if !verr.Empty() {
		return respondError(c, h.log, verr)
	}

	page, err := h.service.List(limit, offset)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.MessagePage{
		Count:   page.Count,
		Results: dto.NewMessages(page.Messages),
	})
}

func queryInt(c *fiber.Ctx, key string, def int, verr *services.ValidationError) int {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		verr.Add(key, "A valid integer is required.")
		return def
	}
	return n
}

// CreateMessageRequest is the body of a new message. Any other field, such as
// an author, is ignored.
type CreateMessageRequest struct {
	Text string `json:"text" validate:"required,max=5000"`
}

// HandleCreateMessage posts a message as the authenticated member.
func (h *MessageHandler) HandleCreateMessage(c *fiber.Ctx) error {
	var req CreateMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, h.log, err)
	}
	req.Text = strings.TrimSpace(req.Text)
	if err := validateStruct(h.validate, req); err != nil {
		return respondError(c, h.log, err)
	}

	id := middleware.IdentityFrom(c)
	message, err := h.service.Create(id.Member, req.Text)
	if err != nil {
		return respondError(c, h.log, err)
	}
	h.metrics.MessagesPosted.Inc()

	return c.Status(fiber.StatusCreated).JSON(dto.NewMessage(*message))
}
