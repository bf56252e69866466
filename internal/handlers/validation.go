package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"chatroom/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// newValidator returns a validator that reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct runs the validator and converts failures to a ValidationError.
func validateStruct(v *validator.Validate, s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	verr := services.NewValidationError()
	for _, e := range fieldErrs {
		verr.Add(e.Field(), fieldMessage(e))
	}
	return verr
}

func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required."
	case "min":
		return fmt.Sprintf("Ensure this field has at least %s characters.", e.Param())
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", e.Param())
	case "email":
		return "Enter a valid email address."
	default:
		return fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
}

// nullFields lists the top-level keys of a JSON body that are explicitly null.
func nullFields(c *fiber.Ctx) map[string]bool {
	nulls := make(map[string]bool)
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		return nulls
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &raw); err != nil {
		return nulls
	}
	for k, v := range raw {
		if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			nulls[k] = true
		}
	}
	return nulls
}

func invalidBody(c *fiber.Ctx, log logrus.FieldLogger, err error) error {
	log.WithError(err).Debug("invalid request body")
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"detail": "Invalid request body",
	})
}

// respondError maps service errors to HTTP responses.
func respondError(c *fiber.Ctx, log logrus.FieldLogger, err error) error {
	var verr *services.ValidationError
	var authErr *services.AuthError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(verr.Fields)
	case errors.Is(err, services.ErrInvalidCredentials):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	case errors.As(err, &authErr):
		c.Set(fiber.HeaderWWWAuthenticate, services.TokenKeyword)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"detail": authErr.Detail,
		})
	default:
		log.WithError(err).WithField("path", c.Path()).Error("request failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": "Internal server error",
		})
	}
}
