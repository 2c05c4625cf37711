package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/berlivn/eriflex-api/internal/application/dto"
	"github.com/berlivn/eriflex-api/internal/domain"
)

// LocalError holds the error behind a 5xx answer so RequestLogger can report it.
const LocalError = "request_error"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = f.Tag.Get("query")
		}
		return name
	})
	return v
}

// errorMapping status, code and public message of a domain error.
type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

var errorMappings = []errorMapping{
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION", ""},
	{domain.ErrUnsupportedFile, fiber.StatusBadRequest, "UNSUPPORTED_FILE", ""},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED", "Invalid credentials"},
	{domain.ErrInactiveAccount, fiber.StatusForbidden, "INACTIVE_ACCOUNT", "Account is inactive"},
	{domain.ErrQuotaExceeded, fiber.StatusForbidden, "QUOTA_EXCEEDED", "Daily search limit reached"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN", "Not enough permissions"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "USER_NOT_FOUND", "User not found"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", "Not found"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS", "Email already registered"},
	{domain.ErrRegistrationExists, fiber.StatusConflict, "REGISTRATION_EXISTS", "Registration number already registered"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE", "Already exists"},
	{domain.ErrUpstream, fiber.StatusBadGateway, "UPSTREAM", "Calculator unavailable"},
}

func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: message})
}

// respondError maps err to its HTTP answer. Unknown errors are 500 INTERNAL.
func respondError(c *fiber.Ctx, err error) error {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			msg := m.message
			if msg == "" {
				msg = err.Error()
			}
			return writeError(c, m.status, m.code, msg)
		}
	}
	c.Locals(LocalError, err)
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL", "internal server error")
}

func invalidBody(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
}

func invalidParams(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusBadRequest, "INVALID_PARAMS", "invalid query parameters")
}

// validationError reports the first failing field.
func validationError(c *fiber.Ctx, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		msg := fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag())
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		return writeError(c, fiber.StatusBadRequest, "VALIDATION", msg)
	}
	return writeError(c, fiber.StatusBadRequest, "VALIDATION", err.Error())
}

// bindBody parses and validates a JSON body. A non-nil return means the answer was already written.
func bindBody(c *fiber.Ctx, dst interface{}) (bool, error) {
	if err := c.BodyParser(dst); err != nil {
		return false, invalidBody(c)
	}
	if err := validate.Struct(dst); err != nil {
		return false, validationError(c, err)
	}
	return true, nil
}

// bindQuery parses and validates query parameters.
func bindQuery(c *fiber.Ctx, dst interface{}) (bool, error) {
	if err := c.QueryParser(dst); err != nil {
		return false, invalidParams(c)
	}
	if err := validate.Struct(dst); err != nil {
		return false, validationError(c, err)
	}
	return true, nil
}
