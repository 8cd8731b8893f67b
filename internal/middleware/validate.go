package middleware

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/Harsh-kumar-git/ManageMate/pkg/apperr"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const payloadKey = "payload"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// password: at least one uppercase letter, one lowercase letter and
	// one digit. Length is checked separately with min.
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		var hasUpper, hasLower, hasDigit bool
		for _, r := range fl.Field().String() {
			switch {
			case unicode.IsUpper(r):
				hasUpper = true
			case unicode.IsLower(r):
				hasLower = true
			case unicode.IsDigit(r):
				hasDigit = true
			}
		}
		return hasUpper && hasLower && hasDigit
	})

	return v
}

// tagMessages maps validation tags to user-facing message templates.
var tagMessages = map[string]string{
	"required": "The field '%s' is required.",
	"email":    "The field '%s' must be a valid email address.",
	"min":      "The field '%s' must be at least %s characters long.",
	"max":      "The field '%s' must be no longer than %s characters.",
	"gte":      "The field '%s' must be greater than or equal to %s.",
	"lte":      "The field '%s' must be less than or equal to %s.",
	"gt":       "The field '%s' must be greater than %s.",
	"lt":       "The field '%s' must be less than %s.",
	"oneof":    "The field '%s' must be one of %s.",
	"password": "The field '%s' must contain at least one uppercase letter, one lowercase letter, and one number.",
}

func fieldMessage(jsonTag string, e validator.FieldError) string {
	if msg, ok := tagMessages[e.Tag()]; ok {
		if strings.Count(msg, "%s") == 2 {
			return fmt.Sprintf(msg, jsonTag, e.Param())
		}
		return fmt.Sprintf(msg, jsonTag)
	}
	return fmt.Sprintf("Field '%s' is invalid: %s", jsonTag, e.Tag())
}

// ValidateStruct validates a struct pointer and returns a map of JSON
// field names to messages, aggregating every violation in one pass. An
// empty map means the value is valid.
func ValidateStruct(s any) map[string]string {
	fieldErrors := make(map[string]string)

	err := validate.Struct(s)
	if err == nil {
		return fieldErrors
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		// Unexpected validator fault degenerates to a single generic entry.
		fieldErrors["body"] = "Validation failed"
		return fieldErrors
	}

	structType := reflect.TypeOf(s)
	if structType.Kind() == reflect.Ptr {
		structType = structType.Elem()
	}

	for _, e := range validationErrs {
		jsonTag := e.StructField()
		if field, ok := structType.FieldByName(e.StructField()); ok {
			if tag := strings.Split(field.Tag.Get("json"), ",")[0]; tag != "" && tag != "-" {
				jsonTag = tag
			}
		}
		fieldErrors[jsonTag] = fieldMessage(jsonTag, e)
	}

	return fieldErrors
}

// ValidateBody parses the request body into T and validates it before the
// route handler runs. On failure it writes the 400 validation envelope
// directly; on success the parsed payload is available via Payload[T].
func ValidateBody[T any]() fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := new(T)

		if err := c.BodyParser(payload); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(
				apperr.NewEnvelope(fiber.StatusBadRequest, "Invalid request body", nil))
		}

		if fieldErrors := ValidateStruct(payload); len(fieldErrors) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(
				apperr.NewEnvelope(fiber.StatusBadRequest, "Validation failed", fieldErrors))
		}

		c.Locals(payloadKey, payload)
		return c.Next()
	}
}

// Payload returns the validated request body stored by ValidateBody.
func Payload[T any](c *fiber.Ctx) *T {
	if payload, ok := c.Locals(payloadKey).(*T); ok {
		return payload
	}
	return new(T)
}
