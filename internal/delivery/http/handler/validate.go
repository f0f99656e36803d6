package handler

import (
	"errors"
	"reflect"
	"strings"

	"skill-swap/internal/delivery/http/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type fieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// bindAndValidate decodes the JSON body into req and runs its validate tags. Failures
// come back as 400s carrying the offending fields.
func bindAndValidate(c fiber.Ctx, req any) error {
	if err := c.Bind().Body(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if err := validate.Struct(req); err != nil {
		var ves validator.ValidationErrors
		if errors.As(err, &ves) {
			fields := make([]fieldError, 0, len(ves))
			for _, fe := range ves {
				fields = append(fields, fieldError{Field: fe.Field(), Rule: fe.Tag()})
			}
			return middleware.NewAppError(fiber.StatusBadRequest, "Validation failed", fields, err)
		}
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	return nil
}
