package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"speech2text/internal/api/errors"
)

// ValidateURI binds and validates path parameters into req
func ValidateURI(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindUri(req); err != nil {
		return validationError("Invalid path parameters", err)
	}
	return nil
}

func validationError(message string, err error) *errors.APIError {
	fields := make(map[string]string)

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrs {
			field := strings.ToLower(fieldError.Field())

			switch fieldError.Tag() {
			case "required":
				fields[field] = "is required"
			case "min", "gt", "gte":
				fields[field] = "is too small"
			default:
				fields[field] = "is invalid"
			}
		}
	} else {
		fields["request"] = err.Error()
	}

	return errors.NewValidationError(message, fields)
}
