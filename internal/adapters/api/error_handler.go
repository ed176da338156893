package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"cropcast.app/internal/ports"
	errorspkg "cropcast.app/pkg/errors"
)

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error string `json:"error"`
}

// handleError handles different types of application errors
func (s *HTTPServerAdapter) handleError(c *gin.Context, err error) {
	var appErr *errorspkg.AppError
	var statusCode int
	var message string

	if !errors.As(err, &appErr) {
		s.logger.Error("Unhandled error", ports.F("path", c.FullPath()), ports.F("error", err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		return
	}

	switch appErr.Type {
	case errorspkg.ValidationError:
		statusCode = http.StatusBadRequest
		message = appErr.Message
	case errorspkg.NotFoundError:
		statusCode = http.StatusNotFound
		message = appErr.Message
	case errorspkg.AlreadyExistsError:
		statusCode = http.StatusConflict
		message = appErr.Message
	case errorspkg.TokenError, errorspkg.UnauthorizedError:
		statusCode = http.StatusUnauthorized
		message = appErr.Message
	case errorspkg.ForbiddenError:
		statusCode = http.StatusForbidden
		message = appErr.Message
	case errorspkg.ExternalAPIError:
		statusCode = http.StatusServiceUnavailable
		message = "External service unavailable"
	case errorspkg.DatabaseError:
		statusCode = http.StatusInternalServerError
		message = "Internal server error"
	default:
		statusCode = http.StatusInternalServerError
		message = "Internal server error"
	}

	if statusCode >= http.StatusInternalServerError {
		s.logger.Error("Request failed",
			ports.F("path", c.FullPath()),
			ports.F("status", statusCode),
			ports.F("error", err))
	}

	c.AbortWithStatusJSON(statusCode, ErrorResponse{Error: message})
}

// bindingError turns a gin binding failure into a validation error with a readable message
func bindingError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errorspkg.NewValidationError("invalid request: " + err.Error())
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		messages = append(messages, describeFieldError(fe))
	}
	return errorspkg.NewValidationError(strings.Join(messages, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	field := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "latitude":
		return "latitude must be a number between -90 and 90"
	case "longitude":
		return "longitude must be a number between -180 and 180"
	case "email":
		return field + " must be a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return field + " is invalid"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
