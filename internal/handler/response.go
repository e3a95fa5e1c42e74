package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tourdesk/internal/repository"
	"tourdesk/internal/service"
	"tourdesk/internal/validation"
	"tourdesk/internal/wizard"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse carries field-scoped rule violations.
type ValidationErrorResponse struct {
	Error  string                  `json:"error"`
	Fields []validation.FieldError `json:"fields"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondValidation sends the per-field violations that blocked a mutation.
func respondValidation(c *gin.Context, problems validation.Result) {
	c.JSON(http.StatusUnprocessableEntity, ValidationErrorResponse{
		Error:  "validation failed",
		Fields: problems,
	})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/store errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, wizard.ErrSessionNotFound):
		return http.StatusNotFound

	// Caller misuse - Bad Request
	case errors.Is(err, wizard.ErrIndexOutOfRange),
		errors.Is(err, wizard.ErrStepOutOfRange),
		errors.Is(err, service.ErrPromoCodeInactive),
		errors.Is(err, service.ErrPromoCodeExpired):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, wizard.ErrClientAlreadySet),
		errors.Is(err, wizard.ErrNoTripDetails),
		errors.Is(err, wizard.ErrNoPricing),
		errors.Is(err, wizard.ErrStepIncomplete),
		errors.Is(err, service.ErrIncompleteWizard),
		errors.Is(err, service.ErrAlreadySubmitting):
		return http.StatusConflict

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
