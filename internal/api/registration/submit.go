// Package registration implements the public HTTP surface of the event
// registration form: payload binding, submission, and the response envelope
// the frontend renders.
package registration

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/event-registration/registration-backend/internal/db/models"
	"github.com/event-registration/registration-backend/internal/services"
)

// Handler serves the public registration endpoint.
type Handler struct {
	submissions *services.SubmissionService
}

// NewHandler creates a Handler backed by the given submission service.
func NewHandler(submissions *services.SubmissionService) *Handler {
	return &Handler{submissions: submissions}
}

// fieldErrorBody is the per-field validation detail returned to the frontend.
type fieldErrorBody struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Submit handles POST /api/v1/register.
//
// Responses:
//   - 200 {success: true, message, registration_number, sms_sent, data}
//   - 400 {success: false, message, errors?} for validation failures and
//     duplicate phone numbers
//   - 500 {success: false, message} when the store is unavailable
func (h *Handler) Submit(c *gin.Context) {
	var req models.RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request body",
		})
		return
	}

	result := h.submissions.Submit(c.Request.Context(), &req)

	switch result.Status {
	case services.StatusInvalid:
		errs := make([]fieldErrorBody, 0, len(result.FieldErrors))
		for _, fe := range result.FieldErrors {
			errs = append(errs, fieldErrorBody{Field: fe.Field, Reason: fe.Reason})
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": result.Message,
			"errors":  errs,
		})

	case services.StatusDuplicate:
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": result.Message,
		})

	case services.StatusStoreFailed:
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": result.Message,
		})

	default:
		c.JSON(http.StatusOK, gin.H{
			"success":             true,
			"message":             result.Message,
			"registration_number": result.Registration.RegistrationNumber,
			"sms_sent":            result.SMSSent,
			"data":                result.Registration,
		})
	}
}
