package v1

import (
	"net/http"
	"strconv"

	"go-website-backend/internal/delivery/http/response"
	"go-website-backend/internal/domain"
	"go-website-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers the contact routes (public, no auth required)
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	// Public Routes - NO authentication required
	public.POST("/contact", handler.SubmitContact)
}

// SubmitContact handles a contact form submission. Both JSON and
// form-encoded bodies are accepted; a malformed body simply yields empty
// fields, which the validator reports as per-field errors.
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req domain.ContactRequest
	_ = c.ShouldBind(&req)

	result := h.contactUC.Submit(c.Request.Context(), &req, c.ClientIP())

	switch result.Status {
	case domain.SubmitAccepted:
		response.Success(c, http.StatusOK, result.Message)

	case domain.SubmitInvalid:
		response.ValidationError(c, http.StatusBadRequest, result.Message, result.FieldErrors)

	case domain.SubmitRateLimited:
		seconds := int(result.RetryAfter.Seconds())
		if seconds < 1 {
			seconds = 1
		}
		c.Header("Retry-After", strconv.Itoa(seconds))
		response.RateLimited(c, http.StatusTooManyRequests, result.Message, seconds)

	case domain.SubmitDeliveryFailed:
		response.Error(c, http.StatusInternalServerError, result.Message)

	default:
		c.Error(apperror.Internal(nil))
	}
}
