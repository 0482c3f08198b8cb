package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ifsc-carteirinha/carteirinha-backend/internal/middleware"
	"github.com/ifsc-carteirinha/carteirinha-backend/internal/model"
	"github.com/ifsc-carteirinha/carteirinha-backend/internal/response"
	"github.com/ifsc-carteirinha/carteirinha-backend/internal/service"
	"github.com/ifsc-carteirinha/carteirinha-backend/internal/validator"
)

// CardHandler handles the student-facing carteirinha endpoints.
type CardHandler struct {
	cardService *service.CardService
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(cardService *service.CardService) *CardHandler {
	return &CardHandler{cardService: cardService}
}

// GetOwnCard godoc
// GET /api/v1/student/card
// Returns the caller's card with its derived stamp, or null when the
// caller has not submitted a request yet.
func (h *CardHandler) GetOwnCard(c *gin.Context) {
	sess := middleware.GetSession(c)

	card, err := h.cardService.Get(c.Request.Context(), sess)
	if err != nil {
		failCard(c, err)
		return
	}

	if card == nil {
		response.Success(c, http.StatusOK, gin.H{"card": nil})
		return
	}

	response.Success(c, http.StatusOK, gin.H{"card": model.NewStudentCardView(card)})
}

// SubmitCard godoc
// POST /api/v1/student/card
// Creates or re-submits the caller's carteirinha request. Re-submission
// merges over the existing record and never touches its status.
func (h *CardHandler) SubmitCard(c *gin.Context) {
	sess := middleware.GetSession(c)

	var req model.SubmitCardRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	card, err := h.cardService.Submit(c.Request.Context(), sess, &req)
	if err != nil {
		failCard(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"card": model.NewStudentCardView(card)})
}

// failCard maps card service errors onto the response taxonomy.
func failCard(c *gin.Context, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, ve.Fields)
	case errors.Is(err, service.ErrNotAuthenticated):
		response.Fail(c, http.StatusUnauthorized, response.ErrNotAuthenticated)
	case errors.Is(err, service.ErrRecordNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrRecordNotFound)
	case errors.Is(err, service.ErrConfirmationRequired):
		response.Fail(c, http.StatusConflict, response.ErrConfirmationRequired)
	case errors.Is(err, service.ErrStoreUnavailable):
		// Recoverable: the client shows an actionable message and may retry.
		response.Fail(c, http.StatusServiceUnavailable, response.ErrStoreUnavailable)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
