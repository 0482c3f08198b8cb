package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ifsc-carteirinha/carteirinha-backend/internal/model"
	"github.com/ifsc-carteirinha/carteirinha-backend/internal/response"
	"github.com/ifsc-carteirinha/carteirinha-backend/internal/service"
)

// ReviewHandler handles the admin review panel endpoints.
type ReviewHandler struct {
	cardService   *service.CardService
	reviewService *service.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(cardService *service.CardService, reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		cardService:   cardService,
		reviewService: reviewService,
	}
}

// ListCards godoc
// GET /api/v1/admin/cards?status=pending
// Lists records for one review panel. The pending queue is first come,
// first served; approved and rejected lists are ordered by name.
func (h *ReviewHandler) ListCards(c *gin.Context) {
	status := model.CardStatus(c.DefaultQuery("status", string(model.CardStatusPending)))

	cards, err := h.cardService.ListByStatus(c.Request.Context(), status)
	if err != nil {
		failCard(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"cards": cards, "status": status})
}

// ApproveCard godoc
// POST /api/v1/admin/cards/:id/approve
// Approves a request. Re-approving a rejected record requires
// {"confirmed": true}.
func (h *ReviewHandler) ApproveCard(c *gin.Context) {
	h.transition(c, h.reviewService.Approve)
}

// RejectCard godoc
// POST /api/v1/admin/cards/:id/reject
// Rejects a request. Deactivating an approved record requires
// {"confirmed": true}.
func (h *ReviewHandler) RejectCard(c *gin.Context) {
	h.transition(c, h.reviewService.Reject)
}

func (h *ReviewHandler) transition(
	c *gin.Context,
	apply func(ctx context.Context, id uuid.UUID, confirmed bool) (*model.CardRecord, error),
) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	// Body is optional; confirmed defaults to false.
	var req model.ReviewActionRequest
	_ = c.ShouldBindJSON(&req)

	card, err := apply(c.Request.Context(), id, req.Confirmed)
	if err != nil {
		failCard(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"card": card})
}
