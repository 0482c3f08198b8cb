package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ifsc-carteirinha/carteirinha-backend/internal/middleware"
	"github.com/ifsc-carteirinha/carteirinha-backend/internal/model"
	"github.com/ifsc-carteirinha/carteirinha-backend/internal/response"
	"github.com/ifsc-carteirinha/carteirinha-backend/internal/service"
)

// ViewModeHandler handles the admin viewing-as-student toggle.
type ViewModeHandler struct {
	viewModeService *service.ViewModeService
}

// NewViewModeHandler creates a new ViewModeHandler.
func NewViewModeHandler(viewModeService *service.ViewModeService) *ViewModeHandler {
	return &ViewModeHandler{viewModeService: viewModeService}
}

// EnterStudentView godoc
// POST /api/v1/admin/view/student
// Switches an admin session into student test-mode.
func (h *ViewModeHandler) EnterStudentView(c *gin.Context) {
	h.toggle(c, h.viewModeService.EnterStudentView)
}

// ExitStudentView godoc
// DELETE /api/v1/admin/view/student
// Returns an admin session to the admin role.
func (h *ViewModeHandler) ExitStudentView(c *gin.Context) {
	h.toggle(c, h.viewModeService.ExitStudentView)
}

func (h *ViewModeHandler) toggle(c *gin.Context, apply func(ctx context.Context, sess *model.Session) error) {
	sess := middleware.GetSession(c)

	if err := apply(c.Request.Context(), sess); err != nil {
		switch {
		case errors.Is(err, service.ErrAdminOnly):
			response.Fail(c, http.StatusForbidden, response.ErrAdminAccessOnly)
		case errors.Is(err, service.ErrStoreUnavailable):
			response.Fail(c, http.StatusServiceUnavailable, response.ErrStoreUnavailable)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"visibility": h.viewModeService.Current(c.Request.Context(), sess),
	})
}
