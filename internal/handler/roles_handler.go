package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ifsc-carteirinha/carteirinha-backend/internal/model"
	"github.com/ifsc-carteirinha/carteirinha-backend/internal/response"
	"github.com/ifsc-carteirinha/carteirinha-backend/internal/service"
	"github.com/ifsc-carteirinha/carteirinha-backend/internal/validator"
)

// RolesHandler handles the admin-grants registry panel.
type RolesHandler struct {
	rolesService *service.RolesService
}

// NewRolesHandler creates a new RolesHandler.
func NewRolesHandler(rolesService *service.RolesService) *RolesHandler {
	return &RolesHandler{rolesService: rolesService}
}

// ListGrants godoc
// GET /api/v1/admin/grants
// Lists the merged bootstrap + registry grant set. Bootstrap entries are
// flagged and never disappear regardless of registry state.
func (h *RolesHandler) ListGrants(c *gin.Context) {
	grants, err := h.rolesService.List(c.Request.Context())
	if err != nil {
		failRoles(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"grants": grants})
}

// AddGrant godoc
// POST /api/v1/admin/grants
// Grants admin to a login. Input is normalized to lower case.
func (h *RolesHandler) AddGrant(c *gin.Context) {
	var req model.AddGrantRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	login, err := h.rolesService.Add(c.Request.Context(), req.Login)
	if err != nil {
		failRoles(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"login": login})
}

// RemoveGrant godoc
// DELETE /api/v1/admin/grants/:login
// Revokes a registry grant. Bootstrap logins are rejected.
func (h *RolesHandler) RemoveGrant(c *gin.Context) {
	if err := h.rolesService.Remove(c.Request.Context(), c.Param("login")); err != nil {
		failRoles(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

func failRoles(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidLogin):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidLogin)
	case errors.Is(err, service.ErrBootstrapAdmin):
		response.Fail(c, http.StatusConflict, response.ErrBootstrapAdmin)
	case errors.Is(err, service.ErrStoreUnavailable):
		response.Fail(c, http.StatusServiceUnavailable, response.ErrStoreUnavailable)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
