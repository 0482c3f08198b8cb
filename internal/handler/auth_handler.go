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

// AuthHandler handles authentication endpoints for both auth modes.
type AuthHandler struct {
	authService     *service.AuthService
	viewModeService *service.ViewModeService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService, viewModeService *service.ViewModeService) *AuthHandler {
	return &AuthHandler{
		authService:     authService,
		viewModeService: viewModeService,
	}
}

// LoginLocal godoc
// POST /api/v1/auth/login
// Validates email + senha against a local account, returns JWT + session.
func (h *AuthHandler) LoginLocal(c *gin.Context) {
	var req model.LocalLoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	token, sess, err := h.authService.LoginLocal(c.Request.Context(), req.Email, req.Senha)
	if err != nil {
		h.failLogin(c, err)
		return
	}

	h.loginSuccess(c, token, sess)
}

// LoginGoogle godoc
// POST /api/v1/auth/google
// Verifies the identity-provider ID token from the sign-in popup,
// returns JWT + session.
func (h *AuthHandler) LoginGoogle(c *gin.Context) {
	var req model.GoogleLoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	token, sess, err := h.authService.LoginGoogle(c.Request.Context(), req.IDToken)
	if err != nil {
		h.failLogin(c, err)
		return
	}

	h.loginSuccess(c, token, sess)
}

// Logout godoc
// POST /api/v1/auth/logout
// Destroys the caller's session state.
func (h *AuthHandler) Logout(c *gin.Context) {
	sess := middleware.GetSession(c)
	if sess == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrNotAuthenticated)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), sess.Identity); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// Me godoc
// GET /api/v1/auth/me
// Returns the session fact and the visibility set driving the UI.
func (h *AuthHandler) Me(c *gin.Context) {
	sess := middleware.GetSession(c)
	if sess == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrNotAuthenticated)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"session":    sess,
		"visibility": h.viewModeService.Current(c.Request.Context(), sess),
	})
}

func (h *AuthHandler) loginSuccess(c *gin.Context, token string, sess *model.Session) {
	response.Success(c, http.StatusOK, gin.H{
		"token":      token,
		"session":    sess,
		"visibility": h.viewModeService.Current(c.Request.Context(), sess),
	})
}

func (h *AuthHandler) failLogin(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDomainNotAllowed):
		// Hard boundary: the client must sign the principal out.
		response.Fail(c, http.StatusForbidden, response.ErrDomainNotAllowed)
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
	case errors.Is(err, service.ErrInvalidProviderToken):
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
	case errors.Is(err, service.ErrGoogleLoginDisabled):
		response.Fail(c, http.StatusNotImplemented, response.ErrInternal)
	case errors.Is(err, service.ErrStoreUnavailable):
		response.Fail(c, http.StatusServiceUnavailable, response.ErrStoreUnavailable)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
