package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ifsc-carteirinha/carteirinha-backend/internal/config"
	"github.com/ifsc-carteirinha/carteirinha-backend/internal/response"
)

// AssetsHandler serves the manifest the PWA service worker precaches from.
type AssetsHandler struct{}

// NewAssetsHandler creates a new AssetsHandler.
func NewAssetsHandler() *AssetsHandler {
	return &AssetsHandler{}
}

// GetAssetManifest godoc
// GET /api/v1/public/assets
// Returns the cache version and the static asset paths. The service worker
// drops every cache whose name does not match the current version.
func (h *AssetsHandler) GetAssetManifest(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"version": config.AssetCacheVersion,
		"assets":  config.AssetPaths,
	})
}
