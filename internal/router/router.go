package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ifsc-carteirinha/carteirinha-backend/internal/config"
	"github.com/ifsc-carteirinha/carteirinha-backend/internal/handler"
	"github.com/ifsc-carteirinha/carteirinha-backend/internal/middleware"
	"github.com/ifsc-carteirinha/carteirinha-backend/internal/response"
	"github.com/ifsc-carteirinha/carteirinha-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth     *handler.AuthHandler
	Card     *handler.CardHandler
	Review   *handler.ReviewHandler
	Roles    *handler.RolesHandler
	ViewMode *handler.ViewModeHandler
	Assets   *handler.AssetsHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── 0. Public Group (No Auth) ─────────────────────────────────────
	publicAPI := router.Group("/api/v1/public")
	{
		// The asset manifest is cheap but polled by every service worker
		// activation; a short cache keeps version rollouts fast.
		publicAPI.GET("/assets",
			middleware.CacheControl(300),
			handlers.Assets.GetAssetManifest,
		)
	}

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/login", handlers.Auth.LoginLocal)
		auth.POST("/google", handlers.Auth.LoginGoogle)

		// Authenticated profile routes
		auth.POST("/logout", middleware.RequireAuth(authService), handlers.Auth.Logout)
		auth.GET("/me", middleware.RequireAuth(authService), handlers.Auth.Me)
	}

	// ─── 2. Student Group (any authenticated principal) ────────────────
	studentAPI := router.Group("/api/v1/student")
	studentAPI.Use(middleware.RequireAuth(authService))
	{
		studentAPI.GET("/card", handlers.Card.GetOwnCard)
		studentAPI.POST("/card", handlers.Card.SubmitCard)
	}

	// ─── 3. Admin Group (JWT + admin membership) ───────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(
		middleware.RequireAuth(authService),
		middleware.RequireAdmin(),
	)
	{
		// Review panels
		adminAPI.GET("/cards", handlers.Review.ListCards)
		adminAPI.POST("/cards/:id/approve", handlers.Review.ApproveCard)
		adminAPI.POST("/cards/:id/reject", handlers.Review.RejectCard)

		// Grants registry
		adminAPI.GET("/grants", handlers.Roles.ListGrants)
		adminAPI.POST("/grants", handlers.Roles.AddGrant)
		adminAPI.DELETE("/grants/:login", handlers.Roles.RemoveGrant)

		// Viewing-as-student toggle
		adminAPI.POST("/view/student", handlers.ViewMode.EnterStudentView)
		adminAPI.DELETE("/view/student", handlers.ViewMode.ExitStudentView)
	}

	return router
}
