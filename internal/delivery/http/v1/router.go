package v1

import (
	"net/http"

	"go-website-backend/config"
	"go-website-backend/internal/delivery/http/middleware"
	"go-website-backend/internal/delivery/http/response"
	"go-website-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	ContactUC domain.ContactUsecase
	Config    *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config)) // CORS must be first!
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		// Unexpected faults never leak; the caller sees the generic variant
		response.Error(c, http.StatusInternalServerError, "An error occurred while processing your request. Please try again later.")
		c.Abort()
	}))
	r.Use(gin.Logger()) // Use standard Gin logger
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.CSRFMiddleware())
	r.Use(middleware.ErrorHandler())

	// Health Check
	r.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational")
	})

	// API routes sit behind the coarse per-IP ceilings; the contact
	// pipeline applies its own per-identity limit on top.
	api := r.Group("/api")
	api.Use(middleware.GlobalRateLimitMiddleware(deps.Config))

	NewContactHandler(api, deps.ContactUC)
	NewSiteHandler(r, api, deps.Config)

	return r
}
