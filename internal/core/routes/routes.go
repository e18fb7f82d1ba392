package routes

import (
	"time"

	"ims/internal/core/container"
	"ims/internal/metrics"
	"ims/internal/middleware"
	"ims/pkg/security"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the console API with every route registered.
func NewRouter(c *container.Container) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RecoveryMiddleware(c.Logger), middleware.RequestLogger(c.Logger), metrics.Middleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     c.Config.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterUtilityRoutes(router, c)
	RegisterPublicRoutes(router, c)
	RegisterProtectedRoutes(router, c)

	return router
}

// Token submissions are throttled per client.
const (
	sessionAttempts = 10
	sessionWindow   = time.Minute
)

func RegisterPublicRoutes(router *gin.Engine, c *container.Container) {
	limiter := middleware.NewRateLimiter(sessionAttempts, sessionWindow)
	c.SessionHandler.RegisterRoutes(router.Group("/api"), middleware.RateLimitMiddleware(limiter, c.Logger))
}

func RegisterProtectedRoutes(router *gin.Engine, c *container.Container) {
	protectedRoutes := router.Group("/api")
	protectedRoutes.Use(security.SessionMiddleware(c.Session))

	c.Resources.RegisterRoutes(protectedRoutes)
}

func RegisterUtilityRoutes(router *gin.Engine, c *container.Container) {
	middleware.SetResourceCount(c.Resources.Len())
	router.GET("/health", middleware.HealthCheckMiddleware())
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
}
