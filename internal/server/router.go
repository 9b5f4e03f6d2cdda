package server

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"resumescan-backend/internal/config"
	"resumescan-backend/internal/metrics"
	"resumescan-backend/internal/server/middleware"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config, handler *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	handler.RegisterRoutes(api)

	return r
}

// Addr returns a normalized listen address for the given port.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return fmt.Sprintf(":%s", port)
}
