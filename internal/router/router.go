package router

import (
	"github.com/gin-gonic/gin"

	"folharh/internal/config"
	"folharh/internal/handler"
	"folharh/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	importH *handler.ImportHandler,
	rosterH *handler.RosterHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// Tenant-scoped API
	v1 := r.Group("/api/v1")
	v1.Use(middleware.Tenant())

	sessions := v1.Group("/import/sessions")
	sessions.POST("", importH.CreateSession)
	sessions.POST("/restore", importH.Restore)
	sessions.GET("/:id", importH.GetSession)
	sessions.GET("/:id/file", importH.FileURL)
	sessions.PUT("/:id/mapping", importH.SetMapping)
	sessions.GET("/:id/preview", importH.Preview)
	sessions.POST("/:id/process", importH.Process)
	sessions.GET("/:id/results", importH.Results)
	sessions.GET("/:id/errors.csv", importH.ErrorReport)
	sessions.POST("/:id/reset", importH.Reset)

	units := v1.Group("/units")
	units.GET("", rosterH.ListUnits)
	units.GET("/:id", rosterH.GetUnit)
	units.GET("/:id/employees", rosterH.ListEmployees)

	v1.GET("/employees/:id", rosterH.GetEmployee)

	return r
}
