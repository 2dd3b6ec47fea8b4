package server

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/northquant/site-backend/internal/http/handlers"
	"github.com/northquant/site-backend/internal/http/middleware"
	"github.com/northquant/site-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	ServiceName    string
	AuthMiddleware *middleware.AuthMiddleware

	HealthHandler     *handlers.HealthHandler
	AuthHandler       *handlers.AuthHandler
	IntelHandler      *handlers.IntelHandler
	AdminIntelHandler *handlers.AdminIntelHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.Recovery(cfg.Log),
		otelgin.Middleware(cfg.ServiceName),
		middleware.AttachTraceContext(),
		middleware.RequestLogger(cfg.Log),
		middleware.CORS(),
	)

	router.GET("/healthcheck", cfg.HealthHandler.HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/auth/login", cfg.AuthHandler.Login)
		api.GET("/market-intelligence", cfg.IntelHandler.ListPublic)
	}

	admin := api.Group("/admin")
	admin.Use(cfg.AuthMiddleware.RequireAdmin())
	{
		admin.GET("/market-intelligence", cfg.AdminIntelHandler.List)
		admin.POST("/market-intelligence", cfg.AdminIntelHandler.Create)
		admin.PATCH("/market-intelligence/:id", cfg.AdminIntelHandler.Update)
		admin.DELETE("/market-intelligence/:id", cfg.AdminIntelHandler.Delete)
	}

	return router
}
