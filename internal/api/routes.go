package api

import (
	"github.com/gin-gonic/gin"
	"github.com/jroosing/zoneinv/internal/api/handlers"
	"github.com/jroosing/zoneinv/internal/api/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/jroosing/zoneinv/internal/api/docs" // swagger docs
)

// RegisterRoutes wires every endpoint. Everything except /token, /health and
// the Swagger UI sits behind the bearer middleware.
func RegisterRoutes(r *gin.Engine, h *handlers.Handler, resolver middleware.TokenResolver) {
	// Swagger UI at /swagger/*
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/health", h.Health)
	r.POST("/token", h.Login)

	authed := r.Group("/")
	authed.Use(middleware.RequireBearer(resolver))

	authed.GET("/users/me", middleware.WithUser(h.Me))
	authed.GET("/stats", middleware.WithUser(h.Stats))

	authed.GET("/zones/", middleware.WithUser(h.ListZones))
	authed.POST("/zones/", middleware.WithUser(h.CreateZone))
	authed.GET("/zones/:zone", middleware.WithUser(h.GetZone))
	authed.PUT("/zones/:zone", middleware.WithUser(h.UpdateZone))
	authed.DELETE("/zones/:zone", middleware.WithUser(h.DeleteZone))

	authed.POST("/zones/:zone/environments/", middleware.WithUser(h.CreateEnvironment))
	authed.PUT("/zones/:zone/environments/:env", middleware.WithUser(h.UpdateEnvironment))
	authed.DELETE("/zones/:zone/environments/:env", middleware.WithUser(h.DeleteEnvironment))

	authed.POST("/zones/:zone/environments/:env/servers/", middleware.WithUser(h.AddServer))
	authed.PUT("/zones/:zone/environments/:env/servers/:fqdn", middleware.WithUser(h.UpdateServer))
	authed.DELETE("/zones/:zone/environments/:env/servers/:fqdn", middleware.WithUser(h.DeleteServer))
}
