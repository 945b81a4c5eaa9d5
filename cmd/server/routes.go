package main

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/wexar/server/api/rest/generate"
	"codeberg.org/wexar/server/api/rest/health"
	"codeberg.org/wexar/server/api/rest/sessions"
	"codeberg.org/wexar/server/internal/auth"
	"codeberg.org/wexar/server/internal/logger"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(logger.Middleware())
	router.Use(CORSMiddleware(server.config.CORSOrigins))

	router.GET("/health", health.Handler(server.startedAt, server.services.Cache, server.sessionMgr))

	v1 := router.Group("/api/v1")
	v1.Use(auth.IdentityMiddleware(auth.NewVerifier(server.config.JWTSecret)))

	{
		v1.GET("/ping", health.PingHandler)

		generate.RegisterRoutes(v1, server.services.Generator, server.sessionMgr, server.limiter.Middleware())
		sessions.RegisterRoutes(v1, server.sessionMgr)
	}
}
