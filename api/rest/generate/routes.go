package generate

import (
	"github.com/gin-gonic/gin"
)

// registers website generation routes. middleware runs before the handler,
// typically the inbound rate limiter.
func RegisterRoutes(router *gin.RouterGroup, gen Generator, sessionStore SessionStore, middleware ...gin.HandlerFunc) {
	handlers := append(middleware, Handler(gen, sessionStore))
	router.POST("/generate", handlers...)
}
