package sessions

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/wexar/server/internal/sessions"
)

// registers chat session routes
func RegisterRoutes(router *gin.RouterGroup, mgr *sessions.Manager) {
	group := router.Group("/sessions")

	group.POST("", CreateSessionHandler(mgr))
	group.GET("", ListSessionsHandler(mgr))
	group.GET("/:id", GetSessionHandler(mgr))
	group.DELETE("/:id", DeleteSessionHandler(mgr))
	group.POST("/:id/messages", AddMessageHandler(mgr))
}
