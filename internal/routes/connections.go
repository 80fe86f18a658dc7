package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/purva252/study-connect-hub/internal/handlers"
)

func ConnectionRoutes(r *gin.Engine, h *handlers.ConnectionHandler, authMW gin.HandlerFunc) {
	conns := r.Group("/api/connections", authMW)
	{
		conns.POST("/invite", h.Invite)
		conns.PATCH("/invite/:id/respond", h.Respond)
		conns.GET("", h.List)
		conns.POST("/request", h.Request)
	}
}
