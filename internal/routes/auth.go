package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/purva252/study-connect-hub/internal/handlers"
)

func AuthRoutes(r *gin.Engine, h *handlers.AuthHandler, authMW gin.HandlerFunc) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/signup", h.Signup)
		auth.POST("/login", h.Login)
		auth.GET("/me", authMW, h.Me)
	}
}
