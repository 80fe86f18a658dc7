package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/purva252/study-connect-hub/internal/handlers"
)

func TeacherRoutes(r *gin.Engine, h *handlers.TeacherHandler, authMW gin.HandlerFunc) {
	r.GET("/api/teachers", authMW, h.List)
	r.GET("/api/teachers/me/code", authMW, h.MyCode)
}
