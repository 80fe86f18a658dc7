package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/purva252/study-connect-hub/internal/config"
	"github.com/purva252/study-connect-hub/internal/middleware"
	"github.com/purva252/study-connect-hub/internal/utils"
	"github.com/purva252/study-connect-hub/internal/ws"
)

func WSRoutes(r *gin.Engine, hub *ws.Hub, cfg config.App) {
	r.GET("/ws", hub.Handle(func(token string) (*utils.Claims, error) {
		return middleware.ValidateToken(token, cfg)
	}))
}
