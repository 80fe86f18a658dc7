package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/purva252/study-connect-hub/internal/connections"
	"github.com/purva252/study-connect-hub/internal/utils"
)

// principalFrom rebuilds the authenticated principal the middleware attached
// to the request.
func principalFrom(c *gin.Context) (connections.Principal, bool) {
	userID, err := primitive.ObjectIDFromHex(c.GetString("userId"))
	if err != nil {
		utils.ErrorResponse(c, 401, "Unauthorized, token missing or invalid")
		return connections.Principal{}, false
	}
	return connections.Principal{UserID: userID, Role: c.GetString("role")}, true
}

// respondError maps service errors to HTTP statuses. Unknown errors become a
// generic 500 with no detail leaked.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, utils.ErrInvalidInput):
		utils.ErrorResponse(c, 400, err.Error())
	case errors.Is(err, utils.ErrForbidden):
		utils.ErrorResponse(c, 403, "Forbidden")
	case errors.Is(err, utils.ErrNotFound):
		utils.ErrorResponse(c, 404, err.Error())
	case errors.Is(err, utils.ErrAlreadyExists):
		utils.ErrorResponse(c, 409, err.Error())
	default:
		log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		utils.ErrorResponse(c, 500, "Internal server error")
	}
}
