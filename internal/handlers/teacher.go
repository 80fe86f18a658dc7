package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/purva252/study-connect-hub/internal/teachers"
	"github.com/purva252/study-connect-hub/internal/utils"
)

type TeacherHandler struct {
	directory *teachers.Directory
	log       *zap.Logger
}

func NewTeacherHandler(directory *teachers.Directory, log *zap.Logger) *TeacherHandler {
	return &TeacherHandler{directory: directory, log: log}
}

// List handles GET /api/teachers (any authenticated caller).
func (h *TeacherHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	listings, err := h.directory.List(ctx)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, 200, listings)
}

// MyCode handles GET /api/teachers/me/code (teacher only).
func (h *TeacherHandler) MyCode(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}
	if principal.Role != "teacher" {
		utils.ErrorResponse(c, 403, "Forbidden, teacher access required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	code, err := h.directory.CodeFor(ctx, principal.UserID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, 200, gin.H{"code": code})
}
