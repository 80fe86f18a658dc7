package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/purva252/study-connect-hub/internal/connections"
	"github.com/purva252/study-connect-hub/internal/utils"
)

type ConnectionHandler struct {
	svc *connections.Service
	log *zap.Logger
}

func NewConnectionHandler(svc *connections.Service, log *zap.Logger) *ConnectionHandler {
	return &ConnectionHandler{svc: svc, log: log}
}

type InviteRequest struct {
	StudentID string `json:"studentId" binding:"required"`
}

type RespondRequest struct {
	Action string `json:"action" binding:"required"`
}

type ConnectionRequestBody struct {
	TeacherID string `json:"teacherId" binding:"required"`
}

// Invite handles POST /api/connections/invite (teacher only).
func (h *ConnectionHandler) Invite(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}

	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, 400, "Invalid request schema")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	conn, err := h.svc.Invite(ctx, principal, req.StudentID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, 201, conn)
}

// Respond handles PATCH /api/connections/invite/:id/respond (student only).
func (h *ConnectionHandler) Respond(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}

	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, 400, "Invalid request schema")
		return
	}

	action, err := connections.ParseAction(req.Action)
	if err != nil {
		utils.ErrorResponse(c, 400, "Invalid action")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	conn, err := h.svc.Respond(ctx, principal, c.Param("id"), action)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, 200, conn)
}

// List handles GET /api/connections (any authenticated caller).
func (h *ConnectionHandler) List(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	views, err := h.svc.List(ctx, principal)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, 200, views)
}

// Request handles POST /api/connections/request (student only). The teacherId
// field accepts either a raw teacher id or a directory code.
func (h *ConnectionHandler) Request(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}

	var req ConnectionRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, 400, "Invalid request schema")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	conn, err := h.svc.Request(ctx, principal, req.TeacherID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, 201, conn)
}
