package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/purva252/study-connect-hub/internal/config"
	"github.com/purva252/study-connect-hub/internal/models"
	"github.com/purva252/study-connect-hub/internal/store"
	"github.com/purva252/study-connect-hub/internal/teachers"
	"github.com/purva252/study-connect-hub/internal/utils"
)

type AuthHandler struct {
	cfg             config.App
	users           store.UserStore
	teacherProfiles store.TeacherProfileStore
	studentProfiles store.StudentProfileStore
	log             *zap.Logger
}

func NewAuthHandler(
	cfg config.App,
	users store.UserStore,
	teacherProfiles store.TeacherProfileStore,
	studentProfiles store.StudentProfileStore,
	log *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		cfg:             cfg,
		users:           users,
		teacherProfiles: teacherProfiles,
		studentProfiles: studentProfiles,
		log:             log,
	}
}

type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=teacher student"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Signup creates a user plus its role profile. Teachers get a shareable
// directory code on signup.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, 400, "Invalid request schema")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
	}
	if err := h.users.Insert(ctx, user); err != nil {
		respondError(c, h.log, err)
		return
	}

	switch req.Role {
	case models.RoleTeacher:
		err = h.teacherProfiles.Insert(ctx, &models.TeacherProfile{
			UserID: user.ID,
			Code:   teachers.NewCode(),
		})
	case models.RoleStudent:
		err = h.studentProfiles.Insert(ctx, &models.StudentProfile{UserID: user.ID})
	}
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	token, err := utils.IssueToken(user.ID.Hex(), user.Role, h.cfg.JWTIssuer, h.cfg.JWTSigningKey, h.cfg.AccessTTL)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, 201, gin.H{"user": user, "token": token})
}

// Login verifies credentials and issues a token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, 400, "Invalid request schema")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.users.ByEmail(ctx, req.Email)
	if err != nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		utils.ErrorResponse(c, 401, "Invalid email or password")
		return
	}

	token, err := utils.IssueToken(user.ID.Hex(), user.Role, h.cfg.JWTIssuer, h.cfg.JWTSigningKey, h.cfg.AccessTTL)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, 200, gin.H{"user": user, "token": token})
}

// Me echoes the authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.users.ByID(ctx, principal.UserID)
	if err != nil {
		// valid token but no user document; answer from the claims
		utils.SuccessResponse(c, 200, gin.H{
			"_id":  principal.UserID,
			"role": principal.Role,
		})
		return
	}

	utils.SuccessResponse(c, 200, user)
}
