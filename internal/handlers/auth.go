package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/suivi-dev/suivi/internal/auth"
	"github.com/suivi-dev/suivi/internal/models"
	"github.com/suivi-dev/suivi/internal/utils"
)

type AuthHandler struct {
	db         *gorm.DB
	sessionTTL time.Duration
}

func NewAuthHandler(db *gorm.DB, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{db: db, sessionTTL: sessionTTL}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var body LoginRequest

	if err := ctx.BindJSON(&body); err != nil {
		utils.BadRequest(ctx, err)
		return
	}

	var user models.User

	err := h.db.Where("username = ?", body.Username).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}
		log.Printf("Database error when fetching user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	session, err := auth.CreateSession(h.db, user.ID, h.sessionTTL)

	if err != nil {
		log.Printf("Failed to create session: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	auth.SetSessionCookie(ctx, session.ID, h.sessionTTL)

	ctx.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"role":     user.Role,
	})
}

func (h *AuthHandler) Logout(ctx *gin.Context) {
	if cookie, err := ctx.Cookie(auth.SessionCookieName); err == nil && cookie != "" {
		if err := auth.RevokeSession(h.db, cookie); err != nil {
			log.Printf("Failed to revoke session: %v", err)
		}
	}

	auth.ClearSessionCookie(ctx)

	ctx.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *AuthHandler) Me(ctx *gin.Context) {
	principal, err := utils.GetCurrentPrincipal(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"id":       principal.ID,
		"username": principal.Username,
		"role":     principal.Role,
	})
}
