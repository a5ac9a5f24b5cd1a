package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/suivi-dev/suivi/internal/models"
)

type AuditLogHandler struct {
	db *gorm.DB
}

func NewAuditLogHandler(db *gorm.DB) *AuditLogHandler {
	return &AuditLogHandler{db: db}
}

func (h *AuditLogHandler) List(ctx *gin.Context) {
	entries := make([]models.AuditLog, 0)

	if err := h.db.Order("created_at desc, id desc").Limit(500).Find(&entries).Error; err != nil {
		log.Printf("Failed to list audit logs: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, entries)
}
