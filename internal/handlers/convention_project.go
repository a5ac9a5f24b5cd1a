package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/suivi-dev/suivi/internal/models"
	"github.com/suivi-dev/suivi/internal/utils"
)

type ConventionProjectHandler struct {
	db *gorm.DB
}

func NewConventionProjectHandler(db *gorm.DB) *ConventionProjectHandler {
	return &ConventionProjectHandler{db: db}
}

type CreateConventionProjectRequest struct {
	ConventionID uint `json:"convention_id" binding:"required"`
	ProjectID    uint `json:"project_id" binding:"required"`
}

func (h *ConventionProjectHandler) Create(ctx *gin.Context) {
	var body CreateConventionProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		utils.BadRequest(ctx, err)
		return
	}

	var convention models.Convention

	if err := h.db.First(&convention, body.ConventionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Convention not found"})
		} else {
			log.Printf("Failed to retrieve convention: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	var project models.Project

	if err := h.db.First(&project, body.ProjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			log.Printf("Failed to retrieve project: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	link := models.ConventionProject{
		ConventionID: body.ConventionID,
		ProjectID:    body.ProjectID,
	}

	if err := h.db.Create(&link).Error; err != nil {
		log.Printf("Failed to link convention and project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, link)
}

func (h *ConventionProjectHandler) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)

	if !ok {
		return
	}

	var link models.ConventionProject

	if err := h.db.First(&link, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Convention project not found"})
		} else {
			log.Printf("Failed to retrieve convention project: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	if err := h.db.Delete(&link).Error; err != nil {
		log.Printf("Failed to delete convention project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
