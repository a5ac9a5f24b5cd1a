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

type PartnerHandler struct {
	db *gorm.DB
}

func NewPartnerHandler(db *gorm.DB) *PartnerHandler {
	return &PartnerHandler{db: db}
}

type CreatePartnerRequest struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type"`
}

type UpdatePartnerRequest struct {
	Name *string `json:"name"`
	Type *string `json:"type"`
}

func (h *PartnerHandler) Create(ctx *gin.Context) {
	var body CreatePartnerRequest

	if err := ctx.BindJSON(&body); err != nil {
		utils.BadRequest(ctx, err)
		return
	}

	partner := models.Partner{
		Name: body.Name,
		Type: body.Type,
	}

	if err := h.db.Create(&partner).Error; err != nil {
		log.Printf("Failed to create partner: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, partner)
}

func (h *PartnerHandler) List(ctx *gin.Context) {
	partners := make([]models.Partner, 0)

	if err := h.db.Order("name asc, id asc").Find(&partners).Error; err != nil {
		log.Printf("Failed to list partners: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, partners)
}

func (h *PartnerHandler) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)

	if !ok {
		return
	}

	var partner models.Partner

	if err := h.db.First(&partner, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Partner not found"})
		} else {
			log.Printf("Failed to retrieve partner: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	ctx.JSON(http.StatusOK, partner)
}

func (h *PartnerHandler) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)

	if !ok {
		return
	}

	var body UpdatePartnerRequest

	if err := ctx.BindJSON(&body); err != nil {
		utils.BadRequest(ctx, err)
		return
	}

	var partner models.Partner

	if err := h.db.First(&partner, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Partner not found"})
		} else {
			log.Printf("Failed to retrieve partner: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	updates := make(map[string]interface{})

	if body.Name != nil {
		updates["name"] = *body.Name
	}
	if body.Type != nil {
		updates["type"] = *body.Type
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	if err := h.db.Model(&partner).Updates(updates).Error; err != nil {
		log.Printf("Failed to update partner: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := h.db.First(&partner, partner.ID).Error; err != nil {
		log.Printf("Failed to refresh partner: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, partner)
}

func (h *PartnerHandler) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)

	if !ok {
		return
	}

	var partner models.Partner

	if err := h.db.First(&partner, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Partner not found"})
		} else {
			log.Printf("Failed to retrieve partner: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	var referenced int64

	if err := h.db.Model(&models.ProjectPartner{}).Where("partner_id = ?", id).Count(&referenced).Error; err != nil {
		log.Printf("Failed to check partner dependencies: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if referenced > 0 {
		ctx.JSON(http.StatusConflict, gin.H{
			"error":        "Partner has dependent records",
			"dependencies": []string{"project_partners"},
		})
		return
	}

	if err := h.db.Delete(&partner).Error; err != nil {
		log.Printf("Failed to delete partner: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
