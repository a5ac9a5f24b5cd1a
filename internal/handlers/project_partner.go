package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/suivi-dev/suivi/internal/models"
	"github.com/suivi-dev/suivi/internal/types"
	"github.com/suivi-dev/suivi/internal/utils"
)

type ProjectPartnerHandler struct {
	db *gorm.DB
}

func NewProjectPartnerHandler(db *gorm.DB) *ProjectPartnerHandler {
	return &ProjectPartnerHandler{db: db}
}

type CreateProjectPartnerRequest struct {
	ProjectID           uint           `json:"project_id" binding:"required"`
	PartnerID           uint           `json:"partner_id" binding:"required"`
	Year                int            `json:"year" binding:"required,gte=1900,lte=2200"`
	PlannedContribution *types.Decimal `json:"planned_contribution" binding:"required,gte=0"`
	ActualContribution  *types.Decimal `json:"actual_contribution" binding:"omitempty,gte=0"`
	Status              string         `json:"status"`
}

type UpdateProjectPartnerRequest struct {
	Year                *int           `json:"year" binding:"omitempty,gte=1900,lte=2200"`
	PlannedContribution *types.Decimal `json:"planned_contribution" binding:"omitempty,gte=0"`
	ActualContribution  *types.Decimal `json:"actual_contribution" binding:"omitempty,gte=0"`
	Status              *string        `json:"status"`
}

func (h *ProjectPartnerHandler) Create(ctx *gin.Context) {
	var body CreateProjectPartnerRequest

	if err := ctx.BindJSON(&body); err != nil {
		utils.BadRequest(ctx, err)
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

	var partner models.Partner

	if err := h.db.First(&partner, body.PartnerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Partner not found"})
		} else {
			log.Printf("Failed to retrieve partner: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	// duplicate (project, partner, year) rows are accepted: a partner may
	// contribute several tranches in the same year
	contribution := models.ProjectPartner{
		ProjectID:           body.ProjectID,
		PartnerID:           body.PartnerID,
		Year:                body.Year,
		PlannedContribution: body.PlannedContribution.Float64(),
		Status:              "pending",
	}

	if body.ActualContribution != nil {
		contribution.ActualContribution = body.ActualContribution.Float64()
	}
	if body.Status != "" {
		contribution.Status = body.Status
	}

	if err := h.db.Create(&contribution).Error; err != nil {
		log.Printf("Failed to create project partner: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, contribution)
}

func (h *ProjectPartnerHandler) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)

	if !ok {
		return
	}

	var body UpdateProjectPartnerRequest

	if err := ctx.BindJSON(&body); err != nil {
		utils.BadRequest(ctx, err)
		return
	}

	var contribution models.ProjectPartner

	if err := h.db.First(&contribution, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project partner not found"})
		} else {
			log.Printf("Failed to retrieve project partner: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	updates := make(map[string]interface{})

	if body.Year != nil {
		updates["year"] = *body.Year
	}
	if body.PlannedContribution != nil {
		updates["planned_contribution"] = body.PlannedContribution.Float64()
	}
	if body.ActualContribution != nil {
		updates["actual_contribution"] = body.ActualContribution.Float64()
	}
	if body.Status != nil {
		updates["status"] = *body.Status
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	if err := h.db.Model(&contribution).Updates(updates).Error; err != nil {
		log.Printf("Failed to update project partner: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := h.db.First(&contribution, contribution.ID).Error; err != nil {
		log.Printf("Failed to refresh project partner: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, contribution)
}

func (h *ProjectPartnerHandler) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)

	if !ok {
		return
	}

	var contribution models.ProjectPartner

	if err := h.db.First(&contribution, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project partner not found"})
		} else {
			log.Printf("Failed to retrieve project partner: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	if err := h.db.Delete(&contribution).Error; err != nil {
		log.Printf("Failed to delete project partner: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
