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

type FinancialAdvanceHandler struct {
	db *gorm.DB
}

func NewFinancialAdvanceHandler(db *gorm.DB) *FinancialAdvanceHandler {
	return &FinancialAdvanceHandler{db: db}
}

type CreateFinancialAdvanceRequest struct {
	ReferenceDate string         `json:"reference_date" binding:"required"`
	Engagement    *types.Decimal `json:"engagement" binding:"required,gte=0"`
	Payment       *types.Decimal `json:"payment" binding:"required,gte=0"`
}

type UpdateFinancialAdvanceRequest struct {
	ReferenceDate *string        `json:"reference_date"`
	Engagement    *types.Decimal `json:"engagement" binding:"omitempty,gte=0"`
	Payment       *types.Decimal `json:"payment" binding:"omitempty,gte=0"`
}

// Create records a disbursement against the project in the route.
func (h *FinancialAdvanceHandler) Create(ctx *gin.Context) {
	projectID, ok := parseIDParam(ctx)

	if !ok {
		return
	}

	var body CreateFinancialAdvanceRequest

	if err := ctx.BindJSON(&body); err != nil {
		utils.BadRequest(ctx, err)
		return
	}

	var project models.Project

	if err := h.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			log.Printf("Failed to retrieve project: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	date, err := parseDate(body.ReferenceDate)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":  "Validation failed",
			"fields": []utils.FieldError{{Field: "reference_date", Message: "must be a date in YYYY-MM-DD format"}},
		})
		return
	}

	advance := models.FinancialAdvance{
		ProjectID:     projectID,
		ReferenceDate: date,
		Engagement:    body.Engagement.Float64(),
		Payment:       body.Payment.Float64(),
	}

	if err := h.db.Create(&advance).Error; err != nil {
		log.Printf("Failed to create financial advance: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, advance)
}

func (h *FinancialAdvanceHandler) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)

	if !ok {
		return
	}

	var body UpdateFinancialAdvanceRequest

	if err := ctx.BindJSON(&body); err != nil {
		utils.BadRequest(ctx, err)
		return
	}

	var advance models.FinancialAdvance

	if err := h.db.First(&advance, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Financial advance not found"})
		} else {
			log.Printf("Failed to retrieve financial advance: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	updates := make(map[string]interface{})

	if body.ReferenceDate != nil {
		date, err := parseDate(*body.ReferenceDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{
				"error":  "Validation failed",
				"fields": []utils.FieldError{{Field: "reference_date", Message: "must be a date in YYYY-MM-DD format"}},
			})
			return
		}
		updates["reference_date"] = date
	}
	if body.Engagement != nil {
		updates["engagement"] = body.Engagement.Float64()
	}
	if body.Payment != nil {
		updates["payment"] = body.Payment.Float64()
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	if err := h.db.Model(&advance).Updates(updates).Error; err != nil {
		log.Printf("Failed to update financial advance: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := h.db.First(&advance, advance.ID).Error; err != nil {
		log.Printf("Failed to refresh financial advance: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, advance)
}

func (h *FinancialAdvanceHandler) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)

	if !ok {
		return
	}

	var advance models.FinancialAdvance

	if err := h.db.First(&advance, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Financial advance not found"})
		} else {
			log.Printf("Failed to retrieve financial advance: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	if err := h.db.Delete(&advance).Error; err != nil {
		log.Printf("Failed to delete financial advance: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
