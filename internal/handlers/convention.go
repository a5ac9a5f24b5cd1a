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

type ConventionHandler struct {
	db *gorm.DB
}

func NewConventionHandler(db *gorm.DB) *ConventionHandler {
	return &ConventionHandler{db: db}
}

type CreateConventionRequest struct {
	Title       string  `json:"title" binding:"required"`
	DateVisa    string  `json:"date_visa"`
	Status      string  `json:"status" binding:"omitempty,oneof=pending signed adoption partners visa"`
	Programme   string  `json:"programme"`
	DocumentURL *string `json:"document_url" binding:"omitempty,url"`
}

type UpdateConventionRequest struct {
	Title       *string `json:"title"`
	DateVisa    *string `json:"date_visa"`
	Status      *string `json:"status" binding:"omitempty,oneof=pending signed adoption partners visa"`
	Programme   *string `json:"programme"`
	DocumentURL *string `json:"document_url" binding:"omitempty,url"`
}

func (h *ConventionHandler) Create(ctx *gin.Context) {
	var body CreateConventionRequest

	if err := ctx.BindJSON(&body); err != nil {
		utils.BadRequest(ctx, err)
		return
	}

	convention := models.Convention{
		Title:       body.Title,
		Status:      models.ConventionStatusPending,
		Programme:   body.Programme,
		DocumentURL: body.DocumentURL,
	}

	if body.Status != "" {
		convention.Status = body.Status
	}

	if body.DateVisa != "" {
		date, err := parseDate(body.DateVisa)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{
				"error":  "Validation failed",
				"fields": []utils.FieldError{{Field: "date_visa", Message: "must be a date in YYYY-MM-DD format"}},
			})
			return
		}
		convention.DateVisa = &date
	}

	if err := h.db.Create(&convention).Error; err != nil {
		log.Printf("Failed to create convention: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, convention)
}

func (h *ConventionHandler) List(ctx *gin.Context) {
	conventions := make([]models.Convention, 0)

	if err := h.db.Order("created_at desc, id asc").Find(&conventions).Error; err != nil {
		log.Printf("Failed to list conventions: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, conventions)
}

func (h *ConventionHandler) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)

	if !ok {
		return
	}

	var convention models.Convention

	if err := h.db.First(&convention, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Convention not found"})
		} else {
			log.Printf("Failed to retrieve convention: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	ctx.JSON(http.StatusOK, convention)
}

func (h *ConventionHandler) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)

	if !ok {
		return
	}

	var body UpdateConventionRequest

	if err := ctx.BindJSON(&body); err != nil {
		utils.BadRequest(ctx, err)
		return
	}

	var convention models.Convention

	if err := h.db.First(&convention, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Convention not found"})
		} else {
			log.Printf("Failed to retrieve convention: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	updates := make(map[string]interface{})

	if body.Title != nil {
		updates["title"] = *body.Title
	}
	if body.Status != nil {
		updates["status"] = *body.Status
	}
	if body.Programme != nil {
		updates["programme"] = *body.Programme
	}
	if body.DocumentURL != nil {
		// empty string clears the stored url, same convention as date_visa
		if *body.DocumentURL == "" {
			updates["document_url"] = nil
		} else {
			updates["document_url"] = *body.DocumentURL
		}
	}
	if body.DateVisa != nil {
		if *body.DateVisa == "" {
			updates["date_visa"] = nil
		} else {
			date, err := parseDate(*body.DateVisa)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{
					"error":  "Validation failed",
					"fields": []utils.FieldError{{Field: "date_visa", Message: "must be a date in YYYY-MM-DD format"}},
				})
				return
			}
			updates["date_visa"] = date
		}
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	if err := h.db.Model(&convention).Updates(updates).Error; err != nil {
		log.Printf("Failed to update convention: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := h.db.First(&convention, convention.ID).Error; err != nil {
		log.Printf("Failed to refresh convention: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, convention)
}

func (h *ConventionHandler) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)

	if !ok {
		return
	}

	var convention models.Convention

	if err := h.db.First(&convention, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Convention not found"})
		} else {
			log.Printf("Failed to retrieve convention: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	var linked int64

	if err := h.db.Model(&models.ConventionProject{}).Where("convention_id = ?", id).Count(&linked).Error; err != nil {
		log.Printf("Failed to check convention dependencies: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if linked > 0 {
		ctx.JSON(http.StatusConflict, gin.H{
			"error":        "Convention has dependent records",
			"dependencies": []string{"convention_projects"},
		})
		return
	}

	if err := h.db.Delete(&convention).Error; err != nil {
		log.Printf("Failed to delete convention: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ConventionProjectEntry pairs a junction row with its resolved project.
type ConventionProjectEntry struct {
	Link    models.ConventionProject `json:"link"`
	Project models.Project           `json:"project"`
}

func (h *ConventionHandler) ListProjects(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)

	if !ok {
		return
	}

	var convention models.Convention

	if err := h.db.First(&convention, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Convention not found"})
		} else {
			log.Printf("Failed to retrieve convention: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	links := make([]models.ConventionProject, 0)

	if err := h.db.Where("convention_id = ?", id).Order("id asc").Find(&links).Error; err != nil {
		log.Printf("Failed to list convention projects: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	projectIDs := make([]uint, 0, len(links))
	for _, l := range links {
		projectIDs = append(projectIDs, l.ProjectID)
	}

	projectsByID := make(map[uint]models.Project, len(projectIDs))

	if len(projectIDs) > 0 {
		var projects []models.Project
		if err := h.db.Where("id IN ?", projectIDs).Find(&projects).Error; err != nil {
			log.Printf("Failed to resolve projects: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		for _, p := range projects {
			projectsByID[p.ID] = p
		}
	}

	entries := make([]ConventionProjectEntry, 0, len(links))
	for _, l := range links {
		entries = append(entries, ConventionProjectEntry{Link: l, Project: projectsByID[l.ProjectID]})
	}

	ctx.JSON(http.StatusOK, entries)
}
