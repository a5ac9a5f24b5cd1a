package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/suivi-dev/suivi/internal/models"
	"github.com/suivi-dev/suivi/internal/types"
	"github.com/suivi-dev/suivi/internal/utils"
)

type ProjectHandler struct {
	db *gorm.DB
}

func NewProjectHandler(db *gorm.DB) *ProjectHandler {
	return &ProjectHandler{db: db}
}

type CreateProjectRequest struct {
	Identifier       string   `json:"identifier" binding:"required"`
	Title            string   `json:"title" binding:"required"`
	Axis             string   `json:"axis"`
	Domain           string   `json:"domain"`
	Region           string   `json:"region"`
	Province         string   `json:"province"`
	Commune          string         `json:"commune"`
	Budget           *types.Decimal `json:"budget" binding:"required,gte=0"`
	Engagements      *types.Decimal `json:"engagements" binding:"omitempty,gte=0"`
	Payments         *types.Decimal `json:"payments" binding:"omitempty,gte=0"`
	PhysicalProgress *int           `json:"physical_progress" binding:"omitempty,gte=0,lte=100"`
	Status           string         `json:"status" binding:"omitempty,oneof=active inactive suspended cancelled"`
}

// UpdateProjectRequest carries no identifier: the project code is immutable
// after creation.
type UpdateProjectRequest struct {
	Title            *string  `json:"title"`
	Axis             *string  `json:"axis"`
	Domain           *string  `json:"domain"`
	Region           *string  `json:"region"`
	Province         *string  `json:"province"`
	Commune          *string        `json:"commune"`
	Budget           *types.Decimal `json:"budget" binding:"omitempty,gte=0"`
	Engagements      *types.Decimal `json:"engagements" binding:"omitempty,gte=0"`
	Payments         *types.Decimal `json:"payments" binding:"omitempty,gte=0"`
	PhysicalProgress *int           `json:"physical_progress" binding:"omitempty,gte=0,lte=100"`
	Status           *string        `json:"status" binding:"omitempty,oneof=active inactive suspended cancelled"`
}

// Sortable columns for project listing. Anything else is rejected.
var projectSortColumns = map[string]string{
	"identifier": "identifier",
	"title":      "title",
	"axis":       "axis",
	"domain":     "domain",
	"budget":     "budget",
	"createdAt":  "created_at",
}

func (h *ProjectHandler) Create(ctx *gin.Context) {
	var body CreateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		utils.BadRequest(ctx, err)
		return
	}

	var existing models.Project

	err := h.db.Where("identifier = ?", body.Identifier).First(&existing).Error

	if err == nil {
		ctx.JSON(http.StatusConflict, gin.H{"error": "A project with this identifier already exists"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Database error when checking project identifier: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	project := models.Project{
		Identifier: body.Identifier,
		Title:      body.Title,
		Axis:       body.Axis,
		Domain:     body.Domain,
		Region:     body.Region,
		Province:   body.Province,
		Commune:    body.Commune,
		Budget:     body.Budget.Float64(),
		Status:     models.ProjectStatusActive,
	}

	if body.Engagements != nil {
		project.Engagements = body.Engagements.Float64()
	}
	if body.Payments != nil {
		project.Payments = body.Payments.Float64()
	}
	if body.PhysicalProgress != nil {
		project.PhysicalProgress = *body.PhysicalProgress
	}
	if body.Status != "" {
		project.Status = body.Status
	}

	if err := h.db.Create(&project).Error; err != nil {
		// a concurrent create can slip past the pre-check and hit the
		// unique index instead
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusConflict, gin.H{"error": "A project with this identifier already exists"})
			return
		}
		log.Printf("Failed to create project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, project)
}

func (h *ProjectHandler) List(ctx *gin.Context) {
	sortBy := ctx.Query("sortBy")
	sortOrder := strings.ToLower(ctx.Query("sortOrder"))

	if sortBy == "" {
		sortBy = "createdAt"
		if sortOrder == "" {
			sortOrder = "desc"
		}
	}
	if sortOrder == "" {
		sortOrder = "asc"
	}

	column, ok := projectSortColumns[sortBy]

	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":  "Validation failed",
			"fields": []utils.FieldError{{Field: "sortBy", Message: "must be one of: identifier, title, axis, domain, budget, createdAt"}},
		})
		return
	}

	if sortOrder != "asc" && sortOrder != "desc" {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":  "Validation failed",
			"fields": []utils.FieldError{{Field: "sortOrder", Message: "must be one of: asc, desc"}},
		})
		return
	}

	query := h.db.Model(&models.Project{})

	if search := ctx.Query("search"); search != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	projects := make([]models.Project, 0)

	// secondary order on id keeps ties in insertion order
	if err := query.Order(column + " " + sortOrder).Order("id asc").Find(&projects).Error; err != nil {
		log.Printf("Failed to list projects: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, projects)
}

func (h *ProjectHandler) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)

	if !ok {
		return
	}

	var project models.Project

	if err := h.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			log.Printf("Failed to retrieve project: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	ctx.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)

	if !ok {
		return
	}

	var body UpdateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		utils.BadRequest(ctx, err)
		return
	}

	var project models.Project

	if err := h.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			log.Printf("Failed to retrieve project: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	updates := make(map[string]interface{})

	if body.Title != nil {
		updates["title"] = *body.Title
	}
	if body.Axis != nil {
		updates["axis"] = *body.Axis
	}
	if body.Domain != nil {
		updates["domain"] = *body.Domain
	}
	if body.Region != nil {
		updates["region"] = *body.Region
	}
	if body.Province != nil {
		updates["province"] = *body.Province
	}
	if body.Commune != nil {
		updates["commune"] = *body.Commune
	}
	if body.Budget != nil {
		updates["budget"] = body.Budget.Float64()
	}
	if body.Engagements != nil {
		updates["engagements"] = body.Engagements.Float64()
	}
	if body.Payments != nil {
		updates["payments"] = body.Payments.Float64()
	}
	if body.PhysicalProgress != nil {
		updates["physical_progress"] = *body.PhysicalProgress
	}
	if body.Status != nil {
		updates["status"] = *body.Status
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	if err := h.db.Model(&project).Updates(updates).Error; err != nil {
		log.Printf("Failed to update project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := h.db.First(&project, project.ID).Error; err != nil {
		log.Printf("Failed to refresh project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)

	if !ok {
		return
	}

	var project models.Project

	if err := h.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			log.Printf("Failed to retrieve project: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	dependencies, err := h.projectDependencies(id)

	if err != nil {
		log.Printf("Failed to check project dependencies: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if len(dependencies) > 0 {
		ctx.JSON(http.StatusConflict, gin.H{
			"error":        "Project has dependent records",
			"dependencies": dependencies,
		})
		return
	}

	if err := h.db.Delete(&project).Error; err != nil {
		log.Printf("Failed to delete project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

// projectDependencies names the tables still referencing the project.
// Deletion is blocked while any exist.
func (h *ProjectHandler) projectDependencies(id uint) ([]string, error) {
	var dependencies []string

	checks := []struct {
		name  string
		model interface{}
	}{
		{"project_partners", &models.ProjectPartner{}},
		{"convention_projects", &models.ConventionProject{}},
		{"financial_advances", &models.FinancialAdvance{}},
	}

	for _, check := range checks {
		var count int64
		if err := h.db.Model(check.model).Where("project_id = ?", id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			dependencies = append(dependencies, check.name)
		}
	}

	return dependencies, nil
}

// ProjectPartnerEntry pairs a contribution row with its resolved partner.
type ProjectPartnerEntry struct {
	Contribution models.ProjectPartner `json:"contribution"`
	Partner      models.Partner        `json:"partner"`
}

func (h *ProjectHandler) ListPartners(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)

	if !ok {
		return
	}

	if !h.projectExists(ctx, id) {
		return
	}

	contributions := make([]models.ProjectPartner, 0)

	if err := h.db.Where("project_id = ?", id).Order("year asc, id asc").Find(&contributions).Error; err != nil {
		log.Printf("Failed to list project partners: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	partnerIDs := make([]uint, 0, len(contributions))
	for _, c := range contributions {
		partnerIDs = append(partnerIDs, c.PartnerID)
	}

	partnersByID := make(map[uint]models.Partner, len(partnerIDs))

	if len(partnerIDs) > 0 {
		var partners []models.Partner
		if err := h.db.Where("id IN ?", partnerIDs).Find(&partners).Error; err != nil {
			log.Printf("Failed to resolve partners: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		for _, p := range partners {
			partnersByID[p.ID] = p
		}
	}

	entries := make([]ProjectPartnerEntry, 0, len(contributions))
	for _, c := range contributions {
		entries = append(entries, ProjectPartnerEntry{Contribution: c, Partner: partnersByID[c.PartnerID]})
	}

	ctx.JSON(http.StatusOK, entries)
}

// ProjectConventionEntry pairs a junction row with its resolved convention.
type ProjectConventionEntry struct {
	Link       models.ConventionProject `json:"link"`
	Convention models.Convention        `json:"convention"`
}

func (h *ProjectHandler) ListConventions(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)

	if !ok {
		return
	}

	if !h.projectExists(ctx, id) {
		return
	}

	links := make([]models.ConventionProject, 0)

	if err := h.db.Where("project_id = ?", id).Order("id asc").Find(&links).Error; err != nil {
		log.Printf("Failed to list project conventions: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	conventionIDs := make([]uint, 0, len(links))
	for _, l := range links {
		conventionIDs = append(conventionIDs, l.ConventionID)
	}

	conventionsByID := make(map[uint]models.Convention, len(conventionIDs))

	if len(conventionIDs) > 0 {
		var conventions []models.Convention
		if err := h.db.Where("id IN ?", conventionIDs).Find(&conventions).Error; err != nil {
			log.Printf("Failed to resolve conventions: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		for _, c := range conventions {
			conventionsByID[c.ID] = c
		}
	}

	entries := make([]ProjectConventionEntry, 0, len(links))
	for _, l := range links {
		entries = append(entries, ProjectConventionEntry{Link: l, Convention: conventionsByID[l.ConventionID]})
	}

	ctx.JSON(http.StatusOK, entries)
}

func (h *ProjectHandler) ListAdvances(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)

	if !ok {
		return
	}

	if !h.projectExists(ctx, id) {
		return
	}

	advances := make([]models.FinancialAdvance, 0)

	if err := h.db.Where("project_id = ?", id).Order("reference_date asc, id asc").Find(&advances).Error; err != nil {
		log.Printf("Failed to list financial advances: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, advances)
}

func (h *ProjectHandler) projectExists(ctx *gin.Context, id uint) bool {
	var project models.Project

	if err := h.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			log.Printf("Failed to retrieve project: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return false
	}

	return true
}
