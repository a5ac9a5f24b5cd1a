package models

import "time"

// ProjectPartner is one yearly contribution of a partner to a project.
// There is intentionally no unique index on (project_id, partner_id, year):
// several tranches for the same year are accepted.
type ProjectPartner struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	ProjectID           uint      `gorm:"not null;index" json:"project_id"`
	PartnerID           uint      `gorm:"not null;index" json:"partner_id"`
	Year                int       `gorm:"not null" json:"year"`
	PlannedContribution float64   `gorm:"type:numeric(14,2);not null" json:"planned_contribution"`
	ActualContribution  float64   `gorm:"type:numeric(14,2);not null;default:0" json:"actual_contribution"`
	Status              string    `gorm:"size:32;not null;default:pending" json:"status"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
	Partner Partner `gorm:"foreignKey:PartnerID" json:"-"`
}
