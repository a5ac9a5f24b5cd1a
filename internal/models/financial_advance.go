package models

import "time"

// FinancialAdvance is a single disbursement event against a project.
type FinancialAdvance struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ProjectID     uint      `gorm:"not null;index" json:"project_id"`
	ReferenceDate time.Time `gorm:"not null" json:"reference_date"`
	Engagement    float64   `gorm:"type:numeric(14,2);not null" json:"engagement"`
	Payment       float64   `gorm:"type:numeric(14,2);not null" json:"payment"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
}
