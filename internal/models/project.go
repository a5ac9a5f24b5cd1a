package models

import "time"

// Project statuses.
const (
	ProjectStatusActive    = "active"
	ProjectStatusInactive  = "inactive"
	ProjectStatusSuspended = "suspended"
	ProjectStatusCancelled = "cancelled"
)

// Project is a regional development project. Identifier is the user-assigned
// project code; it is unique and never changes after creation.
type Project struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Identifier       string    `gorm:"size:64;uniqueIndex;not null" json:"identifier"`
	Title            string    `gorm:"size:255;not null" json:"title"`
	Axis             string    `gorm:"size:255" json:"axis"`
	Domain           string    `gorm:"size:255" json:"domain"`
	Region           string    `gorm:"size:128" json:"region"`
	Province         string    `gorm:"size:128" json:"province"`
	Commune          string    `gorm:"size:128" json:"commune"`
	Budget           float64   `gorm:"type:numeric(14,2);not null" json:"budget"`
	Engagements      float64   `gorm:"type:numeric(14,2);not null;default:0" json:"engagements"`
	Payments         float64   `gorm:"type:numeric(14,2);not null;default:0" json:"payments"`
	PhysicalProgress int       `gorm:"not null;default:0" json:"physical_progress"`
	Status           string    `gorm:"size:32;not null;default:active" json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	// Relationships
	Contributions []ProjectPartner    `gorm:"foreignKey:ProjectID" json:"-"`
	Conventions   []ConventionProject `gorm:"foreignKey:ProjectID" json:"-"`
	Advances      []FinancialAdvance  `gorm:"foreignKey:ProjectID" json:"-"`
}
