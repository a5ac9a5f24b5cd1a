package models

import "time"

// ConventionProject links a convention to a project.
type ConventionProject struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ConventionID uint      `gorm:"not null;index" json:"convention_id"`
	ProjectID    uint      `gorm:"not null;index" json:"project_id"`
	CreatedAt    time.Time `json:"created_at"`

	// Relationships
	Convention Convention `gorm:"foreignKey:ConventionID" json:"-"`
	Project    Project    `gorm:"foreignKey:ProjectID" json:"-"`
}
