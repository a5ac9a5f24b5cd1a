package models

import "time"

// Partner is an organization contributing funding to projects.
type Partner struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Type      string    `gorm:"size:128" json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Contributions []ProjectPartner `gorm:"foreignKey:PartnerID" json:"-"`
}
