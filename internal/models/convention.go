package models

import "time"

// Convention statuses follow the signature lifecycle.
const (
	ConventionStatusPending  = "pending"
	ConventionStatusSigned   = "signed"
	ConventionStatusAdoption = "adoption"
	ConventionStatusPartners = "partners"
	ConventionStatusVisa     = "visa"
)

// Convention is a formal agreement, optionally linked to projects and to an
// externally stored document.
type Convention struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	DateVisa    *time.Time `json:"date_visa"`
	Status      string     `gorm:"size:32;not null;default:pending" json:"status"`
	Programme   string     `gorm:"size:255" json:"programme"`
	DocumentURL *string    `gorm:"size:1024" json:"document_url"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relationships
	Projects []ConventionProject `gorm:"foreignKey:ConventionID" json:"-"`
}
