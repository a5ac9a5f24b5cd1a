package models

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog records one mutating request made by an authenticated user.
type AuditLog struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    *uint          `gorm:"index" json:"user_id"`
	Username  string         `gorm:"size:64" json:"username"`
	Method    string         `gorm:"size:16" json:"method"`
	Path      string         `gorm:"size:255" json:"path"`
	Status    int            `json:"status"`
	Metadata  datatypes.JSON `json:"metadata"`
	IP        string         `gorm:"size:64" json:"ip"`
	CreatedAt time.Time      `json:"created_at"`
}
