package models

import (
	"time"

	"gorm.io/datatypes"
)

type ProjectStatus string

const (
	ProjectStatusOpen       ProjectStatus = "open"
	ProjectStatusInProgress ProjectStatus = "in_progress"
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusCancelled  ProjectStatus = "cancelled"
)

type Project struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	CompanyID uint          `gorm:"not null;index" json:"company_id"`
	Status    ProjectStatus `gorm:"type:varchar(20);not null;default:'open';index" json:"status"`

	// Skills the posting asks for, e.g. ["go","react"].
	Skills datatypes.JSON `json:"skills,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Company *User `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
}
