package models

import "time"

type ContractStatus string

const (
	ContractStatusActive    ContractStatus = "active"
	ContractStatusCompleted ContractStatus = "completed"
	ContractStatusBroken    ContractStatus = "broken"
)

// Contract binds the company and the freelancer of the single accepted
// proposal on a project. Amount is copied from that proposal, never
// re-entered. At most one contract per project (unique project_id).
type Contract struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Terms  string `gorm:"type:text;not null" json:"terms"`
	Amount int64  `gorm:"not null" json:"amount"`

	ProjectID    uint `gorm:"not null;uniqueIndex" json:"project_id"`
	FreelancerID uint `gorm:"not null;index" json:"freelancer_id"`
	CompanyID    uint `gorm:"not null;index" json:"company_id"`

	Status ContractStatus `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Project    *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Freelancer *User    `gorm:"foreignKey:FreelancerID" json:"freelancer,omitempty"`
	Company    *User    `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
}
