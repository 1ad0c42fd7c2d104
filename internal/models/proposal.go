package models

import "time"

type ProposalStatus string

const (
	ProposalStatusPending  ProposalStatus = "pending"
	ProposalStatusAccepted ProposalStatus = "accepted"
	ProposalStatusRejected ProposalStatus = "rejected"
)

// Proposal is a freelancer's bid on a project. One per (freelancer, project);
// the composite unique index is what turns a double submission into a
// conflict instead of a second row.
type Proposal struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Amount      int64  `gorm:"not null" json:"amount"`
	Description string `gorm:"type:text" json:"description"`

	FreelancerID uint `gorm:"not null;index;uniqueIndex:idx_proposals_freelancer_project" json:"freelancer_id"`
	ProjectID    uint `gorm:"not null;index;uniqueIndex:idx_proposals_freelancer_project" json:"project_id"`

	Status ProposalStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Freelancer *User    `gorm:"foreignKey:FreelancerID" json:"freelancer,omitempty"`
	Project    *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}
