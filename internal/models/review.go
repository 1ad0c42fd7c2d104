package models

import "time"

// Review is a 1-5 rating exchanged between the two sides of a confirmed
// engagement. One review per (reviewer, reviewee, project).
type Review struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `gorm:"type:text" json:"comment"`

	ReviewerID uint `gorm:"not null;index;uniqueIndex:idx_reviews_reviewer_reviewee_project" json:"reviewer_id"`
	RevieweeID uint `gorm:"not null;index;uniqueIndex:idx_reviews_reviewer_reviewee_project" json:"reviewee_id"`
	ProjectID  uint `gorm:"not null;index;uniqueIndex:idx_reviews_reviewer_reviewee_project" json:"project_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Reviewer *User    `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
	Reviewee *User    `gorm:"foreignKey:RevieweeID" json:"reviewee,omitempty"`
	Project  *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}
