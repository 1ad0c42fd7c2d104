package models

import "time"

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleCompany    Role = "company"
	RoleFreelancer Role = "freelancer"
)

// User is a single record for all three roles; behavior differences live in
// the policy checks, not in subtypes. Role is fixed at registration.
type User struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"not null" json:"name"`
	Email string `gorm:"uniqueIndex;not null" json:"email"`

	Password string `gorm:"not null" json:"-"`
	Role     Role   `gorm:"type:varchar(20);not null;index" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
