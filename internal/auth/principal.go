package auth

import "github.com/freelahub/api/internal/models"

// Principal is the verified caller identity. The transport layer builds it
// from the bearer token; every service operation takes it explicitly.
type Principal struct {
	UserID uint
	Role   models.Role
}

func (p Principal) IsAdmin() bool      { return p.Role == models.RoleAdmin }
func (p Principal) IsCompany() bool    { return p.Role == models.RoleCompany }
func (p Principal) IsFreelancer() bool { return p.Role == models.RoleFreelancer }
