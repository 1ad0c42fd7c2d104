package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/freelahub/api/internal/auth"
	"github.com/freelahub/api/internal/db"
	"github.com/freelahub/api/internal/domain"
	"github.com/freelahub/api/internal/models"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(gdb *gorm.DB) *UserService {
	return &UserService{DB: gdb}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     models.Role
}

// Register creates a company or freelancer account. Admin accounts are
// never created through the public flow.
func (s *UserService) Register(in RegisterInput) (*models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if in.Name == "" || in.Email == "" {
		return nil, domain.Invalid("name and email are required")
	}
	if !strings.Contains(in.Email, "@") {
		return nil, domain.Invalid("invalid email")
	}
	if len(in.Password) < 6 {
		return nil, domain.Invalid("password must be at least 6 characters")
	}
	if in.Role != models.RoleCompany && in.Role != models.RoleFreelancer {
		return nil, domain.Invalid("role must be company or freelancer")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := models.User{Name: in.Name, Email: in.Email, Password: hash, Role: in.Role}
	if err := s.DB.Create(&u).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return nil, domain.Conflict("email already registered")
		}
		return nil, err
	}
	return &u, nil
}

// Authenticate checks credentials and returns the account. The caller signs
// the token; wrong email and wrong password are indistinguishable.
func (s *UserService) Authenticate(email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var u models.User
	if err := s.DB.Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.Invalid("invalid email or password")
		}
		return nil, err
	}
	if !auth.CheckPassword(u.Password, password) {
		return nil, domain.Invalid("invalid email or password")
	}
	return &u, nil
}

func (s *UserService) GetByID(id uint) (*models.User, error) {
	var u models.User
	if err := s.DB.First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("user not found")
		}
		return nil, err
	}
	return &u, nil
}

// FindOrCreateGoogleUser resolves an OAuth login. Existing accounts are
// returned as-is; new ones default to freelancer with a placeholder
// password hash, since authentication happens at Google.
func (s *UserService) FindOrCreateGoogleUser(email, name, googleID string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var u models.User
	err := s.DB.Where("email = ?", email).First(&u).Error
	if err == nil {
		return &u, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(googleID)
	if err != nil {
		return nil, err
	}
	u = models.User{Name: name, Email: email, Password: hash, Role: models.RoleFreelancer}
	if err := s.DB.Create(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}
