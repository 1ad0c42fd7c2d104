package services

import (
	"errors"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/freelahub/api/internal/auth"
	"github.com/freelahub/api/internal/domain"
	"github.com/freelahub/api/internal/models"
)

type ProjectService struct {
	DB *gorm.DB
}

func NewProjectService(gdb *gorm.DB) *ProjectService {
	return &ProjectService{DB: gdb}
}

type CreateProjectInput struct {
	Title       string
	Description string
	Skills      datatypes.JSON
}

func (s *ProjectService) Create(p auth.Principal, in CreateProjectInput) (*models.Project, error) {
	if !p.IsCompany() {
		return nil, domain.Forbidden("only companies can post projects")
	}
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return nil, domain.Invalid("title is required")
	}

	project := models.Project{
		Title:       in.Title,
		Description: in.Description,
		CompanyID:   p.UserID,
		Status:      models.ProjectStatusOpen,
		Skills:      in.Skills,
	}
	if err := s.DB.Create(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// List is public: anyone may browse postings.
func (s *ProjectService) List() ([]models.Project, error) {
	var projects []models.Project
	err := s.DB.Order("created_at DESC").Find(&projects).Error
	return projects, err
}

func (s *ProjectService) Get(id uint) (*models.Project, error) {
	var project models.Project
	if err := s.DB.First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("project not found")
		}
		return nil, err
	}
	return &project, nil
}

// ListMine returns the caller's own postings.
func (s *ProjectService) ListMine(p auth.Principal) ([]models.Project, error) {
	if !p.IsCompany() {
		return nil, domain.Forbidden("only companies have project postings")
	}
	var projects []models.Project
	err := s.DB.Where("company_id = ?", p.UserID).Order("created_at DESC").Find(&projects).Error
	return projects, err
}

type UpdateProjectInput struct {
	Title       *string
	Description *string
	Status      *models.ProjectStatus
	Skills      datatypes.JSON
}

// Update conditions the write on ownership. Zero rows touched means the
// project does not exist or is not the caller's; callers cannot tell which.
func (s *ProjectService) Update(p auth.Principal, id uint, in UpdateProjectInput) (*models.Project, error) {
	if !p.IsCompany() {
		return nil, domain.Forbidden("only the owning company can update a project")
	}

	updates := map[string]interface{}{}
	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		if t == "" {
			return nil, domain.Invalid("title cannot be empty")
		}
		updates["title"] = t
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Status != nil {
		switch *in.Status {
		case models.ProjectStatusOpen, models.ProjectStatusInProgress,
			models.ProjectStatusCompleted, models.ProjectStatusCancelled:
		default:
			return nil, domain.Invalid("invalid project status")
		}
		updates["status"] = *in.Status
	}
	if in.Skills != nil {
		updates["skills"] = in.Skills
	}
	if len(updates) == 0 {
		return nil, domain.Invalid("nothing to update")
	}

	res := s.DB.Model(&models.Project{}).
		Where("id = ? AND company_id = ?", id, p.UserID).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domain.NotFound("project not found")
	}

	var project models.Project
	if err := s.DB.First(&project, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *ProjectService) Delete(p auth.Principal, id uint) error {
	if !p.IsCompany() {
		return domain.Forbidden("only the owning company can delete a project")
	}
	res := s.DB.Where("id = ? AND company_id = ?", id, p.UserID).Delete(&models.Project{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("project not found")
	}
	return nil
}
