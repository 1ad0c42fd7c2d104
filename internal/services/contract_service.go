package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/freelahub/api/internal/auth"
	"github.com/freelahub/api/internal/db"
	"github.com/freelahub/api/internal/domain"
	"github.com/freelahub/api/internal/models"
	"github.com/freelahub/api/internal/policy"
)

type ContractService struct {
	DB *gorm.DB
}

func NewContractService(gdb *gorm.DB) *ContractService {
	return &ContractService{DB: gdb}
}

type CreateContractInput struct {
	ProjectID uint
	Terms     string
}

// Create derives a contract from the project's single accepted proposal.
// Preconditions run in order: project exists, caller owns it, exactly one
// accepted proposal, no contract yet. The insert and the project's move to
// in_progress share one transaction so neither can apply without the other.
func (s *ContractService) Create(p auth.Principal, in CreateContractInput) (*models.Contract, error) {
	if !p.IsCompany() {
		return nil, domain.Forbidden("only companies can create contracts")
	}
	if strings.TrimSpace(in.Terms) == "" {
		return nil, domain.Invalid("terms are required")
	}

	var contract models.Contract
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		project, found, err := policy.FindProject(tx, in.ProjectID)
		if err != nil {
			return err
		}
		if !found {
			return domain.NotFound("project not found")
		}
		if !policy.OwnsProject(tx, project, p.UserID) {
			return domain.Forbidden("you cannot create a contract for this project")
		}

		var accepted []models.Proposal
		if err := tx.Where("project_id = ? AND status = ?", in.ProjectID, models.ProposalStatusAccepted).
			Find(&accepted).Error; err != nil {
			return err
		}
		if len(accepted) != 1 {
			return domain.Conflict("project needs exactly one accepted proposal to create a contract")
		}

		var count int64
		if err := tx.Model(&models.Contract{}).Where("project_id = ?", in.ProjectID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domain.Conflict("a contract already exists for this project")
		}

		contract = models.Contract{
			Terms:        in.Terms,
			Amount:       accepted[0].Amount,
			ProjectID:    in.ProjectID,
			FreelancerID: accepted[0].FreelancerID,
			CompanyID:    p.UserID,
			Status:       models.ContractStatusActive,
		}
		if err := tx.Create(&contract).Error; err != nil {
			if db.IsUniqueViolation(err) {
				return domain.Conflict("a contract already exists for this project")
			}
			return err
		}

		return tx.Model(&models.Project{}).
			Where("id = ?", in.ProjectID).
			Update("status", models.ProjectStatusInProgress).Error
	})
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

// Get allows the two contract parties and admins.
func (s *ContractService) Get(p auth.Principal, id uint) (*models.Contract, error) {
	var contract models.Contract
	err := s.DB.Preload("Project").Preload("Freelancer").Preload("Company").
		First(&contract, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFound("contract not found")
	}
	if err != nil {
		return nil, err
	}

	if !p.IsAdmin() && contract.FreelancerID != p.UserID && contract.CompanyID != p.UserID {
		return nil, domain.Forbidden("you cannot view this contract")
	}
	return &contract, nil
}

// ListByUser returns the caller's side of the table: a freelancer's
// contracts, a company's contracts, or everything for an admin.
func (s *ContractService) ListByUser(p auth.Principal) ([]models.Contract, error) {
	q := s.DB.Preload("Project").Preload("Freelancer").Preload("Company").
		Order("created_at DESC")

	switch p.Role {
	case models.RoleFreelancer:
		q = q.Where("freelancer_id = ?", p.UserID)
	case models.RoleCompany:
		q = q.Where("company_id = ?", p.UserID)
	case models.RoleAdmin:
	default:
		return nil, domain.Forbidden("invalid role for listing contracts")
	}

	var contracts []models.Contract
	err := q.Find(&contracts).Error
	return contracts, err
}

// UpdateStatus moves the contract between active/completed/broken. Only the
// owning company or an admin may do it.
func (s *ContractService) UpdateStatus(p auth.Principal, id uint, status models.ContractStatus) (*models.Contract, error) {
	switch status {
	case models.ContractStatusActive, models.ContractStatusCompleted, models.ContractStatusBroken:
	default:
		return nil, domain.Invalid("invalid contract status")
	}

	var contract models.Contract
	err := s.DB.First(&contract, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFound("contract not found")
	}
	if err != nil {
		return nil, err
	}
	if !p.IsAdmin() && contract.CompanyID != p.UserID {
		return nil, domain.Forbidden("you cannot change this contract's status")
	}

	if err := s.DB.Model(&contract).Update("status", status).Error; err != nil {
		return nil, err
	}
	return &contract, nil
}

func (s *ContractService) Delete(p auth.Principal, id uint) error {
	if !p.IsAdmin() {
		return domain.Forbidden("only administrators can delete contracts")
	}
	res := s.DB.Delete(&models.Contract{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("contract not found")
	}
	return nil
}
