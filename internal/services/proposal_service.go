package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/freelahub/api/internal/auth"
	"github.com/freelahub/api/internal/db"
	"github.com/freelahub/api/internal/domain"
	"github.com/freelahub/api/internal/models"
	"github.com/freelahub/api/internal/policy"
)

type ProposalService struct {
	DB *gorm.DB
}

func NewProposalService(gdb *gorm.DB) *ProposalService {
	return &ProposalService{DB: gdb}
}

type CreateProposalInput struct {
	Amount      int64
	Description string
	ProjectID   uint
}

// Create submits a bid. The (freelancer, project) unique index is the
// concurrency guard: a racing second submission loses at insert time and
// surfaces as a conflict, never a second row.
func (s *ProposalService) Create(p auth.Principal, in CreateProposalInput) (*models.Proposal, error) {
	if !p.IsFreelancer() {
		return nil, domain.Forbidden("only freelancers can submit proposals")
	}
	if in.Amount <= 0 {
		return nil, domain.Invalid("amount must be positive")
	}

	_, found, err := policy.FindProject(s.DB, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.NotFound("project not found")
	}

	proposal := models.Proposal{
		Amount:       in.Amount,
		Description:  in.Description,
		FreelancerID: p.UserID,
		ProjectID:    in.ProjectID,
		Status:       models.ProposalStatusPending,
	}
	if err := s.DB.Create(&proposal).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return nil, domain.Conflict("you already submitted a proposal for this project")
		}
		return nil, err
	}
	return &proposal, nil
}

// ListByProject is restricted to the owning company and admins. Freelancers
// never bulk-list a project's proposals, not even the project's applicants.
func (s *ProposalService) ListByProject(p auth.Principal, projectID uint) ([]models.Proposal, error) {
	project, found, err := policy.FindProject(s.DB, projectID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.NotFound("project not found")
	}
	if p.IsFreelancer() {
		return nil, domain.Forbidden("freelancers cannot list a project's proposals")
	}
	if p.IsCompany() && !policy.OwnsProject(s.DB, project, p.UserID) {
		return nil, domain.Forbidden("this project does not belong to your company")
	}

	var proposals []models.Proposal
	err = s.DB.Preload("Freelancer").
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&proposals).Error
	return proposals, err
}

// ListByFreelancer: the freelancer sees only their own; companies are
// denied outright; admins see anyone's.
func (s *ProposalService) ListByFreelancer(p auth.Principal, freelancerID uint) ([]models.Proposal, error) {
	if p.IsCompany() {
		return nil, domain.Forbidden("companies cannot list proposals by freelancer")
	}
	if p.IsFreelancer() && p.UserID != freelancerID {
		return nil, domain.Forbidden("you can only view your own proposals")
	}

	var proposals []models.Proposal
	err := s.DB.Preload("Project").
		Where("freelancer_id = ?", freelancerID).
		Order("created_at DESC").
		Find(&proposals).Error
	return proposals, err
}

// Get allows the proposal's freelancer, the project's company, or an admin.
func (s *ProposalService) Get(p auth.Principal, id uint) (*models.Proposal, error) {
	var proposal models.Proposal
	err := s.DB.Preload("Freelancer").Preload("Project").First(&proposal, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFound("proposal not found")
	}
	if err != nil {
		return nil, err
	}

	if p.IsFreelancer() && proposal.FreelancerID != p.UserID {
		return nil, domain.Forbidden("you cannot view this proposal")
	}
	if p.IsCompany() && (proposal.Project == nil || proposal.Project.CompanyID != p.UserID) {
		return nil, domain.Forbidden("you cannot view this proposal")
	}
	return &proposal, nil
}

// UpdateStatus is the pending -> accepted/rejected decision, taken by the
// owning company. Accepted and rejected are terminal. The lookup joins
// through the project on ownership, so a missing proposal and someone
// else's proposal read the same.
func (s *ProposalService) UpdateStatus(p auth.Principal, id uint, status models.ProposalStatus) (*models.Proposal, error) {
	if !p.IsCompany() {
		return nil, domain.Forbidden("only companies can decide proposals")
	}
	switch status {
	case models.ProposalStatusPending, models.ProposalStatusAccepted, models.ProposalStatusRejected:
	default:
		return nil, domain.Invalid("invalid proposal status")
	}

	var proposal models.Proposal
	err := s.DB.
		Joins("JOIN projects ON projects.id = proposals.project_id").
		Where("proposals.id = ? AND projects.company_id = ?", id, p.UserID).
		First(&proposal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFound("proposal not found or you cannot change its status")
	}
	if err != nil {
		return nil, err
	}
	if proposal.Status != models.ProposalStatusPending {
		return nil, domain.Conflict("proposal has already been decided")
	}

	if err := s.DB.Model(&proposal).Update("status", status).Error; err != nil {
		return nil, err
	}
	return &proposal, nil
}

// Delete is allowed to the owning freelancer while the proposal is still
// pending. The delete is conditioned on all three so a race with an accept
// simply affects zero rows; zero rows reads as not-found either way.
func (s *ProposalService) Delete(p auth.Principal, id uint) error {
	if !p.IsFreelancer() {
		return domain.Forbidden("only freelancers can withdraw their proposals")
	}
	res := s.DB.
		Where("id = ? AND freelancer_id = ? AND status = ?", id, p.UserID, models.ProposalStatusPending).
		Delete(&models.Proposal{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("proposal not found")
	}
	return nil
}
