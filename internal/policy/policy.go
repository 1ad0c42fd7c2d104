// Package policy is the access-control gate. Every check re-derives
// eligibility from current rows (who owns which project, which proposal is
// accepted) instead of trusting anything cached in the token beyond the
// caller's id and role.
package policy

import (
	"errors"

	"gorm.io/gorm"

	"github.com/freelahub/api/internal/models"
)

// OwnsProject reports whether userID is the owning company of the project.
func OwnsProject(db *gorm.DB, project *models.Project, userID uint) bool {
	return project.CompanyID == userID
}

// HasAcceptedProposal reports whether the freelancer holds an accepted
// proposal on the project.
func HasAcceptedProposal(db *gorm.DB, projectID, freelancerID uint) (bool, error) {
	var count int64
	err := db.Model(&models.Proposal{}).
		Where("project_id = ? AND freelancer_id = ? AND status = ?",
			projectID, freelancerID, models.ProposalStatusAccepted).
		Count(&count).Error
	return count > 0, err
}

// IsParticipant reports whether userID may act inside the project's
// conversation: the owning company, or a freelancer with an accepted
// proposal.
func IsParticipant(db *gorm.DB, project *models.Project, userID uint) (bool, error) {
	if project.CompanyID == userID {
		return true, nil
	}
	return HasAcceptedProposal(db, project.ID, userID)
}

// ConfirmedEngagement reports whether reviewer and reviewee form the
// company/freelancer pair of an accepted proposal on the project, in either
// direction. Anything else is not an engagement and may not review.
func ConfirmedEngagement(db *gorm.DB, project *models.Project, reviewer, reviewee *models.User) (bool, error) {
	switch {
	case reviewer.Role == models.RoleFreelancer && reviewee.Role == models.RoleCompany:
		if project.CompanyID != reviewee.ID {
			return false, nil
		}
		return HasAcceptedProposal(db, project.ID, reviewer.ID)
	case reviewer.Role == models.RoleCompany && reviewee.Role == models.RoleFreelancer:
		if project.CompanyID != reviewer.ID {
			return false, nil
		}
		return HasAcceptedProposal(db, project.ID, reviewee.ID)
	}
	return false, nil
}

// FindProject loads a project or reports absence without leaking db errors.
func FindProject(db *gorm.DB, projectID uint) (*models.Project, bool, error) {
	var project models.Project
	err := db.First(&project, "id = ?", projectID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &project, true, nil
}
