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

type ReviewService struct {
	DB *gorm.DB
}

func NewReviewService(gdb *gorm.DB) *ReviewService {
	return &ReviewService{DB: gdb}
}

type CreateReviewInput struct {
	Rating     int
	Comment    string
	RevieweeID uint
	ProjectID  uint
}

// Create records a rating between the two sides of a confirmed engagement.
// Both directions are allowed; self-review never is. The composite unique
// index turns a repeat review into a conflict.
func (s *ReviewService) Create(p auth.Principal, in CreateReviewInput) (*models.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, domain.Invalid("rating must be between 1 and 5")
	}
	if p.UserID == in.RevieweeID {
		return nil, domain.Invalid("you cannot review yourself")
	}

	project, found, err := policy.FindProject(s.DB, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.NotFound("project not found")
	}

	var reviewer, reviewee models.User
	if err := s.DB.First(&reviewer, "id = ?", p.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("reviewer not found")
		}
		return nil, err
	}
	if err := s.DB.First(&reviewee, "id = ?", in.RevieweeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("reviewee not found")
		}
		return nil, err
	}

	engaged, err := policy.ConfirmedEngagement(s.DB, project, &reviewer, &reviewee)
	if err != nil {
		return nil, err
	}
	if !engaged {
		return nil, domain.Forbidden("only participants with an accepted proposal can leave reviews")
	}

	review := models.Review{
		Rating:     in.Rating,
		Comment:    in.Comment,
		ReviewerID: p.UserID,
		RevieweeID: in.RevieweeID,
		ProjectID:  in.ProjectID,
	}
	if err := s.DB.Create(&review).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return nil, domain.Conflict("you already reviewed this project")
		}
		return nil, err
	}
	return &review, nil
}

// ListByReviewee shows the ratings a user received: the user themselves or
// an admin.
func (s *ReviewService) ListByReviewee(p auth.Principal, revieweeID uint) ([]models.Review, error) {
	if !p.IsAdmin() && p.UserID != revieweeID {
		return nil, domain.Forbidden("you cannot view this user's reviews")
	}
	var reviews []models.Review
	err := s.DB.Preload("Reviewer").Preload("Project").
		Where("reviewee_id = ?", revieweeID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// ListByReviewer shows the ratings a user gave: same visibility rule.
func (s *ReviewService) ListByReviewer(p auth.Principal, reviewerID uint) ([]models.Review, error) {
	if !p.IsAdmin() && p.UserID != reviewerID {
		return nil, domain.Forbidden("you cannot view this user's reviews")
	}
	var reviews []models.Review
	err := s.DB.Preload("Reviewee").Preload("Project").
		Where("reviewer_id = ?", reviewerID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// Get allows the reviewer, the reviewee, or an admin.
func (s *ReviewService) Get(p auth.Principal, id uint) (*models.Review, error) {
	var review models.Review
	err := s.DB.Preload("Reviewer").Preload("Reviewee").Preload("Project").
		First(&review, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFound("review not found")
	}
	if err != nil {
		return nil, err
	}
	if !p.IsAdmin() && review.ReviewerID != p.UserID && review.RevieweeID != p.UserID {
		return nil, domain.Forbidden("you cannot view this review")
	}
	return &review, nil
}

type UpdateReviewInput struct {
	Rating  *int
	Comment *string
}

// Update conditions the write on id+reviewer, so a wrong reviewer is
// indistinguishable from a missing review.
func (s *ReviewService) Update(p auth.Principal, id uint, in UpdateReviewInput) (*models.Review, error) {
	updates := map[string]interface{}{}
	if in.Rating != nil {
		if *in.Rating < 1 || *in.Rating > 5 {
			return nil, domain.Invalid("rating must be between 1 and 5")
		}
		updates["rating"] = *in.Rating
	}
	if in.Comment != nil {
		updates["comment"] = *in.Comment
	}
	if len(updates) == 0 {
		return nil, domain.Invalid("nothing to update")
	}

	res := s.DB.Model(&models.Review{}).
		Where("id = ? AND reviewer_id = ?", id, p.UserID).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domain.NotFound("review not found")
	}

	var review models.Review
	if err := s.DB.First(&review, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *ReviewService) Delete(p auth.Principal, id uint) error {
	res := s.DB.Where("id = ? AND reviewer_id = ?", id, p.UserID).Delete(&models.Review{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("review not found")
	}
	return nil
}
