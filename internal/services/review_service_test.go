package services

import (
	"errors"
	"testing"

	"github.com/freelahub/api/internal/domain"
	"github.com/freelahub/api/internal/models"
)

func TestReviewSymmetricEligibility(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewReviewService(gdb)
	company := seedUser(t, gdb, "company@example.com", models.RoleCompany)
	freelancer := seedUser(t, gdb, "dev@example.com", models.RoleFreelancer)
	project := seedProject(t, gdb, company, "Build website")
	seedProposal(t, gdb, freelancer, project, 1500, models.ProposalStatusAccepted)

	// Company reviews freelancer.
	if _, err := svc.Create(asPrincipal(company), CreateReviewInput{
		Rating: 5, Comment: "great work", RevieweeID: freelancer.ID, ProjectID: project.ID,
	}); err != nil {
		t.Fatalf("company review: %v", err)
	}
	// Freelancer reviews company.
	if _, err := svc.Create(asPrincipal(freelancer), CreateReviewInput{
		Rating: 4, RevieweeID: company.ID, ProjectID: project.ID,
	}); err != nil {
		t.Fatalf("freelancer review: %v", err)
	}
}

func TestReviewRejectsNonEngagements(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewReviewService(gdb)
	company := seedUser(t, gdb, "company@example.com", models.RoleCompany)
	freelancer := seedUser(t, gdb, "dev@example.com", models.RoleFreelancer)
	pending := seedUser(t, gdb, "pending@example.com", models.RoleFreelancer)
	otherCompany := seedUser(t, gdb, "other@example.com", models.RoleCompany)
	project := seedProject(t, gdb, company, "Build website")
	seedProposal(t, gdb, freelancer, project, 1500, models.ProposalStatusAccepted)
	seedProposal(t, gdb, pending, project, 1200, models.ProposalStatusPending)

	// Self-review fails regardless of role.
	if _, err := svc.Create(asPrincipal(company), CreateReviewInput{Rating: 5, RevieweeID: company.ID, ProjectID: project.ID}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation for self-review, got %v", err)
	}
	// Pending proposal is not an engagement.
	if _, err := svc.Create(asPrincipal(pending), CreateReviewInput{Rating: 5, RevieweeID: company.ID, ProjectID: project.ID}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden for pending freelancer, got %v", err)
	}
	// A company that does not own the project cannot review its freelancer.
	if _, err := svc.Create(asPrincipal(otherCompany), CreateReviewInput{Rating: 5, RevieweeID: freelancer.ID, ProjectID: project.ID}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden for non-owning company, got %v", err)
	}
	// Freelancer-to-freelancer is never an engagement.
	if _, err := svc.Create(asPrincipal(freelancer), CreateReviewInput{Rating: 5, RevieweeID: pending.ID, ProjectID: project.ID}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden for freelancer pair, got %v", err)
	}
	// Rating bounds.
	if _, err := svc.Create(asPrincipal(company), CreateReviewInput{Rating: 6, RevieweeID: freelancer.ID, ProjectID: project.ID}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation for rating 6, got %v", err)
	}
	// Missing users/projects.
	if _, err := svc.Create(asPrincipal(company), CreateReviewInput{Rating: 5, RevieweeID: 999, ProjectID: project.ID}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for missing reviewee, got %v", err)
	}
	if _, err := svc.Create(asPrincipal(company), CreateReviewInput{Rating: 5, RevieweeID: freelancer.ID, ProjectID: 999}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for missing project, got %v", err)
	}
}

func TestReviewUniquePerTriple(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewReviewService(gdb)
	company := seedUser(t, gdb, "company@example.com", models.RoleCompany)
	freelancer := seedUser(t, gdb, "dev@example.com", models.RoleFreelancer)
	project := seedProject(t, gdb, company, "Build website")
	seedProposal(t, gdb, freelancer, project, 1500, models.ProposalStatusAccepted)

	if _, err := svc.Create(asPrincipal(company), CreateReviewInput{Rating: 5, RevieweeID: freelancer.ID, ProjectID: project.ID}); err != nil {
		t.Fatalf("first review: %v", err)
	}
	if _, err := svc.Create(asPrincipal(company), CreateReviewInput{Rating: 3, RevieweeID: freelancer.ID, ProjectID: project.ID}); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict on repeat review, got %v", err)
	}

	var count int64
	gdb.Model(&models.Review{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 review, got %d", count)
	}
}

func TestReviewVisibilityAndMutation(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewReviewService(gdb)
	company := seedUser(t, gdb, "company@example.com", models.RoleCompany)
	freelancer := seedUser(t, gdb, "dev@example.com", models.RoleFreelancer)
	outsider := seedUser(t, gdb, "outsider@example.com", models.RoleFreelancer)
	admin := seedUser(t, gdb, "admin@example.com", models.RoleAdmin)
	project := seedProject(t, gdb, company, "Build website")
	seedProposal(t, gdb, freelancer, project, 1500, models.ProposalStatusAccepted)

	review, err := svc.Create(asPrincipal(company), CreateReviewInput{Rating: 5, Comment: "ok", RevieweeID: freelancer.ID, ProjectID: project.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Reviewee lists received reviews; outsiders may not.
	if _, err := svc.ListByReviewee(asPrincipal(freelancer), freelancer.ID); err != nil {
		t.Fatalf("reviewee list: %v", err)
	}
	if _, err := svc.ListByReviewee(asPrincipal(outsider), freelancer.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden listing, got %v", err)
	}
	if _, err := svc.ListByReviewer(asPrincipal(admin), company.ID); err != nil {
		t.Fatalf("admin list by reviewer: %v", err)
	}

	// Get: reviewer, reviewee and admin only.
	for _, u := range []*models.User{company, freelancer, admin} {
		if _, err := svc.Get(asPrincipal(u), review.ID); err != nil {
			t.Fatalf("get as %s: %v", u.Role, err)
		}
	}
	if _, err := svc.Get(asPrincipal(outsider), review.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden get, got %v", err)
	}

	// Update/delete are reviewer-scoped; everyone else sees not-found.
	newRating := 2
	if _, err := svc.Update(asPrincipal(freelancer), review.ID, UpdateReviewInput{Rating: &newRating}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found updating someone else's review, got %v", err)
	}
	updated, err := svc.Update(asPrincipal(company), review.ID, UpdateReviewInput{Rating: &newRating})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Rating != 2 {
		t.Fatalf("expected rating 2, got %d", updated.Rating)
	}

	if err := svc.Delete(asPrincipal(freelancer), review.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found deleting someone else's review, got %v", err)
	}
	if err := svc.Delete(asPrincipal(company), review.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
}
