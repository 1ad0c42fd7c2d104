package services

import (
	"errors"
	"testing"

	"github.com/freelahub/api/internal/domain"
	"github.com/freelahub/api/internal/models"
)

func TestContractCreateFullFlow(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewContractService(gdb)
	company := seedUser(t, gdb, "company@example.com", models.RoleCompany)
	freelancer := seedUser(t, gdb, "dev@example.com", models.RoleFreelancer)
	project := seedProject(t, gdb, company, "Build website")
	seedProposal(t, gdb, freelancer, project, 1500, models.ProposalStatusAccepted)

	contract, err := svc.Create(asPrincipal(company), CreateContractInput{
		ProjectID: project.ID, Terms: "half upfront",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if contract.Amount != 1500 {
		t.Fatalf("expected amount copied from proposal (1500), got %d", contract.Amount)
	}
	if contract.FreelancerID != freelancer.ID {
		t.Fatalf("expected freelancer %d, got %d", freelancer.ID, contract.FreelancerID)
	}
	if contract.Status != models.ContractStatusActive {
		t.Fatalf("expected active status, got %s", contract.Status)
	}

	var reloaded models.Project
	if err := gdb.First(&reloaded, project.ID).Error; err != nil {
		t.Fatalf("reload project: %v", err)
	}
	if reloaded.Status != models.ProjectStatusInProgress {
		t.Fatalf("expected project in_progress, got %s", reloaded.Status)
	}
}

func TestContractCreatePreconditions(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewContractService(gdb)
	company := seedUser(t, gdb, "company@example.com", models.RoleCompany)
	other := seedUser(t, gdb, "other@example.com", models.RoleCompany)
	freelancer := seedUser(t, gdb, "dev@example.com", models.RoleFreelancer)
	project := seedProject(t, gdb, company, "Build website")

	if _, err := svc.Create(asPrincipal(freelancer), CreateContractInput{ProjectID: project.ID, Terms: "t"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden for freelancer, got %v", err)
	}
	if _, err := svc.Create(asPrincipal(company), CreateContractInput{ProjectID: 999, Terms: "t"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for missing project, got %v", err)
	}
	if _, err := svc.Create(asPrincipal(other), CreateContractInput{ProjectID: project.ID, Terms: "t"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden for non-owner, got %v", err)
	}
	// No accepted proposal yet.
	if _, err := svc.Create(asPrincipal(company), CreateContractInput{ProjectID: project.ID, Terms: "t"}); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict without accepted proposal, got %v", err)
	}

	seedProposal(t, gdb, freelancer, project, 1500, models.ProposalStatusAccepted)
	if _, err := svc.Create(asPrincipal(company), CreateContractInput{ProjectID: project.ID, Terms: "t"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	// Second contract for the same project.
	if _, err := svc.Create(asPrincipal(company), CreateContractInput{ProjectID: project.ID, Terms: "t"}); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict for second contract, got %v", err)
	}

	var count int64
	if err := gdb.Model(&models.Contract{}).Where("project_id = ?", project.ID).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 contract, got %d", count)
	}
}

func TestContractVisibilityAndListing(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewContractService(gdb)
	company := seedUser(t, gdb, "company@example.com", models.RoleCompany)
	freelancer := seedUser(t, gdb, "dev@example.com", models.RoleFreelancer)
	outsider := seedUser(t, gdb, "outsider@example.com", models.RoleFreelancer)
	admin := seedUser(t, gdb, "admin@example.com", models.RoleAdmin)
	project := seedProject(t, gdb, company, "Build website")
	seedProposal(t, gdb, freelancer, project, 1500, models.ProposalStatusAccepted)

	contract, err := svc.Create(asPrincipal(company), CreateContractInput{ProjectID: project.ID, Terms: "t"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	for _, u := range []*models.User{company, freelancer, admin} {
		if _, err := svc.Get(asPrincipal(u), contract.ID); err != nil {
			t.Fatalf("get as %s: %v", u.Role, err)
		}
	}
	if _, err := svc.Get(asPrincipal(outsider), contract.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden for outsider, got %v", err)
	}

	mine, err := svc.ListByUser(asPrincipal(freelancer))
	if err != nil {
		t.Fatalf("freelancer list: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("expected 1 contract for freelancer, got %d", len(mine))
	}
	none, err := svc.ListByUser(asPrincipal(outsider))
	if err != nil {
		t.Fatalf("outsider list: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no contracts for outsider, got %d", len(none))
	}
	all, err := svc.ListByUser(asPrincipal(admin))
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 contract for admin, got %d", len(all))
	}
}

func TestContractStatusAndDelete(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewContractService(gdb)
	company := seedUser(t, gdb, "company@example.com", models.RoleCompany)
	freelancer := seedUser(t, gdb, "dev@example.com", models.RoleFreelancer)
	admin := seedUser(t, gdb, "admin@example.com", models.RoleAdmin)
	project := seedProject(t, gdb, company, "Build website")
	seedProposal(t, gdb, freelancer, project, 1500, models.ProposalStatusAccepted)

	contract, err := svc.Create(asPrincipal(company), CreateContractInput{ProjectID: project.ID, Terms: "t"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.UpdateStatus(asPrincipal(freelancer), contract.ID, models.ContractStatusCompleted); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden for freelancer status update, got %v", err)
	}
	if _, err := svc.UpdateStatus(asPrincipal(company), contract.ID, "void"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation for bad status, got %v", err)
	}
	if _, err := svc.UpdateStatus(asPrincipal(company), contract.ID, models.ContractStatusCompleted); err != nil {
		t.Fatalf("company status update: %v", err)
	}

	if err := svc.Delete(asPrincipal(company), contract.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden for company delete, got %v", err)
	}
	if err := svc.Delete(asPrincipal(admin), contract.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if err := svc.Delete(asPrincipal(admin), contract.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}
