package services

import (
	"errors"
	"testing"

	"github.com/freelahub/api/internal/domain"
	"github.com/freelahub/api/internal/models"
)

func TestProjectCreateAndPublicRead(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewProjectService(gdb)
	company := seedUser(t, gdb, "company@example.com", models.RoleCompany)
	freelancer := seedUser(t, gdb, "dev@example.com", models.RoleFreelancer)

	if _, err := svc.Create(asPrincipal(freelancer), CreateProjectInput{Title: "x"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden for freelancer, got %v", err)
	}
	if _, err := svc.Create(asPrincipal(company), CreateProjectInput{Title: "  "}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation for empty title, got %v", err)
	}

	project, err := svc.Create(asPrincipal(company), CreateProjectInput{Title: "Build website", Description: "..."})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if project.Status != models.ProjectStatusOpen {
		t.Fatalf("expected open status, got %s", project.Status)
	}

	all, err := svc.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 project, got %d", len(all))
	}
	if _, err := svc.Get(project.ID); err != nil {
		t.Fatalf("get: %v", err)
	}
	if _, err := svc.Get(999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestProjectUpdateDeleteOwnership(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewProjectService(gdb)
	company := seedUser(t, gdb, "company@example.com", models.RoleCompany)
	other := seedUser(t, gdb, "other@example.com", models.RoleCompany)
	project := seedProject(t, gdb, company, "Build website")

	title := "Rebuild website"
	// Non-owner cannot tell "not mine" from "does not exist".
	if _, err := svc.Update(asPrincipal(other), project.ID, UpdateProjectInput{Title: &title}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for non-owner update, got %v", err)
	}

	updated, err := svc.Update(asPrincipal(company), project.ID, UpdateProjectInput{Title: &title})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != title {
		t.Fatalf("expected updated title, got %s", updated.Title)
	}

	badStatus := models.ProjectStatus("archived")
	if _, err := svc.Update(asPrincipal(company), project.ID, UpdateProjectInput{Status: &badStatus}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation for bad status, got %v", err)
	}

	if err := svc.Delete(asPrincipal(other), project.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for non-owner delete, got %v", err)
	}
	if err := svc.Delete(asPrincipal(company), project.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(asPrincipal(company), project.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestProjectListMine(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewProjectService(gdb)
	company := seedUser(t, gdb, "company@example.com", models.RoleCompany)
	other := seedUser(t, gdb, "other@example.com", models.RoleCompany)
	seedProject(t, gdb, company, "One")
	seedProject(t, gdb, company, "Two")
	seedProject(t, gdb, other, "Theirs")

	mine, err := svc.ListMine(asPrincipal(company))
	if err != nil {
		t.Fatalf("list mine: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(mine))
	}
}
