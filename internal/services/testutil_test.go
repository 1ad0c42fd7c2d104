package services

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/freelahub/api/internal/auth"
	"github.com/freelahub/api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := gdb.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Proposal{},
		&models.Contract{},
		&models.Message{},
		&models.Attachment{},
		&models.Review{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func seedUser(t *testing.T, gdb *gorm.DB, email string, role models.Role) *models.User {
	t.Helper()
	u := models.User{Name: email, Email: email, Password: "hash", Role: role}
	if err := gdb.Create(&u).Error; err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return &u
}

func seedProject(t *testing.T, gdb *gorm.DB, company *models.User, title string) *models.Project {
	t.Helper()
	p := models.Project{Title: title, Description: "desc", CompanyID: company.ID, Status: models.ProjectStatusOpen}
	if err := gdb.Create(&p).Error; err != nil {
		t.Fatalf("seed project %s: %v", title, err)
	}
	return &p
}

func seedProposal(t *testing.T, gdb *gorm.DB, freelancer *models.User, project *models.Project, amount int64, status models.ProposalStatus) *models.Proposal {
	t.Helper()
	prop := models.Proposal{
		Amount:       amount,
		Description:  "bid",
		FreelancerID: freelancer.ID,
		ProjectID:    project.ID,
		Status:       status,
	}
	if err := gdb.Create(&prop).Error; err != nil {
		t.Fatalf("seed proposal: %v", err)
	}
	return &prop
}

func asPrincipal(u *models.User) auth.Principal {
	return auth.Principal{UserID: u.ID, Role: u.Role}
}
