package testutil

import (
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func SeedUser(tb testing.TB, db *gorm.DB, email string) *models.User {
	tb.Helper()
	dob := time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC)
	u := &models.User{
		Email:     email,
		FirstName: "Ada",
		LastName:  "Lovelace",
		DOB:       &dob,
		TOB:       "06:30",
		POB:       "London",
		Gender:    "female",
		IsActive:  true,
	}
	if err := db.Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedCategory(tb testing.TB, db *gorm.DB, name string) *models.ReportCategory {
	tb.Helper()
	c := &models.ReportCategory{
		Name:      name,
		ShortDesc: name + " reports",
		Desc:      "All " + name + " reports",
		Active:    true,
	}
	if err := db.Create(c).Error; err != nil {
		tb.Fatalf("seed category: %v", err)
	}
	return c
}

// SeedReport creates an active report. Use the returned pointer and Save to
// flip flags for soft-delete cases.
func SeedReport(tb testing.TB, db *gorm.DB, categoryID uuid.UUID, title, price string) *models.Report {
	tb.Helper()
	r := &models.Report{
		CategoryID:  categoryID,
		Title:       title,
		Description: title + " in depth",
		File:        "reports/" + title + ".pdf",
		Price:       decimal.RequireFromString(price),
		Active:      true,
	}
	if err := db.Omit("Category").Create(r).Error; err != nil {
		tb.Fatalf("seed report: %v", err)
	}
	return r
}

func SeedAd(tb testing.TB, db *gorm.DB, title string, duration int) *models.Ad {
	tb.Helper()
	a := &models.Ad{
		Title:    title,
		Video:    "ads/" + title + ".mp4",
		Duration: duration,
		Active:   true,
	}
	if err := db.Create(a).Error; err != nil {
		tb.Fatalf("seed ad: %v", err)
	}
	return a
}

// SeedGeneratedReport creates a locked library entry for (user, report).
func SeedGeneratedReport(tb testing.TB, db *gorm.DB, userID uuid.UUID, report *models.Report) *models.UserGeneratedReport {
	tb.Helper()
	g := &models.UserGeneratedReport{
		UserID:           userID,
		ReportID:         report.ID,
		ReportCategoryID: report.CategoryID,
		IsLocked:         true,
		Amount:           report.Price,
		Credit:           report.Price,
		PaidAmount:       decimal.Zero,
	}
	if err := db.Omit("Report", "User").Create(g).Error; err != nil {
		tb.Fatalf("seed generated report: %v", err)
	}
	return g
}
