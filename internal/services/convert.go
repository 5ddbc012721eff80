package services

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/models"
)

// mediaURL resolves a stored media reference against base. Absolute URLs and
// empty references pass through.
func mediaURL(base, ref string) string {
	if ref == "" || base == "" || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(ref, "/")
}

func toCategoryResponse(c *models.ReportCategory, base string) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		ShortDesc: c.ShortDesc,
		Desc:      c.Desc,
		Image:     mediaURL(base, c.Image),
		IsActive:  c.Active,
		IsDeleted: c.Deleted,
		CreatedAt: c.CreatedAt,
	}
}

func toReportResponse(r *models.Report, base string) dto.ReportResponse {
	return dto.ReportResponse{
		ID:           r.ID,
		CategoryID:   r.CategoryID,
		CategoryName: r.Category.Name,
		Title:        r.Title,
		Description:  r.Description,
		File:         mediaURL(base, r.File),
		Price:        r.Price,
		IsActive:     r.Active,
		IsDeleted:    r.Deleted,
		CreatedAt:    r.CreatedAt,
	}
}

func toAdResponse(a *models.Ad, base string) dto.AdResponse {
	return dto.AdResponse{
		ID:        a.ID,
		Title:     a.Title,
		Video:     mediaURL(base, a.Video),
		Duration:  a.Duration,
		IsActive:  a.Active,
		IsDeleted: a.Deleted,
		CreatedAt: a.CreatedAt,
	}
}

func toUserResponse(u *models.User) dto.UserResponse {
	resp := dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		TOB:       u.TOB,
		POB:       u.POB,
		Gender:    u.Gender,
		IsStaff:   u.IsStaff,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	if u.DOB != nil {
		resp.DOB = u.DOB.Format("2006-01-02")
	}
	return resp
}
