package dto

import "github.com/google/uuid"

// RegisterRequest carries the email plus the profile used when the email is
// new. Profile fields are ignored for an existing account.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email,max=255"`
	FirstName string `json:"first_name" validate:"required,max=150"`
	LastName  string `json:"last_name" validate:"required,max=150"`
	DOB       string `json:"dob" validate:"required,datetime=2006-01-02"`
	TOB       string `json:"tob" validate:"required,datetime=15:04"`
	POB       string `json:"pob" validate:"required,max=300"`
	Gender    string `json:"gender" validate:"required,oneof=male female other"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

type LogoutRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

type AuthResponse struct {
	Access  string       `json:"access"`
	Refresh string       `json:"refresh"`
	User    UserResponse `json:"user"`
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	DOB       string    `json:"dob,omitempty"`
	TOB       string    `json:"tob,omitempty"`
	POB       string    `json:"pob,omitempty"`
	Gender    string    `json:"gender,omitempty"`
	IsStaff   bool      `json:"is_staff"`
	IsActive  bool      `json:"is_active"`
	CreatedAt string    `json:"created_at"`
}
