package dto

import (
	"time"

	"talenthub/internal/models"
)

type RegisterRequest struct {
	Name     string          `json:"name" validate:"required"`
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required,min=6"`
	Role     models.Role     `json:"role" validate:"omitempty,oneof=jobseeker employer"`
	Profile  *models.Profile `json:"profile,omitempty"`
	Company  *models.Company `json:"company,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ProfilePatch carries the fields a user may change about themselves.
// Role is accepted so it can be ignored explicitly.
type ProfilePatch struct {
	Name    *string         `json:"name,omitempty"`
	Role    *models.Role    `json:"role,omitempty"`
	Profile *models.Profile `json:"profile,omitempty"`
	Company *models.Company `json:"company,omitempty"`
}

// UserResponse is the public view of a user. The password hash never
// appears; only the sub-record matching the role is present.
type UserResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Role      models.Role     `json:"role"`
	Profile   *models.Profile `json:"profile,omitempty"`
	Company   *models.Company `json:"company,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func NewUserResponse(u *models.User) UserResponse {
	resp := UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	switch k := u.Kind().(type) {
	case models.Jobseeker:
		p := k.Profile
		if p.Skills == nil {
			p.Skills = []string{}
		}
		resp.Profile = &p
	case models.Employer:
		c := k.Company
		resp.Company = &c
	}
	return resp
}

// UserSummary is the slice of a user attached to jobs and applications.
type UserSummary struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Company *models.Company `json:"company,omitempty"`
	Profile *models.Profile `json:"profile,omitempty"`
}

// NewEmployerSummary returns name, email and company of an employer.
func NewEmployerSummary(u *models.User) *UserSummary {
	if u == nil {
		return nil
	}
	s := &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
	if k, ok := u.Kind().(models.Employer); ok {
		s.Company = &k.Company
	}
	return s
}

// NewApplicantSummary returns name, email and profile of a jobseeker.
func NewApplicantSummary(u *models.User) *UserSummary {
	if u == nil {
		return nil
	}
	s := &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
	if k, ok := u.Kind().(models.Jobseeker); ok {
		s.Profile = &k.Profile
	}
	return s
}
