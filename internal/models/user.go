package models

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

// Role is the kind of account a user holds. It is fixed at registration.
type Role string

const (
	RoleJobseeker Role = "jobseeker"
	RoleEmployer  Role = "employer"
)

func (r Role) Valid() bool {
	return r == RoleJobseeker || r == RoleEmployer
}

// Profile is the jobseeker sub-record.
type Profile struct {
	Resume     string   `json:"resume,omitempty"`
	Skills     []string `json:"skills"`
	Experience string   `json:"experience,omitempty"`
	Education  string   `json:"education,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	Location   string   `json:"location,omitempty"`
}

// Company is the employer sub-record.
type Company struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Website     string `json:"website,omitempty"`
	Location    string `json:"location,omitempty"`
}

// User represents a registered account.
type User struct {
	ID       string                      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name     string                      `json:"name" gorm:"type:varchar(100);not null"`
	Email    string                      `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Password string                      `json:"-" gorm:"type:varchar(255);not null"` // bcrypt hash, never serialised
	Role     Role                        `json:"role" gorm:"type:varchar(20);not null;<-:create"`
	Profile  datatypes.JSONType[Profile] `json:"-"`
	Company  datatypes.JSONType[Company] `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserKind is the role-specific part of a user: either Jobseeker or Employer.
type UserKind interface {
	Role() Role
	userKind()
}

// Jobseeker carries the profile of a jobseeker account.
type Jobseeker struct {
	Profile Profile
}

// Employer carries the company of an employer account.
type Employer struct {
	Company Company
}

func (Jobseeker) Role() Role { return RoleJobseeker }
func (Employer) Role() Role  { return RoleEmployer }
func (Jobseeker) userKind()  {}
func (Employer) userKind()   {}

// Kind returns the active sub-record for the user's role.
func (u *User) Kind() UserKind {
	if u.Role == RoleEmployer {
		return Employer{Company: u.Company.Data()}
	}
	return Jobseeker{Profile: u.Profile.Data()}
}

// SetKind stores k as the active sub-record and clears the other one.
// The role follows k; GORM never updates the role column after creation.
func (u *User) SetKind(k UserKind) {
	switch k := k.(type) {
	case Employer:
		u.Role = RoleEmployer
		u.Company = datatypes.NewJSONType(k.Company)
		u.Profile = datatypes.NewJSONType(Profile{})
	case Jobseeker:
		u.Role = RoleJobseeker
		u.Profile = datatypes.NewJSONType(k.Profile)
		u.Company = datatypes.NewJSONType(Company{})
	}
}

// SetPassword replaces the stored hash with a bcrypt hash of plain.
func (u *User) SetPassword(plain string, cost int) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	u.Password = string(hash)
	return nil
}

// CheckPassword reports whether plain matches the stored hash.
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}

// Actor returns the identity used for authorization checks.
func (u *User) Actor() *Actor {
	if u == nil {
		return nil
	}
	return &Actor{ID: u.ID, Role: u.Role}
}

// Actor is the caller of an operation. A nil *Actor is an anonymous caller.
type Actor struct {
	ID   string
	Role Role
}
