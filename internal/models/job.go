package models

import (
	"time"

	"gorm.io/datatypes"
)

type JobType string

const (
	JobTypeFullTime   JobType = "full-time"
	JobTypePartTime   JobType = "part-time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"
)

func (t JobType) Valid() bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship:
		return true
	}
	return false
}

type ExperienceLevel string

const (
	ExperienceEntry     ExperienceLevel = "entry"
	ExperienceMid       ExperienceLevel = "mid"
	ExperienceSenior    ExperienceLevel = "senior"
	ExperienceExecutive ExperienceLevel = "executive"
)

func (l ExperienceLevel) Valid() bool {
	switch l {
	case ExperienceEntry, ExperienceMid, ExperienceSenior, ExperienceExecutive:
		return true
	}
	return false
}

const DefaultCurrency = "INR"

// Salary is an optional range; either bound may be missing.
type Salary struct {
	Min      *int64 `json:"min,omitempty"`
	Max      *int64 `json:"max,omitempty"`
	Currency string `json:"currency" gorm:"type:varchar(10)"`
}

// Job is a posting. It owns its applications; they are only created and
// changed through the job repository.
type Job struct {
	ID           string                      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title        string                      `json:"title" gorm:"type:varchar(200);not null"`
	Company      string                      `json:"company" gorm:"type:varchar(200);not null"`
	Description  string                      `json:"description" gorm:"type:text;not null"`
	Requirements string                      `json:"requirements" gorm:"type:text;not null"`
	Salary       Salary                      `json:"salary" gorm:"embedded;embeddedPrefix:salary_"`
	Location     string                      `json:"location" gorm:"type:varchar(200);not null"`
	Type         JobType                     `json:"type" gorm:"type:varchar(20);not null"`
	Category     string                      `json:"category" gorm:"type:varchar(100);not null"`
	Skills       datatypes.JSONSlice[string] `json:"skills"`
	Experience   ExperienceLevel             `json:"experience" gorm:"type:varchar(20);not null"`
	Remote       bool                        `json:"remote"`
	EmployerID   string                      `json:"employerId" gorm:"type:varchar(36);not null;index;<-:create"`
	Employer     *User                       `json:"-" gorm:"foreignKey:EmployerID"`
	IsActive     bool                        `json:"isActive" gorm:"index"`
	Deadline     *time.Time                  `json:"deadline,omitempty"`
	Applications []Application               `json:"-" gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DeadlinePassed reports whether the application window closed before now.
func (j *Job) DeadlinePassed(now time.Time) bool {
	return j.Deadline != nil && now.After(*j.Deadline)
}

// ApplicationByApplicant returns the application submitted by applicantID.
func (j *Job) ApplicationByApplicant(applicantID string) (*Application, bool) {
	for i := range j.Applications {
		if j.Applications[i].ApplicantID == applicantID {
			return &j.Applications[i], true
		}
	}
	return nil, false
}

// ApplicationByID returns the application with the given id.
func (j *Job) ApplicationByID(id string) (*Application, bool) {
	for i := range j.Applications {
		if j.Applications[i].ID == id {
			return &j.Applications[i], true
		}
	}
	return nil, false
}
