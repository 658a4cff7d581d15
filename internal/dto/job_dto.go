package dto

import (
	"time"

	"talenthub/internal/models"
)

type SalaryInput struct {
	Min      *int64 `json:"min,omitempty" validate:"omitempty,gte=0"`
	Max      *int64 `json:"max,omitempty" validate:"omitempty,gte=0"`
	Currency string `json:"currency,omitempty"`
}

type CreateJobRequest struct {
	Title        string                 `json:"title" validate:"required"`
	Company      string                 `json:"company" validate:"required"`
	Description  string                 `json:"description" validate:"required"`
	Requirements string                 `json:"requirements" validate:"required"`
	Salary       *SalaryInput           `json:"salary,omitempty"`
	Location     string                 `json:"location" validate:"required"`
	Type         models.JobType         `json:"type,omitempty" validate:"omitempty,oneof=full-time part-time contract internship"`
	Category     string                 `json:"category" validate:"required"`
	Skills       []string               `json:"skills,omitempty"`
	Experience   models.ExperienceLevel `json:"experience,omitempty" validate:"omitempty,oneof=entry mid senior executive"`
	Remote       bool                   `json:"remote,omitempty"`
	Deadline     *time.Time             `json:"deadline,omitempty"`
}

// UpdateJobRequest is a field-level merge: nil fields are left unchanged.
type UpdateJobRequest struct {
	Title        *string                 `json:"title,omitempty" validate:"omitnil,min=1"`
	Company      *string                 `json:"company,omitempty" validate:"omitnil,min=1"`
	Description  *string                 `json:"description,omitempty" validate:"omitnil,min=1"`
	Requirements *string                 `json:"requirements,omitempty" validate:"omitnil,min=1"`
	Salary       *SalaryInput            `json:"salary,omitempty"`
	Location     *string                 `json:"location,omitempty" validate:"omitnil,min=1"`
	Type         *models.JobType         `json:"type,omitempty" validate:"omitnil,oneof=full-time part-time contract internship"`
	Category     *string                 `json:"category,omitempty" validate:"omitnil,min=1"`
	Skills       *[]string               `json:"skills,omitempty"`
	Experience   *models.ExperienceLevel `json:"experience,omitempty" validate:"omitnil,oneof=entry mid senior executive"`
	Remote       *bool                   `json:"remote,omitempty"`
	Deadline     *time.Time              `json:"deadline,omitempty"`
	IsActive     *bool                   `json:"isActive,omitempty"`
}

// JobSearchRequest is the public search query.
type JobSearchRequest struct {
	Search     string                 `json:"search,omitempty" query:"search"`
	Location   string                 `json:"location,omitempty" query:"location"`
	Type       models.JobType         `json:"type,omitempty" query:"type" validate:"omitempty,oneof=full-time part-time contract internship"`
	Category   string                 `json:"category,omitempty" query:"category"`
	Remote     bool                   `json:"remote,omitempty" query:"remote"`
	Experience models.ExperienceLevel `json:"experience,omitempty" query:"experience" validate:"omitempty,oneof=entry mid senior executive"`
	MinSalary  *int64                 `json:"minSalary,omitempty" query:"minSalary" validate:"omitempty,gte=0"`
	MaxSalary  *int64                 `json:"maxSalary,omitempty" query:"maxSalary" validate:"omitempty,gte=0"`
	SortBy     string                 `json:"sortBy,omitempty" query:"sortBy" validate:"omitempty,oneof=date salary title createdAt"`
	Page       int                    `json:"-" query:"page" validate:"gte=0"`
	Limit      int                    `json:"-" query:"limit" validate:"gte=0"`
}

type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalJobs   int64 `json:"totalJobs"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
	Limit       int   `json:"limit"`
}

type JobSearchResponse struct {
	Jobs       []JobResponse    `json:"jobs"`
	Pagination Pagination       `json:"pagination"`
	Filters    JobSearchRequest `json:"filters"`
}

// JobResponse is a job with its employer attached and the applications the
// caller may see.
type JobResponse struct {
	*models.Job
	Employer     *UserSummary          `json:"employer,omitempty"`
	Applications []ApplicationResponse `json:"applications"`
}

type ApplicationStats struct {
	Total       int `json:"total"`
	Pending     int `json:"pending"`
	Reviewed    int `json:"reviewed"`
	Shortlisted int `json:"shortlisted"`
	Rejected    int `json:"rejected"`
}

// Add counts one application with the given status.
func (s *ApplicationStats) Add(status models.ApplicationStatus) {
	s.Total++
	switch status {
	case models.StatusPending:
		s.Pending++
	case models.StatusReviewed:
		s.Reviewed++
	case models.StatusShortlisted:
		s.Shortlisted++
	case models.StatusRejected:
		s.Rejected++
	}
}

type EmployerJobResponse struct {
	JobResponse
	ApplicationStats ApplicationStats `json:"applicationStats"`
}

type MyJobsResponse struct {
	Jobs      []EmployerJobResponse `json:"jobs"`
	TotalJobs int                   `json:"totalJobs"`
}

// NewJobResponse builds a view of job exposing only apps.
func NewJobResponse(job *models.Job, apps []models.Application) JobResponse {
	resp := JobResponse{
		Job:          job,
		Employer:     NewEmployerSummary(job.Employer),
		Applications: make([]ApplicationResponse, 0, len(apps)),
	}
	if resp.Job.Skills == nil {
		resp.Job.Skills = []string{}
	}
	for i := range apps {
		resp.Applications = append(resp.Applications, NewApplicationResponse(&apps[i]))
	}
	return resp
}
