package repositories

import (
	"context"

	"talenthub/internal/models"
)

// JobSort selects the ordering of search results.
type JobSort int

const (
	SortNewest JobSort = iota
	SortSalary
	SortTitle
)

// JobFilter is a search over active jobs. Zero-valued fields do not filter.
type JobFilter struct {
	Search     string
	Location   string
	Type       models.JobType
	Category   string
	RemoteOnly bool
	Experience models.ExperienceLevel
	MinSalary  *int64
	MaxSalary  *int64
	Sort       JobSort
	Offset     int
	Limit      int
}

// JobRepository defines the interface for job data access. Applications are
// only reachable through their job.
type JobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	// GetByID loads the job with its employer and all applications.
	GetByID(ctx context.Context, id string) (*models.Job, error)
	// Search returns one page of matching jobs and the total match count.
	Search(ctx context.Context, filter JobFilter) ([]models.Job, int64, error)
	// ListByEmployer returns every job the employer owns, newest first.
	ListByEmployer(ctx context.Context, employerID string) ([]models.Job, error)
	// ListByApplicant returns the jobs the applicant applied to, each holding
	// only that applicant's application.
	ListByApplicant(ctx context.Context, applicantID string) ([]models.Job, error)
	Update(ctx context.Context, job *models.Job) error
	AddApplication(ctx context.Context, app *models.Application) error
	UpdateApplicationStatus(ctx context.Context, jobID, applicationID string, status models.ApplicationStatus) (*models.Application, error)
}
