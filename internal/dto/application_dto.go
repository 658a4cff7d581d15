package dto

import (
	"time"

	"talenthub/internal/models"
)

type ApplyRequest struct {
	CoverLetter string `json:"coverLetter,omitempty"`
}

type UpdateStatusRequest struct {
	Status models.ApplicationStatus `json:"status"`
}

type ApplicationResponse struct {
	ID          string                   `json:"id"`
	Applicant   *UserSummary             `json:"applicant,omitempty"`
	ApplicantID string                   `json:"applicantId"`
	CoverLetter string                   `json:"coverLetter"`
	AppliedAt   time.Time                `json:"appliedAt"`
	Status      models.ApplicationStatus `json:"status"`
}

func NewApplicationResponse(a *models.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:          a.ID,
		Applicant:   NewApplicantSummary(a.Applicant),
		ApplicantID: a.ApplicantID,
		CoverLetter: a.CoverLetter,
		AppliedAt:   a.AppliedAt,
		Status:      a.Status,
	}
}

// SubmissionReceipt is returned after a successful application.
type SubmissionReceipt struct {
	ID        string                   `json:"id"`
	JobID     string                   `json:"jobId"`
	Title     string                   `json:"title"`
	Company   string                   `json:"company"`
	AppliedAt time.Time                `json:"appliedAt"`
	Status    models.ApplicationStatus `json:"status"`
}

type JobSummary struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Company  string         `json:"company"`
	Location string         `json:"location"`
	Type     models.JobType `json:"type"`
	Salary   models.Salary  `json:"salary"`
	IsActive bool           `json:"isActive"`
}

// MyApplication is one of a jobseeker's applications, flattened with the job
// it belongs to.
type MyApplication struct {
	ID          string                   `json:"id"`
	Job         JobSummary               `json:"job"`
	Employer    *UserSummary             `json:"employer,omitempty"`
	AppliedAt   time.Time                `json:"appliedAt"`
	Status      models.ApplicationStatus `json:"status"`
	CoverLetter string                   `json:"coverLetter"`
}

type StatusBreakdown struct {
	Pending     int `json:"pending"`
	Reviewed    int `json:"reviewed"`
	Shortlisted int `json:"shortlisted"`
	Rejected    int `json:"rejected"`
}

type MyApplicationsResponse struct {
	Applications      []MyApplication `json:"applications"`
	TotalApplications int             `json:"totalApplications"`
	StatusBreakdown   StatusBreakdown `json:"statusBreakdown"`
}

type StatusUpdateResponse struct {
	ID        string                   `json:"id"`
	JobID     string                   `json:"jobId"`
	Status    models.ApplicationStatus `json:"status"`
	AppliedAt time.Time                `json:"appliedAt"`
}

type ErrorResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Database  string `json:"database"`
	Events    string `json:"events"`
}
