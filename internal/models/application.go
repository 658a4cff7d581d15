package models

import "time"

type ApplicationStatus string

const (
	StatusPending     ApplicationStatus = "pending"
	StatusReviewed    ApplicationStatus = "reviewed"
	StatusShortlisted ApplicationStatus = "shortlisted"
	StatusRejected    ApplicationStatus = "rejected"
)

// ApplicationStatuses lists every status in display order.
var ApplicationStatuses = []ApplicationStatus{StatusPending, StatusReviewed, StatusShortlisted, StatusRejected}

func (s ApplicationStatus) Valid() bool {
	for _, v := range ApplicationStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Application is a jobseeker's submission to one job. The (job, applicant)
// pair is unique.
type Application struct {
	ID          string            `json:"id" gorm:"primaryKey;type:varchar(36)"`
	JobID       string            `json:"jobId" gorm:"type:varchar(36);not null;uniqueIndex:idx_application_job_applicant"`
	ApplicantID string            `json:"applicantId" gorm:"type:varchar(36);not null;uniqueIndex:idx_application_job_applicant;<-:create"`
	Applicant   *User             `json:"-" gorm:"foreignKey:ApplicantID"`
	CoverLetter string            `json:"coverLetter" gorm:"type:text"`
	AppliedAt   time.Time         `json:"appliedAt" gorm:"not null;index"`
	Status      ApplicationStatus `json:"status" gorm:"type:varchar(20);not null"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}
