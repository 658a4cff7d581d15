package services

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"talenthub/internal/apperr"
	"talenthub/internal/dto"
	"talenthub/internal/models"
	"talenthub/internal/policy"
	"talenthub/internal/repositories"
)

const msgAlreadyApplied = "You have already applied for this job"

// ApplicationService handles the application workflow between jobseekers
// and the employers who own the postings.
type ApplicationService struct {
	jobRepo repositories.JobRepository
	events  EventPublisher
	now     func() time.Time
}

// NewApplicationService creates a new ApplicationService. events may be nil;
// a nil now uses the wall clock.
func NewApplicationService(jobRepo repositories.JobRepository, events EventPublisher, now func() time.Time) *ApplicationService {
	if now == nil {
		now = time.Now
	}
	return &ApplicationService{
		jobRepo: jobRepo,
		events:  events,
		now:     now,
	}
}

// Submit records a pending application by the calling jobseeker.
func (s *ApplicationService) Submit(ctx context.Context, actor *models.Actor, jobID string, req dto.ApplyRequest) (*dto.SubmissionReceipt, error) {
	if err := policy.Check(actor, policy.SubmitApplication, ""); err != nil {
		return nil, err
	}

	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, notFoundOr(err, msgJobNotFound, "failed to load job")
	}
	now := s.now().UTC()
	if !job.IsActive {
		return nil, apperr.New(apperr.KindInactivePosting, "This job posting is no longer active")
	}
	if job.DeadlinePassed(now) {
		return nil, apperr.New(apperr.KindDeadlinePassed, "Application deadline has passed")
	}
	if _, ok := job.ApplicationByApplicant(actor.ID); ok {
		return nil, apperr.New(apperr.KindDuplicateApplication, msgAlreadyApplied)
	}

	app := &models.Application{
		JobID:       job.ID,
		ApplicantID: actor.ID,
		CoverLetter: req.CoverLetter,
		AppliedAt:   now,
		Status:      models.StatusPending,
	}
	if err := s.jobRepo.AddApplication(ctx, app); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperr.New(apperr.KindDuplicateApplication, msgAlreadyApplied)
		}
		return nil, apperr.Store("failed to submit application", err)
	}

	slog.Info("application submitted", "application_id", app.ID, "job_id", job.ID, "applicant_id", actor.ID)
	publish(s.events, EventApplicationSubmitted, applicationEvent{
		ApplicationID: app.ID,
		JobID:         job.ID,
		ApplicantID:   actor.ID,
		Status:        string(app.Status),
	})

	return &dto.SubmissionReceipt{
		ID:        app.ID,
		JobID:     job.ID,
		Title:     job.Title,
		Company:   job.Company,
		AppliedAt: app.AppliedAt,
		Status:    app.Status,
	}, nil
}

// ListMine returns the caller's applications, newest first, with a count
// per status.
func (s *ApplicationService) ListMine(ctx context.Context, actor *models.Actor) (*dto.MyApplicationsResponse, error) {
	if err := policy.Check(actor, policy.ListOwnApplications, ""); err != nil {
		return nil, err
	}
	jobs, err := s.jobRepo.ListByApplicant(ctx, actor.ID)
	if err != nil {
		return nil, apperr.Store("failed to list applications", err)
	}

	resp := &dto.MyApplicationsResponse{Applications: make([]dto.MyApplication, 0, len(jobs))}
	for i := range jobs {
		job := &jobs[i]
		app, ok := job.ApplicationByApplicant(actor.ID)
		if !ok {
			continue
		}
		resp.Applications = append(resp.Applications, dto.MyApplication{
			ID: app.ID,
			Job: dto.JobSummary{
				ID:       job.ID,
				Title:    job.Title,
				Company:  job.Company,
				Location: job.Location,
				Type:     job.Type,
				Salary:   job.Salary,
				IsActive: job.IsActive,
			},
			Employer:    dto.NewEmployerSummary(job.Employer),
			AppliedAt:   app.AppliedAt,
			Status:      app.Status,
			CoverLetter: app.CoverLetter,
		})
		switch app.Status {
		case models.StatusPending:
			resp.StatusBreakdown.Pending++
		case models.StatusReviewed:
			resp.StatusBreakdown.Reviewed++
		case models.StatusShortlisted:
			resp.StatusBreakdown.Shortlisted++
		case models.StatusRejected:
			resp.StatusBreakdown.Rejected++
		}
	}
	sort.SliceStable(resp.Applications, func(i, j int) bool {
		return resp.Applications[i].AppliedAt.After(resp.Applications[j].AppliedAt)
	})
	resp.TotalApplications = len(resp.Applications)
	return resp, nil
}

// UpdateStatus sets the status of one application on a posting owned by the
// caller. Any status may follow any other.
func (s *ApplicationService) UpdateStatus(ctx context.Context, actor *models.Actor, jobID, applicationID string, req dto.UpdateStatusRequest) (*dto.StatusUpdateResponse, error) {
	if actor == nil || actor.Role != models.RoleEmployer {
		return nil, apperr.Authorization("Only employers can update application status")
	}
	if !req.Status.Valid() {
		return nil, apperr.Validation(
			"Invalid status. Must be: pending, reviewed, shortlisted, or rejected",
			map[string]string{"status": "status must be one of: pending, reviewed, shortlisted, rejected"},
		)
	}

	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, notFoundOr(err, msgJobNotFound, "failed to load job")
	}
	if err := policy.Check(actor, policy.UpdateApplicationStatus, job.EmployerID); err != nil {
		return nil, err
	}
	current, ok := job.ApplicationByID(applicationID)
	if !ok {
		return nil, apperr.NotFound("Application not found")
	}
	previous := current.Status

	app, err := s.jobRepo.UpdateApplicationStatus(ctx, job.ID, applicationID, req.Status)
	if err != nil {
		return nil, notFoundOr(err, "Application not found", "failed to update application status")
	}

	slog.Info("application status changed",
		"application_id", app.ID,
		"job_id", job.ID,
		"from", previous,
		"to", app.Status,
	)
	publish(s.events, EventApplicationStatusChanged, applicationEvent{
		ApplicationID: app.ID,
		JobID:         job.ID,
		ApplicantID:   app.ApplicantID,
		Status:        string(app.Status),
	})

	return &dto.StatusUpdateResponse{
		ID:        app.ID,
		JobID:     job.ID,
		Status:    app.Status,
		AppliedAt: app.AppliedAt,
	}, nil
}
