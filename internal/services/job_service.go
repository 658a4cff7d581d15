package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"talenthub/internal/apperr"
	"talenthub/internal/dto"
	"talenthub/internal/models"
	"talenthub/internal/policy"
	"talenthub/internal/repositories"
	"talenthub/internal/validation"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

const (
	msgJobNotFound       = "Job not found"
	msgJobNotFoundModify = "Job not found or you are not authorized to modify it"
	msgJobNotFoundDelete = "Job not found or you are not authorized to delete it"
)

// JobService handles business logic for job postings.
type JobService struct {
	jobRepo repositories.JobRepository
	events  EventPublisher
}

// NewJobService creates a new JobService. events may be nil.
func NewJobService(jobRepo repositories.JobRepository, events EventPublisher) *JobService {
	return &JobService{
		jobRepo: jobRepo,
		events:  events,
	}
}

// Create publishes a new active posting owned by the calling employer.
func (s *JobService) Create(ctx context.Context, actor *models.Actor, req dto.CreateJobRequest) (*dto.JobResponse, error) {
	if err := policy.Check(actor, policy.CreateJob, ""); err != nil {
		return nil, err
	}
	trimStrings(&req.Title, &req.Company, &req.Description, &req.Requirements, &req.Location, &req.Category)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	job := &models.Job{
		Title:        req.Title,
		Company:      req.Company,
		Description:  req.Description,
		Requirements: req.Requirements,
		Salary:       models.Salary{Currency: models.DefaultCurrency},
		Location:     req.Location,
		Type:         req.Type,
		Category:     req.Category,
		Skills:       req.Skills,
		Experience:   req.Experience,
		Remote:       req.Remote,
		EmployerID:   actor.ID,
		IsActive:     true,
		Deadline:     req.Deadline,
	}
	if job.Type == "" {
		job.Type = models.JobTypeFullTime
	}
	if job.Experience == "" {
		job.Experience = models.ExperienceEntry
	}
	if job.Skills == nil {
		job.Skills = []string{}
	}
	if req.Salary != nil {
		applySalary(&job.Salary, req.Salary)
	}
	if err := checkSalary(job.Salary); err != nil {
		return nil, err
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, apperr.Store("failed to create job", err)
	}
	created, err := s.jobRepo.GetByID(ctx, job.ID)
	if err != nil {
		return nil, apperr.Store("failed to load created job", err)
	}

	slog.Info("job created", "job_id", created.ID, "employer_id", actor.ID)
	publish(s.events, EventJobCreated, jobEvent{JobID: created.ID, EmployerID: actor.ID, Title: created.Title})

	resp := dto.NewJobResponse(created, created.Applications)
	return &resp, nil
}

// Search returns one page of active postings matching req.
func (s *JobService) Search(ctx context.Context, req dto.JobSearchRequest) (*dto.JobSearchResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	filter := repositories.JobFilter{
		Search:     strings.TrimSpace(req.Search),
		Location:   strings.TrimSpace(req.Location),
		Type:       req.Type,
		Category:   strings.TrimSpace(req.Category),
		RemoteOnly: req.Remote,
		Experience: req.Experience,
		MinSalary:  req.MinSalary,
		MaxSalary:  req.MaxSalary,
		Sort:       sortFor(req.SortBy),
		Offset:     (page - 1) * limit,
		Limit:      limit,
	}
	jobs, total, err := s.jobRepo.Search(ctx, filter)
	if err != nil {
		return nil, apperr.Store("failed to search jobs", err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	resp := &dto.JobSearchResponse{
		Jobs: make([]dto.JobResponse, 0, len(jobs)),
		Pagination: dto.Pagination{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalJobs:   total,
			HasNextPage: page < totalPages,
			HasPrevPage: page > 1,
			Limit:       limit,
		},
		Filters: req,
	}
	for i := range jobs {
		resp.Jobs = append(resp.Jobs, dto.NewJobResponse(&jobs[i], nil))
	}
	return resp, nil
}

// GetByID returns a posting with the applications actor may see. actor is
// nil for anonymous callers.
func (s *JobService) GetByID(ctx context.Context, actor *models.Actor, id string) (*dto.JobResponse, error) {
	if err := policy.Check(actor, policy.ViewJob, ""); err != nil {
		return nil, err
	}
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, msgJobNotFound, "failed to load job")
	}
	resp := dto.NewJobResponse(job, policy.VisibleApplications(actor, job))
	return &resp, nil
}

// Update merges req into a posting owned by actor. A posting the caller does
// not own is reported as not found.
func (s *JobService) Update(ctx context.Context, actor *models.Actor, id string, req dto.UpdateJobRequest) (*dto.JobResponse, error) {
	job, err := s.loadOwned(ctx, actor, id, msgJobNotFoundModify)
	if err != nil {
		return nil, err
	}
	trimStrings(req.Title, req.Company, req.Description, req.Requirements, req.Location, req.Category)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	wasActive := job.IsActive
	setIf(&job.Title, req.Title)
	setIf(&job.Company, req.Company)
	setIf(&job.Description, req.Description)
	setIf(&job.Requirements, req.Requirements)
	setIf(&job.Location, req.Location)
	setIf(&job.Type, req.Type)
	setIf(&job.Category, req.Category)
	setIf(&job.Experience, req.Experience)
	setIf(&job.Remote, req.Remote)
	setIf(&job.IsActive, req.IsActive)
	if req.Skills != nil {
		job.Skills = *req.Skills
		if job.Skills == nil {
			job.Skills = []string{}
		}
	}
	if req.Salary != nil {
		applySalary(&job.Salary, req.Salary)
	}
	if req.Deadline != nil {
		job.Deadline = req.Deadline
	}
	if err := checkSalary(job.Salary); err != nil {
		return nil, err
	}

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, notFoundOr(err, msgJobNotFoundModify, "failed to update job")
	}

	slog.Info("job updated", "job_id", job.ID, "employer_id", actor.ID)
	if wasActive && !job.IsActive {
		publish(s.events, EventJobClosed, jobEvent{JobID: job.ID, EmployerID: job.EmployerID, Title: job.Title})
	}

	resp := dto.NewJobResponse(job, policy.VisibleApplications(actor, job))
	return &resp, nil
}

// SoftDelete marks a posting owned by actor inactive. Applications are kept.
func (s *JobService) SoftDelete(ctx context.Context, actor *models.Actor, id string) error {
	job, err := s.loadOwned(ctx, actor, id, msgJobNotFoundDelete)
	if err != nil {
		return err
	}
	if !job.IsActive {
		return nil
	}

	job.IsActive = false
	if err := s.jobRepo.Update(ctx, job); err != nil {
		return notFoundOr(err, msgJobNotFoundDelete, "failed to delete job")
	}

	slog.Info("job closed", "job_id", job.ID, "employer_id", actor.ID)
	publish(s.events, EventJobClosed, jobEvent{JobID: job.ID, EmployerID: job.EmployerID, Title: job.Title})
	return nil
}

// ListMine returns every posting of the calling employer, newest first, with
// per-status application counts.
func (s *JobService) ListMine(ctx context.Context, actor *models.Actor) (*dto.MyJobsResponse, error) {
	if err := policy.Check(actor, policy.ListOwnJobs, ""); err != nil {
		return nil, err
	}
	jobs, err := s.jobRepo.ListByEmployer(ctx, actor.ID)
	if err != nil {
		return nil, apperr.Store("failed to list jobs", err)
	}

	resp := &dto.MyJobsResponse{
		Jobs:      make([]dto.EmployerJobResponse, 0, len(jobs)),
		TotalJobs: len(jobs),
	}
	for i := range jobs {
		item := dto.EmployerJobResponse{JobResponse: dto.NewJobResponse(&jobs[i], jobs[i].Applications)}
		for _, app := range jobs[i].Applications {
			item.ApplicationStats.Add(app.Status)
		}
		resp.Jobs = append(resp.Jobs, item)
	}
	return resp, nil
}

func (s *JobService) loadOwned(ctx context.Context, actor *models.Actor, id, notFoundMsg string) (*models.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, notFoundMsg, "failed to load job")
	}
	if err := policy.Check(actor, policy.ManageJob, job.EmployerID); err != nil {
		return nil, apperr.NotFound(notFoundMsg)
	}
	return job, nil
}

func sortFor(sortBy string) repositories.JobSort {
	switch sortBy {
	case "salary":
		return repositories.SortSalary
	case "title":
		return repositories.SortTitle
	default:
		return repositories.SortNewest
	}
}

func applySalary(dst *models.Salary, in *dto.SalaryInput) {
	dst.Min = in.Min
	dst.Max = in.Max
	if c := strings.TrimSpace(in.Currency); c != "" {
		dst.Currency = strings.ToUpper(c)
	}
	if dst.Currency == "" {
		dst.Currency = models.DefaultCurrency
	}
}

func checkSalary(s models.Salary) error {
	if s.Min != nil && s.Max != nil && *s.Min > *s.Max {
		return apperr.Validation("Validation failed", map[string]string{
			"salary": "salary.min must not be greater than salary.max",
		})
	}
	return nil
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func trimStrings(fields ...*string) {
	for _, f := range fields {
		if f != nil {
			*f = strings.TrimSpace(*f)
		}
	}
}

// notFoundOr maps a repository miss to a not-found error with msg and
// anything else to a store error.
func notFoundOr(err error, msg, op string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return apperr.NotFound(msg)
	}
	return apperr.Store(op, err)
}
