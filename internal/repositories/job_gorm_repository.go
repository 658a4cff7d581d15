package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"talenthub/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMJobRepository is a GORM implementation of JobRepository.
type GORMJobRepository struct {
	db *gorm.DB
}

// NewGORMJobRepository creates a new instance of GORMJobRepository.
func NewGORMJobRepository(db *gorm.DB) *GORMJobRepository {
	return &GORMJobRepository{
		db: db,
	}
}

func (r *GORMJobRepository) Create(ctx context.Context, job *models.Job) error {
	if job.ID == "" {
		job.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(job).Error; err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

func (r *GORMJobRepository) GetByID(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	err := r.db.WithContext(ctx).
		Preload("Employer").
		Preload("Applications", func(db *gorm.DB) *gorm.DB {
			return db.Order("applied_at ASC")
		}).
		Preload("Applications.Applicant").
		First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("job with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get job by ID %s: %w", id, err)
	}
	return &job, nil
}

func (r *GORMJobRepository) Search(ctx context.Context, filter JobFilter) ([]models.Job, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Job{}).
		Scopes(activeJobs(filter)).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	var jobs []models.Job
	err := r.db.WithContext(ctx).
		Scopes(activeJobs(filter)).
		Preload("Employer").
		Order(filter.Sort.orderBy()).
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&jobs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search jobs: %w", err)
	}
	return jobs, total, nil
}

func (r *GORMJobRepository) ListByEmployer(ctx context.Context, employerID string) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.WithContext(ctx).
		Preload("Employer").
		Preload("Applications", func(db *gorm.DB) *gorm.DB {
			return db.Order("applied_at ASC")
		}).
		Preload("Applications.Applicant").
		Where("employer_id = ?", employerID).
		Order("created_at DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs for employer %s: %w", employerID, err)
	}
	return jobs, nil
}

func (r *GORMJobRepository) ListByApplicant(ctx context.Context, applicantID string) ([]models.Job, error) {
	applied := r.db.Model(&models.Application{}).Select("job_id").Where("applicant_id = ?", applicantID)

	var jobs []models.Job
	err := r.db.WithContext(ctx).
		Preload("Employer").
		Preload("Applications", "applicant_id = ?", applicantID).
		Where("id IN (?)", applied).
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs for applicant %s: %w", applicantID, err)
	}
	return jobs, nil
}

// Update saves the job's own columns. Applications are left untouched.
func (r *GORMJobRepository) Update(ctx context.Context, job *models.Job) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(job).Error; err != nil {
		return fmt.Errorf("failed to update job %s: %w", job.ID, err)
	}
	return nil
}

// AddApplication inserts an application. A second application by the same
// applicant to the same job fails with ErrDuplicate.
func (r *GORMJobRepository) AddApplication(ctx context.Context, app *models.Application) error {
	if app.ID == "" {
		app.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(app).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("application to job %s: %w", app.JobID, ErrDuplicate)
		}
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

func (r *GORMJobRepository) UpdateApplicationStatus(ctx context.Context, jobID, applicationID string, status models.ApplicationStatus) (*models.Application, error) {
	var app models.Application
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&app, "id = ? AND job_id = ?", applicationID, jobID).Error; err != nil {
			return err
		}
		app.Status = status
		return tx.Model(&app).Update("status", status).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("application %s on job %s: %w", applicationID, jobID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update application %s: %w", applicationID, err)
	}
	return &app, nil
}

func activeJobs(f JobFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("is_active = ?", true)
		if f.Search != "" {
			p := containsPattern(f.Search)
			db = db.Where(
				"(LOWER(title) LIKE ? ESCAPE '\\' OR LOWER(description) LIKE ? ESCAPE '\\' OR LOWER(company) LIKE ? ESCAPE '\\')",
				p, p, p,
			)
		}
		if f.Location != "" {
			db = db.Where("LOWER(location) LIKE ? ESCAPE '\\'", containsPattern(f.Location))
		}
		if f.Type != "" {
			db = db.Where("type = ?", f.Type)
		}
		if f.Category != "" {
			db = db.Where("LOWER(category) LIKE ? ESCAPE '\\'", containsPattern(f.Category))
		}
		if f.RemoteOnly {
			db = db.Where("remote = ?", true)
		}
		if f.Experience != "" {
			db = db.Where("experience = ?", f.Experience)
		}
		if f.MinSalary != nil {
			db = db.Where("salary_min >= ?", *f.MinSalary)
		}
		if f.MaxSalary != nil {
			db = db.Where("salary_max <= ?", *f.MaxSalary)
		}
		return db
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a case-insensitive substring LIKE pattern in which
// user input is matched literally.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

func (s JobSort) orderBy() string {
	switch s {
	case SortSalary:
		return "salary_min IS NULL, salary_min DESC, created_at DESC"
	case SortTitle:
		return "title ASC, created_at DESC"
	default:
		return "created_at DESC, id ASC"
	}
}
