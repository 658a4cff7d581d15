package repositories_test

import (
	"context"
	"testing"
	"time"

	"talenthub/internal/database"
	"talenthub/internal/models"
	"talenthub/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open("sqlite", "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func newUser(t *testing.T, repo repositories.UserRepository, email string, role models.Role) *models.User {
	t.Helper()
	u := &models.User{Name: "User " + email, Email: email, Password: "hash", Role: role}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func int64p(v int64) *int64 { return &v }

func TestUserRepository_CreateAndGet(t *testing.T) {
	repo := repositories.NewGORMUserRepository(setupTestDB(t))
	ctx := context.Background()

	u := newUser(t, repo, "ann@example.com", models.RoleJobseeker)
	assert.NotEmpty(t, u.ID)

	byEmail, err := repo.GetByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	byID, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", byID.Email)

	_, err = repo.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo := repositories.NewGORMUserRepository(setupTestDB(t))
	newUser(t, repo, "dup@example.com", models.RoleJobseeker)

	err := repo.Create(context.Background(), &models.User{Name: "Other", Email: "dup@example.com", Password: "x", Role: models.RoleEmployer})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)
}

func TestUserRepository_UpdateKeepsRole(t *testing.T) {
	repo := repositories.NewGORMUserRepository(setupTestDB(t))
	ctx := context.Background()
	u := newUser(t, repo, "bob@example.com", models.RoleJobseeker)

	u.Name = "Bob"
	u.SetKind(models.Jobseeker{Profile: models.Profile{Skills: []string{"go"}, Location: "Pune"}})
	u.Role = models.RoleEmployer
	require.NoError(t, repo.Update(ctx, u))

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bob", got.Name)
	assert.Equal(t, models.RoleJobseeker, got.Role)
	assert.Equal(t, []string{"go"}, got.Profile.Data().Skills)

	err = repo.Update(ctx, &models.User{ID: uuid.NewString(), Name: "ghost"})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

type jobFixture struct {
	users    *repositories.GORMUserRepository
	jobs     *repositories.GORMJobRepository
	employer *models.User
}

func newJobFixture(t *testing.T) *jobFixture {
	db := setupTestDB(t)
	f := &jobFixture{
		users: repositories.NewGORMUserRepository(db),
		jobs:  repositories.NewGORMJobRepository(db),
	}
	f.employer = newUser(t, f.users, "hr@acme.test", models.RoleEmployer)
	return f
}

func (f *jobFixture) job(t *testing.T, title string, mutate func(*models.Job)) *models.Job {
	t.Helper()
	j := &models.Job{
		Title:        title,
		Company:      "Acme",
		Description:  "Build things",
		Requirements: "Go",
		Location:     "Bangalore",
		Type:         models.JobTypeFullTime,
		Category:     "Engineering",
		Experience:   models.ExperienceEntry,
		EmployerID:   f.employer.ID,
		IsActive:     true,
		Salary:       models.Salary{Currency: models.DefaultCurrency},
	}
	if mutate != nil {
		mutate(j)
	}
	require.NoError(t, f.jobs.Create(context.Background(), j))
	return j
}

func TestJobRepository_CreateAndGetByID(t *testing.T) {
	f := newJobFixture(t)
	ctx := context.Background()
	j := f.job(t, "Backend Engineer", func(j *models.Job) { j.Skills = []string{"go", "sql"} })

	got, err := f.jobs.GetByID(ctx, j.ID)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", got.Title)
	assert.Equal(t, []string{"go", "sql"}, []string(got.Skills))
	require.NotNil(t, got.Employer)
	assert.Equal(t, f.employer.ID, got.Employer.ID)
	assert.Empty(t, got.Applications)

	_, err = f.jobs.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestJobRepository_Search(t *testing.T) {
	f := newJobFixture(t)
	ctx := context.Background()

	f.job(t, "Go Developer", func(j *models.Job) {
		j.Salary.Min, j.Salary.Max = int64p(50000), int64p(90000)
		j.Remote = true
	})
	f.job(t, "Data Analyst", func(j *models.Job) {
		j.Salary.Min, j.Salary.Max = int64p(70000), int64p(120000)
		j.Location = "Remote - India"
		j.Type = models.JobTypeContract
	})
	f.job(t, "100% Remote Tester", func(j *models.Job) { j.Category = "QA" })
	f.job(t, "Closed Role", func(j *models.Job) { j.IsActive = false })

	jobs, total, err := f.jobs.Search(ctx, repositories.JobFilter{Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, jobs, 3)

	jobs, total, err = f.jobs.Search(ctx, repositories.JobFilter{Search: "DEVELOPER", Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Go Developer", jobs[0].Title)
	require.NotNil(t, jobs[0].Employer)

	_, total, err = f.jobs.Search(ctx, repositories.JobFilter{Search: "100%", Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total, "percent sign is matched literally")

	_, total, err = f.jobs.Search(ctx, repositories.JobFilter{Search: "%", Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	_, total, err = f.jobs.Search(ctx, repositories.JobFilter{Location: "remote", Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	_, total, err = f.jobs.Search(ctx, repositories.JobFilter{Type: models.JobTypeContract, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	_, total, err = f.jobs.Search(ctx, repositories.JobFilter{Category: "qa", Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	_, total, err = f.jobs.Search(ctx, repositories.JobFilter{RemoteOnly: true, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	jobs, total, err = f.jobs.Search(ctx, repositories.JobFilter{MinSalary: int64p(60000), Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total, "jobs without salary.min are excluded")
	assert.Equal(t, "Data Analyst", jobs[0].Title)

	jobs, total, err = f.jobs.Search(ctx, repositories.JobFilter{MaxSalary: int64p(100000), Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Go Developer", jobs[0].Title)
}

func TestJobRepository_SearchSortAndPaging(t *testing.T) {
	f := newJobFixture(t)
	ctx := context.Background()

	f.job(t, "Bravo", func(j *models.Job) { j.Salary.Min = int64p(10) })
	f.job(t, "Alpha", nil)
	f.job(t, "Charlie", func(j *models.Job) { j.Salary.Min = int64p(30) })

	jobs, _, err := f.jobs.Search(ctx, repositories.JobFilter{Sort: repositories.SortSalary, Limit: 10})
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	assert.Equal(t, []string{"Charlie", "Bravo", "Alpha"}, titles(jobs))

	jobs, _, err = f.jobs.Search(ctx, repositories.JobFilter{Sort: repositories.SortTitle, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "Bravo", "Charlie"}, titles(jobs))

	jobs, total, err := f.jobs.Search(ctx, repositories.JobFilter{Sort: repositories.SortTitle, Offset: 2, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Equal(t, []string{"Charlie"}, titles(jobs))
}

func titles(jobs []models.Job) []string {
	out := make([]string, len(jobs))
	for i, j := range jobs {
		out[i] = j.Title
	}
	return out
}

func TestJobRepository_UpdateKeepsEmployer(t *testing.T) {
	f := newJobFixture(t)
	ctx := context.Background()
	j := f.job(t, "Original", nil)

	j.Title = "Renamed"
	j.IsActive = false
	j.EmployerID = uuid.NewString()
	require.NoError(t, f.jobs.Update(ctx, j))

	got, err := f.jobs.GetByID(ctx, j.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	assert.False(t, got.IsActive)
	assert.Equal(t, f.employer.ID, got.EmployerID)
}

func TestJobRepository_Applications(t *testing.T) {
	f := newJobFixture(t)
	ctx := context.Background()
	j := f.job(t, "Support Engineer", nil)
	other := f.job(t, "Other", nil)
	seeker := newUser(t, f.users, "seeker@example.com", models.RoleJobseeker)
	peer := newUser(t, f.users, "peer@example.com", models.RoleJobseeker)

	now := time.Now().UTC()
	app := &models.Application{JobID: j.ID, ApplicantID: seeker.ID, AppliedAt: now, Status: models.StatusPending}
	require.NoError(t, f.jobs.AddApplication(ctx, app))
	require.NoError(t, f.jobs.AddApplication(ctx, &models.Application{
		JobID: j.ID, ApplicantID: peer.ID, AppliedAt: now.Add(time.Minute), Status: models.StatusPending,
	}))

	err := f.jobs.AddApplication(ctx, &models.Application{JobID: j.ID, ApplicantID: seeker.ID, AppliedAt: now, Status: models.StatusPending})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)

	got, err := f.jobs.GetByID(ctx, j.ID)
	require.NoError(t, err)
	require.Len(t, got.Applications, 2)
	assert.Equal(t, seeker.ID, got.Applications[0].ApplicantID)
	require.NotNil(t, got.Applications[0].Applicant)
	assert.Equal(t, "seeker@example.com", got.Applications[0].Applicant.Email)

	mine, err := f.jobs.ListByApplicant(ctx, seeker.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, j.ID, mine[0].ID)
	require.Len(t, mine[0].Applications, 1)
	assert.Equal(t, seeker.ID, mine[0].Applications[0].ApplicantID)

	owned, err := f.jobs.ListByEmployer(ctx, f.employer.ID)
	require.NoError(t, err)
	assert.Len(t, owned, 2)
	assert.ElementsMatch(t, []string{j.ID, other.ID}, []string{owned[0].ID, owned[1].ID})

	updated, err := f.jobs.UpdateApplicationStatus(ctx, j.ID, app.ID, models.StatusShortlisted)
	require.NoError(t, err)
	assert.Equal(t, models.StatusShortlisted, updated.Status)

	_, err = f.jobs.UpdateApplicationStatus(ctx, other.ID, app.ID, models.StatusRejected)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
