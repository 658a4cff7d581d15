package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"talenthub/internal/database"
	"talenthub/internal/dto"
	"talenthub/internal/models"
	"talenthub/internal/repositories"
	"talenthub/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test_jwt_secret"

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockJobRepository is a mock implementation of repositories.JobRepository
type MockJobRepository struct {
	mock.Mock
}

func (m *MockJobRepository) Create(ctx context.Context, job *models.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockJobRepository) GetByID(ctx context.Context, id string) (*models.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Job), args.Error(1)
}

func (m *MockJobRepository) Search(ctx context.Context, filter repositories.JobFilter) ([]models.Job, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Job), args.Get(1).(int64), args.Error(2)
}

func (m *MockJobRepository) ListByEmployer(ctx context.Context, employerID string) ([]models.Job, error) {
	args := m.Called(ctx, employerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Job), args.Error(1)
}

func (m *MockJobRepository) ListByApplicant(ctx context.Context, applicantID string) ([]models.Job, error) {
	args := m.Called(ctx, applicantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Job), args.Error(1)
}

func (m *MockJobRepository) Update(ctx context.Context, job *models.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockJobRepository) AddApplication(ctx context.Context, app *models.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *MockJobRepository) UpdateApplicationStatus(ctx context.Context, jobID, applicationID string, status models.ApplicationStatus) (*models.Application, error) {
	args := m.Called(ctx, jobID, applicationID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

// MockPublisher records published events.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(routingKey string, payload any) error {
	args := m.Called(routingKey, payload)
	return args.Error(0)
}

// fakeClock is a settable clock shared by the services under test.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// testEnv wires the services to an in-memory sqlite database.
type testEnv struct {
	clock  *fakeClock
	events *MockPublisher
	auth   *services.AuthService
	jobs   *services.JobService
	apps   *services.ApplicationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.Open("sqlite", "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	userRepo := repositories.NewGORMUserRepository(db)
	jobRepo := repositories.NewGORMJobRepository(db)
	clock := newFakeClock()
	events := new(MockPublisher)
	events.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()

	return &testEnv{
		clock:  clock,
		events: events,
		auth: services.NewAuthService(userRepo, testJWTSecret,
			services.WithBcryptCost(bcrypt.MinCost),
			services.WithClock(clock.Now),
		),
		jobs: services.NewJobService(jobRepo, events),
		apps: services.NewApplicationService(jobRepo, events, clock.Now),
	}
}

func (e *testEnv) register(t *testing.T, name, email string, role models.Role) *models.Actor {
	t.Helper()
	res, err := e.auth.Register(context.Background(), dto.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: "password123",
		Role:     role,
	})
	require.NoError(t, err)
	return &models.Actor{ID: res.User.ID, Role: res.User.Role}
}

func (e *testEnv) postJob(t *testing.T, employer *models.Actor, title string, mutate func(*dto.CreateJobRequest)) *dto.JobResponse {
	t.Helper()
	req := dto.CreateJobRequest{
		Title:        title,
		Company:      "Acme",
		Description:  "Work on our platform",
		Requirements: "Go, SQL",
		Location:     "Remote",
		Category:     "Technology",
	}
	if mutate != nil {
		mutate(&req)
	}
	job, err := e.jobs.Create(context.Background(), employer, req)
	require.NoError(t, err)
	return job
}

func int64p(v int64) *int64 { return &v }
