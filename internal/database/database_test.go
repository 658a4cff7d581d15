package database_test

import (
	"testing"

	"talenthub/internal/database"
	"talenthub/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAndMigrateSQLite(t *testing.T) {
	db, err := database.Open("sqlite", "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, database.Migrate(db))
	assert.NoError(t, database.Ping(db))

	for _, model := range []any{&models.User{}, &models.Job{}, &models.Application{}} {
		assert.True(t, db.Migrator().HasTable(model))
	}
	assert.True(t, db.Migrator().HasIndex(&models.Application{}, "idx_application_job_applicant"))
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := database.Open("mongodb", "mongodb://localhost")
	assert.ErrorContains(t, err, "unsupported database driver")
}
