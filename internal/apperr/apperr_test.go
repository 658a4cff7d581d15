package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"talenthub/internal/apperr"

	"github.com/stretchr/testify/assert"
)

func TestErrorIs(t *testing.T) {
	dup := apperr.New(apperr.KindDuplicateApplication, "you have already applied for this job")

	assert.True(t, errors.Is(dup, apperr.ErrDuplicateApplication))
	assert.True(t, errors.Is(dup, apperr.ErrConflict), "duplicate application is a conflict")
	assert.False(t, errors.Is(apperr.Conflict("email taken"), apperr.ErrDuplicateApplication))
	assert.False(t, errors.Is(dup, apperr.ErrNotFound))

	wrapped := fmt.Errorf("submit: %w", apperr.NotFound("job not found"))
	assert.True(t, errors.Is(wrapped, apperr.ErrNotFound))
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(wrapped))
	assert.Equal(t, apperr.Kind(0), apperr.KindOf(errors.New("plain")))
}

func TestStoreKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := apperr.Store("failed to load job", cause)

	assert.True(t, errors.Is(err, apperr.ErrStore))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "failed to load job: connection refused", err.Error())
}
