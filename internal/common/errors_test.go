package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserError(t *testing.T) {
	wrapped := NewUserError("failed to load ledger", ErrNotFound)

	assert.Equal(t, "failed to load ledger: not found", wrapped.Error())
	assert.ErrorIs(t, wrapped, ErrNotFound)

	var userErr *UserError
	assert.True(t, errors.As(wrapped, &userErr))
	assert.Equal(t, "failed to load ledger", userErr.UserMessage)
}

func TestUserErrorWithoutCause(t *testing.T) {
	err := NewUserError("plain message", nil)
	assert.Equal(t, "plain message", err.Error())
}
