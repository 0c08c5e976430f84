package testutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertErrorContains checks that err contains the expected substring.
func AssertErrorContains(t *testing.T, err error, expected string) {
	t.Helper()
	require.Error(t, err)
	assert.Contains(t, err.Error(), expected)
}

// RequireErrorAs fails unless err unwraps to target's type, then populates it.
func RequireErrorAs(t *testing.T, err error, target any) {
	t.Helper()
	require.Error(t, err)
	require.True(t, errors.As(err, target), "error %v does not match %T", err, target)
}
