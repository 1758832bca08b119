package evoerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMalformedInputError(t *testing.T) {
	err := NewMalformedInput("address.zip", "pattern", "expected a string")

	assert.Equal(t, "malformed input at address.zip: pattern: expected a string", err.Error())
	assert.True(t, errors.Is(err, ErrMalformedInput))
	assert.False(t, errors.Is(err, ErrConfig))

	var typed *MalformedInputError
	require.True(t, errors.As(err, &typed))
	assert.Equal(t, "address.zip", typed.Path)
	assert.Equal(t, "pattern", typed.Field)
}

func TestMalformedInputError_RootPath(t *testing.T) {
	err := NewMalformedInput("", "required", "expected a list")
	assert.Equal(t, "malformed input: required: expected a list", err.Error())
}

func TestMalformedInputError_Unwrap(t *testing.T) {
	cause := errors.New("yaml: line 3: mapping values are not allowed")
	err := &MalformedInputError{Message: "parse failure", Cause: cause}

	assert.True(t, errors.Is(err, ErrMalformedInput))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), cause.Error())
}

func TestConfigError(t *testing.T) {
	err := NewConfig("WithVersions", "version count must be positive")

	assert.True(t, errors.Is(err, ErrConfig))
	assert.False(t, errors.Is(err, ErrMalformedInput))
	assert.Contains(t, err.Error(), "WithVersions")
	assert.Contains(t, err.Error(), "version count must be positive")
}

func TestErrorsThroughWrapping(t *testing.T) {
	inner := NewConfig("snapshots", "at least two snapshots are required")
	wrapped := fmt.Errorf("differ: chain step 0: %w", inner)

	assert.True(t, errors.Is(wrapped, ErrConfig))

	var typed *ConfigError
	require.True(t, errors.As(wrapped, &typed))
	assert.Equal(t, "snapshots", typed.Option)
}
