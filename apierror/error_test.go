package apierror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMyError(t *testing.T) {
	inner := errors.New("underlying")
	e := NewMyError(ErrBadParameter, "invalid input", inner)
	require.NotNil(t, e)
	assert.Equal(t, ErrBadParameter, e.Code)
	assert.Equal(t, "invalid input", e.Message)
	assert.Same(t, inner, e.Inner)
	assert.Equal(t, "bad_parameter invalid input: underlying", e.Error())
}

func TestNewInternalServerError_KeepsInnerCode(t *testing.T) {
	inner := NewEntityNotFoundError("gone", nil)
	e := NewInternalServerError("lookup failed", fmt.Errorf("wrapped: %w", inner))
	assert.Same(t, inner, e)
	assert.True(t, IsEntityNotFoundError(e))
}

func TestNewServiceUnavailableError_DoesNotInheritCode(t *testing.T) {
	inner := NewEntityNotFoundError("no instance", nil)
	e := NewServiceUnavailableError("catalog unavailable", inner)
	assert.True(t, IsServiceUnavailableError(e))
	assert.Equal(t, ErrServiceUnavailable, ToMyErrorCode(e))
	assert.ErrorIs(t, e, inner)
}

func TestToMyError(t *testing.T) {
	t.Run("wrapped", func(t *testing.T) {
		e := NewBadParameterError("bad", nil)
		got := ToMyError(fmt.Errorf("ctx: %w", e))
		require.NotNil(t, got)
		assert.Same(t, e, got)
	})
	t.Run("ordinary", func(t *testing.T) {
		assert.Nil(t, ToMyError(errors.New("plain")))
		assert.Equal(t, "", ToMyErrorCode(errors.New("plain")))
	})
}

func TestIsHelpers(t *testing.T) {
	assert.True(t, IsBadParameterError(NewBadParameterError("x", nil)))
	assert.True(t, IsInternalServerError(NewInternalServerError("x", nil)))
	assert.True(t, IsBadGatewayError(NewBadGatewayError("x", nil)))
	assert.False(t, IsBadGatewayError(nil))
}
