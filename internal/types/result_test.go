package types

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult_Success(t *testing.T) {
	r := NewResult(42)

	assert.True(t, r.IsSuccess())
	assert.False(t, r.IsError())
	assert.NoError(t, r.Error())

	value, err := r.Unwrap()
	require.NoError(t, err)
	assert.Equal(t, 42, value)
	assert.Equal(t, 42, r.OrElse(-1))
}

func TestResult_Error(t *testing.T) {
	r := NewErrorResult[int](fmt.Errorf("boom"))

	assert.False(t, r.IsSuccess())
	assert.True(t, r.IsError())

	value, err := r.Unwrap()
	assert.Error(t, err)
	assert.Zero(t, value)
	assert.Equal(t, -1, r.OrElse(-1))
}
