package apperr

import (
	"testing"

	errors "github.com/Laisky/errors/v2"
	"github.com/stretchr/testify/require"
)

func TestNotFoundUnwrapsToSentinel(t *testing.T) {
	err := errors.Wrap(NotFound("Blog not found"), "get blog")
	require.True(t, errors.Is(err, ErrNotFound))
	require.True(t, IsCode(err, CodeNotFound))

	typed, ok := AsError(err)
	require.True(t, ok)
	require.Equal(t, "Blog not found", typed.Message)
}

func TestValidationMessage(t *testing.T) {
	err := Validation("%s are required", "title, slug")
	require.True(t, IsCode(err, CodeValidation))
	require.False(t, IsCode(err, CodeNotFound))
	require.Equal(t, "title, slug are required", err.Error())
}

func TestAsErrorOnPlainError(t *testing.T) {
	_, ok := AsError(errors.New("boom"))
	require.False(t, ok)
	_, ok = AsError(nil)
	require.False(t, ok)
}
