package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapAndIsCode(t *testing.T) {
	base := errors.New("boom")
	err := Wrap(CodeLLM, "chat request failed", base)

	require.EqualError(t, err, "chat request failed: boom")
	require.True(t, IsCode(err, CodeLLM))
	require.False(t, IsCode(err, CodeInvalidInput))
	require.ErrorIs(t, err, base)

	wrapped := fmt.Errorf("outer: %w", err)
	require.True(t, IsCode(wrapped, CodeLLM))
}

func TestWrapWithoutCause(t *testing.T) {
	err := Wrap(CodeInvalidInput, "snapshot is required", nil)
	require.EqualError(t, err, "snapshot is required")
	require.Nil(t, errors.Unwrap(err))
	require.False(t, IsCode(errors.New("plain"), CodeInvalidInput))
}

func TestCodeOf(t *testing.T) {
	require.Equal(t, CodeCatalog, CodeOf(fmt.Errorf("load: %w", Wrap(CodeCatalog, "catalog missing", nil))))
	require.Empty(t, CodeOf(errors.New("plain")))
	require.Empty(t, CodeOf(nil))
}
