package clierr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap_KeepsCause(t *testing.T) {
	sentinel := errors.New("disk full")
	err := Wrap(IOFailure, fmt.Errorf("saving: %w", sentinel))

	assert.Equal(t, "saving: disk full", err.Error())
	assert.ErrorIs(t, err, sentinel)

	var cliErr *Error
	assert.True(t, errors.As(fmt.Errorf("outer: %w", err), &cliErr))
	assert.Equal(t, IOFailure, cliErr.Code)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 1, New(CardNotFound, "no card").ExitCode())
	assert.Equal(t, 2, New(InternalError, "bug").ExitCode())
}

func TestWithDetails(t *testing.T) {
	err := Newf(ColumnNotFound, "column %q not found", "Todo").WithDetails(map[string]any{"column": "Todo"})
	assert.Equal(t, `column "Todo" not found`, err.Message)
	assert.Equal(t, "Todo", err.Details["column"])
}

func TestSilentError(t *testing.T) {
	assert.Equal(t, "exit 1", (&SilentError{Code: 1}).Error())
}
