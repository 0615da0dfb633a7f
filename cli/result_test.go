package cli

import (
	"fmt"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestCommandError(t *testing.T) {
	t.Run("implements error interface", func(t *testing.T) {
		err := NewCommandError(1)
		assert.Error(t, err)
	})

	t.Run("returns exit code", func(t *testing.T) {
		err := NewCommandError(42)
		assert.Equal(t, 42, err.ExitCode())
	})
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     int
		reported bool
	}{
		{"Success", nil, 0, true},
		{"CommandError", NewCommandError(2), 2, true},
		{"Wrapped", fmt.Errorf("check: %w", NewCommandError(3)), 3, true},
		{"Unreported", fmt.Errorf("failed to read file"), 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, reported := ExitCode(tt.err)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.reported, reported)
		})
	}
}
