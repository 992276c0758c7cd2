package gen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigError(t *testing.T) {
	t.Run("Error message with value", func(t *testing.T) {
		err := NewConfigError("Ecosystem", "avr", "unknown ecosystem")

		assert.Contains(t, err.Error(), "resgen: config error")
		assert.Contains(t, err.Error(), "Ecosystem")
		assert.Contains(t, err.Error(), "avr")
		assert.Contains(t, err.Error(), "unknown ecosystem")
	})

	t.Run("Error message without value", func(t *testing.T) {
		err := NewConfigError("Target", nil, "cannot be empty")

		assert.Contains(t, err.Error(), "Target")
		assert.Contains(t, err.Error(), "cannot be empty")
		assert.NotContains(t, err.Error(), "value:")
	})

	t.Run("Is matches ErrMissingConfig", func(t *testing.T) {
		err := NewConfigError("Target", nil, "missing")
		assert.True(t, errors.Is(err, ErrMissingConfig))
	})

	t.Run("IsConfigError helper", func(t *testing.T) {
		assert.True(t, IsConfigError(NewConfigError("Target", nil, "missing")))
		assert.False(t, IsConfigError(errors.New("other")))
	})
}

func TestGenerationError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("disk full")
		err := NewGenerationError("write", "led_resources_resgen.go", "cannot write", cause)

		assert.Equal(t, "resgen: generation error in phase write (file: led_resources_resgen.go): cannot write: disk full", err.Error())
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("root cause")
		err := NewGenerationError("format", "", "", cause)

		assert.Equal(t, cause, err.Unwrap())
		assert.True(t, errors.Is(err, cause))
		assert.True(t, errors.Is(err, ErrGenerationFailed))
	})

	t.Run("IsGenerationError helper", func(t *testing.T) {
		wrapped := errors.Join(errors.New("other"), NewGenerationError("render", "", "", nil))
		assert.True(t, IsGenerationError(wrapped))
		assert.False(t, IsGenerationError(errors.New("other")))
	})
}
