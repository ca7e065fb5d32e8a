package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindsSurviveWrapping(t *testing.T) {
	kinds := []error{ErrNotFound, ErrConflict, ErrUnauthorized, ErrInvalidOperation, ErrValidation}
	for _, k := range kinds {
		wrapped := fmt.Errorf("outer: %w", fmt.Errorf("thing %w", k))
		assert.True(t, errors.Is(wrapped, k), "kind %v lost through wrapping", k)
	}
}

func TestKindsAreDistinct(t *testing.T) {
	assert.False(t, errors.Is(ErrNotFound, ErrConflict))
	assert.False(t, errors.Is(ErrUnauthorized, ErrInvalidOperation))
}
