package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrIO", ErrIO},
		{"ErrParse", ErrParse},
		{"ErrDuplicateKey", ErrDuplicateKey},
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrNoDataPath", ErrNoDataPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestErrors_Uniqueness tests that all errors are distinct
func TestErrors_Uniqueness(t *testing.T) {
	allErrors := []error{
		ErrIO,
		ErrParse,
		ErrDuplicateKey,
		ErrNotFound,
		ErrInvalidInput,
		ErrNoDataPath,
	}

	for i, err1 := range allErrors {
		for j, err2 := range allErrors {
			if i != j {
				assert.False(t, errors.Is(err1, err2),
					"Error %v should not match error %v", err1, err2)
			}
		}
	}
}

func TestErrors_WrappedTaxonomy(t *testing.T) {
	err := fmt.Errorf("reading data.json: %w", errors.Join(ErrIO, errors.New("permission denied")))

	assert.True(t, errors.Is(err, ErrIO))
	assert.False(t, errors.Is(err, ErrParse))
	assert.Contains(t, err.Error(), "permission denied")
}

func TestErrors_DuplicateCarriesParse(t *testing.T) {
	err := errors.Join(ErrParse, ErrDuplicateKey)

	assert.True(t, errors.Is(err, ErrParse))
	assert.True(t, errors.Is(err, ErrDuplicateKey))
}
