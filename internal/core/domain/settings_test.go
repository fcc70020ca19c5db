package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDuplicatePolicy_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		policy   DuplicatePolicy
		expected bool
	}{
		{"merge is valid", DuplicateMerge, true},
		{"keep_last is valid", DuplicateKeepLast, true},
		{"reject is valid", DuplicateReject, true},
		{"empty string is invalid", DuplicatePolicy(""), false},
		{"unknown policy is invalid", DuplicatePolicy("first_wins"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.policy.IsValid())
		})
	}
}

func TestDuplicatePolicy_Description(t *testing.T) {
	assert.Equal(t, "Unknown", DuplicatePolicy("x").Description())
	assert.NotEqual(t, "Unknown", DuplicateMerge.Description())
	assert.Equal(t, "reject", DuplicateReject.String())
}

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, DuplicateMerge, s.Data.Duplicates)
	assert.True(t, s.Data.Watch)
	assert.Empty(t, s.Data.Path)
	assert.Equal(t, DefaultTopN, s.Charts.TopN)
	assert.NoError(t, s.Validate())
}

func TestAppSettings_Validate(t *testing.T) {
	s := DefaultAppSettings()
	s.Charts.TopN = 0
	assert.ErrorIs(t, s.Validate(), ErrInvalidInput)

	s = DefaultAppSettings()
	s.Data.Duplicates = "bogus"
	assert.ErrorIs(t, s.Validate(), ErrInvalidInput)
}
