// Copyright (c) 2026 Lodex. All rights reserved.
// Author: duy.phamquoc.vn@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phamduy/lodex/internal/platform/apperr"
	"github.com/phamduy/lodex/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "q", "fire", false},
		{"empty_string", "q", "", true},
		{"whitespace_only", "q", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_LanguageCode checks the language tag format rule.
*/
func TestValidator_LanguageCode(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		isValid bool
	}{
		{"simple", "en", true},
		{"three_letter", "fil", true},
		{"with_region", "pt-br", true},
		{"uppercase", "EN", false},
		{"numeric", "42", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.LanguageCode("lang", tt.code)

			if tt.isValid {
				assert.False(t, v.HasErrors())
			} else {
				assert.True(t, v.HasErrors())
			}
		})
	}
}

/*
TestValidator_RangeFloat covers the inclusive bounds used for metric levels.
*/
func TestValidator_RangeFloat(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		isValid bool
	}{
		{"lower_bound", 1.0, true},
		{"upper_bound", 50.0, true},
		{"mid", 40.0, true},
		{"below", 0.5, false},
		{"above", 50.5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.RangeFloat("level", tt.value, 1.0, 50.0)

			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules).
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("q", "fire").
		MaxLen("q", "fire", 100).
		LanguageCode("lang", "en").
		Range("atk", 15, 0, 15).
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("q", "").             // Fails
		LanguageCode("lang", "EN-US"). // Fails
		Range("atk", 99, 0, 15).       // Fails
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	// Should accumulate all 3 errors
	assert.Len(t, ae.Details, 3)
}
