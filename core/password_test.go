package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		violated []PasswordRule
	}{
		{
			name:     "acceptable password",
			password: "Str0ng!pass",
			violated: nil,
		},
		{
			name:     "too short but otherwise fine",
			password: "A1!x",
			violated: []PasswordRule{PasswordRuleMinLength},
		},
		{
			name:     "missing uppercase",
			password: "weakpass1!",
			violated: []PasswordRule{PasswordRuleUppercase},
		},
		{
			name:     "missing digit and symbol",
			password: "Weakpassword",
			violated: []PasswordRule{PasswordRuleDigit, PasswordRuleSymbol},
		},
		{
			name:     "everything wrong at once",
			password: "abc",
			violated: []PasswordRule{PasswordRuleMinLength, PasswordRuleUppercase, PasswordRuleDigit, PasswordRuleSymbol},
		},
		{
			// 7 characters but 10 bytes; length is counted in runes.
			name:     "multibyte shorter than its byte count",
			password: "Aррр1!x",
			violated: []PasswordRule{PasswordRuleMinLength},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.violated, ValidatePassword(tt.password))
		})
	}
}

func TestNewWeakPasswordError(t *testing.T) {
	err := NewWeakPasswordError([]PasswordRule{PasswordRuleUppercase, PasswordRuleDigit})

	require.True(t, IsErrorKey(err, ErrKeyWeakPassword))
	assert.Contains(t, err.Error(), "at least one uppercase letter")
	assert.Contains(t, err.Error(), "at least one digit")
}
