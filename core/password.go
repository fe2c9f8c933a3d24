package core

import (
	"strings"
	"unicode/utf8"
)

const passwordSymbols = "!@#$%^&*()-_=+[]{};:'\",.<>/?\\|`~"

const minPasswordLength = 8

// PasswordRule names one requirement of the password policy.
type PasswordRule string

const (
	PasswordRuleMinLength PasswordRule = "at least 8 characters"
	PasswordRuleUppercase PasswordRule = "at least one uppercase letter"
	PasswordRuleDigit     PasswordRule = "at least one digit"
	PasswordRuleSymbol    PasswordRule = "at least one symbol"
)

// ValidatePassword checks the password against the complexity policy and
// returns every violated rule at once rather than stopping at the first.
// An empty result means the password is acceptable.
func ValidatePassword(password string) []PasswordRule {
	var violated []PasswordRule

	if utf8.RuneCountInString(password) < minPasswordLength {
		violated = append(violated, PasswordRuleMinLength)
	}

	var hasUpper, hasDigit, hasSymbol bool

	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}

	if !hasUpper {
		violated = append(violated, PasswordRuleUppercase)
	}
	if !hasDigit {
		violated = append(violated, PasswordRuleDigit)
	}
	if !hasSymbol {
		violated = append(violated, PasswordRuleSymbol)
	}

	return violated
}

// NewWeakPasswordError builds the WeakPassword domain error listing all
// violated rules in its message.
func NewWeakPasswordError(violated []PasswordRule) *DomainError {
	rules := make([]string, 0, len(violated))
	for _, rule := range violated {
		rules = append(rules, string(rule))
	}

	message := "The password must contain " + strings.Join(rules, ", ") + "."

	return NewDomainError(ErrKeyWeakPassword, nil, message)
}
