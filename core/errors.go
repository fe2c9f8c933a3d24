package core

import (
	"errors"
	"fmt"
	"net/http"
)

type DomainErrorKey string

const (
	// Registration and validation errors
	ErrKeyValidationFailed    DomainErrorKey = "ErrValidationFailed"
	ErrKeyWeakPassword        DomainErrorKey = "ErrWeakPassword"
	ErrKeyPasswordMismatch    DomainErrorKey = "ErrPasswordMismatch"
	ErrKeyDuplicateEmail      DomainErrorKey = "ErrDuplicateEmail"
	ErrKeyDuplicatePhone      DomainErrorKey = "ErrDuplicatePhone"
	ErrKeyDuplicateUsername   DomainErrorKey = "ErrDuplicateUsername"
	ErrKeyAllocationExhausted DomainErrorKey = "ErrAllocationExhausted"

	// Authentication errors
	ErrKeyInvalidCredentials    DomainErrorKey = "ErrInvalidCredentials"
	ErrKeyAmbiguousIdentifier   DomainErrorKey = "ErrAmbiguousIdentifier"
	ErrKeyInvalidToken          DomainErrorKey = "ErrInvalidToken"
	ErrKeyTokenGenerationFailed DomainErrorKey = "ErrTokenGenerationFailed"
	ErrKeyHashingFailed         DomainErrorKey = "ErrHashingFailed"

	// Password reset errors
	ErrKeyInvalidOTP   DomainErrorKey = "ErrInvalidOTP"
	ErrKeyOTPExpired   DomainErrorKey = "ErrOTPExpired"
	ErrKeyOTPNotIssued DomainErrorKey = "ErrOTPNotIssued"

	// Lookup errors
	ErrKeyUserNotFound     DomainErrorKey = "ErrUserNotFound"
	ErrKeyCategoryNotFound DomainErrorKey = "ErrCategoryNotFound"
	ErrKeyPostNotFound     DomainErrorKey = "ErrPostNotFound"
	ErrKeyCommentNotFound  DomainErrorKey = "ErrCommentNotFound"
	ErrKeyMessageNotFound  DomainErrorKey = "ErrMessageNotFound"

	// Content and social errors
	ErrKeyDuplicateCategory DomainErrorKey = "ErrDuplicateCategory"
	ErrKeySelfFollow        DomainErrorKey = "ErrSelfFollow"
	ErrKeyForbidden         DomainErrorKey = "ErrForbidden"

	// General errors
	ErrKeyDatabaseOperationFailed DomainErrorKey = "ErrDatabaseOperationFailed"
)

var defaultErrorMessages = map[DomainErrorKey]string{
	ErrKeyValidationFailed:    "The request is missing required fields or contains invalid values.",
	ErrKeyWeakPassword:        "The password does not meet the complexity requirements.",
	ErrKeyPasswordMismatch:    "Password and confirm password do not match. Please re-enter them.",
	ErrKeyDuplicateEmail:      "A user with this email already exists. Please use a different email address.",
	ErrKeyDuplicatePhone:      "A user with this phone number already exists. Please use a different phone number.",
	ErrKeyDuplicateUsername:   "A user with this username already exists. Please choose a different username.",
	ErrKeyAllocationExhausted: "Could not allocate a unique username, please try again.",

	ErrKeyInvalidCredentials:    "The login credentials provided are invalid.",
	ErrKeyAmbiguousIdentifier:   "The identifier matches more than one account.",
	ErrKeyInvalidToken:          "The token is invalid, expired, or has been revoked.",
	ErrKeyTokenGenerationFailed: "Failed to generate a new token.",
	ErrKeyHashingFailed:         "Failed to secure the password, please try again later.",

	ErrKeyInvalidOTP:   "The OTP code provided is incorrect.",
	ErrKeyOTPExpired:   "The OTP code has expired. Please request a new one.",
	ErrKeyOTPNotIssued: "No OTP has been requested for this account.",

	ErrKeyUserNotFound:     "The requested user was not found.",
	ErrKeyCategoryNotFound: "Category not found.",
	ErrKeyPostNotFound:     "Post not found.",
	ErrKeyCommentNotFound:  "Comment not found.",
	ErrKeyMessageNotFound:  "Message not found.",

	ErrKeyDuplicateCategory: "A category with this name already exists.",
	ErrKeySelfFollow:        "You cannot follow yourself.",
	ErrKeyForbidden:         "You do not have permission to modify this resource.",

	ErrKeyDatabaseOperationFailed: "A database operation failed.",
}

var errorKeyToHTTPStatus = map[DomainErrorKey]int{
	ErrKeyValidationFailed:    http.StatusBadRequest,
	ErrKeyWeakPassword:        http.StatusBadRequest,
	ErrKeyPasswordMismatch:    http.StatusBadRequest,
	ErrKeyDuplicateEmail:      http.StatusConflict,
	ErrKeyDuplicatePhone:      http.StatusConflict,
	ErrKeyDuplicateUsername:   http.StatusConflict,
	ErrKeyAllocationExhausted: http.StatusConflict,

	ErrKeyInvalidCredentials:    http.StatusUnauthorized,
	ErrKeyAmbiguousIdentifier:   http.StatusConflict,
	ErrKeyInvalidToken:          http.StatusUnauthorized,
	ErrKeyTokenGenerationFailed: http.StatusInternalServerError,
	ErrKeyHashingFailed:         http.StatusInternalServerError,

	ErrKeyInvalidOTP:   http.StatusBadRequest,
	ErrKeyOTPExpired:   http.StatusBadRequest,
	ErrKeyOTPNotIssued: http.StatusBadRequest,

	ErrKeyUserNotFound:     http.StatusNotFound,
	ErrKeyCategoryNotFound: http.StatusNotFound,
	ErrKeyPostNotFound:     http.StatusNotFound,
	ErrKeyCommentNotFound:  http.StatusNotFound,
	ErrKeyMessageNotFound:  http.StatusNotFound,

	ErrKeyDuplicateCategory: http.StatusConflict,
	ErrKeySelfFollow:        http.StatusBadRequest,
	ErrKeyForbidden:         http.StatusForbidden,

	ErrKeyDatabaseOperationFailed: http.StatusInternalServerError,
}

type DomainError struct {
	Key     DomainErrorKey // A unique identifier for the error type
	Message string         // Human-readable error message
	Err     error          // Underlying error, if any
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func (e *DomainError) IsErrorType(key DomainErrorKey) bool {
	return e.Key == key
}

func (e *DomainError) HttpStatus() int {
	if status, exists := errorKeyToHTTPStatus[e.Key]; exists {
		return status
	}
	return http.StatusInternalServerError
}

func NewDomainError(key DomainErrorKey, err error, customMessage ...string) *DomainError {
	message, exists := defaultErrorMessages[key]
	if !exists {
		message = "An unknown error occurred"
	}
	if len(customMessage) > 0 {
		message = customMessage[0]
	}
	return &DomainError{
		Key:     key,
		Message: message,
		Err:     err,
	}
}

func IsDomainError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr)
}

func AsDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// IsErrorKey reports whether err is a DomainError carrying the given key.
func IsErrorKey(err error, key DomainErrorKey) bool {
	if e := AsDomainError(err); e != nil {
		return e.Key == key
	}
	return false
}
