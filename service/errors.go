package service

import (
	"errors"
	"sort"
	"strings"

	"github.com/emzola/blogapi/data"
)

var (
	ErrFailedValidation     = errors.New("failed validation")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrStorageUnavailable   = errors.New("image storage is not configured")

	ErrUserAlreadyExists    = errors.New("User with this email or username already exists")
	ErrUserNotFound         = errors.New("User not found")
	ErrUserTokenNotFound    = errors.New("User token not found")
	ErrUserAlreadyActivated = errors.New("User is already activated")
	ErrUserNotActivated     = errors.New("User is not activated")
	ErrInvalidToken         = errors.New("Invalid token")
	ErrTokenExpired         = errors.New("Token expired, reactivate token")
	ErrInvalidCredentials   = errors.New("No active account found with the given credentials")

	ErrCategoryNotFound      = errors.New("Category not exists")
	ErrCategoryAlreadyExists = errors.New("Category with this name or slug already exists")
	ErrPostNotFound          = errors.New("Post not exists")
	ErrCommentNotFound       = errors.New("Post comment not exists")

	ErrSelfFollow           = errors.New("You cannot follow yourself")
	ErrFollowedUserNotFound = errors.New("User not exists")
	ErrFollowNotFound       = errors.New("You are not following this user")
)

// ValidationError carries field level validation messages. It matches
// ErrFailedValidation with errors.Is.
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e.Errors[field])
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrFailedValidation
}

// failedValidation wraps a validator's error map.
func failedValidation(errorMap map[string]string) error {
	return &ValidationError{Errors: errorMap}
}

// WeakPasswordError reports the first password strength rule a new password breaks.
type WeakPasswordError struct {
	Message string
}

func (e *WeakPasswordError) Error() string {
	return e.Message
}

// checkPasswordLength rejects plaintext passwords bcrypt cannot hash. The
// limit is in bytes, so multi-byte characters count more than once.
func checkPasswordLength(field, password string) error {
	if len(password) > data.MaxPasswordBytes {
		return failedValidation(map[string]string{field: "Ensure this field has no more than 72 bytes."})
	}
	return nil
}
