package apierr

import "errors"

var (
	// ErrInvalidInput is a generic sentinel for malformed client input.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrConfigurationDefect marks a defect in loaded knowledge-base data,
	// never a runtime condition worth retrying.
	ErrConfigurationDefect = errors.New("configuration defect")
	// ErrUnavailable is a generic sentinel for an unreachable collaborator.
	ErrUnavailable = errors.New("service unavailable")
	// ErrUnauthorized is a generic sentinel for auth failures.
	ErrUnauthorized = errors.New("unauthorized")
)
