// Package common defines shared constants and sentinel errors used across
// the pagescout server and CLI. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrInternal     = errors.New("internal error")
	ErrInvalidInput = errors.New("invalid input")

	// Credential errors. Unknown users and wrong passwords share one value.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Token lifecycle errors.
	ErrTokenMissing = errors.New("token missing")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")

	// Analyze pipeline stage errors.
	ErrFetch     = errors.New("fetch failed")
	ErrInference = errors.New("inference failed")
	ErrParse     = errors.New("parse failed")
)

// IsAuthError reports whether err is one of the token or credential errors
// that must surface as an authentication failure.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrTokenMissing) ||
		errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrTokenInvalid) ||
		errors.Is(err, ErrInvalidCredentials)
}

var kinds = []struct {
	err  error
	name string
}{
	{ErrInvalidInput, "invalid_input"},
	{ErrAlreadyExists, "already_exists"},
	{ErrNotFound, "not_found"},
	{ErrInvalidCredentials, "invalid_credentials"},
	{ErrTokenMissing, "token_missing"},
	{ErrTokenExpired, "token_expired"},
	{ErrTokenInvalid, "token_invalid"},
	{ErrFetch, "fetch_error"},
	{ErrInference, "inference_error"},
	{ErrParse, "parse_error"},
}

// Kind returns a stable snake_case name for the sentinel err wraps, or
// "internal" when it wraps none of them.
func Kind(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return "internal"
}
