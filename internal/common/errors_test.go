package common

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsAuthError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"missing", ErrTokenMissing, true},
		{"expired wrapped", fmt.Errorf("verify: %w", ErrTokenExpired), true},
		{"invalid", ErrTokenInvalid, true},
		{"credentials", ErrInvalidCredentials, true},
		{"fetch", ErrFetch, false},
		{"plain", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsAuthError(tc.err); got != tc.want {
				t.Fatalf("IsAuthError(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrInvalidInput, "invalid_input"},
		{fmt.Errorf("signup: %w", ErrAlreadyExists), "already_exists"},
		{ErrNotFound, "not_found"},
		{ErrInvalidCredentials, "invalid_credentials"},
		{ErrTokenMissing, "token_missing"},
		{ErrTokenExpired, "token_expired"},
		{fmt.Errorf("%w: bad sig", ErrTokenInvalid), "token_invalid"},
		{fmt.Errorf("%w: %w", ErrFetch, errors.New("dial tcp")), "fetch_error"},
		{ErrInference, "inference_error"},
		{ErrParse, "parse_error"},
		{ErrInternal, "internal"},
		{errors.New("boom"), "internal"},
	}

	for _, tc := range tests {
		if got := Kind(tc.err); got != tc.want {
			t.Fatalf("Kind(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
