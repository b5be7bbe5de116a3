// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package identity

import (
	"errors"
	"fmt"
)

// Failure kinds of an authentication attempt.
var (
	ErrInvalidAccessToken  = errors.New("invalid access token")
	ErrMissingRequiredRole = errors.New("missing required role")
	ErrInvalidIDToken      = errors.New("invalid id token")
	ErrMissingEmail        = errors.New("missing email")
)

var (
	ErrUnknownProvider = errors.New("unknown identity provider")
	ErrProviderExists  = errors.New("identity provider already registered")
)

// Step names the stage of ProcessAuthResponse that rejected an attempt.
type Step string

const (
	StepAccessToken Step = "access_token"
	StepIDToken     Step = "id_token"
	StepBinding     Step = "binding"
)

// AuthError is returned for every rejected authentication attempt.
// It only carries the step and the failure kind, the underlying cause is
// logged and never handed back to the caller.
type AuthError struct {
	Step Step
	Kind error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed at %s: %v", e.Step, e.Kind)
}

func (e *AuthError) Unwrap() error {
	return e.Kind
}

// Reason is a stable, snake_cased label for Kind, safe for logs and metrics.
func (e *AuthError) Reason() string {
	switch {
	case errors.Is(e.Kind, ErrInvalidAccessToken):
		return "invalid_access_token"
	case errors.Is(e.Kind, ErrMissingRequiredRole):
		return "missing_required_role"
	case errors.Is(e.Kind, ErrInvalidIDToken):
		return "invalid_id_token"
	case errors.Is(e.Kind, ErrMissingEmail):
		return "missing_email"
	default:
		return "unknown"
	}
}

func newAuthError(step Step, kind error) *AuthError {
	return &AuthError{Step: step, Kind: kind}
}
