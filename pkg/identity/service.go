// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/canonical/identity-binder/internal/logging"
	"github.com/canonical/identity-binder/internal/monitoring"
	"github.com/canonical/identity-binder/internal/tracing"
	"github.com/canonical/identity-binder/pkg/claims"
)

type Service struct {
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// ProcessAuthResponse validates the token set returned by provider and binds
// the identity it describes. Steps run in order and the first failure ends
// the attempt, no partial identity is ever returned.
func (s *Service) ProcessAuthResponse(ctx context.Context, provider string, tokens RawTokenSet, config ProviderConfig) (*IdentityResult, error) {
	ctx, span := s.tracer.Start(ctx, "identity.Service.ProcessAuthResponse")
	defer span.End()

	attemptID := uuid.NewString()
	span.SetAttributes(
		attribute.String("identity.provider", provider),
		attribute.String("identity.attempt_id", attemptID),
	)

	result, authErr := s.process(ctx, attemptID, tokens, config)
	if authErr != nil {
		span.SetStatus(codes.Error, authErr.Reason())
		s.logger.Security().AuthnFailure(provider, authErr.Reason())
		s.record(provider, "failure", string(authErr.Step))

		return nil, authErr
	}

	s.logger.Security().AuthnSuccess(provider, result.Email)
	s.record(provider, "success", "")

	return result, nil
}

func (s *Service) process(_ context.Context, attemptID string, tokens RawTokenSet, config ProviderConfig) (*IdentityResult, *AuthError) {
	if config.RequiredRole != "" {
		accessClaims, err := claims.Decode(tokens.AccessToken)
		if err != nil {
			s.logger.Errorf("attempt %s: error decoding access_token: %v", attemptID, err)
			return nil, newAuthError(StepAccessToken, ErrInvalidAccessToken)
		}

		if err := ValidateRole(accessClaims, config.RequiredRole); err != nil {
			s.logger.Errorf("attempt %s: required role %s not granted: %v", attemptID, config.RequiredRole, err)
			s.logger.Debugf("attempt %s: access_token payload: %v", attemptID, accessClaims)
			return nil, newAuthError(StepAccessToken, kindOf(err, ErrMissingRequiredRole, ErrInvalidAccessToken))
		}
	}

	idClaims, err := claims.Decode(tokens.IDToken)
	if err != nil {
		s.logger.Errorf("attempt %s: error decoding id_token: %v", attemptID, err)
		return nil, newAuthError(StepIDToken, ErrInvalidIDToken)
	}

	result, err := BindIdentity(idClaims, config.DomainPolicy)
	if err != nil {
		s.logger.Errorf("attempt %s: unable to bind identity: %v", attemptID, err)
		s.logger.Debugf("attempt %s: id_token payload: %v", attemptID, idClaims)
		return nil, newAuthError(StepBinding, kindOf(err, ErrMissingEmail, ErrInvalidIDToken))
	}

	s.logger.Debugf("attempt %s: bound identity %s with domain policy %s", attemptID, result.Email, policyName(config.DomainPolicy))

	return result, nil
}

func (s *Service) record(provider, outcome, step string) {
	tags := map[string]string{
		"provider": provider,
		"outcome":  outcome,
		"step":     step,
	}

	if err := s.monitor.IncAuthAttemptsMetric(tags); err != nil {
		s.logger.Debugf("error recording auth attempt metric: %v", err)
	}
}

// kindOf returns the first of kinds that err wraps, the last one otherwise.
func kindOf(err error, kinds ...error) error {
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}

	return kinds[len(kinds)-1]
}

func policyName(p DomainPolicy) string {
	if p == nil {
		return LegacyDomainPolicy{}.Name()
	}

	return p.Name()
}

func NewService(tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	s := new(Service)

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
