// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/identity-binder/internal/logging"
)

//go:generate mockgen -build_flags=--mod=mod -package identity -destination ./mock_identity.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package identity -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package identity -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package identity -destination ./mock_tracer.go -source=../../internal/tracing/interfaces.go

func setupServiceMocks(ctrl *gomock.Controller) (*MockTracingInterface, *MockMonitorInterface, *MockLoggerInterface) {
	mockTracer := NewMockTracingInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)

	ctx := context.Background()
	mockTracer.EXPECT().Start(gomock.Any(), "identity.Service.ProcessAuthResponse").Return(ctx, trace.SpanFromContext(ctx))
	mockLogger.EXPECT().Security().Return(logging.NewNoopLogger().Security()).AnyTimes()
	mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any()).AnyTimes()

	return mockTracer, mockMonitor, mockLogger
}

func attemptTags(outcome, step string) map[string]string {
	return map[string]string{
		"provider": "keycloak",
		"outcome":  outcome,
		"step":     step,
	}
}

func TestService_ProcessAuthResponse(t *testing.T) {
	tests := []struct {
		name           string
		tokens         func(*testing.T) RawTokenSet
		config         ProviderConfig
		expectedEmail  string
		expectedDomain *string
	}{
		{
			name: "required role granted with legacy domain",
			tokens: func(t *testing.T) RawTokenSet {
				return RawTokenSet{
					AccessToken: accessTokenWithRoles(t, "admin"),
					IDToken:     idTokenWithEmail(t, "u@example.com"),
				}
			},
			config:         ProviderConfig{RequiredRole: "admin", DomainPolicy: LegacyDomainPolicy{}},
			expectedEmail:  "u@example.com",
			expectedDomain: strPtr("example.com"),
		},
		{
			name: "no required role skips the access token",
			tokens: func(t *testing.T) RawTokenSet {
				return RawTokenSet{
					AccessToken: "not-a-token",
					IDToken:     idTokenWithEmail(t, "u@example.com"),
				}
			},
			config:         ProviderConfig{},
			expectedEmail:  "u@example.com",
			expectedDomain: strPtr("example.com"),
		},
		{
			name: "hosted domain policy",
			tokens: func(t *testing.T) RawTokenSet {
				return RawTokenSet{
					IDToken: testToken(t, jwt.MapClaims{"email": "u@gmail.com", "hd": "corp.com"}),
				}
			},
			config:         ProviderConfig{DomainPolicy: ClaimDomainPolicy{Version: "v2"}},
			expectedEmail:  "u@gmail.com",
			expectedDomain: strPtr("corp.com"),
		},
		{
			name: "hosted domain policy without hd",
			tokens: func(t *testing.T) RawTokenSet {
				return RawTokenSet{
					IDToken: idTokenWithEmail(t, "u@gmail.com"),
				}
			},
			config:         ProviderConfig{DomainPolicy: ClaimDomainPolicy{Version: "v2"}},
			expectedEmail:  "u@gmail.com",
			expectedDomain: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockTracer, mockMonitor, mockLogger := setupServiceMocks(ctrl)
			mockMonitor.EXPECT().IncAuthAttemptsMetric(attemptTags("success", "")).Return(nil)

			s := NewService(mockTracer, mockMonitor, mockLogger)

			result, err := s.ProcessAuthResponse(context.Background(), "keycloak", tt.tokens(t), tt.config)
			require.NoError(t, err)

			assert.Equal(t, tt.expectedEmail, result.Email)
			assert.Equal(t, tt.expectedDomain, result.Domain)
			assert.Equal(t, tt.expectedEmail, result.RawClaims["email"])
		})
	}
}

func TestService_ProcessAuthResponseFailures(t *testing.T) {
	tests := []struct {
		name         string
		tokens       func(*testing.T) RawTokenSet
		config       ProviderConfig
		expectedStep Step
		expectedKind error
	}{
		{
			name: "required role not granted",
			tokens: func(t *testing.T) RawTokenSet {
				return RawTokenSet{
					AccessToken: accessTokenWithRoles(t, "admin"),
					IDToken:     idTokenWithEmail(t, "u@example.com"),
				}
			},
			config:       ProviderConfig{RequiredRole: "owner"},
			expectedStep: StepAccessToken,
			expectedKind: ErrMissingRequiredRole,
		},
		{
			name: "malformed access token",
			tokens: func(t *testing.T) RawTokenSet {
				return RawTokenSet{
					AccessToken: "abc",
					IDToken:     idTokenWithEmail(t, "u@example.com"),
				}
			},
			config:       ProviderConfig{RequiredRole: "admin"},
			expectedStep: StepAccessToken,
			expectedKind: ErrInvalidAccessToken,
		},
		{
			name: "access token without resource_access",
			tokens: func(t *testing.T) RawTokenSet {
				return RawTokenSet{
					AccessToken: testToken(t, jwt.MapClaims{"sub": "8d2c0c1e"}),
					IDToken:     idTokenWithEmail(t, "u@example.com"),
				}
			},
			config:       ProviderConfig{RequiredRole: "admin"},
			expectedStep: StepAccessToken,
			expectedKind: ErrInvalidAccessToken,
		},
		{
			name: "malformed id token",
			tokens: func(t *testing.T) RawTokenSet {
				return RawTokenSet{IDToken: "header.!!!.signature"}
			},
			expectedStep: StepIDToken,
			expectedKind: ErrInvalidIDToken,
		},
		{
			name: "empty id token",
			tokens: func(t *testing.T) RawTokenSet {
				return RawTokenSet{}
			},
			expectedStep: StepIDToken,
			expectedKind: ErrInvalidIDToken,
		},
		{
			name: "id token without email",
			tokens: func(t *testing.T) RawTokenSet {
				return RawTokenSet{IDToken: testToken(t, jwt.MapClaims{"sub": "8d2c0c1e"})}
			},
			expectedStep: StepBinding,
			expectedKind: ErrMissingEmail,
		},
		{
			name: "hd not a string",
			tokens: func(t *testing.T) RawTokenSet {
				return RawTokenSet{IDToken: testToken(t, jwt.MapClaims{"email": "u@example.com", "hd": true})}
			},
			config:       ProviderConfig{DomainPolicy: ClaimDomainPolicy{Version: "v2"}},
			expectedStep: StepBinding,
			expectedKind: ErrInvalidIDToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockTracer, mockMonitor, mockLogger := setupServiceMocks(ctrl)
			mockMonitor.EXPECT().IncAuthAttemptsMetric(attemptTags("failure", string(tt.expectedStep))).Return(nil)

			s := NewService(mockTracer, mockMonitor, mockLogger)

			result, err := s.ProcessAuthResponse(context.Background(), "keycloak", tt.tokens(t), tt.config)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.expectedKind)

			var authErr *AuthError
			require.True(t, errors.As(err, &authErr))
			assert.Equal(t, tt.expectedStep, authErr.Step)
			assert.Equal(t, tt.expectedKind, authErr.Kind)
		})
	}
}

func TestService_ProcessAuthResponseDoesNotLeakTokenContents(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTracer, mockMonitor, mockLogger := setupServiceMocks(ctrl)
	mockMonitor.EXPECT().IncAuthAttemptsMetric(attemptTags("failure", string(StepBinding))).Return(nil)

	s := NewService(mockTracer, mockMonitor, mockLogger)

	tokens := RawTokenSet{IDToken: testToken(t, jwt.MapClaims{"email": "", "secret": "s3cr3t"})}

	_, err := s.ProcessAuthResponse(context.Background(), "keycloak", tokens, ProviderConfig{})
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "s3cr3t")
	assert.Equal(t, "authentication failed at binding: missing email", err.Error())
}

func TestService_ProcessAuthResponseMetricFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTracer, mockMonitor, mockLogger := setupServiceMocks(ctrl)
	mockMonitor.EXPECT().IncAuthAttemptsMetric(gomock.Any()).Return(errors.New("label mismatch"))

	s := NewService(mockTracer, mockMonitor, mockLogger)

	tokens := RawTokenSet{IDToken: idTokenWithEmail(t, "u@example.com")}

	result, err := s.ProcessAuthResponse(context.Background(), "keycloak", tokens, ProviderConfig{})
	require.NoError(t, err)
	assert.Equal(t, "u@example.com", result.Email)
}

func TestAuthErrorReason(t *testing.T) {
	tests := []struct {
		kind     error
		expected string
	}{
		{ErrInvalidAccessToken, "invalid_access_token"},
		{ErrMissingRequiredRole, "missing_required_role"},
		{ErrInvalidIDToken, "invalid_id_token"},
		{ErrMissingEmail, "missing_email"},
		{errors.New("boom"), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, newAuthError(StepBinding, tt.kind).Reason())
		})
	}
}
