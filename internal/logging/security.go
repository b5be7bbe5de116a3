// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// SecurityLogger emits security events in a fixed shape so they can be
// filtered out of the application log stream.
type SecurityLogger struct {
	l *zap.Logger
}

func newSecurityLogger(l *zap.Logger) *SecurityLogger {
	return &SecurityLogger{l: l.With(zap.String("type", "security"))}
}

func (s *SecurityLogger) event(event, description string, fields ...zap.Field) {
	s.l.Warn(description, append(fields, zap.String("event", event))...)
}

// AuthnSuccess records a successful login through an identity provider.
func (s *SecurityLogger) AuthnSuccess(provider, user string) {
	s.event(
		fmt.Sprintf("authn_login_success:%s", user),
		fmt.Sprintf("user %s logged in through %s", user, provider),
		zap.String("provider", provider),
	)
}

// AuthnFailure records a rejected login. reason must not carry token contents.
func (s *SecurityLogger) AuthnFailure(provider, reason string) {
	s.event(
		fmt.Sprintf("authn_login_fail:%s", provider),
		fmt.Sprintf("login through %s rejected: %s", provider, reason),
		zap.String("provider", provider),
		zap.String("reason", reason),
	)
}

func (s *SecurityLogger) AuthzFailure(user, resource string) {
	s.event(
		fmt.Sprintf("authz_fail:%s,%s", user, resource),
		fmt.Sprintf("user %s attempted to access %s without entitlement", user, resource),
	)
}

func (s *SecurityLogger) SystemStartup() {
	s.event("sys_startup", "service started")
}

func (s *SecurityLogger) SystemShutdown() {
	s.event("sys_shutdown", "service stopped")
}
