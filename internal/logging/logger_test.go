// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDebugLogger(t *testing.T) {
	l := NewLogger("DEBUG")
	if !l.Desugar().Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("expected debug level to be enabled")
	}
}

func TestInvalidLevel(t *testing.T) {
	l := NewLogger("invalid")
	if l.Desugar().Core().Enabled(zapcore.WarnLevel) {
		t.Fatalf("expected invalid level to fall back to error")
	}
	if !l.Desugar().Core().Enabled(zapcore.ErrorLevel) {
		t.Fatalf("expected error level to be enabled")
	}
}

func TestNoopLoggerSecurity(t *testing.T) {
	l := NewNoopLogger()
	if l.Security() == nil {
		t.Fatalf("expected security logger")
	}
	l.Security().AuthnFailure("keycloak", "missing email")
	l.Security().AuthnSuccess("keycloak", "user@example.com")
}

func TestSecurityLoggerEvents(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := newSecurityLogger(zap.New(core))

	s.AuthnFailure("keycloak", "missing_required_role")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	fields := entries[0].ContextMap()
	if fields["event"] != "authn_login_fail:keycloak" {
		t.Errorf("unexpected event %v", fields["event"])
	}
	if fields["reason"] != "missing_required_role" {
		t.Errorf("unexpected reason %v", fields["reason"])
	}
	if fields["type"] != "security" {
		t.Errorf("unexpected type %v", fields["type"])
	}
}
