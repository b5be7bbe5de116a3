// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package identity

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func testToken(t *testing.T, c jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, c).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to build token: %v", err)
	}

	return token
}

func accessTokenWithRoles(t *testing.T, roles ...string) string {
	t.Helper()

	granted := make([]interface{}, 0, len(roles))
	for _, r := range roles {
		granted = append(granted, r)
	}

	return testToken(t, jwt.MapClaims{
		"resource_access": map[string]interface{}{
			"account": map[string]interface{}{"roles": []interface{}{"view-profile"}},
			"sentry":  map[string]interface{}{"roles": granted},
		},
	})
}

func idTokenWithEmail(t *testing.T, email string) string {
	t.Helper()

	return testToken(t, jwt.MapClaims{"email": email, "sub": "8d2c0c1e"})
}

func strPtr(s string) *string {
	return &s
}
