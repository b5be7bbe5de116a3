// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package identity

import (
	"fmt"

	"github.com/canonical/identity-binder/pkg/claims"
)

const emailClaim = "email"

// BindIdentity extracts the normalized identity out of decoded ID token claims.
func BindIdentity(c claims.Claims, policy DomainPolicy) (*IdentityResult, error) {
	email, err := c.GetString(emailClaim)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingEmail, err)
	}

	if email == "" {
		return nil, fmt.Errorf("%w: email claim is empty", ErrMissingEmail)
	}

	if policy == nil {
		policy = LegacyDomainPolicy{}
	}

	domain, err := policy.Domain(email, c)
	if err != nil {
		return nil, err
	}

	return &IdentityResult{
		Email:     email,
		Domain:    domain,
		RawClaims: c,
	}, nil
}
