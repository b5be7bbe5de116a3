// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package identity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/canonical/identity-binder/pkg/claims"
)

const hostedDomainClaim = "hd"

// DomainPolicy derives the organization domain of a user, it is picked once
// per provider.
type DomainPolicy interface {
	// Domain returns nil when the policy yields no domain.
	Domain(email string, c claims.Claims) (*string, error)
	Name() string
}

// LegacyDomainPolicy uses everything after the last "@" of the email,
// or the whole email when there is none.
type LegacyDomainPolicy struct{}

func (LegacyDomainPolicy) Name() string {
	return "legacy"
}

func (LegacyDomainPolicy) Domain(email string, _ claims.Claims) (*string, error) {
	domain := email[strings.LastIndex(email, "@")+1:]
	return &domain, nil
}

// ClaimDomainPolicy reads the domain from a token claim, hd unless Claim is set.
// A missing claim is not an error: whether a user without domain may log in
// is up to the host domain allow list.
type ClaimDomainPolicy struct {
	Version string
	Claim   string
}

func (p ClaimDomainPolicy) Name() string {
	return fmt.Sprintf("claim:%s", p.claim())
}

func (p ClaimDomainPolicy) claim() string {
	if p.Claim == "" {
		return hostedDomainClaim
	}

	return p.Claim
}

func (p ClaimDomainPolicy) Domain(_ string, c claims.Claims) (*string, error) {
	domain, err := c.GetString(p.claim())
	if errors.Is(err, claims.ErrClaimNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIDToken, err)
	}

	return &domain, nil
}

// DomainPolicyFor maps the provider version setting to a policy: no version
// keeps the legacy email based domains.
func DomainPolicyFor(version *string) DomainPolicy {
	if version == nil {
		return LegacyDomainPolicy{}
	}

	return ClaimDomainPolicy{Version: *version}
}
