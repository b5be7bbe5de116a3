// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package identity

import (
	"github.com/canonical/identity-binder/pkg/claims"
)

// RawTokenSet is the token response already fetched from the identity provider.
type RawTokenSet struct {
	AccessToken string `json:"access_token"`
	IDToken     string `json:"id_token" validate:"required"`
}

// ProviderConfig drives the checks applied to a token set.
type ProviderConfig struct {
	// RequiredRole, when set, must be granted by at least one resource
	// in the access token resource_access claim
	RequiredRole string
	// DomainPolicy derives the organization domain, nil means LegacyDomainPolicy
	DomainPolicy DomainPolicy
}

// IdentityResult is the normalized identity bound to the host session.
type IdentityResult struct {
	Email     string        `json:"email"`
	Domain    *string       `json:"domain"`
	RawClaims claims.Claims `json:"raw_claims"`
}

// ProviderConfiguration is what a settings page needs to render a provider.
type ProviderConfiguration struct {
	ProviderName string   `json:"provider_name"`
	Domains      []string `json:"domains"`
}

type Response struct {
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
	Status  int         `json:"status"`
}
