// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package identity

import (
	"context"
)

type ServiceInterface interface {
	// ProcessAuthResponse turns the token set of an identity provider into an identity
	ProcessAuthResponse(ctx context.Context, provider string, tokens RawTokenSet, config ProviderConfig) (*IdentityResult, error)
}

type RegistryInterface interface {
	Get(name string) (*Provider, error)
	List() []string
}
