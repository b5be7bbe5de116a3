// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"github.com/canonical/identity-binder/internal/config"
	"github.com/canonical/identity-binder/pkg/identity"
)

// loadProviders reads the providers file when one is configured, otherwise the
// environment describes a single provider.
func loadProviders(specs *config.EnvSpec) ([]config.ProviderSpec, error) {
	if specs.ProvidersFile != "" {
		return config.LoadProviders(specs.ProvidersFile)
	}

	return []config.ProviderSpec{specs.DefaultProvider()}, nil
}

func newProviders(specs []config.ProviderSpec) []*identity.Provider {
	providers := make([]*identity.Provider, 0, len(specs))

	for _, p := range specs {
		providers = append(
			providers,
			&identity.Provider{
				Name:    p.Name,
				Issuer:  p.Issuer,
				Domains: p.PermittedDomains(),
				Config: identity.ProviderConfig{
					RequiredRole: p.RequiredRole,
					DomainPolicy: identity.DomainPolicyFor(p.Version),
				},
			},
		)
	}

	return providers
}

func newRegistry(specs []config.ProviderSpec) (*identity.Registry, error) {
	registry := identity.NewRegistry()

	if err := registry.Replace(newProviders(specs)); err != nil {
		return nil, err
	}

	return registry, nil
}

// reloadRegistry keeps registry in sync with later edits of the providers file.
func reloadRegistry(registry *identity.Registry) func([]config.ProviderSpec) error {
	return func(specs []config.ProviderSpec) error {
		return registry.Replace(newProviders(specs))
	}
}
