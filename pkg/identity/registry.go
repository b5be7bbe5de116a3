// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package identity

import (
	"fmt"
	"sort"
	"sync"
)

// Provider is an identity provider instance known to the host.
type Provider struct {
	Name string
	// Issuer is the display name of the identity issuer
	Issuer  string
	Domains []string
	Config  ProviderConfig
}

// Configuration returns the data needed to render the provider settings.
func (p *Provider) Configuration() *ProviderConfiguration {
	domains := p.Domains
	if domains == nil {
		domains = []string{}
	}

	return &ProviderConfiguration{
		ProviderName: p.Issuer,
		Domains:      domains,
	}
}

// Registry maps provider names to providers. It is populated at startup and
// read concurrently afterwards.
type Registry struct {
	providers map[string]*Provider

	mu sync.RWMutex
}

func (r *Registry) Register(p *Provider) error {
	if p == nil || p.Name == "" {
		return fmt.Errorf("provider name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.providers[p.Name]; ok {
		return fmt.Errorf("%w: %s", ErrProviderExists, p.Name)
	}

	r.providers[p.Name] = p

	return nil
}

// Replace swaps the whole provider set, nothing changes when providers is invalid.
func (r *Registry) Replace(providers []*Provider) error {
	next := make(map[string]*Provider, len(providers))

	for _, p := range providers {
		if p == nil || p.Name == "" {
			return fmt.Errorf("provider name is required")
		}

		if _, ok := next[p.Name]; ok {
			return fmt.Errorf("%w: %s", ErrProviderExists, p.Name)
		}

		next[p.Name] = p
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.providers = next

	return nil
}

func (r *Registry) Get(name string) (*Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
	}

	return p, nil
}

// List returns the registered provider names in lexical order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func NewRegistry() *Registry {
	r := new(Registry)
	r.providers = make(map[string]*Provider)

	return r
}
