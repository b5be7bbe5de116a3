// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ProviderSpec describes one identity provider as written in the providers file.
type ProviderSpec struct {
	Name         string `yaml:"name" validate:"required,hostname_rfc1123"`
	Issuer       string `yaml:"issuer"`
	RequiredRole string `yaml:"required_role"`
	// Version selects how the organization domain is derived: absent means
	// the email suffix, any value (even empty) means the hd claim.
	Version *string  `yaml:"version"`
	Domain  string   `yaml:"domain" validate:"omitempty,fqdn"`
	Domains []string `yaml:"domains" validate:"omitempty,dive,fqdn"`
}

// PermittedDomains returns the configured email domains, a single domain
// entry overrides the list.
func (p ProviderSpec) PermittedDomains() []string {
	if p.Domain != "" {
		return []string{p.Domain}
	}

	if p.Domains == nil {
		return []string{}
	}

	return p.Domains
}

type ProvidersFile struct {
	Providers []ProviderSpec `yaml:"providers" validate:"required,min=1,dive"`
}

// ParseProviders decodes and validates a providers file.
func ParseProviders(r io.Reader) ([]ProviderSpec, error) {
	f := new(ProvidersFile)

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(f); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("providers file is empty")
		}
		return nil, fmt.Errorf("failed to decode providers file: %w", err)
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(f); err != nil {
		return nil, fmt.Errorf("invalid providers file: %w", err)
	}

	seen := make(map[string]struct{}, len(f.Providers))
	for _, p := range f.Providers {
		if _, ok := seen[p.Name]; ok {
			return nil, fmt.Errorf("invalid providers file: duplicate provider %q", p.Name)
		}
		seen[p.Name] = struct{}{}
	}

	return f.Providers, nil
}

// LoadProviders reads the providers file at path.
func LoadProviders(path string) ([]ProviderSpec, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open providers file: %w", err)
	}
	defer fd.Close()

	return ParseProviders(fd)
}
