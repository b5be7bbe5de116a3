// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

// EnvSpec is the basic environment configuration setup needed for the app to start
type EnvSpec struct {
	OtelGRPCEndpoint string `envconfig:"otel_grpc_endpoint"`
	OtelHTTPEndpoint string `envconfig:"otel_http_endpoint"`
	TracingEnabled   bool   `envconfig:"tracing_enabled" default:"true"`

	LogLevel string `envconfig:"log_level" default:"error"`
	Debug    bool   `envconfig:"debug" default:"false"`

	Port int `envconfig:"port" default:"8080"`

	CORSAllowedOrigins []string `envconfig:"cors_allowed_origins" default:"*"`

	// ProvidersFile points to a YAML file with the identity provider definitions,
	// when empty a single provider is built from the variables below
	ProvidersFile string `envconfig:"providers_file"`

	ProviderName  string   `envconfig:"provider_name" default:"oidc"`
	Issuer        string   `envconfig:"issuer"`
	RequiredRole  string   `envconfig:"required_role"`
	DomainVersion *string  `envconfig:"domain_version"`
	Domains       []string `envconfig:"domains"`
}

// DefaultProvider is the single provider described by the environment.
func (s *EnvSpec) DefaultProvider() ProviderSpec {
	return ProviderSpec{
		Name:         s.ProviderName,
		Issuer:       s.Issuer,
		RequiredRole: s.RequiredRole,
		Version:      s.DomainVersion,
		Domains:      s.Domains,
	}
}
