// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/canonical/identity-binder/internal/monitoring"
	"github.com/canonical/identity-binder/internal/tracing"
	"github.com/canonical/identity-binder/pkg/identity"
)

var (
	bindIDToken      string
	bindAccessToken  string
	bindRequiredRole string
	bindVersion      string
	bindProvider     string
)

var bindCmd = &cobra.Command{
	Use:   "bind",
	Short: "Validate a token set and print the bound identity",
	Long: `Run the identity binding flow offline on a token set and print the resulting identity.
Without --version the domain is the email suffix, with it the domain comes from the hd claim.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var domainVersion *string
		if cmd.Flags().Changed("version") {
			domainVersion = &bindVersion
		}

		result, err := bind(cmd, domainVersion)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")

		return enc.Encode(result)
	},
}

func bind(cmd *cobra.Command, domainVersion *string) (*identity.IdentityResult, error) {
	logger := cliLogger()
	defer logger.Sync()

	service := identity.NewService(
		tracing.NewNoopTracer(),
		monitoring.NewNoopMonitor("identity-binder", logger),
		logger,
	)

	config := identity.ProviderConfig{
		RequiredRole: bindRequiredRole,
		DomainPolicy: identity.DomainPolicyFor(domainVersion),
	}

	tokens := identity.RawTokenSet{
		AccessToken: bindAccessToken,
		IDToken:     bindIDToken,
	}

	result, err := service.ProcessAuthResponse(cmd.Context(), bindProvider, tokens, config)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", identity.InvalidResponseMessage, err)
	}

	return result, nil
}

func init() {
	rootCmd.AddCommand(bindCmd)

	bindCmd.Flags().StringVar(&bindIDToken, "id-token", "", "ID token returned by the identity provider")
	bindCmd.Flags().StringVar(&bindAccessToken, "access-token", "", "access token returned by the identity provider")
	bindCmd.Flags().StringVar(&bindRequiredRole, "required-role", "", "role that must be granted in resource_access")
	bindCmd.Flags().StringVar(&bindVersion, "version", "", "derive the domain from the hd claim")
	bindCmd.Flags().StringVar(&bindProvider, "provider", "cli", "provider name used in logs")

	_ = bindCmd.MarkFlagRequired("id-token")
}
