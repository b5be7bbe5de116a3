// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/canonical/identity-binder/internal/logging"
)

var logLevel string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:          "identity-binder",
	Short:        "Identity Binder",
	Long:         `Identity Binder validates OIDC token responses and binds them to an email identity.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level for offline commands, logging is disabled when empty")
}

func cliLogger() logging.LoggerInterface {
	if logLevel == "" {
		return logging.NewNoopLogger()
	}

	return logging.NewLogger(logLevel)
}
