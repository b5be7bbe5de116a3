// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/canonical/identity-binder/pkg/claims"
)

var decodeCmd = &cobra.Command{
	Use:   "decode <token>",
	Short: "Print the payload of a compact token",
	Long:  `Print the payload of a compact token as indented JSON, the signature is not verified`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := claims.Decode(args[0])
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")

		return enc.Encode(c)
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
}
