// SPDX-FileCopyrightText: 2022 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

// Package cmd handles the command-line interface for anon, the
// network-trace pseudonymization tool.
package cmd

import (
	"github.com/spf13/cobra"

	"netanon/common/logging"
)

var debug bool

// RootCmd is the root for all subcommands.
var RootCmd = &cobra.Command{
	Use:   "anon",
	Short: "Deterministic pseudonymization for network trace identifiers",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(debug)
	},
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false,
		"enable debug logs")
}
