// SPDX-FileCopyrightText: 2025 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"netanon/internal/anonkey"
)

var keyCmd = &cobra.Command{
	Use:   "key file",
	Short: "Print hex-encoded key material derived from passphrases in file",
	Args:  cobra.ExactArgs(1),
	RunE:  runKey,
}

func init() {
	RootCmd.AddCommand(keyCmd)
}

func runKey(cmd *cobra.Command, args []string) error {
	path := args[0]
	lines, err := readLines(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	for _, passphrase := range lines {
		k := anonkey.New()
		k.SetPassphrase([]byte(passphrase))
		secret, pad := k.Bytes()
		fmt.Println(hex.EncodeToString(secret[:]) + hex.EncodeToString(pad[:]))
		k.Delete()
	}
	return nil
}
