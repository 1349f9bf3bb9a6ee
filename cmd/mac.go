// SPDX-FileCopyrightText: 2025 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"netanon/internal/macanon"
)

var (
	macPassphrase string
	macLex        bool
)

var macCmd = &cobra.Command{
	Use:   "mac file",
	Short: "Prefix-preserving anonymization of IEEE 802 MAC addresses",
	Args:  cobra.ExactArgs(1),
	RunE:  runMAC,
}

func init() {
	macCmd.Flags().StringVarP(&macPassphrase, "passphrase", "p", "",
		"use this passphrase as key material (otherwise random)")
	macCmd.Flags().BoolVarP(&macLex, "lex", "l", false,
		"also preserve lexicographic order across the input set")
	RootCmd.AddCommand(macCmd)
}

func runMAC(cmd *cobra.Command, args []string) error {
	path := args[0]
	lines, err := readLines(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	macs := make([][6]byte, 0, len(lines))
	for _, line := range lines {
		m, err := macanon.Parse(line)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		macs = append(macs, m)
	}

	engine := macanon.New()
	defer engine.Delete()
	key := buildKey(macPassphrase)
	defer key.Delete()
	engine.SetKey(key)

	if macLex {
		for _, m := range macs {
			engine.SetUsed(m)
		}
		for _, m := range macs {
			fmt.Println(macanon.String(engine.MapLex(m)))
		}
	} else {
		for _, m := range macs {
			fmt.Println(macanon.String(engine.Map(m)))
		}
	}
	return nil
}
