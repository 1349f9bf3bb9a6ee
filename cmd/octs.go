// SPDX-FileCopyrightText: 2025 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"netanon/internal/octanon"
)

var (
	octsPassphrase string
	octsLex        bool
)

var octsCmd = &cobra.Command{
	Use:   "octs file",
	Short: "Character-class-preserving anonymization of octet strings",
	Args:  cobra.ExactArgs(1),
	RunE:  runOcts,
}

func init() {
	octsCmd.Flags().StringVarP(&octsPassphrase, "passphrase", "p", "",
		"use this passphrase as key material (unused: the octet-string engine draws pseudonyms independently of the key)")
	octsCmd.Flags().BoolVarP(&octsLex, "lex", "l", false,
		"also preserve lexicographic order across the input set")
	RootCmd.AddCommand(octsCmd)
}

func runOcts(cmd *cobra.Command, args []string) error {
	path := args[0]
	lines, err := readLines(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	engine := octanon.New(nil)
	defer engine.Delete()

	if octsLex {
		for _, s := range lines {
			engine.SetUsed(s)
		}
		for _, s := range lines {
			fmt.Println(engine.MapLex(s))
		}
	} else {
		for _, s := range lines {
			fmt.Println(engine.Map(s))
		}
	}
	return nil
}
