// SPDX-FileCopyrightText: 2025 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"netanon/internal/intanon"
)

var (
	uint64Passphrase string
	uint64Lex        bool
)

var uint64Cmd = &cobra.Command{
	Use:   "uint64 lower upper file",
	Short: "Range-constrained pseudonymization of unsigned 64-bit integers",
	Args:  cobra.ExactArgs(3),
	RunE:  runUint64,
}

func init() {
	uint64Cmd.Flags().StringVarP(&uint64Passphrase, "passphrase", "p", "",
		"use this passphrase as key material (unused: the uint64 engine draws pseudonyms independently of the key)")
	uint64Cmd.Flags().BoolVarP(&uint64Lex, "lex", "l", false,
		"also preserve numeric order across the input set")
	RootCmd.AddCommand(uint64Cmd)
}

func runUint64(cmd *cobra.Command, args []string) error {
	lower, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("lower bound must be a number: %w", err)
	}
	upper, err := strconv.ParseUint(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("upper bound must be a number: %w", err)
	}
	path := args[2]

	lines, err := readLines(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	values := make([]uint64, 0, len(lines))
	for _, line := range lines {
		n, err := strconv.ParseUint(line, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		values = append(values, n)
	}

	engine := intanon.NewUint64(lower, upper, nil)
	defer engine.Delete()

	if uint64Lex {
		for _, n := range values {
			engine.SetUsed(n)
		}
		for _, n := range values {
			fmt.Println(engine.MapLex(n))
		}
	} else {
		for _, n := range values {
			fmt.Println(engine.Map(n))
		}
	}
	return nil
}
