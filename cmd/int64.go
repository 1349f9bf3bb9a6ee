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
	int64Passphrase string
	int64Lex        bool
)

var int64Cmd = &cobra.Command{
	Use:   "int64 lower upper file",
	Short: "Range-constrained pseudonymization of signed 64-bit integers",
	Args:  cobra.ExactArgs(3),
	RunE:  runInt64,
}

func init() {
	int64Cmd.Flags().StringVarP(&int64Passphrase, "passphrase", "p", "",
		"use this passphrase as key material (unused: the int64 engine draws pseudonyms independently of the key)")
	int64Cmd.Flags().BoolVarP(&int64Lex, "lex", "l", false,
		"also preserve numeric order across the input set")
	RootCmd.AddCommand(int64Cmd)
}

func runInt64(cmd *cobra.Command, args []string) error {
	lower, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("lower bound must be a number: %w", err)
	}
	upper, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("upper bound must be a number: %w", err)
	}
	path := args[2]

	lines, err := readLines(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	values := make([]int64, 0, len(lines))
	for _, line := range lines {
		n, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		values = append(values, n)
	}

	engine := intanon.NewInt64(lower, upper, nil)
	defer engine.Delete()

	if int64Lex {
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
