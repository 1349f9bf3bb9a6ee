// SPDX-FileCopyrightText: 2025 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

package cmd

import (
	"fmt"
	"net/netip"

	"github.com/spf13/cobra"

	"netanon/internal/ipanon"
)

var (
	ipv4Passphrase string
	ipv4Lex        bool
	ipv4ShowUsage  bool
)

var ipv4Cmd = &cobra.Command{
	Use:   "ipv4 file",
	Short: "Prefix-preserving anonymization of IPv4 addresses",
	Args:  cobra.ExactArgs(1),
	RunE:  runIPv4,
}

func init() {
	ipv4Cmd.Flags().StringVarP(&ipv4Passphrase, "passphrase", "p", "",
		"use this passphrase as key material (otherwise random)")
	ipv4Cmd.Flags().BoolVarP(&ipv4Lex, "lex", "l", false,
		"also preserve lexicographic order across the input set")
	ipv4Cmd.Flags().BoolVarP(&ipv4ShowUsage, "resource-usage", "c", false,
		"print resource usage and trie node count to stderr")
	RootCmd.AddCommand(ipv4Cmd)
}

func runIPv4(cmd *cobra.Command, args []string) error {
	start := Clock.Now()
	path := args[0]
	lines, err := readLines(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	addrs := make([]netip.Addr, 0, len(lines))
	for _, line := range lines {
		addr, err := ipanon.ParseAddr(line)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if !addr.Is4() {
			return fmt.Errorf("%s: %q is not an IPv4 address", path, line)
		}
		addrs = append(addrs, addr)
	}

	engine := ipanon.NewV4()
	defer engine.Delete()
	key := buildKey(ipv4Passphrase)
	defer key.Delete()
	engine.SetKey(key)

	if ipv4Lex {
		for _, a := range addrs {
			engine.SetUsed(a, 32)
		}
		for _, a := range addrs {
			fmt.Println(engine.MapLex(a))
		}
	} else {
		for _, a := range addrs {
			fmt.Println(engine.Map(a))
		}
	}

	if ipv4ShowUsage {
		printResourceUsage(start, len(addrs), engine.NodesCount())
	}
	return nil
}
