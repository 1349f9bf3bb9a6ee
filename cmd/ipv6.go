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
	ipv6Passphrase string
	ipv6Lex        bool
	ipv6ShowUsage  bool
)

var ipv6Cmd = &cobra.Command{
	Use:   "ipv6 file",
	Short: "Prefix-preserving anonymization of IPv6 addresses",
	Args:  cobra.ExactArgs(1),
	RunE:  runIPv6,
}

func init() {
	ipv6Cmd.Flags().StringVarP(&ipv6Passphrase, "passphrase", "p", "",
		"use this passphrase as key material (otherwise random)")
	ipv6Cmd.Flags().BoolVarP(&ipv6Lex, "lex", "l", false,
		"also preserve lexicographic order across the input set")
	ipv6Cmd.Flags().BoolVarP(&ipv6ShowUsage, "resource-usage", "c", false,
		"print resource usage and trie node count to stderr")
	RootCmd.AddCommand(ipv6Cmd)
}

func runIPv6(cmd *cobra.Command, args []string) error {
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
		if !addr.Is6() {
			return fmt.Errorf("%s: %q is not an IPv6 address", path, line)
		}
		addrs = append(addrs, addr)
	}

	engine := ipanon.NewV6()
	defer engine.Delete()
	key := buildKey(ipv6Passphrase)
	defer key.Delete()
	engine.SetKey(key)

	if ipv6Lex {
		for _, a := range addrs {
			engine.SetUsed(a, 128)
		}
		for _, a := range addrs {
			fmt.Println(engine.MapLex(a))
		}
	} else {
		for _, a := range addrs {
			fmt.Println(engine.Map(a))
		}
	}

	if ipv6ShowUsage {
		printResourceUsage(start, len(addrs), engine.NodesCount())
	}
	return nil
}
