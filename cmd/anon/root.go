// SPDX-FileCopyrightText: 2022 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

// Command anon pseudonymizes network trace identifiers: IPv4/IPv6
// addresses, MAC addresses, signed and unsigned 64-bit integers, and
// octet strings.
package main

import (
	"fmt"
	"os"

	"netanon/cmd"
)

func main() {
	if err := cmd.RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "anon: %+v\n", err)
		os.Exit(1)
	}
}
