// SPDX-FileCopyrightText: 2025 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"

	"netanon/internal/anonkey"
)

// Clock is the wall-clock source used to time the -c resource-usage
// report on ipv4/ipv6. Overridable in tests, the same pattern the
// teacher uses for injecting time.
var Clock clock.Clock = clock.New()

// readLines reads path one line at a time, trimming surrounding
// whitespace and skipping blank lines, matching the original tool's
// fgets+trim input loop.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// buildKey returns a key derived from passphrase, or a random key if
// passphrase is empty.
func buildKey(passphrase string) *anonkey.Key {
	k := anonkey.New()
	if passphrase != "" {
		k.SetPassphrase([]byte(passphrase))
		return k
	}
	if err := k.SetRandom(nil); err != nil {
		panic("anon: failed to seed a random key: " + err.Error())
	}
	return k
}

// printResourceUsage reports CPU time, wall-clock elapsed time since
// start, the count of values mapped, and the trie node count,
// matching the original's -c flag on the ipv4 and ipv6 subcommands.
func printResourceUsage(start time.Time, count, nodes int) {
	var r syscall.Rusage
	if err := syscall.Getrusage(syscall.RUSAGE_SELF, &r); err == nil {
		fmt.Fprintf(os.Stderr, "anon: user time in seconds:\t%d.%06d\n",
			r.Utime.Sec, r.Utime.Usec)
	}
	fmt.Fprintf(os.Stderr, "anon: wall time in seconds:\t%.6f\n", Clock.Since(start).Seconds())
	fmt.Fprintf(os.Stderr, "anon: number of addresses:\t%d\n", count)
	fmt.Fprintf(os.Stderr, "anon: number of tree nodes:\t%d\n", nodes)
}
