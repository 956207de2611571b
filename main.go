// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tfctl/keydiff/internal/cacheutil"
	"github.com/tfctl/keydiff/internal/command"
	"github.com/tfctl/keydiff/internal/config"
	"github.com/tfctl/keydiff/internal/log"
	"github.com/tfctl/keydiff/internal/version"
)

var ctx = context.Background()

// boolFlags never take a value, so the argument after them is positional.
var boolFlags = map[string]bool{
	"cache":          true,
	"c":              true,
	"color":          true,
	"empty-sections": true,
	"h":              true,
	"help":           true,
	"raw-diff":       true,
	"shuffle":        true,
	"t":              true,
	"time":           true,
	"titles":         true,
	"v":              true,
	"version":        true,
}

// valueFlags always consume the next argument, even one starting with "-"
// such as a descending sort key or a negative seed.
var valueFlags = map[string]bool{
	"cells":      true,
	"duplicates": true,
	"f":          true,
	"filter":     true,
	"iterations": true,
	"o":          true,
	"output":     true,
	"p":          true,
	"padding":    true,
	"pairs":      true,
	"passphrase": true,
	"path":       true,
	"pick":       true,
	"profile":    true,
	"raw-filter": true,
	"region":     true,
	"s":          true,
	"sections":   true,
	"seed":       true,
	"sort":       true,
	"values":     true,
	"workers":    true,
}

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.String())
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// processCommandArgs handles command-specific argument processing.
func processCommandArgs(args []string) []string {
	if len(args) > 1 && args[1] == "completion" {
		// Short-circuit completion: pass args directly.
		return args
	}

	args = processSetOnly(args)
	log.Debugf("args after set processing: args=%v", args)

	args = deduplicateFlags(args)
	log.Debugf("args after dedup: args=%v", args)
	return args
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	// Pre-create cache directory when caching is enabled.
	if _, ok, err := cacheutil.EnsureBaseDir(); err != nil && ok {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("cache ensure err: err=%v", err)
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip command processing and let the CLI handle it.
	helpFound := false
	for _, a := range args {
		if a == "--help" || a == "-h" {
			helpFound = true
			break
		}
	}

	if !helpFound {
		args = processCommandArgs(args)
	}

	return initAndRunApp(args)
}

// processSetOnly expands an @set argument into the <command>.<set> entries of
// the config file, in place.
func processSetOnly(args []string) []string {
	if len(args) < 3 {
		return args
	}

	for i, a := range args[2:] {
		if strings.HasPrefix(a, "@") && len(a) > 1 {
			idx := i + 2
			entries, _ := config.GetStringSlice(args[1] + "." + a[1:])
			if len(entries) == 0 {
				log.Warnf("set %s not found in config", a)
			}
			rest := append([]string{}, args[idx+1:]...)
			return injectConfigSet(args[:idx], entries, len(args[:idx]), rest...)
		}
	}
	return args
}

// injectConfigSet inserts the whitespace separated fields of entries at
// insertIdx. Any tail is appended after args.
func injectConfigSet(args []string, entries []string, insertIdx int, tail ...string) []string {
	var expanded []string
	for _, entry := range entries {
		expanded = append(expanded, strings.Fields(entry)...)
	}

	out := make([]string, 0, len(args)+len(expanded)+len(tail))
	out = append(out, args[:insertIdx]...)
	out = append(out, expanded...)
	out = append(out, args[insertIdx:]...)
	return append(out, tail...)
}

// deduplicateFlags drops earlier occurrences of a repeated flag, together
// with their value, so the last one wins. Positional arguments keep their
// order.
func deduplicateFlags(args []string) []string {
	if len(args) <= 2 {
		return args
	}

	type token struct {
		name  string
		parts []string
	}

	var tokens []token
	for i := 2; i < len(args); i++ {
		a := args[i]
		if !strings.HasPrefix(a, "-") || a == "-" {
			tokens = append(tokens, token{parts: []string{a}})
			continue
		}

		name := strings.TrimLeft(a, "-")
		if k, _, ok := strings.Cut(name, "="); ok {
			tokens = append(tokens, token{name: k, parts: []string{a}})
			continue
		}

		t := token{name: name, parts: []string{a}}
		takesValue := valueFlags[name] || (!boolFlags[name] && !strings.HasPrefix(argAt(args, i+1), "-"))
		if takesValue && i+1 < len(args) {
			t.parts = append(t.parts, args[i+1])
			i++
		}
		tokens = append(tokens, t)
	}

	last := map[string]int{}
	for i, t := range tokens {
		if t.name != "" {
			last[t.name] = i
		}
	}

	out := append([]string{}, args[:2]...)
	for i, t := range tokens {
		if t.name != "" && last[t.name] != i {
			continue
		}
		out = append(out, t.parts...)
	}
	return out
}

func argAt(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
