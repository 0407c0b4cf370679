// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/tfctl/assetq/internal/cacheutil"
	"github.com/tfctl/assetq/internal/command"
	"github.com/tfctl/assetq/internal/config"
	"github.com/tfctl/assetq/internal/log"
	"github.com/tfctl/assetq/internal/version"
)

var ctx = context.Background()

// repeatableFlags may appear more than once; every occurrence counts.
var repeatableFlags = []string{"--where", "-w"}

// booleanFlags never take the following argument as their value.
var booleanFlags = []string{
	"--browse", "-b", "--color", "-c", "--local", "-l", "--schema",
	"--titles", "-t", "--tldr", "--help", "-h",
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
	switch {
	case len(args) > 1 && (args[1] == "completion" || args[1] == "ops"):
		// Short-circuit: pass args directly.
		return args
	default:
		args = injectConfigSet(args, args[1]+".defaults", 2)
		log.Debugf("args after defaults: args=%v", args)
		return deduplicateFlags(args)
	}
}

// injectConfigSet splices the whitespace-split entries of the config list at
// key into args at insertIdx.
func injectConfigSet(args []string, key string, insertIdx int) []string {
	entries, _ := config.GetStringSlice(key)
	if len(entries) == 0 || insertIdx > len(args) {
		return args
	}

	var expanded []string
	for _, entry := range entries {
		expanded = append(expanded, strings.Fields(entry)...)
	}

	out := make([]string, 0, len(args)+len(expanded))
	out = append(out, args[:insertIdx]...)
	out = append(out, expanded...)
	return append(out, args[insertIdx:]...)
}

// deduplicateFlags drops earlier occurrences of a flag that appears more than
// once so the last one wins. This lets command line flags override injected
// defaults. A flag's value is the next argument unless the flag is boolean,
// uses the = form, or the next argument is itself a flag.
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

		name, _, hasValue := strings.Cut(a, "=")
		t := token{name: name, parts: []string{a}}
		if !hasValue && !slices.Contains(booleanFlags, name) &&
			i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
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
		if t.name != "" && !slices.Contains(repeatableFlags, t.name) && last[t.name] != i {
			continue
		}
		out = append(out, t.parts...)
	}
	return out
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	if cacheutil.Enabled() {
		hours, _ := config.GetInt("cache.purgeHours", 24*7)
		if err := cacheutil.Purge(time.Duration(hours) * time.Hour); err != nil {
			log.Debugf("cache purge err: err=%v", err)
		}
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
