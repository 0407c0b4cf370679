// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command defines the CLI command set for assetq. It wires flags,
// validators, actions, and shell completion for subcommands. The query
// commands (aq, oq, spq) share one action: load the source, compile the
// clauses into a single filtering pass, sort and render.
package command
