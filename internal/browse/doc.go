// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package browse shows filtered rows in an interactive table. Typing after /
// narrows the rows to those where any column contains the typed text, on top
// of the clauses the rows were already filtered with.
package browse
