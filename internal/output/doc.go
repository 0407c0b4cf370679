// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output sorts filtered rows and renders them as a text table, JSON,
// YAML or the raw row documents.
package output
