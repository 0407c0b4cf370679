// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package driller navigates dataset rows with dotted paths such as
// "location.station" or "fits[2].name". Dataset columns compile their path
// once and drill every row with it.
package driller
