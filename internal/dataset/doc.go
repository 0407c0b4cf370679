// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package dataset knows the supported dataset kinds (assets, market orders
// and stockpiles), their default column schemas, and how to decode a raw
// JSON or YAML document into rows.
//
// Rows are gjson.Result values. Columns drill into each row with a dotted
// path and convert what they find into the column's domain:
//
//   - number: JSON numbers, or strings that parse as numbers
//   - percent: JSON numbers are fractions (0.45 is 45%), strings are
//     percentages with an optional "%" ("45%" is 45%)
//   - date: strings in one of the supported date layouts, or JSON numbers
//     as Unix seconds
//   - text: the raw string, or the JSON rendering for other types
//
// A missing path or a JSON null is an absent value.
package dataset
