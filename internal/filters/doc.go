// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters is the row-filtering engine used by every assetq query.
//
// A filter is a list of structured clauses. Each clause names a column, an
// operator and an operand, and belongs to a numbered group:
//
//	group 1 OR   name     EQUALS       Tritanium
//	group 1 OR   name     EQUALS       Pyerite
//	group 2 AND  price    GREATER_THAN 4.5
//	group 3 AND  *        CONTAINS     Jita
//
// Clauses in a group are ORed or ANDed according to the group's logic and the
// groups themselves are always ANDed. Disabled clauses are dropped before
// grouping.
//
// Columns:
//
// A Column exposes a value domain (text, number, date, percent), an extractor
// and a comparator. Columns are registered in a Table. The wildcard column
// AllColumns ("*") matches a row when any concrete column of the table
// matches; negated operators on the wildcard match when no column matches
// the positive form.
//
// Operators:
//
//   - EQUALS, EQUALS_NOT : domain equality (percent at hundredths of a percent)
//   - EQUALS_DATE, EQUALS_NOT_DATE : same calendar day (UTC)
//   - CONTAINS, CONTAINS_NOT : case-insensitive substring of the rendering
//   - REGEX : case-insensitive regular expression found in the rendering
//   - BEFORE, AFTER : date ordering
//   - GREATER_THAN, LESS_THAN : number and percent ordering
//   - LAST_HOURS, LAST_DAYS : date within N hours/days of the pass time
//   - *_COLUMN : the operand is another column of the same row
//
// Query text typed by a user is folded before comparison so that curly quotes,
// accents and the dash family match their ASCII counterparts.
//
// Absent values:
//
// A row whose tested value is absent never matches. A present value tested
// against an absent operand yields a fixed per-operator answer (see
// Operator.AbsentResult). The wildcard column with an absent operand matches
// everything.
//
// Passes:
//
// A Pass captures the reference time once and compiles the clauses. Filter
// and FilterParallel apply it to a slice of rows. Matching never fails; all
// configuration problems are reported when the pass is compiled.
package filters
