// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package clauses turns user input into filter clauses. Clauses come from
// --where specs, clause files (YAML, JSON or HCL) and named sets in the
// config file.
//
// A --where spec is a whitespace separated line:
//
//	[G[:and|:or]] COLUMN OPERATOR [VALUE...]
//
// G is a group number and the optional suffix is the group's logic (and when
// omitted). VALUE is the rest of the line; wrap it in double quotes to keep
// surrounding spaces or to pass an empty value. Without VALUE the operand is
// absent. A leading # disables the clause. Specs without a group each get a
// group of their own, so they are ANDed with everything else.
//
// Operators are named as in the filters package in any case, with - or _
// between words, or with one of the short forms:
//
//	=  EQUALS        !=  EQUALS_NOT
//	~  CONTAINS      !~  CONTAINS_NOT
//	>  GREATER_THAN  <   LESS_THAN
//	/  REGEX
//
// HCL clause files are evaluated with the variables now (RFC3339) and today
// (2006-01-02) set to the reference instant of the pass, plus a few
// functions such as timeadd and formatdate:
//
//	clause {
//	  column   = "issued"
//	  operator = "after"
//	  value    = timeadd(now, "-24h")
//	}
package clauses
