// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// punctuation folds visually similar quote and dash characters to ASCII.
var punctuation = strings.NewReplacer(
	"„", `"`, // „ double low-9
	"“", `"`, // “
	"”", `"`, // ”
	"‘", "'", // ‘
	"’", "'", // ’
	"`", "'",
	"´", "'", // ´ acute accent
	"–", "-", // – en dash
	"‐", "-", // ‐ hyphen
	"‑", "-", // ‑ non-breaking hyphen
	"‒", "-", // ‒ figure dash
	"—", "-", // — em dash
)

// Normalize folds quote and dash look-alikes in s to their ASCII form. Only
// query text is normalized; stored values are expected in ASCII already.
func Normalize(s string) string {
	return punctuation.Replace(s)
}

// query is a clause operand read once in every domain, so a wildcard scan can
// interpret it per column without parsing per row.
type query struct {
	raw  string
	text string // normalized and lowercased

	number    decimal.Decimal
	numberOK  bool
	percent   Percent
	percentOK bool
	date      time.Time
	dateOK    bool
	count     int64
	countOK   bool

	regex *regexp.Regexp
}

func parseQuery(raw string) *query {
	q := &query{
		raw:  raw,
		text: strings.ToLower(Normalize(raw)),
	}
	q.number, q.numberOK = ParseDecimal(raw)
	q.percent, q.percentOK = parsePercent(raw)
	q.date, q.dateOK = ParseDate(raw)
	if n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err == nil && n >= 0 {
		q.count, q.countOK = n, true
	}
	return q
}

// compileRegex prepares q for REGEX. The pattern is normalized but keeps its
// case; matching is case-insensitive through the (?i) flag.
func (q *query) compileRegex() error {
	re, err := regexp.Compile("(?i)" + Normalize(q.raw))
	if err != nil {
		return err
	}
	q.regex = re
	return nil
}

// queryFromValue builds the operand of a _COLUMN operator from the value of
// the referenced column. The typed fields come from the value itself rather
// than its rendering, so dates keep their seconds and numbers their precision.
func queryFromValue(v Value) *query {
	q := parseQuery(v.String())
	switch v.domain {
	case DomainNumber, DomainPercent:
		q.number, q.numberOK = v.num, true
		q.percent, q.percentOK = v.Percent(), true
	case DomainDate:
		q.date, q.dateOK = v.date, true
	}
	return q
}
