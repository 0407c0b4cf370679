// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package clauses

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/tfctl/assetq/internal/filters"
)

var groupRE = regexp.MustCompile(`^(\d+)(?::(\S+))?$`)

var shortOperators = map[string]filters.Operator{
	"=":  filters.Equals,
	"==": filters.Equals,
	"!=": filters.EqualsNot,
	"~":  filters.Contains,
	"!~": filters.ContainsNot,
	">":  filters.GreaterThan,
	"<":  filters.LessThan,
	"/":  filters.Regex,
}

// ParseOperator resolves an operator name or short form.
func ParseOperator(s string) (filters.Operator, error) {
	if op, ok := shortOperators[s]; ok {
		return op, nil
	}
	return filters.ParseOperator(s)
}

// ParseWhere parses one --where spec. grouped reports whether the spec named
// its group.
func ParseWhere(spec string) (c filters.Clause, grouped bool, err error) {
	c.Enabled = true

	s := strings.TrimSpace(spec)
	if strings.HasPrefix(s, "#") {
		c.Enabled = false
		s = s[1:]
	}

	tok, rest := next(s)
	if m := groupRE.FindStringSubmatch(tok); m != nil {
		g, err := strconv.Atoi(m[1])
		if err != nil {
			return c, false, fmt.Errorf("invalid group in %q: %w", spec, err)
		}
		c.Group = g
		grouped = true
		if m[2] != "" {
			if c.Logic, err = filters.ParseLogic(m[2]); err != nil {
				return c, false, fmt.Errorf("%q: %w", spec, err)
			}
		}
		tok, rest = next(rest)
	}

	if tok == "" {
		return c, false, fmt.Errorf("missing column in %q", spec)
	}
	c.Column = tok

	tok, rest = next(rest)
	if tok == "" {
		return c, false, fmt.Errorf("missing operator in %q", spec)
	}
	if c.Operator, err = ParseOperator(tok); err != nil {
		return c, false, fmt.Errorf("%q: %w", spec, err)
	}

	if rest != "" {
		c.Value = filters.Text(unquote(rest))
	}
	return c, grouped, nil
}

// next splits off the first whitespace separated token.
func next(s string) (tok, rest string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i:])
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		if u, err := strconv.Unquote(s); err == nil {
			return u
		}
	}
	return s
}
