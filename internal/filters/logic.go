// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Predicate decides whether a row is kept.
type Predicate interface {
	Matches(row any) bool
}

type group struct {
	id       int
	logic    Logic
	matchers []*Matcher
}

func (g *group) matches(row any) bool {
	if len(g.matchers) == 0 {
		return true
	}
	if g.logic == Or {
		for _, m := range g.matchers {
			if m.Matches(row) {
				return true
			}
		}
		return false
	}
	for _, m := range g.matchers {
		if !m.Matches(row) {
			return false
		}
	}
	return true
}

// Combinator reduces matchers to one row predicate. Matchers are partitioned
// by group in first-seen order, combined within a group by the group's logic,
// and groups are ANDed.
type Combinator struct {
	groups []*group
}

// NewCombinator groups matchers. Matchers of disabled clauses are dropped.
// All clauses of a group must share one Logic.
func NewCombinator(matchers ...*Matcher) (*Combinator, error) {
	c := &Combinator{}
	index := make(map[int]*group)

	var errs []error
	for _, m := range matchers {
		if m == nil || !m.clause.Enabled {
			continue
		}
		cl := m.clause
		g, ok := index[cl.Group]
		if !ok {
			g = &group{id: cl.Group, logic: cl.Logic}
			index[cl.Group] = g
			c.groups = append(c.groups, g)
		} else if g.logic != cl.Logic {
			errs = append(errs, fmt.Errorf("%w: group %d is %s, got %s for %s", ErrMixedLogic, cl.Group, g.logic, cl.Logic, cl))
			continue
		}
		g.matchers = append(g.matchers, m)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return c, nil
}

// Matches reports whether row satisfies every group. An empty combinator
// matches everything.
func (c *Combinator) Matches(row any) bool {
	for _, g := range c.groups {
		if !g.matches(row) {
			return false
		}
	}
	return true
}

// Len returns the number of enabled clauses.
func (c *Combinator) Len() int {
	n := 0
	for _, g := range c.groups {
		n += len(g.matchers)
	}
	return n
}

// String renders the combinator as a parenthesized expression, e.g.
// `(name EQUALS "a" or name EQUALS "b") and (qty GREATER_THAN "5")`.
func (c *Combinator) String() string {
	parts := make([]string, 0, len(c.groups))
	for _, g := range c.groups {
		terms := make([]string, 0, len(g.matchers))
		for _, m := range g.matchers {
			cl := m.clause
			term := cl.Column + " " + cl.Operator.String()
			if cl.Value != nil {
				term += fmt.Sprintf(" %q", *cl.Value)
			}
			terms = append(terms, term)
		}
		parts = append(parts, "("+strings.Join(terms, " "+g.logic.String()+" ")+")")
	}
	return strings.Join(parts, " and ")
}

// Compile builds a matcher for every enabled clause and combines them. All
// configuration errors of the clause set are reported together.
func Compile(table *Table, clauses []Clause, now time.Time) (*Combinator, error) {
	var (
		matchers []*Matcher
		errs     []error
	)
	for i, cl := range clauses {
		if !cl.Enabled {
			continue
		}
		m, err := NewMatcher(table, cl, now)
		if err != nil {
			errs = append(errs, fmt.Errorf("clause %d: %w", i+1, err))
			continue
		}
		matchers = append(matchers, m)
	}

	c, err := NewCombinator(matchers...)
	if err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return c, nil
}
