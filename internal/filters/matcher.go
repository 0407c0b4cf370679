// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/tfctl/assetq/internal/log"
)

// Matcher evaluates one Clause against rows. It holds no row state and is
// safe for concurrent use.
type Matcher struct {
	clause Clause
	table  *Table

	// column is nil for the wildcard.
	column Column
	// ref is the referenced column of a _COLUMN operator.
	ref Column

	// op is the positive literal operator actually evaluated; negate flips
	// its result.
	op     Operator
	negate bool

	// q is the literal operand, nil when absent or for _COLUMN operators.
	q   *query
	now time.Time
}

// NewMatcher binds clause to the columns of table. now is the reference
// instant of LAST_HOURS and LAST_DAYS and should be the same for every
// matcher of one pass.
func NewMatcher(table *Table, clause Clause, now time.Time) (*Matcher, error) {
	if table == nil {
		return nil, ErrNilTable
	}
	if !clause.Operator.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownOperator, int(clause.Operator))
	}

	m := &Matcher{
		clause: clause,
		table:  table,
		now:    now,
	}

	literal := clause.Operator.Literal()
	m.op = literal.Positive()
	m.negate = literal.Negated()

	if strings.TrimSpace(clause.Column) != AllColumns {
		c, ok := table.Lookup(clause.Column)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, clause.Column)
		}
		m.column = c
		if !clause.Operator.Supports(c.Domain()) {
			log.Debugf("filters: %s is not offered for %s column %s", clause.Operator, c.Domain(), c.Name())
		}
	}

	if clause.Value == nil {
		return m, nil
	}

	if clause.Operator.IsColumnCompare() {
		ref, ok := table.Lookup(*clause.Value)
		if !ok {
			return nil, fmt.Errorf("%w: %q referenced by %s", ErrUnknownColumn, *clause.Value, clause.Operator)
		}
		m.ref = ref
		return m, nil
	}

	m.q = parseQuery(*clause.Value)
	if m.op == Regex {
		if err := m.q.compileRegex(); err != nil {
			log.Debugf("filters: regex %q does not compile: %v", *clause.Value, err)
		}
	}

	return m, nil
}

// Clause returns the clause m was built from.
func (m *Matcher) Clause() Clause { return m.clause }

// Matches reports whether row satisfies the clause.
func (m *Matcher) Matches(row any) bool {
	if m.column == nil {
		return m.matchesAny(row)
	}

	v, ok := m.column.Value(row)
	if !ok {
		return false
	}

	q, ok := m.operand(row)
	if !ok {
		if m.clause.Operator.IsColumnCompare() {
			return false
		}
		return m.clause.Operator.AbsentResult()
	}

	return evaluate(m.op, v, q, m.now) != m.negate
}

// matchesAny is the wildcard scan. It tests the positive operator against
// every present column value; negated operators match when none does.
func (m *Matcher) matchesAny(row any) bool {
	if m.clause.Value == nil {
		return true
	}

	q, ok := m.operand(row)
	if !ok {
		return false
	}

	found := false
	for _, c := range m.table.Columns() {
		if m.ref != nil && strings.EqualFold(c.Name(), m.ref.Name()) {
			continue
		}
		v, ok := c.Value(row)
		if !ok {
			continue
		}
		if evaluate(m.op, v, q, m.now) {
			found = true
			break
		}
	}

	return found != m.negate
}

// operand returns the right-hand side for row. ok is false when the operand
// is absent.
func (m *Matcher) operand(row any) (*query, bool) {
	if !m.clause.Operator.IsColumnCompare() {
		return m.q, m.q != nil
	}
	if m.ref == nil {
		return nil, false
	}
	r, ok := m.ref.Value(row)
	if !ok {
		return nil, false
	}
	return queryFromValue(r), true
}

func (m *Matcher) String() string { return m.clause.String() }

// evaluate applies a positive literal operator to a present value. Negated
// and _COLUMN operators are resolved by the caller.
func evaluate(op Operator, v Value, q *query, now time.Time) bool {
	switch op {
	case Equals:
		return equals(v, q)
	case EqualsDate:
		return v.domain == DomainDate && q.dateOK && sameDay(v.date, q.date)
	case Contains:
		return contains(v, q)
	case Regex:
		return q.regex != nil && q.regex.MatchString(v.String())
	case Before:
		return v.domain == DomainDate && q.dateOK && v.date.Before(q.date)
	case After:
		return v.domain == DomainDate && q.dateOK && v.date.After(q.date)
	case GreaterThan:
		c, ok := compareNumeric(v, q)
		return ok && c > 0
	case LessThan:
		c, ok := compareNumeric(v, q)
		return ok && c < 0
	case LastHours:
		return v.domain == DomainDate && q.countOK && within(now, v.date, q.count, time.Hour)
	case LastDays:
		return v.domain == DomainDate && q.countOK && within(now, v.date, q.count, 24*time.Hour)
	}

	log.Debugf("filters: %s is not a positive literal operator", op)
	return false
}

func equals(v Value, q *query) bool {
	switch v.domain {
	case DomainNumber:
		if q.numberOK {
			return v.num.Equal(q.number)
		}
	case DomainPercent:
		if q.percentOK {
			return v.Percent().Cmp(q.percent) == 0
		}
	case DomainDate:
		if q.dateOK {
			return v.date.Equal(q.date)
		}
	}
	return strings.ToLower(v.String()) == q.text
}

func contains(v Value, q *query) bool {
	switch v.domain {
	case DomainNumber:
		if q.numberOK && v.num.Equal(q.number) {
			return true
		}
	case DomainPercent:
		if q.percentOK && v.Percent().Cmp(q.percent) == 0 {
			return true
		}
	}
	return strings.Contains(strings.ToLower(v.String()), q.text)
}

// compareNumeric orders a number or percent value against the operand. ok is
// false for other domains or an operand that is not a number.
func compareNumeric(v Value, q *query) (int, bool) {
	switch v.domain {
	case DomainNumber:
		if !q.numberOK {
			return 0, false
		}
		return v.num.Cmp(q.number), true
	case DomainPercent:
		if !q.percentOK {
			return 0, false
		}
		return v.Percent().Cmp(q.percent), true
	}
	return 0, false
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// within reports whether t is at most n units before now. Values in the
// future are within any window.
func within(now, t time.Time, n int64, unit time.Duration) bool {
	if n > int64(math.MaxInt64/unit) {
		return true
	}
	return now.Sub(t) <= time.Duration(n)*unit
}
