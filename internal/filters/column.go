// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// AllColumns is the wildcard column reference. It stands for every concrete
// column of a Table.
const AllColumns = "*"

// Column describes one concrete column of a row type.
type Column interface {
	// Name is the identifier clauses use to reference the column.
	Name() string
	// Domain is the value type of the column.
	Domain() Domain
	// Value extracts the column value from row. ok is false when the row has
	// no value for the column.
	Value(row any) (v Value, ok bool)
	// Compare orders two values of the column.
	Compare(a, b Value) int
}

type funcColumn struct {
	name    string
	domain  Domain
	extract func(row any) (Value, bool)
}

// NewColumn returns a Column backed by extract. Extracted values of another
// domain are converted through their rendering; values that cannot be
// converted are absent.
func NewColumn(name string, domain Domain, extract func(row any) (Value, bool)) Column {
	return &funcColumn{name: name, domain: domain, extract: extract}
}

func (c *funcColumn) Name() string   { return c.name }
func (c *funcColumn) Domain() Domain { return c.domain }

func (c *funcColumn) Value(row any) (Value, bool) {
	v, ok := c.extract(row)
	if !ok {
		return Value{}, false
	}
	if v.domain == c.domain {
		return v, true
	}
	return ParseValue(v.String(), c.domain)
}

func (c *funcColumn) Compare(a, b Value) int { return CompareValues(a, b) }

func TextColumn(name string, fn func(row any) (string, bool)) Column {
	return NewColumn(name, DomainText, func(row any) (Value, bool) {
		s, ok := fn(row)
		return TextValue(s), ok
	})
}

// NumberColumn adapts a float extractor. NaN and infinities are absent.
func NumberColumn(name string, fn func(row any) (float64, bool)) Column {
	return NewColumn(name, DomainNumber, func(row any) (Value, bool) {
		n, ok := fn(row)
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return Value{}, false
		}
		return NumberValue(n), ok
	})
}

func PercentColumn(name string, fn func(row any) (Percent, bool)) Column {
	return NewColumn(name, DomainPercent, func(row any) (Value, bool) {
		p, ok := fn(row)
		return PercentValue(p), ok
	})
}

func DateColumn(name string, fn func(row any) (time.Time, bool)) Column {
	return NewColumn(name, DomainDate, func(row any) (Value, bool) {
		t, ok := fn(row)
		return DateValue(t), ok
	})
}

// Table is the ordered set of concrete columns of one row type. Wildcard
// clauses scan columns in registration order.
type Table struct {
	columns []Column
	index   map[string]Column
}

// NewTable registers columns in order.
func NewTable(columns ...Column) (*Table, error) {
	t := &Table{index: make(map[string]Column, len(columns))}
	for _, c := range columns {
		if err := t.Add(c); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Add registers c. Names are unique ignoring case and may not be the
// wildcard.
func (t *Table) Add(c Column) error {
	name := c.Name()
	if name == "" || name == AllColumns {
		return fmt.Errorf("invalid column name %q", name)
	}
	key := strings.ToLower(name)
	if _, ok := t.index[key]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateColumn, name)
	}
	t.index[key] = c
	t.columns = append(t.columns, c)
	return nil
}

// Lookup returns the column named name, ignoring case.
func (t *Table) Lookup(name string) (Column, bool) {
	c, ok := t.index[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// Columns returns the registered columns in order. The slice must not be
// modified.
func (t *Table) Columns() []Column { return t.columns }

func (t *Table) Len() int { return len(t.columns) }
