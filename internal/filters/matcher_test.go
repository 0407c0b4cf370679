// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package filters

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testMatcherCase represents a single test case for TestMatcher.
type testMatcherCase struct {
	Name     string   `yaml:"name"`
	Column   string   `yaml:"column"`
	Operator Operator `yaml:"operator"`
	Value    *string  `yaml:"value"`
	Ref      *string  `yaml:"ref"`
	Want     bool     `yaml:"want"`
}

func TestMatcher(t *testing.T) {
	var tests []testMatcherCase
	require.NoError(t, loadTestData("matcher.yaml", &tests))
	require.NotEmpty(t, tests)

	table := fixtureTable(t)

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			row := fixtureRow{refs: map[string]string{}}
			if tt.Ref != nil {
				require.NotNil(t, tt.Value)
				row.refs[*tt.Value] = *tt.Ref
			}

			m, err := NewMatcher(table, Clause{
				Group:    1,
				Column:   tt.Column,
				Operator: tt.Operator,
				Value:    tt.Value,
				Enabled:  true,
			}, testNow)
			require.NoError(t, err)

			assert.Equal(t, tt.Want, m.Matches(row))
		})
	}
}

func TestMatcherAbsentQuery(t *testing.T) {
	table := fixtureTable(t)
	row := fixtureRow{}

	literal := map[Operator]bool{
		Equals:        false,
		EqualsNot:     true,
		EqualsDate:    false,
		EqualsNotDate: true,
		Contains:      false,
		ContainsNot:   true,
		After:         false,
		Before:        false,
		GreaterThan:   true,
		LessThan:      false,
		LastHours:     false,
		LastDays:      false,
		Regex:         false,
	}

	for _, name := range []string{"text", "text_format", "number", "percent", "date", "date_last", "null"} {
		for op, want := range literal {
			t.Run(fmt.Sprintf("%s %s", name, op), func(t *testing.T) {
				m, err := NewMatcher(table, Clause{Column: name, Operator: op, Enabled: true}, testNow)
				require.NoError(t, err)

				// An absent row value never matches.
				if name == "null" {
					want = false
				}
				assert.Equal(t, want, m.Matches(row))
			})
		}
	}
}

func TestMatcherAbsentColumnOperand(t *testing.T) {
	table := fixtureTable(t)
	row := fixtureRow{}

	columnOps := []Operator{
		EqualsColumn, EqualsNotColumn, ContainsColumn, ContainsNotColumn,
		AfterColumn, BeforeColumn, GreaterThanColumn, LessThanColumn,
	}

	for _, name := range []string{"column_text", "column_number", "column_percent", "column_date"} {
		for _, op := range columnOps {
			t.Run(fmt.Sprintf("%s %s", name, op), func(t *testing.T) {
				m, err := NewMatcher(table, Clause{Column: name, Operator: op, Enabled: true}, testNow)
				require.NoError(t, err)
				assert.False(t, m.Matches(row))
			})
		}
	}

	// Referenced column present in the table but without a value for the row.
	for _, op := range columnOps {
		t.Run("text ref "+op.String(), func(t *testing.T) {
			m, err := NewMatcher(table, Clause{Column: "number", Operator: op, Value: Text("column_number"), Enabled: true}, testNow)
			require.NoError(t, err)
			assert.False(t, m.Matches(row))
		})
	}
}

func TestMatcherAbsentRowValue(t *testing.T) {
	table := fixtureTable(t)
	row := fixtureRow{refs: map[string]string{"column_number": "1"}}

	for _, op := range Operators() {
		t.Run(op.String(), func(t *testing.T) {
			value := Text("1")
			if op.IsColumnCompare() {
				value = Text("column_number")
			}
			m, err := NewMatcher(table, Clause{Column: "null", Operator: op, Value: value, Enabled: true}, testNow)
			require.NoError(t, err)
			assert.False(t, m.Matches(row))
		})
	}
}

func TestMatcherAllColumnsAbsentQuery(t *testing.T) {
	table := fixtureTable(t)

	for _, op := range Operators() {
		t.Run(op.String(), func(t *testing.T) {
			m, err := NewMatcher(table, Clause{Column: AllColumns, Operator: op, Enabled: true}, testNow)
			require.NoError(t, err)
			assert.True(t, m.Matches(fixtureRow{}))
		})
	}
}

func TestMatcherComplement(t *testing.T) {
	table := fixtureTable(t)
	pairs := map[Operator]Operator{
		Equals:     EqualsNot,
		Contains:   ContainsNot,
		EqualsDate: EqualsNotDate,
	}
	queries := []string{"Text", "tex", "Not", "222", "222.0", "2.22", "2005", "2005-01-02", "", "Text„‘–"}

	for _, name := range []string{"text", "text_format", "number", "percent", "date"} {
		for pos, neg := range pairs {
			for _, q := range queries {
				t.Run(fmt.Sprintf("%s %s %q", name, pos, q), func(t *testing.T) {
					p, err := NewMatcher(table, Clause{Column: name, Operator: pos, Value: Text(q), Enabled: true}, testNow)
					require.NoError(t, err)
					n, err := NewMatcher(table, Clause{Column: name, Operator: neg, Value: Text(q), Enabled: true}, testNow)
					require.NoError(t, err)

					assert.NotEqual(t, p.Matches(fixtureRow{}), n.Matches(fixtureRow{}))
				})
			}
		}
	}
}

func TestNewMatcherErrors(t *testing.T) {
	table := fixtureTable(t)

	tests := []struct {
		name   string
		clause Clause
		want   error
	}{
		{
			name:   "unknown column",
			clause: Clause{Column: "nope", Operator: Equals, Value: Text("x")},
			want:   ErrUnknownColumn,
		},
		{
			name:   "unknown referenced column",
			clause: Clause{Column: "text", Operator: EqualsColumn, Value: Text("nope")},
			want:   ErrUnknownColumn,
		},
		{
			name:   "unknown referenced column on all columns",
			clause: Clause{Column: AllColumns, Operator: ContainsColumn, Value: Text("nope")},
			want:   ErrUnknownColumn,
		},
		{
			name:   "invalid operator",
			clause: Clause{Column: "text", Operator: operatorCount, Value: Text("x")},
			want:   ErrUnknownOperator,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMatcher(table, tt.clause, testNow)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := NewMatcher(nil, Clause{Column: "text"}, testNow)
	assert.ErrorIs(t, err, ErrNilTable)
}

func TestMatcherColumnLookupIgnoresCase(t *testing.T) {
	table := fixtureTable(t)

	m, err := NewMatcher(table, Clause{Column: " TEXT ", Operator: EqualsColumn, Value: Text("Column_Text"), Enabled: true}, testNow)
	require.NoError(t, err)
	assert.True(t, m.Matches(fixtureRow{refs: map[string]string{"column_text": "TEXT"}}))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "„“”", want: `"""`},
		{in: "‘’`´", want: "''''"},
		{in: "–‐‑‒—", want: "-----"},
		{in: "plain ascii", want: "plain ascii"},
		{in: "Don’t – stop", want: "Don't - stop"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}
