// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package filters

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLogicCase represents a single test case for TestCombinatorGroups.
type testLogicCase struct {
	Name   string   `yaml:"name"`
	Values []string `yaml:"values"`
	Want   bool     `yaml:"want"`
}

func textEquals(group int, logic Logic, value string) Clause {
	return Clause{Group: group, Logic: logic, Column: "text", Operator: Equals, Value: Text(value), Enabled: true}
}

func TestCombinatorGroups(t *testing.T) {
	var tests []testLogicCase
	require.NoError(t, loadTestData("logic.yaml", &tests))
	require.Len(t, tests, 6)

	table := fixtureTable(t)

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			require.Len(t, tt.Values, 5)
			clauses := []Clause{
				textEquals(1, Or, tt.Values[0]),
				textEquals(1, Or, tt.Values[1]),
				textEquals(2, Or, tt.Values[2]),
				textEquals(2, Or, tt.Values[3]),
				textEquals(0, And, tt.Values[4]),
			}

			c, err := Compile(table, clauses, testNow)
			require.NoError(t, err)
			assert.Equal(t, tt.Want, c.Matches(fixtureRow{}))
		})
	}
}

func TestCombinatorAndGroup(t *testing.T) {
	table := fixtureTable(t)

	c, err := Compile(table, []Clause{
		textEquals(1, And, "Text"),
		textEquals(1, And, "Not"),
	}, testNow)
	require.NoError(t, err)
	assert.False(t, c.Matches(fixtureRow{}))

	c, err = Compile(table, []Clause{
		textEquals(1, And, "Text"),
		{Group: 1, Logic: And, Column: "number", Operator: GreaterThan, Value: Text("100"), Enabled: true},
	}, testNow)
	require.NoError(t, err)
	assert.True(t, c.Matches(fixtureRow{}))
}

func TestCombinatorDisabled(t *testing.T) {
	table := fixtureTable(t)

	off := textEquals(1, And, "Not")
	off.Enabled = false

	c, err := Compile(table, []Clause{textEquals(1, And, "Text"), off}, testNow)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
	assert.True(t, c.Matches(fixtureRow{}))

	// A disabled clause is not validated either.
	broken := Clause{Column: "nope", Operator: Equals, Value: Text("x")}
	c, err = Compile(table, []Clause{broken}, testNow)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
	assert.True(t, c.Matches(fixtureRow{}))
}

func TestCombinatorEmpty(t *testing.T) {
	c, err := NewCombinator()
	require.NoError(t, err)
	assert.True(t, c.Matches(fixtureRow{}))
	assert.Equal(t, "", c.String())
}

func TestCombinatorMixedLogic(t *testing.T) {
	table := fixtureTable(t)

	_, err := Compile(table, []Clause{
		textEquals(1, Or, "Text"),
		textEquals(1, And, "Text"),
		textEquals(2, And, "Text"),
	}, testNow)
	assert.ErrorIs(t, err, ErrMixedLogic)
}

func TestCompileJoinsErrors(t *testing.T) {
	table := fixtureTable(t)

	_, err := Compile(table, []Clause{
		{Column: "nope", Operator: Equals, Value: Text("x"), Enabled: true},
		{Column: "text", Operator: EqualsColumn, Value: Text("missing"), Enabled: true},
		textEquals(1, Or, "Text"),
		textEquals(1, And, "Text"),
	}, testNow)
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrUnknownColumn)
	assert.ErrorIs(t, err, ErrMixedLogic)
	assert.Contains(t, err.Error(), "clause 1")
	assert.Contains(t, err.Error(), "clause 2")

	var joined interface{ Unwrap() []error }
	require.True(t, errors.As(err, &joined))
	assert.Len(t, joined.Unwrap(), 3)
}

func TestCombinatorShortCircuit(t *testing.T) {
	var calls int
	counted, err := NewTable(TextColumn("text", func(any) (string, bool) {
		calls++
		return "Text", true
	}))
	require.NoError(t, err)

	// The first OR member matches, so the second is never evaluated.
	c, err := Compile(counted, []Clause{
		textEquals(1, Or, "Text"),
		textEquals(1, Or, "Not"),
	}, testNow)
	require.NoError(t, err)
	assert.True(t, c.Matches(fixtureRow{}))
	assert.Equal(t, 1, calls)

	// The first group fails, so later groups are never evaluated.
	calls = 0
	c, err = Compile(counted, []Clause{
		textEquals(1, And, "Not"),
		textEquals(2, And, "Text"),
		textEquals(3, And, "Text"),
	}, testNow)
	require.NoError(t, err)
	assert.False(t, c.Matches(fixtureRow{}))
	assert.Equal(t, 1, calls)
}

func TestCombinatorString(t *testing.T) {
	table := fixtureTable(t)

	c, err := Compile(table, []Clause{
		textEquals(1, Or, "a"),
		textEquals(1, Or, "b"),
		{Group: 2, Logic: And, Column: "number", Operator: GreaterThan, Value: Text("5"), Enabled: true},
	}, testNow)
	require.NoError(t, err)

	assert.Equal(t, `(text EQUALS "a" or text EQUALS "b") and (number GREATER_THAN "5")`, c.String())
}
