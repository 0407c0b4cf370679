// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClausesFromYAML(t *testing.T) {
	var clauses []Clause
	require.NoError(t, loadTestData("clauses.yaml", &clauses))
	require.Len(t, clauses, 4)

	assert.Equal(t, Or, clauses[0].Logic)
	assert.Equal(t, Contains, clauses[0].Operator)
	require.NotNil(t, clauses[0].Value)
	assert.Equal(t, "Tritanium", *clauses[0].Value)

	assert.Equal(t, GreaterThan, clauses[2].Operator)
	assert.Equal(t, EqualsNotColumn, clauses[3].Operator)
	assert.False(t, clauses[3].Enabled)
}

func TestParseLogic(t *testing.T) {
	for in, want := range map[string]Logic{"and": And, "AND": And, "&&": And, "or": Or, " Or ": Or, "||": Or} {
		got, err := ParseLogic(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLogic("xor")
	assert.ErrorIs(t, err, ErrUnknownLogic)
}

func TestClauseString(t *testing.T) {
	c := Clause{Group: 2, Logic: Or, Column: "name", Operator: ContainsNot, Value: Text("ore")}
	assert.Equal(t, `2:or name CONTAINS_NOT "ore" (disabled)`, c.String())

	c.Enabled = true
	c.Value = nil
	assert.Equal(t, "2:or name CONTAINS_NOT", c.String())
}
