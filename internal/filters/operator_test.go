// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package filters

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// testParseOperatorCase represents a single test case for TestParseOperator.
type testParseOperatorCase struct {
	Name    string `yaml:"name"`
	Input   string `yaml:"input"`
	Want    string `yaml:"want"`
	WantErr bool   `yaml:"wantErr"`
}

func TestParseOperator(t *testing.T) {
	var tests []testParseOperatorCase
	require.NoError(t, loadTestData("operators.yaml", &tests))

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			got, err := ParseOperator(tt.Input)
			if tt.WantErr {
				assert.ErrorIs(t, err, ErrUnknownOperator)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.Want, got.String())
		})
	}
}

func TestOperatorInfoComplete(t *testing.T) {
	seen := map[string]bool{}

	for _, op := range Operators() {
		info := operatorInfos[op]
		t.Run(op.String(), func(t *testing.T) {
			require.NotEmpty(t, info.name)
			assert.False(t, seen[info.name], "duplicate name")
			seen[info.name] = true

			assert.NotZero(t, info.domains, "no domains")

			back, err := ParseOperator(info.name)
			require.NoError(t, err)
			assert.Equal(t, op, back)

			assert.Equal(t, strings.HasSuffix(info.name, "_COLUMN"), op.IsColumnCompare())
			assert.Equal(t, strings.Contains(info.name, "_NOT"), op.Negated())

			if op.Negated() {
				pos := op.Positive()
				assert.False(t, pos.Negated())
				assert.Equal(t, strings.Replace(info.name, "_NOT", "", 1), pos.String())
			}
			if op.IsColumnCompare() {
				lit := op.Literal()
				assert.False(t, lit.IsColumnCompare())
				assert.Equal(t, strings.TrimSuffix(info.name, "_COLUMN"), lit.String())
				assert.Equal(t, op.Negated(), lit.Negated())
			}
		})
	}

	assert.Len(t, seen, int(operatorCount))
}

func TestOperatorAbsentResult(t *testing.T) {
	want := map[Operator]bool{
		EqualsNot:     true,
		EqualsNotDate: true,
		ContainsNot:   true,
		GreaterThan:   true,
	}
	for _, op := range Operators() {
		assert.Equal(t, want[op], op.AbsentResult(), op.String())
	}
}

func TestOperatorSupports(t *testing.T) {
	assert.True(t, Equals.Supports(DomainPercent))
	assert.True(t, Contains.Supports(DomainDate))
	assert.True(t, LastDays.Supports(DomainDate))
	assert.False(t, LastDays.Supports(DomainNumber))
	assert.True(t, GreaterThan.Supports(DomainPercent))
	assert.False(t, GreaterThan.Supports(DomainText))
	assert.False(t, BeforeColumn.Supports(DomainText))
	assert.False(t, Operator(-1).Supports(DomainText))
}

func TestOperatorText(t *testing.T) {
	var v struct {
		Op Operator `yaml:"op"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("op: before-column"), &v))
	assert.Equal(t, BeforeColumn, v.Op)

	out, err := yaml.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, "op: BEFORE_COLUMN\n", string(out))

	assert.Error(t, yaml.Unmarshal([]byte("op: sounds-like"), &v))

	_, err = Operator(99).MarshalText()
	assert.ErrorIs(t, err, ErrUnknownOperator)
}
