// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package dataset

import (
	"embed"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/tfctl/assetq/internal/attrs"
	"github.com/tfctl/assetq/internal/filters"
)

//go:embed testdata/*
var testDataFS embed.FS

func load(t *testing.T, kind Kind, name string) []gjson.Result {
	t.Helper()
	data, err := testDataFS.ReadFile("testdata/" + name)
	require.NoError(t, err)
	rows, err := Decode(kind, data)
	require.NoError(t, err)
	return rows
}

var testNow = time.Date(2026, 10, 18, 12, 30, 0, 0, time.UTC)

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{"assets": Assets, "Orders": Orders, "market": Orders, " spq ": Stockpiles} {
		got, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseKind("wallet")
	assert.Error(t, err)
}

func TestSchemasBuildTables(t *testing.T) {
	for _, kind := range Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			schema := Schema(kind)
			require.NotEmpty(t, schema)
			table, err := Table(schema)
			require.NoError(t, err)
			assert.Equal(t, len(schema), table.Len())
			_, ok := table.Lookup("name")
			assert.True(t, ok)
		})
	}
	assert.Nil(t, Schema("wallet"))
}

func TestSchemaIsACopy(t *testing.T) {
	a := Schema(Assets)
	a[0].OutputKey = "changed"
	assert.Equal(t, "name", Schema(Assets)[0].OutputKey)
}

func TestDecodeShapes(t *testing.T) {
	assert.Len(t, load(t, Assets, "assets.json"), 3)
	assert.Len(t, load(t, Orders, "orders.yaml"), 2)
	assert.Len(t, load(t, Stockpiles, "stockpiles.json"), 2)

	rows, err := Decode(Assets, []byte("- {name: Tritanium, quantity: 5}\n- {name: Pyerite}\n"))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, float64(5), rows[0].Get("quantity").Num)

	rows, err = Decode(Assets, []byte(`{"assets": [{"name": "a"}]}`))
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	rows, err = Decode(Assets, []byte("[]"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestDecodeErrors(t *testing.T) {
	tests := map[string]string{
		"empty":          "  ",
		"scalar":         "42",
		"wrong key":      `{"orders": [{"name": "a"}]}`,
		"non object row": `[{"name": "a"}, 3]`,
		"bad yaml":       "name: [unclosed",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(Assets, []byte(doc))
			assert.Error(t, err)
		})
	}

	_, err := Decode(Assets, []byte("42"))
	assert.ErrorIs(t, err, ErrNoRows)
}

func value(t *testing.T, table *filters.Table, name string, row gjson.Result) (filters.Value, bool) {
	t.Helper()
	c, ok := table.Lookup(name)
	require.True(t, ok, name)
	return c.Value(row)
}

func TestColumnConversions(t *testing.T) {
	table, err := Table(Schema(Assets))
	require.NoError(t, err)
	rows := load(t, Assets, "assets.json")

	v, ok := value(t, table, "location", rows[0])
	require.True(t, ok)
	assert.Equal(t, "Jita IV - Moon 4", v.String())

	// Numbers from JSON numbers and numeric strings.
	v, ok = value(t, table, "quantity", rows[1])
	require.True(t, ok)
	assert.Equal(t, 250000.0, v.Number())

	// Dates from layout strings and Unix seconds.
	v, ok = value(t, table, "added", rows[0])
	require.True(t, ok)
	assert.Equal(t, "2026-10-17 08:00", v.String())
	v, ok = value(t, table, "added", rows[1])
	require.True(t, ok)
	assert.Equal(t, "2026-10-08 08:00", v.String())

	// Null and missing values are absent.
	_, ok = value(t, table, "price", rows[2])
	assert.False(t, ok)
	_, ok = value(t, table, "added", rows[2])
	assert.False(t, ok)

	// Non-gjson rows have no values.
	_, ok = value(t, table, "name", gjson.Result{})
	assert.False(t, ok)
}

func TestPercentColumns(t *testing.T) {
	table, err := Table(Schema(Orders))
	require.NoError(t, err)
	rows := load(t, Orders, "orders.yaml")

	v, ok := value(t, table, "fill", rows[0])
	require.True(t, ok)
	assert.Equal(t, "20%", v.String())

	v, ok = value(t, table, "margin", rows[0])
	require.True(t, ok)
	assert.Equal(t, "12.5%", v.String())

	v, ok = value(t, table, "issued", rows[0])
	require.True(t, ok)
	assert.Equal(t, "2026-10-16 09:30", v.String())

	_, ok = value(t, table, "margin", rows[1])
	assert.False(t, ok)
}

// TestPercentHalfHundredth checks that a stored ratio equals the same amount
// typed as a percentage when it sits on a rounding boundary.
func TestPercentHalfHundredth(t *testing.T) {
	c, err := NewColumn("fill", "fill", filters.DomainPercent)
	require.NoError(t, err)
	table, err := filters.NewTable(c)
	require.NoError(t, err)
	row := gjson.Parse(`{"fill": 0.00175}`)

	for _, tt := range []struct {
		op    filters.Operator
		query string
		want  bool
	}{
		{op: filters.Equals, query: "0.175%", want: true},
		{op: filters.Equals, query: "0.18%", want: true},
		{op: filters.Equals, query: "0.17%", want: false},
		{op: filters.GreaterThan, query: "0.17%", want: true},
		{op: filters.LessThan, query: "0.18%", want: false},
	} {
		m, err := filters.NewMatcher(table, filters.Clause{
			Group: 1, Column: "fill", Operator: tt.op, Value: filters.Text(tt.query), Enabled: true,
		}, testNow)
		require.NoError(t, err)
		assert.Equal(t, tt.want, m.Matches(row), "%s %s", tt.op, tt.query)
	}
}

func TestTextRendersNonStrings(t *testing.T) {
	c, err := NewColumn("raw", "quantity", filters.DomainText)
	require.NoError(t, err)
	v, ok := c.Value(gjson.Parse(`{"quantity": 12}`))
	require.True(t, ok)
	assert.Equal(t, "12", v.String())

	_, err = NewColumn("bad", "a..b", filters.DomainText)
	assert.Error(t, err)
}

func TestTableErrors(t *testing.T) {
	_, err := Table(attrs.AttrList{{Key: "price", OutputKey: "price", Domain: "money"}})
	assert.ErrorIs(t, err, filters.ErrUnknownDomain)

	_, err = Table(attrs.AttrList{
		{Key: "price", OutputKey: "price"},
		{Key: "cost", OutputKey: "Price"},
	})
	assert.ErrorIs(t, err, filters.ErrDuplicateColumn)

	table, err := Table(attrs.AttrList{{Key: "*", OutputKey: "*"}, {Key: "name", OutputKey: "name"}})
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())
}

// TestFilterAssets runs a full pass over decoded rows.
func TestFilterAssets(t *testing.T) {
	table, err := Table(Schema(Assets))
	require.NoError(t, err)
	rows := load(t, Assets, "assets.json")

	pass, err := filters.NewPass(table, []filters.Clause{
		{Group: 1, Logic: filters.And, Column: "group", Operator: filters.Equals, Value: filters.Text("mineral"), Enabled: true},
		{Group: 2, Logic: filters.And, Column: "added", Operator: filters.LastDays, Value: filters.Text("7"), Enabled: true},
	}, filters.WithNow(testNow))
	require.NoError(t, err)

	got := filters.Filter(pass, rows)
	require.Len(t, got, 1)
	assert.Equal(t, "Tritanium", got[0].Get("name").String())
}
