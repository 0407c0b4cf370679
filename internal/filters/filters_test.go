// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package filters

import (
	"embed"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

//go:embed testdata/*.yaml
var testDataFS embed.FS

// loadTestData loads test data from embedded YAML files.
func loadTestData(filename string, v interface{}) error {
	data, err := testDataFS.ReadFile("testdata/" + filename)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, v)
}

// testNow is the reference instant of every fixture pass.
var testNow = time.Date(2026, 10, 18, 12, 30, 0, 0, time.UTC)

// fixtureRow carries the values of the column_* columns. Columns with no
// entry are absent.
type fixtureRow struct {
	refs map[string]string
}

func refColumn(name string, domain Domain) Column {
	return NewColumn(name, domain, func(row any) (Value, bool) {
		s, ok := row.(fixtureRow).refs[name]
		if !ok {
			return Value{}, false
		}
		return ParseValue(s, domain)
	})
}

// fixtureTable returns the columns the matcher cases run against.
func fixtureTable(t *testing.T) *Table {
	t.Helper()

	date := time.Date(2005, 1, 2, 9, 0, 0, 0, time.UTC)
	last := testNow.Truncate(time.Hour).Add(time.Hour).AddDate(0, 0, -2)

	table, err := NewTable(
		TextColumn("text", func(any) (string, bool) { return "Text", true }),
		TextColumn("text_format", func(any) (string, bool) { return `Text"'-`, true }),
		NumberColumn("number", func(any) (float64, bool) { return 222, true }),
		PercentColumn("percent", func(any) (Percent, bool) { return NewPercent(2.22), true }),
		PercentColumn("percent_half", func(any) (Percent, bool) { return NewPercent(0.00175), true }),
		DateColumn("date", func(any) (time.Time, bool) { return date, true }),
		DateColumn("date_last", func(any) (time.Time, bool) { return last, true }),
		refColumn("column_text", DomainText),
		refColumn("column_number", DomainNumber),
		refColumn("column_percent", DomainPercent),
		refColumn("column_date", DomainDate),
		NumberColumn("null", func(any) (float64, bool) { return 0, false }),
	)
	require.NoError(t, err)

	return table
}
