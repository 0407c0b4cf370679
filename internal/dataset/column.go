// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"fmt"
	"time"

	"github.com/tidwall/gjson"

	"github.com/tfctl/assetq/internal/attrs"
	"github.com/tfctl/assetq/internal/driller"
	"github.com/tfctl/assetq/internal/filters"
)

// NewColumn returns a column named name that drills path out of gjson rows
// and reads it as domain.
func NewColumn(name, path string, domain filters.Domain) (filters.Column, error) {
	p, err := driller.Compile(path)
	if err != nil {
		return nil, fmt.Errorf("column %s: %w", name, err)
	}
	return filters.NewColumn(name, domain, func(row any) (filters.Value, bool) {
		r, ok := row.(gjson.Result)
		if !ok {
			return filters.Value{}, false
		}
		return convert(p.Get(r), domain)
	}), nil
}

func convert(res gjson.Result, domain filters.Domain) (filters.Value, bool) {
	if !res.Exists() || res.Type == gjson.Null {
		return filters.Value{}, false
	}

	switch domain {
	case filters.DomainNumber:
		if res.Type == gjson.Number {
			d, ok := filters.ParseDecimal(res.Raw)
			return filters.DecimalValue(d), ok
		}
	case filters.DomainPercent:
		if res.Type == gjson.Number {
			d, ok := filters.ParseDecimal(res.Raw)
			return filters.PercentValue(filters.PercentOf(d)), ok
		}
	case filters.DomainDate:
		if res.Type == gjson.Number {
			return filters.DateValue(time.Unix(res.Int(), 0).UTC()), true
		}
	default:
		if res.Type == gjson.String {
			return filters.TextValue(res.Str), true
		}
		return filters.TextValue(res.Raw), true
	}

	if res.Type != gjson.String {
		return filters.Value{}, false
	}
	return filters.ParseValue(res.Str, domain)
}

// Table builds the column table for list in order. The global "*" entry is
// skipped. Every column, displayed or not, can be referenced by clauses.
func Table(list attrs.AttrList) (*filters.Table, error) {
	table, _ := filters.NewTable()
	for _, a := range list {
		if a.Key == "*" {
			continue
		}
		domain, err := filters.ParseDomain(a.Domain)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", a.OutputKey, err)
		}
		c, err := NewColumn(a.OutputKey, a.Key, domain)
		if err != nil {
			return nil, err
		}
		if err := table.Add(c); err != nil {
			return nil, err
		}
	}
	return table, nil
}
