// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"slices"
	"strings"

	"github.com/tfctl/assetq/internal/filters"
)

type sortKey struct {
	column     filters.Column
	descending bool
}

// parseSortSpec resolves a comma separated list of column names, each
// optionally prefixed with - for descending order.
func parseSortSpec(table *filters.Table, spec string) ([]sortKey, error) {
	var keys []sortKey
	for _, field := range strings.Split(spec, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		key := sortKey{}
		if strings.HasPrefix(field, "-") {
			key.descending = true
			field = strings.TrimPrefix(field, "-")
		}
		c, ok := table.Lookup(field)
		if !ok {
			return nil, fmt.Errorf("sort: %w: %q", filters.ErrUnknownColumn, field)
		}
		key.column = c
		keys = append(keys, key)
	}
	return keys, nil
}

// SortRows orders rows in place by spec using each column's comparator. Rows
// without a value for a key sort after rows with one in either direction.
// The sort is stable so rows that tie keep their dataset order.
func SortRows[R any](table *filters.Table, rows []R, spec string) error {
	keys, err := parseSortSpec(table, spec)
	if err != nil || len(keys) == 0 {
		return err
	}

	slices.SortStableFunc(rows, func(one, two R) int {
		for _, key := range keys {
			a, aok := key.column.Value(one)
			b, bok := key.column.Value(two)

			switch {
			case !aok && !bok:
				continue
			case !aok:
				return 1
			case !bok:
				return -1
			}

			c := key.column.Compare(a, b)
			if c == 0 {
				continue
			}
			if key.descending {
				return -c
			}
			return c
		}
		return 0
	})
	return nil
}
