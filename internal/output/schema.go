// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"

	"github.com/tfctl/assetq/internal/attrs"
	"github.com/tfctl/assetq/internal/filters"
)

var domains = []filters.Domain{filters.DomainText, filters.DomainNumber, filters.DomainDate, filters.DomainPercent}

// operatorsFor returns the names of the operators usable on domain d.
func operatorsFor(d filters.Domain) []string {
	var names []string
	for _, op := range filters.Operators() {
		if op.Supports(d) && !op.IsColumnCompare() {
			names = append(names, op.String())
		}
	}
	return names
}

func plainTable(headers []string, rows [][]string) *table.Table {
	style := lipgloss.NewStyle().PaddingRight(2) //nolint:mnd
	return table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return style.Bold(true)
			}
			return style
		}).
		Headers(headers...).
		Rows(rows...)
}

// DumpSchema writes the columns of list with their source path, domain and
// the operators that apply to them. If w is nil, os.Stdout is used.
func DumpSchema(w io.Writer, list attrs.AttrList) error {
	if w == nil {
		w = os.Stdout
	}

	var rows [][]string
	for _, a := range list {
		if a.Key == "*" {
			continue
		}
		d, err := filters.ParseDomain(a.Domain)
		if err != nil {
			return fmt.Errorf("column %s: %w", a.OutputKey, err)
		}
		shown := "yes"
		if !a.Include {
			shown = "no"
		}
		rows = append(rows, []string{a.OutputKey, a.Key, d.String(), shown, strings.Join(operatorsFor(d), " ")})
	}

	fmt.Fprintln(w, plainTable([]string{"COLUMN", "PATH", "DOMAIN", "SHOWN", "OPERATORS"}, rows))
	fmt.Fprintln(w, "\nEvery operator also has a _COLUMN form where it applies, and * matches any column.")
	return nil
}

// DumpOperators writes every operator with the domains it applies to.
func DumpOperators(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	var rows [][]string
	for _, op := range filters.Operators() {
		var on []string
		for _, d := range domains {
			if op.Supports(d) {
				on = append(on, d.String())
			}
		}
		family := "literal"
		if op.IsColumnCompare() {
			family = "column"
		}
		negated := ""
		if op.Negated() {
			negated = "yes"
		}
		rows = append(rows, []string{op.String(), family, negated, strings.Join(on, ",")})
	}

	fmt.Fprintln(w, plainTable([]string{"OPERATOR", "OPERAND", "NEGATED", "DOMAINS"}, rows))
}
