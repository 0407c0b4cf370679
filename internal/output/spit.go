// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v2"

	"github.com/tfctl/assetq/internal/attrs"
	"github.com/tfctl/assetq/internal/config"
	"github.com/tfctl/assetq/internal/filters"
	"github.com/tfctl/assetq/internal/log"
)

// Formats accepted by Options.Format.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatRaw  = "raw"
)

// Options controls rendering.
type Options struct {
	Format  string
	Titles  bool
	Color   bool
	Padding int
	// Header and Footer are printed around text tables when not empty.
	Header string
	Footer string
	// Now is the reference instant for relative time transforms.
	Now time.Time
}

// Field is one named cell of a Record. A nil Value is absent.
type Field struct {
	Name  string
	Value any
}

// Record is one output row: the displayed columns in order, plus the source
// row for raw output.
type Record struct {
	Row    gjson.Result
	Fields []Field
}

// MarshalJSON keeps the column order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML keeps the column order.
func (r Record) MarshalYAML() (interface{}, error) {
	m := make(yaml.MapSlice, 0, len(r.Fields))
	for _, f := range r.Fields {
		m = append(m, yaml.MapItem{Key: f.Name, Value: f.Value})
	}
	return m, nil
}

// Project builds the records for rows from the visible attrs of list. Each
// value is read through the table's column and then transformed.
func Project(tbl *filters.Table, list attrs.AttrList, rows []gjson.Result, now time.Time) []Record {
	visible := list.Visible()

	columns := make([]filters.Column, len(visible))
	for i, a := range visible {
		columns[i], _ = tbl.Lookup(a.OutputKey)
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		rec := Record{Row: row, Fields: make([]Field, len(visible))}
		for i, a := range visible {
			rec.Fields[i].Name = a.OutputKey
			if columns[i] == nil {
				continue
			}
			if v, ok := columns[i].Value(row); ok {
				rec.Fields[i].Value = a.Transform(v.Interface(), now)
			}
		}
		records = append(records, rec)
	}
	return records
}

// Render writes records to w in opts.Format. If w is nil, os.Stdout is used.
func Render(w io.Writer, records []Record, list attrs.AttrList, opts Options) error {
	if w == nil {
		w = os.Stdout
	}

	switch opts.Format {
	case FormatRaw:
		for _, r := range records {
			if _, err := fmt.Fprintln(w, r.Row.Raw); err != nil {
				return err
			}
		}
		return nil
	case FormatJSON:
		if records == nil {
			records = []Record{}
		}
		out, err := json.Marshal(records)
		if err != nil {
			return fmt.Errorf("json marshal: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case FormatYAML:
		out, err := yaml.Marshal(records)
		if err != nil {
			return fmt.Errorf("yaml marshal: %w", err)
		}
		_, err = w.Write(out)
		return err
	case FormatText, "":
		TableWriter(w, records, list, opts)
		return nil
	}
	return fmt.Errorf("unknown output format %q", opts.Format)
}

// CellString renders a cell for text output. Absent values become
// emptyValue.
func CellString(value any, emptyValue string) string {
	switch v := value.(type) {
	case nil:
		return emptyValue
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.UTC().Format(filters.DateLayout)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	}
}

// TableWriter renders records in tabular form honoring color, titles and
// padding options.
func TableWriter(w io.Writer, records []Record, list attrs.AttrList, opts Options) {
	// We return early if there are no results to display.
	if len(records) == 0 {
		log.Debugf("no records")
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(headerColor)
		evenRowStyle = evenRowStyle.Foreground(evenColor)
		oddRowStyle = oddRowStyle.Foreground(oddColor)
	}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		row := make([]string, len(rec.Fields))
		for i, f := range rec.Fields {
			row[i] = CellString(f.Value, "-")
		}
		rows = append(rows, row)
	}

	if opts.Header != "" {
		fmt.Fprintln(w, headerStyle.Render(opts.Header))
	}

	pad := opts.Padding
	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(rows...)

	if opts.Titles {
		var headers []string
		for _, a := range list.Visible() {
			headers = append(headers, a.OutputKey)
		}

		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(headers...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)

	if opts.Footer != "" {
		fmt.Fprintln(w, headerStyle.Render(opts.Footer))
	}
}

// getColors returns configured color values for table rendering. Defaults
// are picked for the terminal's background so output stays readable on both
// light and dark themes.
func getColors(key string) (header, even, odd color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	resolveColor := func(key string, light string, dark string) color.Color {
		colorCfg, err := config.GetString(key)
		if err == nil {
			return lipgloss.Color(colorCfg)
		}

		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	header = resolveColor(key+".title", "#b08800", "#f6be00")
	even = resolveColor(key+".even", "#333333", "#ffffff")
	odd = resolveColor(key+".odd", "#0088a0", "#00c8f0")

	return
}
