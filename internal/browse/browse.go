// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package browse

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tidwall/gjson"
	"golang.org/x/term"

	"github.com/tfctl/assetq/internal/attrs"
	"github.com/tfctl/assetq/internal/filters"
	"github.com/tfctl/assetq/internal/log"
	"github.com/tfctl/assetq/internal/output"
)

// ErrNotTerminal is returned when stdin or stdout is not a terminal.
var ErrNotTerminal = errors.New("browse needs an interactive terminal")

const maxColumnWidth = 40

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f6be00"))
)

// View is what the browser shows: rows that already passed the clauses and
// how to read their columns.
type View struct {
	Table *filters.Table
	Attrs attrs.AttrList
	Rows  []gjson.Result
	Now   time.Time
	// Total is the dataset row count before any clause. Zero means Rows.
	Total int
	// Describe is the clause summary shown in the status line.
	Describe string
}

type model struct {
	view    View
	records []output.Record
	shown   []output.Record
	input   textinput.Model
	grid    table.Model
	err     error
	width   int
}

// Run opens the browser and blocks until the user quits.
func Run(v View) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return ErrNotTerminal
	}
	p := tea.NewProgram(newModel(v), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(v View) model {
	ti := textinput.New()
	ti.Placeholder = "contains..."
	ti.Prompt = promptStyle.Render("/ ")
	ti.CharLimit = 256
	ti.Width = 40

	records := output.Project(v.Table, v.Attrs, v.Rows, v.Now)

	var columns []table.Column
	for i, a := range v.Attrs.Visible() {
		w := len(a.OutputKey)
		for _, r := range records {
			w = max(w, len(output.CellString(r.Fields[i].Value, "-")))
		}
		columns = append(columns, table.Column{Title: a.OutputKey, Width: min(w, maxColumnWidth)})
	}

	grid := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(20), //nolint:mnd
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#00c8f0"))
	grid.SetStyles(styles)

	m := model{view: v, records: records, input: ti, grid: grid}
	m.apply("")
	return m
}

// apply narrows the rows to those where any column contains text. Empty text
// shows every row.
func (m *model) apply(text string) {
	m.err = nil
	m.shown = m.records

	if strings.TrimSpace(text) != "" {
		matcher, err := filters.NewMatcher(m.view.Table, filters.Clause{
			Column:   filters.AllColumns,
			Operator: filters.Contains,
			Value:    filters.Text(text),
			Enabled:  true,
		}, m.view.Now)
		if err != nil {
			m.err = err
		} else {
			m.shown = make([]output.Record, 0, len(m.records))
			for _, r := range m.records {
				if matcher.Matches(r.Row) {
					m.shown = append(m.shown, r)
				}
			}
		}
	}
	log.Tracef("quick filter: text=%q, shown=%d", text, len(m.shown))

	rows := make([]table.Row, len(m.shown))
	for i, r := range m.shown {
		row := make(table.Row, len(r.Fields))
		for j, f := range r.Fields {
			row[j] = output.CellString(f.Value, "-")
		}
		rows[i] = row
	}
	m.grid.SetRows(rows)
	m.grid.GotoTop()
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.grid.SetHeight(max(msg.Height-4, 3)) //nolint:mnd
		return m, nil

	case tea.KeyMsg:
		if m.input.Focused() {
			switch msg.String() {
			case "enter":
				m.input.Blur()
				m.grid.Focus()
				return m, nil
			case "esc":
				m.input.SetValue("")
				m.input.Blur()
				m.grid.Focus()
				m.apply("")
				return m, nil
			case "ctrl+c":
				return m, tea.Quit
			}
			var cmd tea.Cmd
			before := m.input.Value()
			m.input, cmd = m.input.Update(msg)
			if m.input.Value() != before {
				m.apply(m.input.Value())
			}
			return m, cmd
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "/":
			m.grid.Blur()
			m.input.Focus()
			return m, textinput.Blink
		case "esc":
			if m.input.Value() != "" {
				m.input.SetValue("")
				m.apply("")
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.grid, cmd = m.grid.Update(msg)
	return m, cmd
}

func (m model) status() string {
	total := m.view.Total
	if total == 0 {
		total = len(m.records)
	}
	s := fmt.Sprintf("%d of %d rows", len(m.shown), total)
	if m.view.Describe != "" {
		s += "  where " + m.view.Describe
	}
	return s
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(m.grid.View())
	b.WriteString("\n")
	if m.input.Focused() || m.input.Value() != "" {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(statusStyle.Render(m.status() + "  (/ filter, esc clear, q quit)"))
	return b.String()
}
