// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"fmt"
	"strings"
)

// Logic is how the clauses of one group are combined.
type Logic int

const (
	And Logic = iota
	Or
)

func (l Logic) String() string {
	switch l {
	case And:
		return "and"
	case Or:
		return "or"
	default:
		return fmt.Sprintf("Logic(%d)", int(l))
	}
}

// ParseLogic accepts "and", "or", "&&" and "||" in any case.
func ParseLogic(s string) (Logic, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "and", "&&", "&":
		return And, nil
	case "or", "||", "|":
		return Or, nil
	}
	return And, fmt.Errorf("%w: %q", ErrUnknownLogic, s)
}

func (l Logic) MarshalText() ([]byte, error) {
	if l != And && l != Or {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLogic, int(l))
	}
	return []byte(l.String()), nil
}

func (l *Logic) UnmarshalText(text []byte) error {
	v, err := ParseLogic(string(text))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// Clause is one structured filter condition. Value holds the literal query
// text, or for _COLUMN operators the name of the referenced column. A nil
// Value is an absent operand.
type Clause struct {
	Group    int      `json:"group" yaml:"group"`
	Logic    Logic    `json:"logic" yaml:"logic"`
	Column   string   `json:"column" yaml:"column"`
	Operator Operator `json:"operator" yaml:"operator"`
	Value    *string  `json:"value,omitempty" yaml:"value,omitempty"`
	Enabled  bool     `json:"enabled" yaml:"enabled"`
}

// Text returns a pointer to s for use as a Clause Value.
func Text(s string) *string { return &s }

func (c Clause) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d:%s %s %s", c.Group, c.Logic, c.Column, c.Operator)
	if c.Value != nil {
		fmt.Fprintf(&b, " %q", *c.Value)
	}
	if !c.Enabled {
		b.WriteString(" (disabled)")
	}
	return b.String()
}
