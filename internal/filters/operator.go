// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"fmt"
	"strings"
)

// Operator is the comparison a clause applies. The set is closed; every
// operator has an entry in operatorInfos.
type Operator int

const (
	Equals Operator = iota
	EqualsNot
	EqualsDate
	EqualsNotDate
	Contains
	ContainsNot
	Regex
	Before
	After
	GreaterThan
	LessThan
	LastHours
	LastDays
	EqualsColumn
	EqualsNotColumn
	ContainsColumn
	ContainsNotColumn
	BeforeColumn
	AfterColumn
	GreaterThanColumn
	LessThanColumn

	operatorCount
)

const noOperator Operator = -1

// domainSet is a bit set of the domains an operator is offered for.
type domainSet uint8

const (
	onText domainSet = 1 << iota
	onNumber
	onDate
	onPercent

	onAll     = onText | onNumber | onDate | onPercent
	onNumeric = onNumber | onPercent
)

type operatorInfo struct {
	name    string
	domains domainSet
	// positive is the operator a negated operator complements.
	positive Operator
	// literal is the literal counterpart of a _COLUMN operator.
	literal Operator
	// absent is the result for a present value tested against an absent
	// literal operand.
	absent bool
}

// The array length pins one entry per operator; TestOperatorInfoComplete
// catches an entry left zero.
var operatorInfos = [operatorCount]operatorInfo{
	Equals:            {name: "EQUALS", domains: onAll, positive: noOperator, literal: noOperator},
	EqualsNot:         {name: "EQUALS_NOT", domains: onAll, positive: Equals, literal: noOperator, absent: true},
	EqualsDate:        {name: "EQUALS_DATE", domains: onDate, positive: noOperator, literal: noOperator},
	EqualsNotDate:     {name: "EQUALS_NOT_DATE", domains: onDate, positive: EqualsDate, literal: noOperator, absent: true},
	Contains:          {name: "CONTAINS", domains: onAll, positive: noOperator, literal: noOperator},
	ContainsNot:       {name: "CONTAINS_NOT", domains: onAll, positive: Contains, literal: noOperator, absent: true},
	Regex:             {name: "REGEX", domains: onAll, positive: noOperator, literal: noOperator},
	Before:            {name: "BEFORE", domains: onDate, positive: noOperator, literal: noOperator},
	After:             {name: "AFTER", domains: onDate, positive: noOperator, literal: noOperator},
	GreaterThan:       {name: "GREATER_THAN", domains: onNumeric, positive: noOperator, literal: noOperator, absent: true},
	LessThan:          {name: "LESS_THAN", domains: onNumeric, positive: noOperator, literal: noOperator},
	LastHours:         {name: "LAST_HOURS", domains: onDate, positive: noOperator, literal: noOperator},
	LastDays:          {name: "LAST_DAYS", domains: onDate, positive: noOperator, literal: noOperator},
	EqualsColumn:      {name: "EQUALS_COLUMN", domains: onAll, positive: noOperator, literal: Equals},
	EqualsNotColumn:   {name: "EQUALS_NOT_COLUMN", domains: onAll, positive: EqualsColumn, literal: EqualsNot},
	ContainsColumn:    {name: "CONTAINS_COLUMN", domains: onAll, positive: noOperator, literal: Contains},
	ContainsNotColumn: {name: "CONTAINS_NOT_COLUMN", domains: onAll, positive: ContainsColumn, literal: ContainsNot},
	BeforeColumn:      {name: "BEFORE_COLUMN", domains: onDate, positive: noOperator, literal: Before},
	AfterColumn:       {name: "AFTER_COLUMN", domains: onDate, positive: noOperator, literal: After},
	GreaterThanColumn: {name: "GREATER_THAN_COLUMN", domains: onNumeric, positive: noOperator, literal: GreaterThan},
	LessThanColumn:    {name: "LESS_THAN_COLUMN", domains: onNumeric, positive: noOperator, literal: LessThan},
}

// Operators returns every operator in declaration order.
func Operators() []Operator {
	ops := make([]Operator, 0, operatorCount)
	for op := Operator(0); op < operatorCount; op++ {
		ops = append(ops, op)
	}
	return ops
}

// ParseOperator returns the operator named s. Matching ignores case and treats
// '-' and ' ' like '_', so "equals-not" and "Equals Not" are EQUALS_NOT.
func ParseOperator(s string) (Operator, error) {
	key := strings.ToUpper(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	for op := Operator(0); op < operatorCount; op++ {
		if operatorInfos[op].name == key {
			return op, nil
		}
	}
	return noOperator, fmt.Errorf("%w: %q", ErrUnknownOperator, s)
}

func (o Operator) Valid() bool { return o >= 0 && o < operatorCount }

func (o Operator) String() string {
	if !o.Valid() {
		return fmt.Sprintf("Operator(%d)", int(o))
	}
	return operatorInfos[o].name
}

// IsColumnCompare reports whether the operand of o names another column.
func (o Operator) IsColumnCompare() bool {
	return o.Valid() && operatorInfos[o].literal != noOperator
}

// Negated reports whether o is the complement of another operator.
func (o Operator) Negated() bool {
	return o.Valid() && operatorInfos[o].positive != noOperator
}

// Positive returns the operator o complements, or o itself.
func (o Operator) Positive() Operator {
	if o.Negated() {
		return operatorInfos[o].positive
	}
	return o
}

// Literal returns the literal counterpart of a _COLUMN operator, or o itself.
func (o Operator) Literal() Operator {
	if o.IsColumnCompare() {
		return operatorInfos[o].literal
	}
	return o
}

// AbsentResult is the result of o for a present row value tested against an
// absent literal operand. Note that GREATER_THAN is true while LESS_THAN is
// false: an absent lower bound excludes nothing.
func (o Operator) AbsentResult() bool {
	return o.Valid() && !o.IsColumnCompare() && operatorInfos[o].absent
}

// Supports reports whether o is offered for columns of domain d.
func (o Operator) Supports(d Domain) bool {
	if !o.Valid() {
		return false
	}
	var bit domainSet
	switch d {
	case DomainText:
		bit = onText
	case DomainNumber:
		bit = onNumber
	case DomainDate:
		bit = onDate
	case DomainPercent:
		bit = onPercent
	}
	return operatorInfos[o].domains&bit != 0
}

func (o Operator) MarshalText() ([]byte, error) {
	if !o.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownOperator, int(o))
	}
	return []byte(o.String()), nil
}

func (o *Operator) UnmarshalText(text []byte) error {
	op, err := ParseOperator(string(text))
	if err != nil {
		return err
	}
	*o = op
	return nil
}
