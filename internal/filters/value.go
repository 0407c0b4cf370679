// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Domain is the value type a column holds. It is fixed when the column is
// created.
type Domain int

const (
	DomainText Domain = iota
	DomainNumber
	DomainDate
	DomainPercent
)

var domainNames = [...]string{
	DomainText:    "text",
	DomainNumber:  "number",
	DomainDate:    "date",
	DomainPercent: "percent",
}

func (d Domain) String() string {
	if d < 0 || int(d) >= len(domainNames) {
		return "unknown"
	}
	return domainNames[d]
}

// ParseDomain returns the Domain named by s. Matching is case-insensitive and
// an empty string is text.
func ParseDomain(s string) (Domain, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DomainText, nil
	}
	for i, name := range domainNames {
		if strings.EqualFold(s, name) {
			return Domain(i), nil
		}
	}
	return DomainText, fmt.Errorf("%w: %q", ErrUnknownDomain, s)
}

// DateLayout is the canonical rendering of date values. Dates are rendered and
// parsed in UTC.
const DateLayout = "2006-01-02 15:04"

// percentPlaces is the precision of a percent ratio: one hundredth of a
// percent.
const percentPlaces = 4

// Percent is a ratio where 1 is 100%. Percent values are compared at a
// precision of one hundredth of a percent.
type Percent struct {
	ratio decimal.Decimal
}

// NewPercent returns the Percent of ratio, e.g. NewPercent(2.22) is 222%.
func NewPercent(ratio float64) Percent {
	return Percent{ratio: fromFloat(ratio)}
}

// PercentOf returns the Percent of an exact ratio.
func PercentOf(ratio decimal.Decimal) Percent {
	return Percent{ratio: ratio}
}

func (p Percent) Ratio() decimal.Decimal { return p.ratio }

func (p Percent) rounded() decimal.Decimal { return p.ratio.Round(percentPlaces) }

// Cmp compares p and o rounded to hundredths of a percent.
func (p Percent) Cmp(o Percent) int {
	return p.rounded().Cmp(o.rounded())
}

// String renders p as a percentage, e.g. 2.22 is "222%".
func (p Percent) String() string {
	return p.rounded().Shift(2).String() + "%"
}

// Value is a typed cell value. The zero Value is an empty text.
type Value struct {
	domain Domain
	text   string
	// num holds numbers and percent ratios.
	num  decimal.Decimal
	date time.Time
}

func TextValue(s string) Value {
	return Value{domain: DomainText, text: s}
}

// NumberValue returns a number value. NaN and infinities become zero.
func NumberValue(n float64) Value {
	return Value{domain: DomainNumber, num: fromFloat(n)}
}

// DecimalValue returns a number value holding d exactly.
func DecimalValue(d decimal.Decimal) Value {
	return Value{domain: DomainNumber, num: d}
}

func PercentValue(p Percent) Value {
	return Value{domain: DomainPercent, num: p.ratio}
}

func DateValue(t time.Time) Value {
	return Value{domain: DomainDate, date: t}
}

func (v Value) Domain() Domain { return v.domain }

// Number returns the numeric payload as a float. For percent values this is
// the ratio.
func (v Value) Number() float64 { return v.num.InexactFloat64() }

// Decimal returns the exact numeric payload.
func (v Value) Decimal() decimal.Decimal { return v.num }

func (v Value) Percent() Percent { return Percent{ratio: v.num} }

func (v Value) Date() time.Time { return v.date }

// String returns the canonical rendering used by the string-family operators.
func (v Value) String() string {
	switch v.domain {
	case DomainNumber:
		return v.num.String()
	case DomainPercent:
		return v.Percent().String()
	case DomainDate:
		return v.date.UTC().Format(DateLayout)
	default:
		return v.text
	}
}

// Interface returns the natural Go value: string, float64, time.Time, or the
// rendered percentage.
func (v Value) Interface() any {
	switch v.domain {
	case DomainNumber:
		return v.num.InexactFloat64()
	case DomainPercent:
		return v.Percent().String()
	case DomainDate:
		return v.date.UTC()
	default:
		return v.text
	}
}

func fromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// CompareValues orders two values. Values of the same domain are ordered
// naturally (text case-insensitively); mixed domains fall back to their
// renderings.
func CompareValues(a, b Value) int {
	if a.domain != b.domain {
		return strings.Compare(strings.ToLower(a.String()), strings.ToLower(b.String()))
	}

	switch a.domain {
	case DomainNumber:
		return a.num.Cmp(b.num)
	case DomainPercent:
		return a.Percent().Cmp(b.Percent())
	case DomainDate:
		return a.date.Compare(b.date)
	default:
		if c := strings.Compare(strings.ToLower(a.text), strings.ToLower(b.text)); c != 0 {
			return c
		}
		return strings.Compare(a.text, b.text)
	}
}

// ParseValue reads s as a value of domain d. Numbers accept an optional
// leading sign and decimals, percents accept an optional trailing "%" and are
// read as percentages ("222" is 2.22), dates accept the layouts of ParseDate.
func ParseValue(s string, d Domain) (Value, bool) {
	switch d {
	case DomainNumber:
		n, ok := ParseDecimal(s)
		return DecimalValue(n), ok
	case DomainPercent:
		p, ok := parsePercent(s)
		return PercentValue(p), ok
	case DomainDate:
		t, ok := ParseDate(s)
		return DateValue(t), ok
	default:
		return TextValue(s), true
	}
}

var dateLayouts = []string{
	DateLayout,
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseDate parses s with the supported date layouts. Times without a zone
// are UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// maxExponent bounds the exponent of parsed numbers. Comparing decimals
// rescales them, which is unbounded work for exponents like 1e999999999.
const maxExponent = 64

// ParseDecimal reads s as an exact decimal. Exponents beyond maxExponent are
// rejected.
func ParseDecimal(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	n, err := decimal.NewFromString(s)
	if err != nil || n.Exponent() > maxExponent || n.Exponent() < -maxExponent {
		return decimal.Zero, false
	}
	return n, true
}

func parsePercent(s string) (Percent, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	n, ok := ParseDecimal(s)
	if !ok {
		return Percent{}, false
	}
	return PercentOf(n.Shift(-2)), true
}
