// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package attrs

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/tfctl/assetq/internal/log"
)

// Attr is one output column. Key is the row path the value is drilled from,
// OutputKey the column name used by clauses, sorting and titles.
type Attr struct {
	// The dot path to extract from each dataset row.
	Key string `yaml:"key" json:"Key"`
	// Should this Attr be included in output or is it just
	// intended for filtering and sorting?
	Include bool `yaml:"include" json:"Include"`
	// The column name. This is also used as the column title when
	// output=text.
	OutputKey string `yaml:"outputKey" json:"OutputKey"`
	// Value domain of the column: text, number, date or percent. Empty keeps
	// the schema's domain, or text for new columns.
	Domain string `yaml:"domain" json:"Domain"`
	// Transformation spec to apply to the output value.
	TransformSpec string `yaml:"transformSpec" json:"TransformSpec"`
}

var lengthRE = regexp.MustCompile(`-?\d+`)

// Transform applies the attribute's transform spec to a value and returns the
// transformed result. now is the reference instant for relative times.
func (a *Attr) Transform(value interface{}, now time.Time) interface{} {
	if a.TransformSpec == "" {
		return value
	}

	var result string
	switch v := value.(type) {
	case string:
		result = v
	case time.Time:
		result = a.transformTime(v, now)
	case float64:
		if strings.ContainsAny(a.TransformSpec, "cC") {
			result = humanize.Commaf(v)
			log.Tracef("comma: result=%s", result)
		} else {
			result = strconv.FormatFloat(v, 'f', -1, 64)
		}
	default:
		log.Tracef("untransformable value: value=%v", value)
		return value
	}

	// We need to know which case transformation appears last. This covers the
	// case where there has been a global case transformation prepended to the
	// attrs transformation and allows the attr's to carry more weight.
	// IOW... --columns '*:::U,name:::l' will be lower case.
	lastL := strings.LastIndexAny(a.TransformSpec, "lL")
	lastU := strings.LastIndexAny(a.TransformSpec, "uU")

	if lastL > lastU {
		result = strings.ToLower(result)
		log.Tracef("case lower: result=%s", result)
	} else if lastU > lastL {
		result = strings.ToUpper(result)
		log.Tracef("case upper: result=%s", result)
	}

	// Same logic as above re: case. This allows a more specific length
	// transformation to override a global one.
	match := lengthRE.FindAllString(a.TransformSpec, -1)
	if len(match) != 0 {
		l, _ := strconv.Atoi(match[len(match)-1])
		result = truncate(result, l)
	}

	return result
}

func (a *Attr) transformTime(t time.Time, now time.Time) string {
	switch {
	case strings.Contains(a.TransformSpec, "T"):
		r := humanize.RelTime(t, now, "ago", "from now")
		log.Tracef("time ago: result=%s", r)
		return r
	case strings.Contains(a.TransformSpec, "t"):
		r := t.In(time.Local).Format("2006-01-02 15:04 MST")
		log.Tracef("time local: result=%s", r)
		return r
	default:
		return t.UTC().Format("2006-01-02 15:04")
	}
}

// truncate shortens s to l runes. A negative l keeps both ends and elides the
// middle.
func truncate(s string, l int) string {
	runes := []rune(s)
	abs := l
	if abs < 0 {
		abs = -abs
	}
	if len(runes) <= abs {
		return s
	}
	if l < 0 {
		keep := max(abs/2-1, 0)
		r := string(runes[:keep]) + ".." + string(runes[len(runes)-keep:])
		log.Tracef("length middle: result=%s", r)
		return r
	}
	log.Tracef("length trunc: result=%s", string(runes[:l]))
	return string(runes[:l])
}

// AttrList is a collection of Attr used to shape output fields.
type AttrList []Attr

// Set parses each spec from --columns and adds it to the AttrList.
func (a *AttrList) Set(value string) error {
	if value == "" || value == "*" {
		log.Debugf("early return: value=%s", value)
		return nil
	}

	const (
		keyIdx = iota
		outputIdx
		domainIdx
		transformIdx
	)

	// There are four : delimited fields in each spec: the row path, the column
	// name, the domain and the transformation spec. All but the first are
	// optional. The column name defaults to the last segment of the path.
	specs := strings.Split(value, ",")
	log.Debugf("specs split: specs=%v", specs)
specloop:
	for _, spec := range specs {
		attr := Attr{
			Include: true,
		}

		fields := strings.Split(spec, ":")
		if len(fields) > transformIdx+1 {
			return fmt.Errorf("column spec %q has more than %d fields", spec, transformIdx+1)
		}

		// The first field is the path to extract from the row. If it begins
		// with a !, the column is not displayed.
		attr.Key = strings.TrimSpace(fields[keyIdx])
		if strings.HasPrefix(attr.Key, "!") {
			attr.Include = false
			attr.Key = attr.Key[1:]
		}
		if attr.Key == "" {
			return fmt.Errorf("column spec %q has no key", spec)
		}

		if attr.Key == "*" {
			attr.Include = false
		}
		log.Tracef("key parsed: key=%s, include=%v", attr.Key, attr.Include)

		segments := strings.Split(attr.Key, ".")
		attr.OutputKey = segments[len(segments)-1]
		if len(fields) > outputIdx && strings.TrimSpace(fields[outputIdx]) != "" {
			attr.OutputKey = strings.TrimSpace(fields[outputIdx])
		}
		log.Tracef("output set: outputKey=%s", attr.OutputKey)

		if len(fields) > domainIdx {
			attr.Domain = strings.ToLower(strings.TrimSpace(fields[domainIdx]))
		}
		if len(fields) > transformIdx {
			attr.TransformSpec = strings.TrimSpace(fields[transformIdx])
		}
		log.Tracef("domain and transform set: domain=%s spec=%s", attr.Domain, attr.TransformSpec)

		// If the attr already exists in the list (because it is a default for
		// a dataset kind or the user double-entered it), apply the new settings
		// to the existing Attr.
		for i := range *a {
			existing := &(*a)[i]
			if existing.Key == attr.Key || existing.OutputKey == attr.Key {
				existing.Include = attr.Include
				if len(fields) > outputIdx && strings.TrimSpace(fields[outputIdx]) != "" {
					existing.OutputKey = attr.OutputKey
				}
				if attr.Domain != "" {
					existing.Domain = attr.Domain
				}
				existing.TransformSpec = attr.TransformSpec
				log.Tracef("existing updated: i=%d", i)
				continue specloop
			}
		}

		*a = append(*a, attr)
		log.Tracef("attr appended: len=%d", len(*a))
	}

	return nil
}

// SetGlobalTransformSpec inserts a global transform spec at the front of all
// attrs in the list.
func (a *AttrList) SetGlobalTransformSpec() error {
	spec := ""

	// Find the global transform spec. If there is more than one, take the first.
	for attr := range *a {
		if (*a)[attr].Key == "*" {
			spec = (*a)[attr].TransformSpec
			break
		}
	}
	log.Debugf("global spec: spec=%s", spec)

	if spec == "" {
		return nil
	}

	for attr := range *a {
		(*a)[attr].TransformSpec = spec + "," + (*a)[attr].TransformSpec
	}

	return nil
}

// Visible returns the included attrs in order.
func (a AttrList) Visible() AttrList {
	out := make(AttrList, 0, len(a))
	for _, attr := range a {
		if attr.Include && attr.Key != "*" {
			out = append(out, attr)
		}
	}
	return out
}

// Lookup returns the attr whose output key is name, ignoring case.
func (a AttrList) Lookup(name string) (Attr, bool) {
	for _, attr := range a {
		if strings.EqualFold(attr.OutputKey, name) {
			return attr, true
		}
	}
	return Attr{}, false
}

// String returns a string representation of the AttrList. This matches the
// format of the --columns flag.
func (a *AttrList) String() string {
	result := make([]string, 0, len(*a))
	for _, attr := range *a {
		key := attr.Key
		if !attr.Include && key != "*" {
			key = "!" + key
		}
		result = append(result, fmt.Sprintf("%s:%s:%s:%s", key, attr.OutputKey, attr.Domain, attr.TransformSpec))
	}

	return strings.Join(result, ",")
}

// Type returns the flag type for use with the flag.Value interface.
func (a *AttrList) Type() string { return "list" }
