// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package driller

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

var segmentRE = regexp.MustCompile(`^([a-zA-Z0-9_-]+)(\[(\d+|\*)?\])?$`)

// anyIndex selects the whole array; firstOrAll selects a single element array's
// element and otherwise the whole array.
const (
	firstOrAll = -1
	anyIndex   = -2
)

type segment struct {
	key   string
	index int
}

// Path is a compiled dot path.
type Path struct {
	raw      string
	segments []segment
}

// Compile parses a dot path. Each segment is a key optionally followed by
// [n] to pick an element or [*] to keep the whole array.
func Compile(path string) (Path, error) {
	p := Path{raw: path}
	for _, part := range strings.Split(path, ".") {
		matches := segmentRE.FindStringSubmatch(part)
		if len(matches) == 0 {
			return Path{}, fmt.Errorf("invalid path segment %q in %q", part, path)
		}

		seg := segment{key: matches[1], index: firstOrAll}
		switch matches[3] {
		case "":
		case "*":
			seg.index = anyIndex
		default:
			i, err := strconv.Atoi(matches[3])
			if err != nil {
				return Path{}, fmt.Errorf("invalid index in %q: %w", part, err)
			}
			seg.index = i
		}
		p.segments = append(p.segments, seg)
	}
	return p, nil
}

func (p Path) String() string { return p.raw }

// Get drills into row. The result does not exist when a segment is missing
// or an index is out of range.
func (p Path) Get(row gjson.Result) gjson.Result {
	current := row
	for _, seg := range p.segments {
		val := current.Get(seg.key)
		if val.IsArray() {
			arr := val.Array()
			switch {
			case seg.index == anyIndex:
			case seg.index == firstOrAll:
				if len(arr) == 1 {
					val = arr[0]
				}
				// Otherwise keep the whole list.
			case seg.index < len(arr):
				val = arr[seg.index]
			default:
				return gjson.Result{}
			}
		}
		current = val
	}
	return current
}

// Driller navigates JSON using a flexible dot path supporting arrays.
func Driller(jsonData string, path string) gjson.Result {
	p, err := Compile(path)
	if err != nil {
		return gjson.Result{}
	}
	return p.Get(gjson.Parse(jsonData))
}
