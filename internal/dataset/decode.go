// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/tfctl/assetq/internal/log"
)

// ErrNoRows is returned when a document holds no row array.
var ErrNoRows = errors.New("no rows found")

// Decode reads a JSON or YAML document and returns its rows. The document is
// either an array of row objects, or an object holding that array under the
// kind's name or under "rows".
func Decode(kind Kind, data []byte) ([]gjson.Result, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrNoRows)
	}

	if !gjson.ValidBytes(data) {
		converted, err := yamlToJSON(data)
		if err != nil {
			return nil, err
		}
		data = converted
	}

	doc := gjson.ParseBytes(data)
	if doc.IsObject() {
		doc = pick(doc, string(kind), "rows")
	}
	if !doc.IsArray() {
		return nil, fmt.Errorf("%w: expected an array of %s", ErrNoRows, kind)
	}

	rows := doc.Array()
	for i, r := range rows {
		if !r.IsObject() {
			return nil, fmt.Errorf("%s row %d is not an object", kind, i)
		}
	}
	log.Debugf("decoded: kind=%s, rows=%d", kind, len(rows))
	return rows, nil
}

func pick(doc gjson.Result, keys ...string) gjson.Result {
	for _, k := range keys {
		if v := doc.Get(k); v.IsArray() {
			return v
		}
	}
	return gjson.Result{}
}

// yamlToJSON re-encodes a YAML document as JSON so rows are uniformly
// gjson.Result values. Timestamps become RFC3339 strings.
func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}
	out, err := json.Marshal(normalize(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode dataset: %w", err)
	}
	return out, nil
}

// normalize converts map[any]any nodes, which encoding/json cannot marshal,
// into map[string]any.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = normalize(e)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[fmt.Sprint(k)] = normalize(e)
		}
		return m
	case []any:
		for i, e := range t {
			t[i] = normalize(e)
		}
		return t
	}
	return v
}
