// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package clauses

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tfctl/assetq/internal/filters"
	"github.com/tfctl/assetq/internal/log"
)

// fileClause is a clause as written in a file. Group and Enabled are
// optional; a clause without a group gets its own and clauses are enabled
// unless they say otherwise. Operator takes a name or a short form.
type fileClause struct {
	Group    *int          `yaml:"group"`
	Logic    filters.Logic `yaml:"logic"`
	Column   string        `yaml:"column"`
	Operator *string       `yaml:"operator"`
	Value    *string       `yaml:"value"`
	Enabled  *bool         `yaml:"enabled"`
}

// fileDoc is the mapping form of a clause file.
type fileDoc struct {
	Clauses []fileClause `yaml:"clauses"`
	Where   []string     `yaml:"where"`
}

// AddFile adds the clauses of a YAML, JSON or HCL clause file. The format is
// picked by extension; anything but .hcl is read as YAML.
func (b *Builder) AddFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read clause file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".hcl") {
		err = b.addHCL(path, data)
	} else {
		err = b.addYAML(data)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	log.Debugf("clause file added: path=%s, total=%d", path, b.Len())
	return nil
}

// addYAML accepts either a list of clauses or a mapping with clauses and
// where lists.
func (b *Builder) addYAML(data []byte) error {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return err
	}
	if len(node.Content) == 0 {
		return nil
	}

	var doc fileDoc
	root := node.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&doc.Clauses); err != nil {
			return err
		}
	case yaml.MappingNode:
		if err := root.Decode(&doc); err != nil {
			return err
		}
	default:
		return errors.New("expected a list of clauses or a clauses/where mapping")
	}

	var errs []error
	for i, fc := range doc.Clauses {
		if fc.Column == "" {
			errs = append(errs, fmt.Errorf("clause %d: missing column", i+1))
			continue
		}
		if fc.Operator == nil {
			errs = append(errs, fmt.Errorf("clause %d: missing operator", i+1))
			continue
		}
		op, err := ParseOperator(strings.TrimSpace(*fc.Operator))
		if err != nil {
			errs = append(errs, fmt.Errorf("clause %d: %w", i+1, err))
			continue
		}
		c := filters.Clause{
			Logic:    fc.Logic,
			Column:   fc.Column,
			Operator: op,
			Value:    fc.Value,
			Enabled:  fc.Enabled == nil || *fc.Enabled,
		}
		if fc.Group != nil {
			c.Group = *fc.Group
		}
		b.add(c, fc.Group != nil)
	}
	if err := b.AddWhere(doc.Where...); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
