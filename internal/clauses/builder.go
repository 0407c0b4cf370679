// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package clauses

import (
	"errors"
	"fmt"
	"time"

	"github.com/tfctl/assetq/internal/config"
	"github.com/tfctl/assetq/internal/filters"
	"github.com/tfctl/assetq/internal/log"
)

// Builder collects clauses from several sources. Group numbers are shared
// across sources; clauses added without a group are given fresh groups when
// the result is read.
type Builder struct {
	now     time.Time
	clauses []filters.Clause
	auto    []bool
}

// NewBuilder returns a Builder whose HCL files see now as their reference
// instant.
func NewBuilder(now time.Time) *Builder {
	return &Builder{now: now}
}

func (b *Builder) add(c filters.Clause, grouped bool) {
	b.clauses = append(b.clauses, c)
	b.auto = append(b.auto, !grouped)
}

// AddWhere parses and adds --where specs. All bad specs are reported.
func (b *Builder) AddWhere(specs ...string) error {
	var errs []error
	for _, spec := range specs {
		c, grouped, err := ParseWhere(spec)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		b.add(c, grouped)
	}
	return errors.Join(errs...)
}

// AddClause adds a clause with an explicit group.
func (b *Builder) AddClause(c filters.Clause) {
	b.add(c, true)
}

// AddSet adds the --where specs stored under sets.<name> in the config.
func (b *Builder) AddSet(name string) error {
	specs, err := config.GetStringSlice("sets." + name)
	if err != nil {
		return fmt.Errorf("clause set %q: %w", name, err)
	}
	log.Debugf("set expanded: name=%s, specs=%v", name, specs)
	if err := b.AddWhere(specs...); err != nil {
		return fmt.Errorf("clause set %q: %w", name, err)
	}
	return nil
}

// Len returns the number of clauses added so far.
func (b *Builder) Len() int { return len(b.clauses) }

// Clauses returns the collected clauses in the order they were added.
// Ungrouped clauses are numbered after the highest explicit group.
func (b *Builder) Clauses() []filters.Clause {
	highest := 0
	for i, c := range b.clauses {
		if !b.auto[i] && c.Group > highest {
			highest = c.Group
		}
	}

	out := make([]filters.Clause, len(b.clauses))
	copy(out, b.clauses)
	for i := range out {
		if b.auto[i] {
			highest++
			out[i].Group = highest
			out[i].Logic = filters.And
		}
	}
	return out
}
