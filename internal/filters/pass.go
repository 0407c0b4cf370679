// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tfctl/assetq/internal/log"
)

// Pass is one filtering pass: a compiled clause set bound to a single
// reference instant.
type Pass struct {
	now  time.Time
	pred *Combinator
}

type passOptions struct {
	clock func() time.Time
}

type PassOption func(*passOptions)

// WithNow fixes the reference instant of the pass.
func WithNow(t time.Time) PassOption {
	return func(o *passOptions) {
		o.clock = func() time.Time { return t }
	}
}

// WithClock reads the reference instant from clock. It is called once.
func WithClock(clock func() time.Time) PassOption {
	return func(o *passOptions) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// NewPass compiles clauses against table, reading the clock once.
func NewPass(table *Table, clauses []Clause, opts ...PassOption) (*Pass, error) {
	o := &passOptions{clock: time.Now}
	for _, opt := range opts {
		opt(o)
	}

	now := o.clock().UTC()
	pred, err := Compile(table, clauses, now)
	if err != nil {
		return nil, err
	}
	log.Debugf("filters: pass at %s: %s", now.Format(time.RFC3339), pred)

	return &Pass{now: now, pred: pred}, nil
}

// Now returns the reference instant of the pass.
func (p *Pass) Now() time.Time { return p.now }

func (p *Pass) Matches(row any) bool { return p.pred.Matches(row) }

func (p *Pass) Predicate() *Combinator { return p.pred }

// Filter returns the rows of rows that satisfy pred, in order.
func Filter[R any](pred Predicate, rows []R) []R {
	out := make([]R, 0, len(rows))
	for _, r := range rows {
		if pred.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// chunkSize bounds how many rows a worker tests between context checks.
const chunkSize = 1024

// FilterParallel is Filter spread over up to workers goroutines. Row order is
// kept. It only fails when ctx is cancelled.
func FilterParallel[R any](ctx context.Context, pred Predicate, rows []R, workers int) ([]R, error) {
	if workers <= 1 || len(rows) <= chunkSize {
		return Filter(pred, rows), nil
	}

	keep := make([]bool, len(rows))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for start := 0; start < len(rows); start += chunkSize {
		end := min(start+chunkSize, len(rows))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for i := start; i < end; i++ {
				keep[i] = pred.Matches(rows[i])
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]R, 0, len(rows))
	for i, r := range rows {
		if keep[i] {
			out = append(out, r)
		}
	}
	return out, nil
}
