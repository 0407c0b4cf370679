// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package clauses

import (
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/ext/tryfunc"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"

	"github.com/tfctl/assetq/internal/filters"
)

type hclClause struct {
	Group    *int    `hcl:"group,optional"`
	Logic    *string `hcl:"logic,optional"`
	Column   string  `hcl:"column"`
	Operator string  `hcl:"operator"`
	Value    *string `hcl:"value,optional"`
	Enabled  *bool   `hcl:"enabled,optional"`
}

type hclDoc struct {
	Clauses []hclClause `hcl:"clause,block"`
	Where   []string    `hcl:"where,optional"`
}

// evalContext exposes the reference instant to clause expressions.
func evalContext(now time.Time) *hcl.EvalContext {
	now = now.UTC()
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"now":   cty.StringVal(now.Format(time.RFC3339)),
			"today": cty.StringVal(now.Format("2006-01-02")),
		},
		Functions: map[string]function.Function{
			"formatdate": stdlib.FormatDateFunc,
			"timeadd":    stdlib.TimeAddFunc,
			"format":     stdlib.FormatFunc,
			"join":       stdlib.JoinFunc,
			"lower":      stdlib.LowerFunc,
			"upper":      stdlib.UpperFunc,
			"trimspace":  stdlib.TrimSpaceFunc,
			"max":        stdlib.MaxFunc,
			"min":        stdlib.MinFunc,
			"try":        tryfunc.TryFunc,
			"can":        tryfunc.CanFunc,
		},
	}
}

func (b *Builder) addHCL(path string, data []byte) error {
	file, diags := hclsyntax.ParseConfig(data, path, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return diags
	}

	var doc hclDoc
	if diags := gohcl.DecodeBody(file.Body, evalContext(b.now), &doc); diags.HasErrors() {
		return diags
	}

	var errs []error
	for i, hc := range doc.Clauses {
		op, err := ParseOperator(hc.Operator)
		if err != nil {
			errs = append(errs, fmt.Errorf("clause %d: %w", i+1, err))
			continue
		}
		c := filters.Clause{
			Column:   hc.Column,
			Operator: op,
			Value:    hc.Value,
			Enabled:  hc.Enabled == nil || *hc.Enabled,
		}
		if hc.Logic != nil {
			if c.Logic, err = filters.ParseLogic(*hc.Logic); err != nil {
				errs = append(errs, fmt.Errorf("clause %d: %w", i+1, err))
				continue
			}
		}
		if hc.Group != nil {
			c.Group = *hc.Group
		}
		b.add(c, hc.Group != nil)
	}
	if err := b.AddWhere(doc.Where...); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
