// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/assetq/internal/filters"
	"github.com/tfctl/assetq/internal/output"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// GlobalFlagsValidator checks flag combinations that single flag validators
// can't see.
func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	if c.Bool("browse") && c.String("output") != output.FormatText {
		return errors.New("--browse only works with text output")
	}
	return nil
}

func OutputValidator(value any) error {
	var validOutputFlagValues = []string{
		output.FormatText, output.FormatJSON, output.FormatRaw, output.FormatYAML,
	}
	s, _ := value.(string)
	if !slices.Contains(validOutputFlagValues, s) {
		return fmt.Errorf("must be one of %v", validOutputFlagValues)
	}
	return nil
}

func NonNegativeValidator(value any) error {
	if n, ok := value.(int); ok && n < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

// DateValidator accepts an empty value or any date filters.ParseDate reads.
func DateValidator(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, ok := filters.ParseDate(s); !ok {
		return fmt.Errorf("%q is not a date (use YYYY-MM-DD HH:MM)", s)
	}
	return nil
}
