// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import "errors"

var (
	ErrUnknownColumn   = errors.New("unknown column")
	ErrDuplicateColumn = errors.New("duplicate column")
	ErrUnknownDomain   = errors.New("unknown domain")
	ErrUnknownOperator = errors.New("unknown operator")
	ErrUnknownLogic    = errors.New("unknown logic")
	ErrMixedLogic      = errors.New("mixed logic in group")
	ErrNilTable        = errors.New("nil column table")
)
