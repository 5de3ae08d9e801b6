// Copyright 2025 The Sawmill Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package test

// MockVariableValue sets a variable to a mocked value and returns a
// function restoring the old value, for use with defer:
//
//	defer test.MockVariableValue(&opts.DryRun, true)()
//
// With no value argument it only snapshots, so the caller can mutate
// the variable freely and still restore it.
func MockVariableValue[T any](p *T, v ...T) (reset func()) {
	old := *p
	if len(v) == 1 {
		*p = v[0]
	}
	return func() { *p = old }
}
