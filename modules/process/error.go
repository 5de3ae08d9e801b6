// Copyright 2025 The Sawmill Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package process

import "fmt"

// Error describes a command that could not be run to completion: the
// program was missing, the working directory unusable, or the context
// expired. A command that ran and exited nonzero is not an *Error, its
// *exec.ExitError passes through untouched.
type Error struct {
	Description string
	Err         error
	CtxErr      error
}

func (err *Error) Error() string {
	if err.CtxErr != nil {
		return fmt.Sprintf("exec(%s) failed: %v (%v)", err.Description, err.Err, err.CtxErr)
	}
	return fmt.Sprintf("exec(%s) failed: %v", err.Description, err.Err)
}

// Unwrap implements the unwrappable implicit interface for errors.Is
// and errors.As.
func (err *Error) Unwrap() error {
	return err.Err
}
