// Copyright 2025 The Sawmill Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package process

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"time"

	"code.sawmill.io/sawmill/modules/log"
	"code.sawmill.io/sawmill/modules/setting"

	"github.com/kballard/go-shellquote"
)

// Command represents an external command line to record and run.
type Command struct {
	prog          string
	args          []string
	parentContext context.Context
}

// NewCommand creates and returns a new Command for the given program
// and arguments.
func NewCommand(ctx context.Context, prog string, args ...string) *Command {
	return &Command{
		prog:          prog,
		args:          args,
		parentContext: ctx,
	}
}

// AddArguments adds new argument(s) to the command.
func (c *Command) AddArguments(args ...string) *Command {
	c.args = append(c.args, args...)
	return c
}

// String returns the command line in shell-quoted form, suitable for
// pasting back into a shell.
func (c *Command) String() string {
	return shellquote.Join(append([]string{c.prog}, c.args...)...)
}

// SplitCommand splits one shell-quoted command line into program and
// arguments.
func SplitCommand(line string) ([]string, error) {
	return shellquote.Split(line)
}

// RunOpts represents parameters to run the command.
type RunOpts struct {
	Env            []string
	Timeout        time.Duration
	Dir            string
	Stdout, Stderr io.Writer
	Stdin          io.Reader
}

// Run emits one RUN-level record of the literal command line and then
// executes the command, forwarding its standard streams unmodified.
// With the dry-run setting on, execution stops after the record. The
// subprocess exit status comes back as an *exec.ExitError; anything
// keeping the command from running at all comes back as an *Error.
func (c *Command) Run(opts *RunOpts) error {
	if opts == nil {
		opts = &RunOpts{}
	}

	log.Run("%s", c)
	if setting.Run.DryRun {
		return nil
	}

	ctx := c.parentContext
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, c.prog, c.args...)
	if opts.Env == nil {
		cmd.Env = os.Environ()
	} else {
		cmd.Env = opts.Env
	}
	cmd.Dir = opts.Dir
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr
	cmd.Stdin = opts.Stdin
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}

	err := cmd.Run()
	if err == nil {
		return nil
	}
	var exitError *exec.ExitError
	if errors.As(err, &exitError) && ctx.Err() == nil {
		return err
	}
	return &Error{Description: c.String(), Err: err, CtxErr: ctx.Err()}
}

// ExitCode maps a Run result to the exit status to propagate: zero on
// success, the subprocess's own status when it ran and failed, one for
// everything else. A process torn down by a signal or an expired
// context has no usable status and maps to one as well.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitError *exec.ExitError
	if errors.As(err, &exitError) {
		if code := exitError.ExitCode(); code > 0 {
			return code
		}
	}
	return 1
}
