// Copyright 2025 The Sawmill Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package cmd

import (
	"errors"

	"code.sawmill.io/sawmill/modules/log"
	"code.sawmill.io/sawmill/modules/process"

	"github.com/urfave/cli/v2"
)

// CmdRun represents the run command.
var CmdRun = &cli.Command{
	Name:      "run",
	Usage:     "Record a command at RUN level, then execute it",
	ArgsUsage: "COMMAND [ARGS...]",
	Description: `Writes the command line as one RUN record, then executes it with its
standard streams forwarded unmodified, and exits with the command's own
exit status. A single argument is split as a quoted shell word list.

With --dry-run (or DRY_RUN = true in the [run] section) the record is
written but nothing is executed.`,
	Action: runRun,
}

func runRun(ctx *cli.Context) error {
	args := ctx.Args().Slice()
	if len(args) == 1 {
		var err error
		if args, err = process.SplitCommand(args[0]); err != nil {
			return cli.Exit("run: invalid command line: "+err.Error(), 1)
		}
	}
	if len(args) == 0 {
		return cli.Exit("run requires a command", 1)
	}

	stdCtx, cancel := installSignals()
	defer cancel()

	c := process.NewCommand(stdCtx, args[0], args[1:]...)
	err := c.Run(&process.RunOpts{
		Stdout: ctx.App.Writer,
		Stderr: ctx.App.ErrWriter,
	})
	if err == nil {
		return nil
	}
	var runErr *process.Error
	if errors.As(err, &runErr) {
		// the command never ran, say so; a plain nonzero exit already
		// spoke for itself on the forwarded streams
		log.Error("Failed to run command: %v", err)
	}
	return cli.Exit("", process.ExitCode(err))
}
