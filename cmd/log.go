// Copyright 2025 The Sawmill Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package cmd

import (
	"strconv"
	"strings"

	"code.sawmill.io/sawmill/modules/log"

	"github.com/urfave/cli/v2"
)

// CmdLog represents the log command, the dispatcher's CLI face.
var CmdLog = &cli.Command{
	Name:      "log",
	Usage:     "Write one record at a severity level",
	ArgsUsage: "LEVEL [STATUS] [MESSAGE...]",
	Description: `Writes one record to the console and to every registered file
destination accepting LEVEL. LEVEL is one of DEBUG, RUN, INFO, WARN,
ERROR, FATAL, QUIT, or any new name, which becomes an informational
level on first use.

For ERROR, FATAL and QUIT a leading numeric STATUS overrides the exit
status, which defaults to 1. ERROR and QUIT exit with that status;
FATAL additionally renders the call chain. Records below the minimum
severity level are dropped and exit with status 0.`,
	Action: runLog,
}

func runLog(ctx *cli.Context) error {
	if !ctx.Args().Present() {
		return cli.Exit("log requires a severity level", 1)
	}
	args := ctx.Args().Slice()

	l := log.Default()
	level := l.NewLevel(args[0])
	args = args[1:]

	status := 0
	if level.Action() != log.ActionNone && len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil {
			status = n
			args = args[1:]
		}
	}

	rc := l.Dispatch(0, level, status, "%s", strings.Join(args, " "))
	if rc == 0 {
		return nil
	}
	if level.Action() == log.ActionExit {
		return &log.FatalError{Status: rc}
	}
	return cli.Exit("", rc)
}
