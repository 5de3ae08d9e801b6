// Copyright 2025 The Sawmill Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"code.sawmill.io/sawmill/modules/log"

	"github.com/urfave/cli/v2"
)

// CmdLevels represents the levels command.
var CmdLevels = &cli.Command{
	Name:  "levels",
	Usage: "List the registered severity levels",
	Description: `Lists every level the logger knows, in registration order: the seven
built-in levels plus any level created by the configuration or the
shared flags. Enabled levels, the ones at or above the minimum severity
level, are marked with an asterisk.`,
	Action: runLevels,
}

func runLevels(ctx *cli.Context) error {
	l := log.Default()
	width := l.LabelWidth()
	for _, level := range l.Levels() {
		mark := " "
		if l.LevelEnabled(level) {
			mark = "*"
		}
		_, _ = fmt.Fprintf(ctx.App.Writer, "%s %-*s %3d  %s\n", mark, width, level.Name(), level.Rank(), level.Class())
	}
	return nil
}
