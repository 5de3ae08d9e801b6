// Copyright 2025 The Sawmill Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"code.sawmill.io/sawmill/modules/log"
	"code.sawmill.io/sawmill/modules/setting"

	"github.com/urfave/cli/v2"
)

// AppVersion holds the version information passed in by main.
type AppVersion struct {
	Version string
	Extra   string
}

// cmdHelp is our own help subcommand with more information.
// Keep in mind that the "sawmill help"(subcommand) is different from
// "sawmill --help"(flag), the flag doesn't parse the config or output
// the "CONFIGURATION:" information.
func cmdHelp() *cli.Command {
	c := &cli.Command{
		Name:      "help",
		Aliases:   []string{"h"},
		Usage:     "Shows a list of commands or help for one command",
		ArgsUsage: "[command]",
		Action: func(ctx *cli.Context) (err error) {
			lineage := ctx.Lineage() // The order is from child to parent: help, log, sawmill, {Command:nil}
			targetCmdIdx := 0
			if lineage[0].Command.Name == "help" {
				targetCmdIdx = 1
			}
			if lineage[targetCmdIdx+1].Command != nil {
				err = cli.ShowCommandHelp(lineage[targetCmdIdx+1], lineage[targetCmdIdx].Command.Name)
			} else {
				err = cli.ShowAppHelp(ctx)
			}
			_, _ = fmt.Fprintf(ctx.App.Writer, `
CONFIGURATION:
   The configuration file is located by the --config flag, then the
   SAWMILL_CONFIG environment variable, then a sawmill.ini next to the
   binary. Without one the built-in defaults apply: minimum level RUN,
   no timestamps, console destinations only.
`)
			return err
		},
	}
	return c
}

func appGlobalFlags() []cli.Flag {
	return []cli.Flag{
		// make the builtin flags at the top
		cli.HelpFlag,
		// shared configuration flags, they work globally and on each
		// sub-command at the same time
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Set custom config file path",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Override the minimum severity level written to the destinations",
		},
		&cli.StringFlag{
			Name:  "log-file",
			Usage: "Add a file destination receiving the records",
		},
		&cli.StringFlag{
			Name:  "log-file-levels",
			Usage: "Comma-separated level names the --log-file accepts, or ALL",
		},
		&cli.StringFlag{
			Name:  "timestamp",
			Usage: "Render a timestamp ahead of each record, in Go reference time layout",
		},
		&cli.BoolFlag{
			Name:  "force-color",
			Usage: "Style every destination, files included",
		},
		&cli.BoolFlag{
			Name:    "dry-run",
			Aliases: []string{"n"},
			Usage:   "Record commands without executing them",
		},
	}
}

func prepareSubcommandWithConfig(command *cli.Command, globalFlags []cli.Flag) {
	if command.HideHelp {
		// already prepared by an earlier NewMainApp call (tests build
		// several apps over the same command values)
		return
	}
	command.Flags = append(append([]cli.Flag{}, globalFlags...), command.Flags...)
	command.Action = prepareConfigAndLogger(command.Action)
	command.HideHelp = true
	if command.Name != "help" {
		command.Subcommands = append(command.Subcommands, cmdHelp())
	}
	for i := range command.Subcommands {
		prepareSubcommandWithConfig(command.Subcommands[i], globalFlags)
	}
}

// prepareConfigAndLogger wraps a sub-command action: locate and load
// the configuration, fold the shared flag overrides in, apply the
// result to the default logger, then run the action. It can't use
// "Before", because each level of sub-command would run its own Before
// one by one, while the initialization must happen exactly once.
func prepareConfigAndLogger(action cli.ActionFunc) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		var config, logLevel, logFile, logFileLevels, timestamp string
		var forceColor, forceColorSet, dryRun, dryRunSet bool

		// from children to parent, the first context having a flag set
		// wins
		for _, curCtx := range ctx.Lineage() {
			if config == "" && curCtx.IsSet("config") {
				config = curCtx.String("config")
			}
			if logLevel == "" && curCtx.IsSet("log-level") {
				logLevel = curCtx.String("log-level")
			}
			if logFile == "" && curCtx.IsSet("log-file") {
				logFile = curCtx.String("log-file")
			}
			if logFileLevels == "" && curCtx.IsSet("log-file-levels") {
				logFileLevels = curCtx.String("log-file-levels")
			}
			if timestamp == "" && curCtx.IsSet("timestamp") {
				timestamp = curCtx.String("timestamp")
			}
			if !forceColorSet && curCtx.IsSet("force-color") {
				forceColor, forceColorSet = curCtx.Bool("force-color"), true
			}
			if !dryRunSet && curCtx.IsSet("dry-run") {
				dryRun, dryRunSet = curCtx.Bool("dry-run"), true
			}
		}

		setting.Init(config)
		if logLevel != "" {
			setting.Log.Level = logLevel
		}
		if timestamp != "" {
			setting.Log.TimestampFormat = timestamp
		}
		if forceColorSet {
			setting.Log.ForceColor = forceColor
		}
		if logFile != "" {
			setting.Log.File.Path = logFile
			if logFileLevels != "" {
				setting.Log.File.Levels = strings.Split(logFileLevels, ",")
			}
		}
		if dryRunSet {
			setting.Run.DryRun = dryRun
		}
		setting.InitLogger()

		if ctx.Bool("help") || action == nil {
			// the default behavior of "urfave/cli": "nil action" means "show help"
			return cmdHelp().Action(ctx)
		}
		return action(ctx)
	}
}

// NewMainApp creates the main sawmill cli app.
func NewMainApp(appVer AppVersion) *cli.App {
	app := cli.NewApp()
	app.Name = "sawmill"
	app.HelpName = "sawmill"
	app.Usage = "A CLI toolkit around a leveled, multi-destination log engine"
	app.Description = `Sawmill writes severity-leveled records to the console and to any
number of registered log files, each destination scoped to its own set
of levels, and runs external commands under the same recording.`
	app.Version = appVer.Version + appVer.Extra
	app.EnableBashCompletion = true

	// these sub-commands need to use the config file
	subCmdWithConfig := []*cli.Command{
		cmdHelp(), // the real "help" command
		CmdLog,
		CmdRun,
		CmdLevels,
	}
	// these sub-commands do not need the config file, and they do not
	// depend on any path or environment variable
	subCmdStandalone := []*cli.Command{
		CmdDocs,
	}

	globalFlags := appGlobalFlags()
	app.Flags = append(app.Flags, globalFlags...)
	app.HideHelp = true // use our own help action to show helps (with more information like the configuration file rules)
	for i := range subCmdWithConfig {
		prepareSubcommandWithConfig(subCmdWithConfig[i], globalFlags)
	}
	app.Commands = append(app.Commands, subCmdWithConfig...)
	app.Commands = append(app.Commands, subCmdStandalone...)

	return app
}

// RunMainApp runs the app and translates the error results: a
// log.FatalError becomes the recorded exit status, everything else
// becomes exit status one. All output has been written by the time it
// returns.
func RunMainApp(app *cli.App, args ...string) error {
	err := app.Run(args)
	if err == nil {
		return nil
	}
	var fatalErr *log.FatalError
	if errors.As(err, &fatalErr) {
		// the record and its trace are already on every destination,
		// release them before going down
		log.Default().Close()
		cli.OsExiter(fatalErr.Status)
		return err
	}
	if strings.HasPrefix(err.Error(), "flag provided but not defined:") {
		// the cli package should already have output the error message, so just exit
		cli.OsExiter(1)
		return err
	}
	_, _ = fmt.Fprintf(app.ErrWriter, "Command error: %v\n", err)
	cli.OsExiter(1)
	return err
}
