// Copyright 2025 The Sawmill Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"code.sawmill.io/sawmill/modules/log"
	"code.sawmill.io/sawmill/modules/setting"
	"code.sawmill.io/sawmill/modules/test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func newTestApp(testCmdAction func(ctx *cli.Context) error) *cli.App {
	app := NewMainApp(AppVersion{})
	testCmd := &cli.Command{Name: "test-cmd", Action: testCmdAction}
	prepareSubcommandWithConfig(testCmd, appGlobalFlags())
	app.Commands = append(app.Commands, testCmd)
	app.DefaultCommand = testCmd.Name
	return app
}

type runResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

func runTestApp(app *cli.App, args ...string) (runResult, error) {
	outBuf := new(strings.Builder)
	errBuf := new(strings.Builder)
	app.Writer = outBuf
	app.ErrWriter = errBuf

	// the default logger's console lands in the same buffers, and its
	// exit handler feeds the same mocked exiter
	l := log.NewLoggerWithConsole(log.NewConsoleWriterTo(outBuf, errBuf, false))
	l.SetExitHandler(func(code int) { cli.OsExiter(code) })
	defer log.SetDefault(log.SetDefault(l))
	defer test.MockVariableValue(&setting.Log)()
	defer test.MockVariableValue(&setting.Run)()
	defer test.MockVariableValue(&setting.CustomConf)()

	exitCode := -1
	defer test.MockVariableValue(&cli.ErrWriter, app.ErrWriter)()
	defer test.MockVariableValue(&cli.OsExiter, func(code int) {
		if exitCode == -1 {
			exitCode = code // save the exit code once and then reset the writer (to simulate the exit)
			app.Writer, app.ErrWriter, cli.ErrWriter = io.Discard, io.Discard, io.Discard
		}
	})()
	err := RunMainApp(app, args...)
	return runResult{outBuf.String(), errBuf.String(), exitCode}, err
}

func makeStateOutput() string {
	return fmt.Sprintf("Conf=%s Level=%q DryRun=%v", setting.CustomConf, setting.Log.Level, setting.Run.DryRun)
}

func TestCliCmd(t *testing.T) {
	confDebug := filepath.Join(t.TempDir(), "sawmill.ini")
	require.NoError(t, os.WriteFile(confDebug, []byte("[log]\nLEVEL = debug\n"), 0o644))

	cases := []struct {
		env map[string]string
		cmd string
		exp string
	}{
		// main command help
		{
			cmd: "./sawmill help",
			exp: "CONFIGURATION:",
		},

		// parse config and overrides
		{
			cmd: "./sawmill test-cmd",
			exp: `Conf= Level="" DryRun=false`,
		},
		{
			cmd: "./sawmill -c " + confDebug + " test-cmd",
			exp: "Conf=" + confDebug + ` Level="debug" DryRun=false`,
		},
		{
			cmd: "./sawmill test-cmd -c " + confDebug,
			exp: "Conf=" + confDebug + ` Level="debug" DryRun=false`,
		},
		{
			cmd: "./sawmill --log-level warn test-cmd",
			exp: `Conf= Level="warn" DryRun=false`,
		},
		{
			cmd: "./sawmill -c " + confDebug + " test-cmd --log-level error",
			exp: "Conf=" + confDebug + ` Level="error" DryRun=false`,
		},
		{
			cmd: "./sawmill --dry-run test-cmd",
			exp: `Conf= Level="" DryRun=true`,
		},
		{
			env: map[string]string{"SAWMILL_LOG_LEVEL": "warn"},
			cmd: "./sawmill test-cmd",
			exp: `Conf= Level="warn" DryRun=false`,
		},
		{
			env: map[string]string{"SAWMILL_DRY_RUN": "true"},
			cmd: "./sawmill test-cmd",
			exp: `Conf= Level="" DryRun=true`,
		},
	}

	app := newTestApp(func(ctx *cli.Context) error {
		_, _ = fmt.Fprint(ctx.App.Writer, makeStateOutput())
		return nil
	})
	for _, c := range cases {
		t.Run(c.cmd, func(t *testing.T) {
			for k, v := range c.env {
				t.Setenv(k, v)
			}
			args := strings.Split(c.cmd, " ") // for test only, "split" is good enough
			r, err := runTestApp(app, args...)
			assert.NoError(t, err, c.cmd)
			assert.NotEmpty(t, c.exp, c.cmd)
			assert.Contains(t, r.Stdout, c.exp, c.cmd)
		})
	}
}

func TestCliCmdError(t *testing.T) {
	app := newTestApp(func(ctx *cli.Context) error { return fmt.Errorf("normal error") })
	r, err := runTestApp(app, "./sawmill", "test-cmd")
	assert.Error(t, err)
	assert.Equal(t, 1, r.ExitCode)
	assert.Equal(t, "", r.Stdout)
	assert.Equal(t, "Command error: normal error\n", r.Stderr)

	app = newTestApp(func(ctx *cli.Context) error { return cli.Exit("exit error", 2) })
	r, err = runTestApp(app, "./sawmill", "test-cmd")
	assert.Error(t, err)
	assert.Equal(t, 2, r.ExitCode)
	assert.Equal(t, "", r.Stdout)
	assert.Equal(t, "exit error\n", r.Stderr)

	app = newTestApp(func(ctx *cli.Context) error { return nil })
	r, err = runTestApp(app, "./sawmill", "test-cmd", "--no-such")
	assert.Error(t, err)
	assert.Equal(t, 1, r.ExitCode)
	assert.Equal(t, "Incorrect Usage: flag provided but not defined: -no-such\n\n", r.Stdout)
	assert.Equal(t, "", r.Stderr) // the cli package's strange behavior, the error message is not in stderr ....

	app = newTestApp(func(ctx *cli.Context) error { return nil })
	r, err = runTestApp(app, "./sawmill", "test-cmd")
	assert.NoError(t, err)
	assert.Equal(t, -1, r.ExitCode) // the cli.OsExiter is not called
	assert.Equal(t, "", r.Stdout)
	assert.Equal(t, "", r.Stderr)
}

func TestCliCmdFatalUnwind(t *testing.T) {
	app := newTestApp(func(ctx *cli.Context) error { return &log.FatalError{Status: 3} })
	r, err := runTestApp(app, "./sawmill", "test-cmd")
	assert.Error(t, err)
	assert.Equal(t, 3, r.ExitCode)
	// the record was written by the logger before the unwind, nothing
	// more is printed on the way out
	assert.Equal(t, "", r.Stderr)
}

func TestCliCmdBadConfigFile(t *testing.T) {
	conf := filepath.Join(t.TempDir(), "sawmill.ini")
	require.NoError(t, os.WriteFile(conf, []byte("[log"), 0o644))

	app := newTestApp(func(ctx *cli.Context) error { return nil })
	r, _ := runTestApp(app, "./sawmill", "-c", conf, "test-cmd")
	assert.Equal(t, 1, r.ExitCode)
	assert.Contains(t, r.Stderr, "Failed to parse")
}

func TestDocsCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docs.md")
	r, err := runTestApp(NewMainApp(AppVersion{}), "./sawmill", "docs", "--output", path)
	assert.NoError(t, err)
	assert.Equal(t, -1, r.ExitCode)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "sawmill")
	assert.Contains(t, string(data), "log")
	assert.Contains(t, string(data), "run")
}
