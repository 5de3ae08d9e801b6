// Copyright 2025 The Sawmill Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package process

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"code.sawmill.io/sawmill/modules/log"
	"code.sawmill.io/sawmill/modules/setting"
	"code.sawmill.io/sawmill/modules/test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLogger swaps the default logger for one writing into the returned
// buffer, restored when the test ends.
func testLogger(t *testing.T) *strings.Builder {
	var console strings.Builder
	l := log.NewLoggerWithConsole(log.NewConsoleWriterTo(&console, &console, false))
	old := log.SetDefault(l)
	t.Cleanup(func() { log.SetDefault(old) })
	return &console
}

func TestCommandString(t *testing.T) {
	c := NewCommand(context.Background(), "echo", "hello world", "plain")
	assert.Equal(t, "echo 'hello world' plain", c.String())

	c = NewCommand(context.Background(), "echo").AddArguments("a", "b")
	assert.Equal(t, "echo a b", c.String())
}

func TestSplitCommand(t *testing.T) {
	args, err := SplitCommand("echo 'hello world'")
	assert.NoError(t, err)
	assert.Equal(t, []string{"echo", "hello world"}, args)

	_, err = SplitCommand("echo 'unterminated")
	assert.Error(t, err)
}

func TestRunEmitsRunRecordAndForwardsOutput(t *testing.T) {
	console := testLogger(t)
	var out bytes.Buffer

	c := NewCommand(context.Background(), "sh", "-c", "echo forwarded")
	err := c.Run(&RunOpts{Stdout: &out, Stderr: &out})

	assert.NoError(t, err)
	assert.Equal(t, "RUN   sh -c 'echo forwarded'\n", console.String())
	assert.Equal(t, "forwarded\n", out.String())
}

func TestRunDryRun(t *testing.T) {
	console := testLogger(t)
	defer test.MockVariableValue(&setting.Run.DryRun, true)()

	marker := filepath.Join(t.TempDir(), "created")
	c := NewCommand(context.Background(), "sh", "-c", "touch "+marker)
	err := c.Run(nil)

	assert.NoError(t, err)
	assert.NoFileExists(t, marker)
	// the RUN record is still emitted, only the execution is skipped
	assert.Equal(t, "RUN   sh -c 'touch "+marker+"'\n", console.String())
}

func TestRunExitStatus(t *testing.T) {
	testLogger(t)

	c := NewCommand(context.Background(), "sh", "-c", "exit 3")
	err := c.Run(&RunOpts{Stdout: io.Discard, Stderr: io.Discard})

	require.Error(t, err)
	assert.Equal(t, 3, ExitCode(err))

	var runErr *Error
	assert.False(t, errors.As(err, &runErr), "a nonzero exit is not a run failure")
}

func TestRunMissingProgram(t *testing.T) {
	testLogger(t)

	c := NewCommand(context.Background(), "/no/such/program")
	err := c.Run(&RunOpts{Stdout: io.Discard, Stderr: io.Discard})

	var runErr *Error
	require.ErrorAs(t, err, &runErr)
	assert.Contains(t, err.Error(), "exec(/no/such/program) failed")
	assert.Equal(t, 1, ExitCode(err))
}

func TestRunTimeout(t *testing.T) {
	testLogger(t)

	c := NewCommand(context.Background(), "sh", "-c", "sleep 5")
	err := c.Run(&RunOpts{Timeout: 50 * time.Millisecond, Stdout: io.Discard, Stderr: io.Discard})

	var runErr *Error
	require.ErrorAs(t, err, &runErr)
	assert.ErrorIs(t, runErr.CtxErr, context.DeadlineExceeded)
	assert.Equal(t, 1, ExitCode(err))
}

func TestRunDirAndEnv(t *testing.T) {
	testLogger(t)
	dir := t.TempDir()
	var out bytes.Buffer

	c := NewCommand(context.Background(), "sh", "-c", `pwd && echo "$MARKER"`)
	err := c.Run(&RunOpts{Dir: dir, Env: []string{"MARKER=hello"}, Stdout: &out, Stderr: &out})

	assert.NoError(t, err)
	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Equal(t, resolved+"\nhello\n", out.String())
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(errors.New("unclassified")))
}
