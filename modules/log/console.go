// Copyright 2025 The Sawmill Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package log

import (
	"io"
	"os"
)

var (
	// CanColorStdout reports if we can color the Stdout
	CanColorStdout = true
	// CanColorStderr reports if we can color the Stderr
	CanColorStderr = true
)

// ConsoleWriter is the implicit console destination of a Logger.
// Records route by severity class: informational levels go to the
// stdout stream, warning and fatal class levels to the stderr stream.
type ConsoleWriter struct {
	stdout io.Writer
	stderr io.Writer

	colorStdout bool
	colorStderr bool
}

// NewConsoleWriter returns a console destination writing to the real
// process streams, with styling decided per stream by terminal
// detection.
func NewConsoleWriter() *ConsoleWriter {
	return &ConsoleWriter{
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		colorStdout: CanColorStdout,
		colorStderr: CanColorStderr,
	}
}

// NewConsoleWriterTo returns a console destination writing to the given
// streams, used by tests and embedders that redirect console output.
func NewConsoleWriterTo(stdout, stderr io.Writer, colorize bool) *ConsoleWriter {
	return &ConsoleWriter{
		stdout:      stdout,
		stderr:      stderr,
		colorStdout: colorize,
		colorStderr: colorize,
	}
}

func (w *ConsoleWriter) Name() string { return "console" }

// Accepts implements EventWriter. The console takes every record that
// passed the level filter.
func (w *ConsoleWriter) Accepts(Level) bool { return true }

func (w *ConsoleWriter) WriteEvent(event *Event) error {
	out, colorize := w.stdout, w.colorStdout
	if event.Level.Class() != ClassInformational {
		out, colorize = w.stderr, w.colorStderr
	}
	_, err := out.Write(event.Text(colorize || event.forceColor))
	return err
}

// Close implements EventWriter. The process streams are not ours to
// close.
func (w *ConsoleWriter) Close() error { return nil }
