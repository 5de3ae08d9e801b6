// Copyright 2025 The Sawmill Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package log

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// DefaultFatalStatus is the exit status of fatal class records carrying
// no override.
const DefaultFatalStatus = 1

// FatalError carries a fatal record's exit status to a top-level handler
// that performs the actual process exit, letting the layers in between
// unwind normally.
type FatalError struct {
	Status int
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("fatal: exit status %d", e.Status)
}

// Logger owns the level catalog and the destination table and dispatches
// records to them. Dispatching is synchronous: every destination write
// completes before the call returns, and records reach each destination
// in call order, one atomic write per record.
type Logger struct {
	mu  sync.Mutex
	reg *levelRegistry

	minLevel   Level
	timeFormat string
	forceColor bool

	console *ConsoleWriter
	files   []*FileWriter

	captureFrames func(skip int) []Frame
	exit          func(status int)
}

// NewLogger returns a logger writing to the real console streams, with
// no timestamps and the default minimum level RUN: command records and
// everything above are visible, DEBUG is not.
func NewLogger() *Logger {
	return NewLoggerWithConsole(NewConsoleWriter())
}

// NewLoggerWithConsole returns a logger using the given console
// destination.
func NewLoggerWithConsole(console *ConsoleWriter) *Logger {
	return &Logger{
		reg:           newLevelRegistry(),
		minLevel:      RUN,
		console:       console,
		captureFrames: CaptureStack,
		exit:          os.Exit,
	}
}

// SetExitHandler replaces the function aborting the process on FATAL.
// The default is os.Exit; tests substitute a recording handler.
func (l *Logger) SetExitHandler(exit func(status int)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.exit = exit
}

// SetFrameCapture replaces the stack capture capability. The default is
// CaptureStack.
func (l *Logger) SetFrameCapture(capture func(skip int) []Frame) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.captureFrames = capture
}

// GetLevel returns the minimum enabled level.
func (l *Logger) GetLevel() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.minLevel
}

// SetLevel sets the minimum enabled level.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.minLevel = level
}

// LevelEnabled reports whether records at the given level pass the
// filter.
func (l *Logger) LevelEnabled(level Level) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return level.rank >= l.minLevel.rank
}

// SetTimestampFormat sets the time layout rendered ahead of the label.
// The empty layout, the default, omits timestamps entirely.
func (l *Logger) SetTimestampFormat(layout string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.timeFormat = layout
}

// SetForceColor forces the styled rendering into every destination,
// terminal or not.
func (l *Logger) SetForceColor(force bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.forceColor = force
}

// NewLevel returns the level registered under name, creating an
// informational level when the name is unseen. Ad hoc levels rank
// directly above INFO, so they stay visible under the default filter.
func (l *Logger) NewLevel(name string) Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reg.register(name, "")
}

// NewLevelWithLabel is NewLevel with a display label overriding the
// name. The label of an already known level is never changed.
func (l *Logger) NewLevelWithLabel(name, label string) Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reg.register(name, label)
}

// Levels returns the catalog in registration order.
func (l *Logger) Levels() []Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reg.known()
}

// LabelWidth returns the shared label padding width: the length of the
// longest label registered so far. It never shrinks.
func (l *Logger) LabelWidth() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reg.labelWidth
}

// AddFileWriter registers a file destination accepting the listed level
// names, or every level when the list is empty or names AllLevels.
// Unknown level names create ad hoc levels. Registering a path a second
// time replaces that destination's level set and colorize flag in place
// instead of duplicating output.
func (l *Logger) AddFileWriter(path string, mode FileWriterMode) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	all := containsAllSentinel(mode.Levels)
	var levels []Level
	if !all {
		for _, name := range mode.Levels {
			if strings.TrimSpace(name) == "" {
				continue
			}
			levels = append(levels, l.reg.register(name, ""))
		}
	}
	for _, w := range l.files {
		if w.path == path {
			w.colorize = mode.Colorize
			w.setLevels(levels, all)
			return nil
		}
	}
	w, err := newFileWriter(path, mode)
	if err != nil {
		return err
	}
	w.setLevels(levels, all)
	l.files = append(l.files, w)
	return nil
}

// Dispatch runs the pipeline for one record: normalize the level,
// filter, render, trace terminating levels, fan out to the console and
// every accepting file destination, then work out the terminal status.
// It never aborts the process itself; Log applies the exit action.
//
// skip is the number of call frames between the original call site and
// Dispatch. status overrides the exit status of fatal class levels;
// anything below 1 means DefaultFatalStatus.
func (l *Logger) Dispatch(skip int, level Level, status int, format string, v ...any) int {
	l.mu.Lock()
	level = l.reg.register(level.Name(), level.Label())
	if level.rank < l.minLevel.rank {
		l.mu.Unlock()
		return 0
	}
	event := &Event{
		Level:      level,
		Msg:        fmt.Sprintf(format, v...),
		Time:       time.Now(),
		labelWidth: l.reg.labelWidth,
		timeFormat: l.timeFormat,
		forceColor: l.forceColor,
	}
	if level.traced() {
		event.Stacktrace = RenderStack(l.captureFrames(skip + 1))
	}
	l.writeEvent(event)
	l.mu.Unlock()

	if level.action == ActionNone {
		return 0
	}
	if status < 1 {
		status = DefaultFatalStatus
	}
	return status
}

// writeEvent fans the event out, console stream first, then file
// destinations in registration order. Destination write failures are
// fatal to the whole process: there is no fallback channel to report a
// logger that cannot log.
func (l *Logger) writeEvent(event *Event) {
	if err := l.console.WriteEvent(event); err != nil {
		l.writeFailure(l.console.Name(), err)
		return
	}
	for _, w := range l.files {
		if !w.Accepts(event.Level) {
			continue
		}
		if err := w.WriteEvent(event); err != nil {
			l.writeFailure(w.Name(), err)
			return
		}
	}
}

func (l *Logger) writeFailure(name string, err error) {
	fmt.Fprintf(os.Stderr, "Unable to write log message to %s: %v\n", name, err)
	l.exit(DefaultFatalStatus)
}

// Log dispatches a record and applies the level's terminal action:
// nothing for informational and warning levels, the returned status for
// ERROR and QUIT, and a process abort through the exit handler for
// FATAL. Filtered-out records return zero with no side effects at all.
func (l *Logger) Log(skip int, level Level, format string, v ...any) int {
	status := l.Dispatch(skip+1, level, DefaultFatalStatus, format, v...)
	if status != 0 && level.action == ActionExit {
		l.Close()
		l.exit(status)
	}
	return status
}

func (l *Logger) Debug(format string, v ...any) {
	l.Log(1, DEBUG, format, v...)
}

func (l *Logger) Run(format string, v ...any) {
	l.Log(1, RUN, format, v...)
}

func (l *Logger) Info(format string, v ...any) {
	l.Log(1, INFO, format, v...)
}

func (l *Logger) Warn(format string, v ...any) {
	l.Log(1, WARN, format, v...)
}

// Error writes an ERROR record and returns its nonzero status without
// aborting or tracing; recovering is the caller's business.
func (l *Logger) Error(format string, v ...any) int {
	return l.Log(1, ERROR, format, v...)
}

// Quit writes a QUIT record, the advisory variant of Fatal, and returns
// the would-be exit status.
func (l *Logger) Quit(format string, v ...any) int {
	return l.Log(1, QUIT, format, v...)
}

// Fatal writes a FATAL record with a stack trace, closes the file
// destinations and aborts the process through the exit handler.
func (l *Logger) Fatal(format string, v ...any) {
	l.Log(1, FATAL, format, v...)
}

// Close closes the file destinations. The console streams are left
// alone.
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, w := range l.files {
		_ = w.Close()
	}
}

// ReleaseReopen releases and reopens every file destination, for use
// after the files have been moved away by an external log shipper.
func (l *Logger) ReleaseReopen() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	var errs []error
	for _, w := range l.files {
		if err := w.ReleaseReopen(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
