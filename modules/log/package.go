// Copyright 2025 The Sawmill Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package log provides sawmill's leveled, multi-destination logging.
// Concepts:
//
//   - Level: a named severity with a rank, a display label, a severity
//     class and a terminal action. Seven built-in levels are pre-seeded
//     (DEBUG < RUN < INFO < WARN < ERROR < FATAL < QUIT); any other name
//     becomes an informational ad hoc level the first time it is used.
//
//   - Logger: owns the level catalog and the destination table and
//     dispatches each record synchronously to the console and to every
//     accepting file destination before returning.
//
//   - EventWriter: one destination, either the console stream pair or an
//     append-mode file.
//
// Call graph:
// -> log.Info() / log.Fatal() / Logger.Log()
// -> Logger.Dispatch: filter, render, trace, fan out, terminal status
// -> EventWriter.WriteEvent on each destination, in registration order
package log

var defaultLogger = NewLogger()

// Default returns the shared logger used by the package level functions.
func Default() *Logger {
	return defaultLogger
}

// SetDefault replaces the shared logger and returns the previous one, so
// tests can restore it.
func SetDefault(logger *Logger) *Logger {
	old := defaultLogger
	defaultLogger = logger
	return old
}

// Log dispatches a record on the shared logger. skip is the number of
// call frames between the original call site and Log.
func Log(skip int, level Level, format string, v ...any) int {
	return defaultLogger.Log(skip+1, level, format, v...)
}

func Debug(format string, v ...any) {
	defaultLogger.Log(1, DEBUG, format, v...)
}

func Run(format string, v ...any) {
	defaultLogger.Log(1, RUN, format, v...)
}

func Info(format string, v ...any) {
	defaultLogger.Log(1, INFO, format, v...)
}

func Warn(format string, v ...any) {
	defaultLogger.Log(1, WARN, format, v...)
}

// Error writes an ERROR record on the shared logger and returns its
// nonzero status without aborting.
func Error(format string, v ...any) int {
	return defaultLogger.Log(1, ERROR, format, v...)
}

// Quit writes a QUIT record on the shared logger and returns the
// would-be exit status.
func Quit(format string, v ...any) int {
	return defaultLogger.Log(1, QUIT, format, v...)
}

// Fatal writes a FATAL record with a stack trace on the shared logger,
// closes its file destinations and aborts the process.
func Fatal(format string, v ...any) {
	defaultLogger.Log(1, FATAL, format, v...)
}
