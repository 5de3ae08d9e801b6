// Copyright 2025 The Sawmill Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package log

// EventWriter is one destination of a Logger. The console writer is
// implicit and always present; file writers are added by explicit
// registration and stay open for the process lifetime.
//
// Writers never filter by the logger's minimum level, that already
// happened in the dispatcher. Accepts only expresses a writer's own
// level subset.
type EventWriter interface {
	Name() string
	Accepts(level Level) bool
	WriteEvent(event *Event) error
	Close() error
}
