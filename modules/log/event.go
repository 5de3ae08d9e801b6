// Copyright 2025 The Sawmill Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package log

import (
	"time"
)

// Event is a single record on its way to the destinations: a level, the
// argument-joined message and the capture time, plus the trace block for
// terminating levels. An Event is built by the dispatcher, rendered,
// written and discarded.
type Event struct {
	Level      Level
	Msg        string
	Time       time.Time
	Stacktrace string

	// rendering context, frozen at dispatch time
	labelWidth int
	timeFormat string
	forceColor bool

	styled []byte
	plain  []byte
}

// Text renders the event with or without ANSI styling. Renderings are
// cached, so however many destinations receive the event, each variant
// is produced at most once.
func (e *Event) Text(colorize bool) []byte {
	if colorize {
		if e.styled == nil {
			e.styled = e.render(true)
		}
		return e.styled
	}
	if e.plain == nil {
		e.plain = e.render(false)
	}
	return e.plain
}

// render produces one line of the form
//
//	[timestamp ]LABEL<padding> message
//
// followed by the trace block when one was captured. The label is
// left-justified and padded to the catalog's shared width, then a single
// space separates it from the message. The plain variant additionally
// strips ANSI sequences embedded in the message itself.
func (e *Event) render(colorize bool) []byte {
	buf := make([]byte, 0, len(e.Msg)+len(e.Stacktrace)+64)
	if e.timeFormat != "" {
		if colorize {
			buf = append(buf, fgCyanBytes...)
		}
		buf = e.Time.AppendFormat(buf, e.timeFormat)
		if colorize {
			buf = append(buf, resetBytes...)
		}
		buf = append(buf, ' ')
	}
	label := e.Level.Label()
	if attrs := e.Level.ColorAttributes(); colorize && len(attrs) > 0 {
		buf = append(buf, ColorBytes(attrs...)...)
		buf = append(buf, label...)
		buf = append(buf, resetBytes...)
	} else {
		buf = append(buf, label...)
	}
	for i := len(label); i < e.labelWidth; i++ {
		buf = append(buf, ' ')
	}
	buf = append(buf, ' ')
	if colorize {
		buf = append(buf, e.Msg...)
	} else {
		buf = append(buf, RemoveColorBytes([]byte(e.Msg))...)
	}
	buf = append(buf, '\n')
	if e.Stacktrace != "" {
		buf = append(buf, e.Stacktrace...)
		buf = append(buf, '\n')
	}
	return buf
}
