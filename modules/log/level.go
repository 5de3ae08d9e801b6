// Copyright 2025 The Sawmill Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package log

import (
	"strings"
)

// Class is the severity class of a Level. The class selects the console
// stream for a record: informational levels print to standard output,
// everything else to standard error.
type Class int

const (
	ClassInformational Class = iota
	ClassWarning
	ClassFatal
)

func (c Class) String() string {
	switch c {
	case ClassWarning:
		return "warning"
	case ClassFatal:
		return "fatal"
	default:
		return "informational"
	}
}

// Action is the terminal behaviour the dispatcher applies after a record
// has been written to every destination.
type Action int

const (
	// ActionNone returns status zero to the caller.
	ActionNone Action = iota
	// ActionStatus returns the record's exit status to the caller.
	ActionStatus
	// ActionQuit returns the exit status with a stack trace attached;
	// whether to terminate is left to the caller.
	ActionQuit
	// ActionExit attaches a stack trace and aborts the process.
	ActionExit
)

// Level is one named severity in a logger's catalog.
type Level struct {
	name   string
	label  string
	rank   int
	class  Class
	action Action
}

// Built-in ranks are spaced out so ad hoc levels can slot in above INFO.
const (
	rankDebug = 10
	rankRun   = 20
	rankInfo  = 30
	rankWarn  = 40
	rankError = 50
	rankFatal = 60
	rankQuit  = 70
)

// The built-in levels, ordered DEBUG < RUN < INFO < WARN < ERROR < FATAL < QUIT.
// QUIT is the advisory variant of FATAL: it renders and traces the same
// way but reports the would-be exit status instead of aborting.
var (
	DEBUG = Level{name: "DEBUG", label: "DEBUG", rank: rankDebug, class: ClassInformational, action: ActionNone}
	RUN   = Level{name: "RUN", label: "RUN", rank: rankRun, class: ClassInformational, action: ActionNone}
	INFO  = Level{name: "INFO", label: "INFO", rank: rankInfo, class: ClassInformational, action: ActionNone}
	WARN  = Level{name: "WARN", label: "WARN", rank: rankWarn, class: ClassWarning, action: ActionNone}
	ERROR = Level{name: "ERROR", label: "ERROR", rank: rankError, class: ClassFatal, action: ActionStatus}
	FATAL = Level{name: "FATAL", label: "FATAL", rank: rankFatal, class: ClassFatal, action: ActionExit}
	QUIT  = Level{name: "QUIT", label: "QUIT", rank: rankQuit, class: ClassFatal, action: ActionQuit}
)

var builtinLevels = []Level{DEBUG, RUN, INFO, WARN, ERROR, FATAL, QUIT}

func (l Level) Name() string   { return l.name }
func (l Level) Label() string  { return l.label }
func (l Level) Rank() int      { return l.rank }
func (l Level) Class() Class   { return l.class }
func (l Level) Action() Action { return l.action }

func (l Level) String() string { return l.name }

// traced reports whether records at this level carry a stack trace.
func (l Level) traced() bool {
	return l.action == ActionQuit || l.action == ActionExit
}

var levelToColor = map[string][]ColorAttribute{
	"DEBUG": {Bold, FgBlue},
	"RUN":   {Bold, FgCyan},
	"INFO":  {Bold, FgGreen},
	"WARN":  {Bold, FgYellow},
	"ERROR": {Bold, FgRed},
	"FATAL": {Bold, BgRed},
	"QUIT":  {Bold, BgMagenta},
}

// ColorAttributes returns the SGR attributes used for the level label in
// styled output. Ad hoc levels are rendered unstyled.
func (l Level) ColorAttributes() []ColorAttribute {
	return levelToColor[l.name]
}

// LevelFromString takes a level name and returns the matching built-in
// Level. Unknown names fall back to INFO, which keeps a mistyped filter
// setting from silencing the logger.
func LevelFromString(level string) Level {
	name := strings.ToUpper(strings.TrimSpace(level))
	for _, l := range builtinLevels {
		if l.name == name {
			return l
		}
	}
	return INFO
}

// levelRegistry owns the ordered level catalog of one Logger. Levels are
// created on first use and never removed, and the shared label width
// only ever grows. Access is guarded by the owning Logger's mutex.
type levelRegistry struct {
	levels     map[string]Level
	order      []string
	labelWidth int
	nextRank   int
}

func newLevelRegistry() *levelRegistry {
	r := &levelRegistry{
		levels:   make(map[string]Level, len(builtinLevels)),
		nextRank: rankInfo + 1,
	}
	for _, l := range builtinLevels {
		r.levels[l.name] = l
		r.order = append(r.order, l.name)
		r.growWidth(l.label)
	}
	return r
}

func (r *levelRegistry) growWidth(label string) {
	if len(label) > r.labelWidth {
		r.labelWidth = len(label)
	}
}

// register returns the level known under name, creating an informational
// level with the next free rank when the name is unseen. Names are
// normalized to uppercase. Registering an existing name again is a
// no-op, even when the requested label differs.
func (r *levelRegistry) register(name, label string) Level {
	name = strings.ToUpper(strings.TrimSpace(name))
	if l, ok := r.levels[name]; ok {
		return l
	}
	if label == "" {
		label = name
	}
	l := Level{name: name, label: label, rank: r.nextRank, class: ClassInformational, action: ActionNone}
	r.nextRank++
	r.levels[name] = l
	r.order = append(r.order, name)
	r.growWidth(label)
	return l
}

// known returns every registered level in registration order.
func (r *levelRegistry) known() []Level {
	out := make([]Level, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.levels[name])
	}
	return out
}
