// Copyright 2025 The Sawmill Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package log

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// AllLevels is the sentinel accepted in a level list to make a file
// destination receive every record.
const AllLevels = "ALL"

const logFilePerm = 0o660

// FileWriterMode holds the options of one file destination.
type FileWriterMode struct {
	// Levels names the levels the destination accepts. An empty list or
	// one containing the AllLevels sentinel accepts everything. Unknown
	// names register new ad hoc levels.
	Levels []string

	// Colorize forces the styled rendering into the file even though it
	// is not a terminal.
	Colorize bool

	// Rotate switches the destination from a plain append-forever handle
	// to a size-rotated one.
	Rotate     bool
	MaxSizeMB  int
	MaxBackups int
	Compress   bool
}

// FileWriter is a file destination. The file is opened for appending
// once at registration and kept open for the process lifetime.
type FileWriter struct {
	path string
	out  io.WriteCloser

	all      bool
	levels   map[string]struct{}
	colorize bool
}

// newFileWriter opens path for appending. The open is probed eagerly
// even in rotating mode, so an unusable path fails at registration and
// not at the first write.
func newFileWriter(path string, mode FileWriterMode) (*FileWriter, error) {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, logFilePerm)
	if err != nil {
		return nil, fmt.Errorf("unable to open log file %q for appending: %w", path, err)
	}
	w := &FileWriter{
		path:     path,
		out:      file,
		colorize: mode.Colorize,
	}
	if mode.Rotate {
		_ = file.Close()
		w.out = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    mode.MaxSizeMB,
			MaxBackups: mode.MaxBackups,
			Compress:   mode.Compress,
		}
	}
	return w, nil
}

// setLevels replaces the writer's accepted level set.
func (w *FileWriter) setLevels(levels []Level, all bool) {
	w.all = all || len(levels) == 0
	w.levels = make(map[string]struct{}, len(levels))
	for _, l := range levels {
		w.levels[l.Name()] = struct{}{}
	}
}

func (w *FileWriter) Name() string { return w.path }

func (w *FileWriter) Accepts(level Level) bool {
	if w.all {
		return true
	}
	_, ok := w.levels[level.Name()]
	return ok
}

func (w *FileWriter) WriteEvent(event *Event) error {
	_, err := w.out.Write(event.Text(w.colorize || event.forceColor))
	return err
}

// ReleaseReopen releases the open file and reopens it, or forces a
// rotation on rotating destinations. Used after the file has been moved
// away by an external log shipper.
func (w *FileWriter) ReleaseReopen() error {
	if rotator, ok := w.out.(*lumberjack.Logger); ok {
		return rotator.Rotate()
	}
	if err := w.out.Close(); err != nil {
		return err
	}
	file, err := os.OpenFile(w.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, logFilePerm)
	if err != nil {
		return err
	}
	w.out = file
	return nil
}

func (w *FileWriter) Close() error {
	return w.out.Close()
}

// containsAllSentinel reports whether the list names the AllLevels
// sentinel (case-insensitively).
func containsAllSentinel(names []string) bool {
	for _, name := range names {
		if strings.EqualFold(strings.TrimSpace(name), AllLevels) {
			return true
		}
	}
	return false
}
