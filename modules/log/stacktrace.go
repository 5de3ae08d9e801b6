// Copyright 2025 The Sawmill Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package log

import (
	"fmt"
	"runtime"
	"strings"
)

// Frame is one entry of a captured call chain.
type Frame struct {
	Func string
	File string
	Line int
}

// CaptureStack returns the active call chain, innermost first. skip is
// the number of extra frames to exclude on top of CaptureStack itself,
// so CaptureStack(0) starts at its direct caller. Runtime internals are
// left out; the chain ends at the program entry point.
func CaptureStack(skip int) []Frame {
	pcs := make([]uintptr, 64)
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return nil
	}
	callers := runtime.CallersFrames(pcs[:n])
	var frames []Frame
	for {
		frame, more := callers.Next()
		if frame.Function != "" && !strings.HasPrefix(frame.Function, "runtime.") {
			frames = append(frames, Frame{Func: frame.Function, File: frame.File, Line: frame.Line})
		}
		if !more {
			break
		}
	}
	return frames
}

// RenderStack formats a captured chain one line per frame, each line
// indented with a tab. The block is not a record of its own and is never
// label padded.
func RenderStack(frames []Frame) string {
	var sb strings.Builder
	for i, frame := range frames {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "\t%s (%s:%d)", frame.Func, frame.File, frame.Line)
	}
	return sb.String()
}
