// Copyright 2025 The Sawmill Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package log

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureInner() []Frame {
	return CaptureStack(0)
}

func captureOuter() []Frame {
	return captureInner()
}

func TestCaptureStack(t *testing.T) {
	frames := captureOuter()
	assert.NotEmpty(t, frames)

	// innermost first: the helper chain leads, the test function follows
	assert.Contains(t, frames[0].Func, "captureInner")
	assert.Contains(t, frames[1].Func, "captureOuter")
	assert.Contains(t, frames[2].Func, "TestCaptureStack")

	for _, frame := range frames {
		assert.False(t, strings.HasPrefix(frame.Func, "runtime."), "runtime frame %q leaked into the capture", frame.Func)
		assert.NotEmpty(t, frame.File)
		assert.Positive(t, frame.Line)
	}
}

func TestCaptureStackSkip(t *testing.T) {
	frames := captureOuter()
	skipped := CaptureStack(0)
	assert.NotContains(t, skipped[0].Func, "captureInner")

	// skipping one more frame drops the current function as well
	inner := func() []Frame { return CaptureStack(1) }
	fromInner := inner()
	assert.Contains(t, fromInner[0].Func, "TestCaptureStackSkip")
	assert.Len(t, fromInner, len(frames)-2)
}

func TestRenderStack(t *testing.T) {
	frames := []Frame{
		{Func: "main.run", File: "main.go", Line: 10},
		{Func: "main.main", File: "main.go", Line: 3},
	}
	assert.Equal(t, "\tmain.run (main.go:10)\n\tmain.main (main.go:3)", RenderStack(frames))
}

func TestRenderStackEmpty(t *testing.T) {
	assert.Empty(t, RenderStack(nil))
}
