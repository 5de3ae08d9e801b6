// Copyright 2025 The Sawmill Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package log

import (
	"strconv"
)

const escape = "\033"

// ColorAttribute defines a single SGR Code
type ColorAttribute int

// Base ColorAttributes
const (
	Reset ColorAttribute = iota
	Bold
	Faint
	Italic
	Underline
	BlinkSlow
	BlinkRapid
	ReverseVideo
	Concealed
	CrossedOut
)

// Foreground text colors
const (
	FgBlack ColorAttribute = iota + 30
	FgRed
	FgGreen
	FgYellow
	FgBlue
	FgMagenta
	FgCyan
	FgWhite
)

// Foreground Hi-Intensity text colors
const (
	FgHiBlack ColorAttribute = iota + 90
	FgHiRed
	FgHiGreen
	FgHiYellow
	FgHiBlue
	FgHiMagenta
	FgHiCyan
	FgHiWhite
)

// Background text colors
const (
	BgBlack ColorAttribute = iota + 40
	BgRed
	BgGreen
	BgYellow
	BgBlue
	BgMagenta
	BgCyan
	BgWhite
)

// Background Hi-Intensity text colors
const (
	BgHiBlack ColorAttribute = iota + 100
	BgHiRed
	BgHiGreen
	BgHiYellow
	BgHiBlue
	BgHiMagenta
	BgHiCyan
	BgHiWhite
)

// ColorBytes converts a list of ColorAttributes to a byte array
func ColorBytes(attrs ...ColorAttribute) []byte {
	bytes := make([]byte, 0, 20)
	bytes = append(bytes, escape[0], '[')
	if len(attrs) > 0 {
		bytes = append(bytes, strconv.Itoa(int(attrs[0]))...)
		for _, a := range attrs[1:] {
			bytes = append(bytes, ';')
			bytes = append(bytes, strconv.Itoa(int(a))...)
		}
	} else {
		bytes = append(bytes, strconv.Itoa(int(Bold))...)
	}
	bytes = append(bytes, 'm')
	return bytes
}

// ColorString converts a list of ColorAttributes to a color string
func ColorString(attrs ...ColorAttribute) string {
	return string(ColorBytes(attrs...))
}

var (
	resetBytes  = ColorBytes(Reset)
	fgCyanBytes = ColorBytes(FgCyan)
)

// RemoveColorBytes removes every ANSI CSI color/style sequence of the
// form ESC [ <digits> (; <digits>)* m from the given bytes. Sequences
// that do not terminate with 'm' and literal bracket characters are kept
// verbatim, so the function is safe on arbitrary text and idempotent.
func RemoveColorBytes(bytes []byte) []byte {
	out := make([]byte, 0, len(bytes))
	end := len(bytes)
normalLoop:
	for i := 0; i < end; {
		if bytes[i] == escape[0] && i+1 < end && bytes[i+1] == '[' {
			for j := i + 2; j < end; j++ {
				if bytes[j] >= '0' && bytes[j] <= '9' {
					continue
				}
				if bytes[j] == ';' {
					continue
				}
				if bytes[j] == 'm' {
					// a complete color sequence, drop it
					i = j + 1
					continue normalLoop
				}
				break
			}
		}
		out = append(out, bytes[i])
		i++
	}
	return out
}

// RemoveColor is RemoveColorBytes for strings.
func RemoveColor(text string) string {
	return string(RemoveColorBytes([]byte(text)))
}
