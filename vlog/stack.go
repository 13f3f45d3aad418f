// vlog/stack.go
// Copyright(c) 2026 sectortiles contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package vlog

import (
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// StackFrame is one frame of a captured callstack.
type StackFrame struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Function string `json:"function"`
}

// Callstack captures the caller's callstack (at most 16 frames), trimming
// the module's own package prefix from function names. It stops after
// main.main or at the last captured frame, which in a goroutine other than
// the main one is a runtime frame.
func Callstack(fr []StackFrame) []StackFrame {
	var callers [16]uintptr
	n := runtime.Callers(3, callers[:]) // skip up to the function doing the logging
	frames := runtime.CallersFrames(callers[:n])

	fr = fr[:0]
	if cap(fr) < n {
		fr = make([]StackFrame, n)
	}

	for i := 0; i < n; i++ {
		frame, more := frames.Next()
		fn := strings.TrimPrefix(frame.Function, "github.com/mmp/sectortiles/")
		fn = strings.TrimPrefix(fn, "main.")

		fr[i] = StackFrame{
			File:     filepath.Base(frame.File),
			Line:     frame.Line,
			Function: fn,
		}

		if !more || frame.Function == "main.main" {
			fr = fr[:i+1]
			break
		}
	}
	return fr
}

func (f StackFrame) String() string {
	return f.File + ":" + strconv.Itoa(f.Line) + ":" + f.Function
}
