// util/error.go
// Copyright(c) 2026 sectortiles contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"fmt"
	"strings"
)

// ErrorLogger accumulates non-fatal warnings encountered while walking a
// hierarchical structure (a bundle, then a section, then a record), so a
// single summary can be reported with full context once the walk
// completes.
type ErrorLogger struct {
	hierarchy []string
	errors    []string
}

func (e *ErrorLogger) Push(what string) {
	e.hierarchy = append(e.hierarchy, what)
}

func (e *ErrorLogger) Pop() {
	if len(e.hierarchy) > 0 {
		e.hierarchy = e.hierarchy[:len(e.hierarchy)-1]
	}
}

func (e *ErrorLogger) CurrentDepth() int { return len(e.hierarchy) }

func (e *ErrorLogger) prefix() string {
	if len(e.hierarchy) == 0 {
		return ""
	}
	return strings.Join(e.hierarchy, " / ") + ": "
}

// Error records a warning at the current hierarchy position.
func (e *ErrorLogger) Error(err error) {
	e.errors = append(e.errors, e.prefix()+err.Error())
}

// Errorf is a convenience wrapper around Error.
func (e *ErrorLogger) Errorf(format string, args ...interface{}) {
	e.Error(fmt.Errorf(format, args...))
}

func (e *ErrorLogger) HaveErrors() bool { return len(e.errors) > 0 }

func (e *ErrorLogger) Errors() []string { return e.errors }

func (e *ErrorLogger) String() string {
	return strings.Join(e.errors, "\n")
}
