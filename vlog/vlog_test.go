// vlog/vlog_test.go
// Copyright(c) 2026 sectortiles contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package vlog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoggerRecordsCallstack(t *testing.T) {
	dir := t.TempDir()
	l := New(dir, "info")
	l.Info("hello", "key", "value")

	body, err := os.ReadFile(filepath.Join(dir, "sectortiles.log"))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	var found bool
	for _, line := range lines {
		var rec map[string]interface{}
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Fatalf("unmarshaling log line %q: %v", line, err)
		}
		if rec["msg"] == "hello" {
			cs, ok := rec["callstack"]
			if !ok {
				t.Fatalf("expected a callstack attribute on record %v", rec)
			}
			frames, ok := cs.([]interface{})
			if !ok || len(frames) == 0 {
				t.Fatalf("expected a non-empty callstack slice, got %v", cs)
			}
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a log record with msg=hello")
	}
}
