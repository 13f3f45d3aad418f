// cmd/sectortiles/main_test.go
// Copyright(c) 2026 sectortiles contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

const testBundle = `[INFO]
N40.0.0.000;
E010.0.0.000;
25;
25;
0;

[GEO]
N40.0.0.000;E010.0.0.000;N40.0.0.000;E010.30.0.000;
`

func TestRunConvertsBundleEndToEnd(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()

	if err := os.WriteFile(filepath.Join(inputDir, "test.sct"), []byte(testBundle), 0o644); err != nil {
		t.Fatalf("writing test bundle: %v", err)
	}

	code := run([]string{"-input", inputDir, "-output", outputDir, "-levels", "3", "test.sct"})
	if code != 0 {
		t.Fatalf("run returned exit code %d, want 0", code)
	}

	bundleDir := filepath.Join(outputDir, "test")
	globalBody, err := os.ReadFile(filepath.Join(bundleDir, "global.json"))
	if err != nil {
		t.Fatalf("reading global.json: %v", err)
	}
	var global map[string]interface{}
	if err := json.Unmarshal(globalBody, &global); err != nil {
		t.Fatalf("unmarshaling global.json: %v", err)
	}

	entries, err := os.ReadDir(bundleDir)
	if err != nil {
		t.Fatalf("reading bundle output dir: %v", err)
	}
	foundTile := false
	for _, e := range entries {
		if e.Name() != "global.json" {
			foundTile = true
		}
	}
	if !foundTile {
		t.Errorf("expected at least one section_*.json tile file, found none in %v", entries)
	}
}

func TestRunFailsOnMissingEntry(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()

	code := run([]string{"-input", inputDir, "-output", outputDir, "nonexistent.sct"})
	if code == 0 {
		t.Errorf("expected a non-zero exit code for a missing entry bundle")
	}
}

func TestRunRejectsMissingFlags(t *testing.T) {
	if code := run([]string{}); code != 2 {
		t.Errorf("expected exit code 2 with no arguments, got %d", code)
	}
}
