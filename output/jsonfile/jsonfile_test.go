// output/jsonfile/jsonfile_test.go
// Copyright(c) 2026 sectortiles contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package jsonfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"

	"github.com/mmp/sectortiles/domain"
)

func TestWriteGlobalAndTile(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir, false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	palette := domain.NewPalette()
	palette.Define("RED", 0xFF0000)
	if err := w.WriteGlobal(&domain.Global{Palette: palette}); err != nil {
		t.Fatalf("WriteGlobal: %v", err)
	}
	section := &domain.Section{Level: 2, X: 1, Y: 3}
	if err := w.WriteTile(section); err != nil {
		t.Fatalf("WriteTile: %v", err)
	}

	globalBody, err := os.ReadFile(filepath.Join(dir, "global.json"))
	if err != nil {
		t.Fatalf("reading global.json: %v", err)
	}
	var got domain.Global
	if err := json.Unmarshal(globalBody, &got); err != nil {
		t.Fatalf("unmarshaling global.json: %v", err)
	}
	if rgb, ok := got.Palette.Lookup("RED"); !ok || rgb != 0xFF0000 {
		t.Errorf("round-tripped palette entry mismatch: %v, %v", rgb, ok)
	}

	if _, err := os.Stat(filepath.Join(dir, "section_2_1_3.json")); err != nil {
		t.Errorf("expected section_2_1_3.json to exist: %v", err)
	}
}

func TestWriteTileCompressed(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir, true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	section := &domain.Section{Level: 0, X: 0, Y: 0}
	if err := w.WriteTile(section); err != nil {
		t.Fatalf("WriteTile: %v", err)
	}

	path := filepath.Join(dir, "section_0_0_0.json.zst")
	compressed, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected compressed tile file: %v", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	defer dec.Close()
	body, err := dec.DecodeAll(compressed, nil)
	if err != nil {
		t.Fatalf("decompressing: %v", err)
	}
	var got domain.Section
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("unmarshaling decompressed tile: %v", err)
	}
	if got.Level != 0 {
		t.Errorf("round-tripped section mismatch: %+v", got)
	}
}
