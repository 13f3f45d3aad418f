// output/jsonfile/jsonfile.go
// Copyright(c) 2026 sectortiles contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package jsonfile implements output.Writer by marshaling each record to
// JSON and writing it to its own file under a directory, optionally
// zstd-compressed.
package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/mmp/sectortiles/domain"
	"github.com/mmp/sectortiles/output"
)

var _ output.Writer = (*Writer)(nil)

// Writer writes one file per record under Dir. Tile files are named
// section_<L>_<X>_<Y>.json; the shared record is global.json. When
// Compress is set, a .zst suffix is appended and the body is
// zstd-compressed.
type Writer struct {
	dir      string
	compress bool
	encoder  *zstd.Encoder
}

// New creates a Writer rooted at dir, creating it if necessary. When
// compress is true, every written file is zstd-compressed.
func New(dir string, compress bool) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", dir, err)
	}
	w := &Writer{dir: dir, compress: compress}
	if compress {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("creating zstd encoder: %w", err)
		}
		w.encoder = enc
	}
	return w, nil
}

func (w *Writer) WriteGlobal(global *domain.Global) error {
	return w.writeJSON("global.json", global)
}

func (w *Writer) WriteTile(section *domain.Section) error {
	name := fmt.Sprintf("section_%d_%d_%d.json", section.Level, section.X, section.Y)
	return w.writeJSON(name, section)
}

func (w *Writer) Close() error {
	if w.encoder != nil {
		return w.encoder.Close()
	}
	return nil
}

func (w *Writer) writeJSON(name string, v interface{}) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", name, err)
	}
	if w.compress {
		body = w.encoder.EncodeAll(body, nil)
		name += ".zst"
	}
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
