// source/directory.go
// Copyright(c) 2026 sectortiles contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package source provides concrete sct.FileSource implementations.
package source

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DirectorySource implements sct.FileSource by indexing a directory tree
// once at construction into a lowercased-logical-path -> real-path map, so
// lookups are case-insensitive as the format requires.
type DirectorySource struct {
	root  string
	index map[string]string
}

// NewDirectorySource walks root and builds the logical-path index.
func NewDirectorySource(root string) (*DirectorySource, error) {
	d := &DirectorySource{root: root, index: make(map[string]string)}
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		logical := strings.ToLower(filepath.ToSlash(rel))
		d.index[logical] = path
		return nil
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

// ReadFile resolves path case-insensitively; a missing file returns
// (nil, nil) rather than an error.
func (d *DirectorySource) ReadFile(path string) ([]byte, error) {
	logical := strings.ToLower(filepath.ToSlash(path))
	real, ok := d.index[logical]
	if !ok {
		return nil, nil
	}
	return os.ReadFile(real)
}
