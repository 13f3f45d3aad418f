// sct/source.go
// Copyright(c) 2026 sectortiles contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sct

// FileSource is the contract for reading bundle files by case-insensitive
// logical path. A missing file returns (nil, nil); only I/O failures
// return a non-nil error.
type FileSource interface {
	ReadFile(path string) ([]byte, error)
}
