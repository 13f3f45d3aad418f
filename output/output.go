// output/output.go
// Copyright(c) 2026 sectortiles contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package output defines the contract for persisting a converted sector:
// one shared Global record and a stream of per-tile Section records.
package output

import "github.com/mmp/sectortiles/domain"

// Writer persists a conversion run's output. Implementations must be safe
// to call WriteTile concurrently from multiple goroutines; WriteGlobal is
// called exactly once, before any WriteTile call.
type Writer interface {
	WriteGlobal(global *domain.Global) error
	WriteTile(section *domain.Section) error
	Close() error
}
