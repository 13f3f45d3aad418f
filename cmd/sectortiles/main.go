// cmd/sectortiles/main.go
// Copyright(c) 2026 sectortiles contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Command sectortiles converts one or more sector-file bundles into tiled
// JSON vector-map artifacts.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/mmp/sectortiles/convert"
	"github.com/mmp/sectortiles/domain"
	"github.com/mmp/sectortiles/output"
	"github.com/mmp/sectortiles/output/jsonfile"
	"github.com/mmp/sectortiles/sct"
	"github.com/mmp/sectortiles/source"
	"github.com/mmp/sectortiles/tile"
	"github.com/mmp/sectortiles/vlog"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("sectortiles", flag.ContinueOnError)
	input := fs.String("input", "", "root directory of the sector bundle(s) to convert")
	output := fs.String("output", "", "output directory for the tiled JSON artifacts")
	levels := fs.Int("levels", 9, "number of quadtree zoom levels to generate")
	compress := fs.Bool("compress", false, "zstd-compress output tile files")
	logLevel := fs.String("log-level", "info", "log level: debug, info, warn, or error")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	entries := fs.Args()

	if *input == "" || *output == "" || len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "usage: sectortiles -input <dir> -output <dir> <entry-path>...")
		return 2
	}
	if err := os.MkdirAll(*output, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "creating output directory: %v\n", err)
		return 1
	}

	logger := vlog.New(*output, *logLevel)

	src, err := source.NewDirectorySource(*input)
	if err != nil {
		logger.Errorf("indexing input directory %s: %v", *input, err)
		return 1
	}

	buildInfo := &domain.BuildInfo{GoVersion: "unknown"}
	if bi, ok := debug.ReadBuildInfo(); ok {
		buildInfo.GoVersion = bi.GoVersion
		buildInfo.ModulePath = bi.Main.Path
		buildInfo.ModuleVersion = bi.Main.Version
		for _, dep := range bi.Deps {
			entry := dep.Path + "@" + dep.Version
			if dep.Replace != nil {
				entry += " => " + dep.Replace.Path + "@" + dep.Replace.Version
			}
			buildInfo.Dependencies = append(buildInfo.Dependencies, entry)
		}
	}

	// Each bundle converts independently and single-threadedly; only this
	// outer fan-out is parallel, bounded by the number of CPUs.
	sem := make(chan struct{}, runtime.NumCPU())
	var wg sync.WaitGroup
	var mu sync.Mutex
	failed := false

	for _, entry := range entries {
		entry := entry
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			if err := convertBundle(src, entry, *output, *levels, *compress, buildInfo, logger); err != nil {
				logger.Errorf("%s: %v", entry, err)
				mu.Lock()
				failed = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if failed {
		return 1
	}
	return 0
}

func convertBundle(src *source.DirectorySource, entry, outputRoot string, levels int, compress bool, buildInfo *domain.BuildInfo, logger *vlog.Logger) error {
	entryLog := logger.With("entry", entry)

	sec, err := sct.Parse(src, entry, entryLog)
	if err != nil {
		return fmt.Errorf("parsing: %w", err)
	}

	builder := tile.NewBuilder(levels, sec.Palette)
	if err := convert.Run(sec, builder, entryLog); err != nil {
		return fmt.Errorf("converting: %w", err)
	}

	outDir := filepath.Join(outputRoot, bundleName(entry))
	var writer output.Writer
	writer, err = jsonfile.New(outDir, compress)
	if err != nil {
		return fmt.Errorf("opening output: %w", err)
	}
	defer writer.Close()

	global := &domain.Global{Palette: sec.Palette, BuildInfo: buildInfo, ATC: sec.ATC}
	if err := writer.WriteGlobal(global); err != nil {
		return fmt.Errorf("writing global record: %w", err)
	}
	tiles := builder.Tiles()
	for _, section := range tiles {
		if err := writer.WriteTile(section); err != nil {
			return fmt.Errorf("writing tile %d/%d/%d: %w", section.Level, section.X, section.Y, err)
		}
	}
	entryLog.Info("converted bundle", "tiles", len(tiles))
	return nil
}

// bundleName derives the output subdirectory name from an entry path's base
// name with its extension stripped.
func bundleName(entry string) string {
	name := strings.TrimSuffix(filepath.Base(entry), filepath.Ext(entry))
	if name == "" {
		name = "bundle"
	}
	return name
}
