// sct/file.go
// Copyright(c) 2026 sectortiles contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sct

import (
	"strings"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Statement is a single line of a section, with any one trailing ';'
// stripped.
type Statement struct {
	contents string
}

func NewStatement(s string) Statement {
	s = strings.TrimSuffix(s, ";")
	return Statement{contents: s}
}

func (s Statement) String() string { return s.contents }

// Parts splits the statement on ';' without trimming, preserving internal
// whitespace.
func (s Statement) Parts() []string {
	return strings.Split(s.contents, ";")
}

// Section is an ordered list of statements sharing a section name.
type Section struct {
	Name       string
	Statements []Statement
}

// File is a parsed collection of named sections, in declaration order of
// first appearance. Statements preceding any "[NAME]" header belong to the
// section named "".
type File struct {
	order    []string
	sections map[string]*Section
}

func NewFile() *File {
	return &File{sections: make(map[string]*Section)}
}

func (f *File) Sections() []*Section {
	r := make([]*Section, 0, len(f.order))
	for _, name := range f.order {
		r = append(r, f.sections[name])
	}
	return r
}

func (f *File) Section(name string) *Section {
	return f.sections[name]
}

func (f *File) sectionMut(name string) *Section {
	if s, ok := f.sections[name]; ok {
		return s
	}
	s := &Section{Name: name}
	f.sections[name] = s
	f.order = append(f.order, name)
	return s
}

// ParseFile tokenizes raw bytes into a File. Lines are trimmed; blank lines
// and lines beginning with "//" are dropped; a line "[NAME]" opens a
// section and must be closed with "]" on the same line.
func ParseFile(path string, data []byte) (*File, error) {
	if !utf8.Valid(data) {
		return nil, &EncodingError{Path: path}
	}
	f := NewFile()
	current := f.sectionMut("")

	lines := strings.Split(string(data), "\n")
	for i, raw := range lines {
		line := strings.TrimSpace(strings.TrimRight(raw, "\r"))
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if line[0] == '[' {
			if !strings.HasSuffix(line, "]") {
				return nil, &SyntaxError{Line: i + 1, Message: "unterminated section header"}
			}
			name := line[1 : len(line)-1]
			current = f.sectionMut(name)
			continue
		}
		current.Statements = append(current.Statements, NewStatement(line))
	}
	return f, nil
}

// pendingStatement is one statement waiting in a StatementIter's queue.
type pendingStatement struct {
	stmt Statement
}

// StatementIter walks every statement of a section in order, transparently
// splicing in the contents of included files at the point an "F;<name>"
// include directive is encountered. It is a pull-based generator: each call
// to Next advances exactly one statement, expanding includes lazily.
type StatementIter struct {
	source      FileSource
	includeDirs []string
	pending     []pendingStatement
	resolver    *includeResolver
}

func NewStatementIter(source FileSource, section *Section, includeDirs []string) *StatementIter {
	it := &StatementIter{
		source:      source,
		includeDirs: includeDirs,
		resolver:    newIncludeResolver(source),
	}
	for i := len(section.Statements) - 1; i >= 0; i-- {
		it.pending = append(it.pending, pendingStatement{stmt: section.Statements[i]})
	}
	reverseStatements(it.pending)
	return it
}

func reverseStatements(s []pendingStatement) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// Next returns the next statement in the expanded stream, or ok=false at
// end of stream.
func (it *StatementIter) Next() (Statement, error, bool) {
	for len(it.pending) > 0 {
		p := it.pending[0]
		it.pending = it.pending[1:]

		parts := p.stmt.Parts()
		if len(parts) >= 1 && parts[0] == "F" {
			name := ""
			if len(parts) >= 2 {
				name = parts[1]
			}
			included, err := it.resolver.resolve(name, it.includeDirs)
			if err != nil {
				return Statement{}, err, true
			}
			// Splice the included statements to the FRONT, in order, so
			// they are processed before anything that followed the
			// directive.
			spliced := make([]pendingStatement, 0, len(included)+len(it.pending))
			for _, s := range included {
				spliced = append(spliced, pendingStatement{stmt: s})
			}
			spliced = append(spliced, it.pending...)
			it.pending = spliced
			continue
		}
		return p.stmt, nil, true
	}
	return Statement{}, nil, false
}

// includeCacheSize bounds the number of parsed include files kept per
// resolver.
const includeCacheSize = 256

// includeResolver performs the Include/<name> then Include/<dir>/<name>
// search and validates the resolved file contains exactly one unnamed
// section. Successfully parsed files are cached, keyed by the requested
// name and the include search path. The cache belongs to one resolver:
// each StatementIter creates its own, so it is not shared between
// sections; the satellite-file loader uses one resolver for all airports.
type includeResolver struct {
	source FileSource
	cache  *lru.Cache[string, *File]
}

func newIncludeResolver(source FileSource) *includeResolver {
	cache, err := lru.New[string, *File](includeCacheSize)
	if err != nil {
		cache = nil
	}
	return &includeResolver{source: source, cache: cache}
}

func (r *includeResolver) resolve(name string, includeDirs []string) ([]Statement, error) {
	cacheKey := name + "\x00" + strings.Join(includeDirs, "\x00")
	if r.cache != nil {
		if f, ok := r.cache.Get(cacheKey); ok {
			return f.Section("").Statements, nil
		}
	}

	normalized := strings.ReplaceAll(name, "\\", "/")

	candidates := make([]string, 0, 1+len(includeDirs))
	candidates = append(candidates, "Include/"+normalized)
	for _, dir := range includeDirs {
		d := strings.ReplaceAll(dir, "\\", "/")
		candidates = append(candidates, "Include/"+d+"/"+normalized)
	}

	var data []byte
	for _, path := range candidates {
		b, err := r.source.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if b != nil {
			data = b
			break
		}
	}
	if data == nil {
		return nil, &MissingIncludeError{Name: name}
	}

	f, err := ParseFile(name, data)
	if err != nil {
		return nil, &BadIncludeError{Name: name, Reason: err.Error()}
	}
	if len(f.sections) != 1 {
		return nil, &BadIncludeError{Name: name, Reason: "must contain exactly one section"}
	}
	sec := f.Section("")
	if sec == nil {
		return nil, &BadIncludeError{Name: name, Reason: "must contain exactly one unnamed section"}
	}

	if r.cache != nil {
		r.cache.Add(cacheKey, f)
	}
	return sec.Statements, nil
}
