// sct/file_test.go
// Copyright(c) 2026 sectortiles contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sct

import "testing"

func TestParseSections(t *testing.T) {
	data := []byte("statement before any section\n\n[MY_SECTION]\na;b;1  ;c\n\n[SECTION_2]\nx;y\n")
	f, err := ParseFile("test.sct", data)
	if err != nil {
		t.Fatal(err)
	}
	sec := f.Section("MY_SECTION")
	if sec == nil || len(sec.Statements) != 1 {
		t.Fatalf("MY_SECTION: %+v", sec)
	}
	parts := sec.Statements[0].Parts()
	if parts[2] != "1  " {
		t.Errorf("expected internal whitespace preserved, got %q", parts[2])
	}
}

func TestUnterminatedSectionHeader(t *testing.T) {
	_, err := ParseFile("bad.sct", []byte("[FOO\nbar\n"))
	if err == nil {
		t.Fatal("expected a syntax error")
	}
}

type mapSource map[string][]byte

func (m mapSource) ReadFile(path string) ([]byte, error) {
	if b, ok := m[path]; ok {
		return b, nil
	}
	return nil, nil
}

func TestIncludeExpansionOrdering(t *testing.T) {
	src := mapSource{
		"Include/extra.txt": []byte("inc1\ninc2\n"),
	}
	data := []byte("before\nF;extra.txt\nafter\n")
	f, err := ParseFile("root.sct", data)
	if err != nil {
		t.Fatal(err)
	}
	it := NewStatementIter(src, f.Section(""), nil)
	var got []string
	for {
		stmt, err, ok := it.Next()
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			break
		}
		got = append(got, stmt.String())
	}
	want := []string{"before", "inc1", "inc2", "after"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("at %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMissingInclude(t *testing.T) {
	src := mapSource{}
	data := []byte("F;missing.txt\n")
	f, err := ParseFile("root.sct", data)
	if err != nil {
		t.Fatal(err)
	}
	it := NewStatementIter(src, f.Section(""), nil)
	_, err, _ = it.Next()
	if err == nil {
		t.Fatal("expected a missing include error")
	}
	if _, ok := err.(*MissingIncludeError); !ok {
		t.Errorf("expected *MissingIncludeError, got %T", err)
	}
}
