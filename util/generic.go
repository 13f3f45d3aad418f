// util/generic.go
// Copyright(c) 2026 sectortiles contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"sort"

	"github.com/iancoleman/orderedmap"
	"golang.org/x/exp/constraints"
)

// MapSlice applies f to each element of s, returning a new slice.
func MapSlice[T, U any](s []T, f func(T) U) []U {
	r := make([]U, len(s))
	for i, v := range s {
		r[i] = f(v)
	}
	return r
}

// FilterSlice returns the elements of s for which keep returns true.
func FilterSlice[T any](s []T, keep func(T) bool) []T {
	var r []T
	for _, v := range s {
		if keep(v) {
			r = append(r, v)
		}
	}
	return r
}

// SortedMapKeys returns the keys of m in sorted order.
func SortedMapKeys[K constraints.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// OrderedMap is a thin wrapper around iancoleman/orderedmap, used where the
// output needs deterministic key order for reproducible diffs (notably
// Palette definitions as they're encountered in source order).
type OrderedMap struct {
	m *orderedmap.OrderedMap
}

func NewOrderedMap() *OrderedMap {
	return &OrderedMap{m: orderedmap.New()}
}

func (o *OrderedMap) Set(key string, value interface{}) {
	o.m.Set(key, value)
}

func (o *OrderedMap) Get(key string) (interface{}, bool) {
	return o.m.Get(key)
}

func (o *OrderedMap) Keys() []string {
	return o.m.Keys()
}

func (o *OrderedMap) MarshalJSON() ([]byte, error) {
	return o.m.MarshalJSON()
}

func (o *OrderedMap) UnmarshalJSON(b []byte) error {
	if o.m == nil {
		o.m = orderedmap.New()
	}
	return o.m.UnmarshalJSON(b)
}
