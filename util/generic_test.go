// util/generic_test.go
// Copyright(c) 2026 sectortiles contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestMapFilterSlice(t *testing.T) {
	in := []int{1, 2, 3, 4, 5}
	doubled := MapSlice(in, func(v int) int { return v * 2 })
	if !reflect.DeepEqual(doubled, []int{2, 4, 6, 8, 10}) {
		t.Errorf("MapSlice: %v", doubled)
	}
	even := FilterSlice(in, func(v int) bool { return v%2 == 0 })
	if !reflect.DeepEqual(even, []int{2, 4}) {
		t.Errorf("FilterSlice: %v", even)
	}
}

func TestSortedMapKeys(t *testing.T) {
	m := map[string]int{"b": 2, "a": 1, "c": 3}
	keys := SortedMapKeys(m)
	if !reflect.DeepEqual(keys, []string{"a", "b", "c"}) {
		t.Errorf("SortedMapKeys: %v", keys)
	}
}

func TestOrderedMap(t *testing.T) {
	om := NewOrderedMap()
	om.Set("z", 1)
	om.Set("a", 2)
	if !reflect.DeepEqual(om.Keys(), []string{"z", "a"}) {
		t.Errorf("OrderedMap.Keys did not preserve insertion order: %v", om.Keys())
	}
}

func TestOrderedMapJSONRoundTrip(t *testing.T) {
	om := NewOrderedMap()
	om.Set("z", 1)
	om.Set("a", 2)

	body, err := json.Marshal(om)
	if err != nil {
		t.Fatal(err)
	}

	var round OrderedMap
	if err := json.Unmarshal(body, &round); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(round.Keys(), []string{"z", "a"}) {
		t.Errorf("round-tripped OrderedMap.Keys did not preserve order: %v", round.Keys())
	}
}
