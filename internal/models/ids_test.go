// ABOUTME: Tests for integer ID allocation.
// ABOUTME: Verifies max+1 allocation and lookup by id.

package models

import "testing"

func TestNextIDEmpty(t *testing.T) {
	if got := NextID([]Recipe(nil)); got != 1 {
		t.Errorf("expected 1 for empty collection, got %d", got)
	}
}

func TestNextIDUsesMaximum(t *testing.T) {
	notes := []GeneralNote{{ID: 2}, {ID: 9}, {ID: 4}}
	if got := NextID(notes); got != 10 {
		t.Errorf("expected 10, got %d", got)
	}
}

func TestNextIDNeverReusesAfterGap(t *testing.T) {
	recipes := []Recipe{{ID: 1}, {ID: 5}}
	// id 5 removed and re-added elsewhere still allocates past the max
	recipes = recipes[:1]
	recipes = append(recipes, Recipe{ID: 6})
	if got := NextID(recipes); got != 7 {
		t.Errorf("expected 7, got %d", got)
	}
}

func TestIndexByID(t *testing.T) {
	notes := []Note{{ID: 3}, {ID: 8}}
	if got := IndexByID(notes, 8); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}
	if got := IndexByID(notes, 42); got != -1 {
		t.Errorf("expected -1, got %d", got)
	}
}
