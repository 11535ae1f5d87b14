// ABOUTME: ID-keyed merge of incoming records into a local collection.
// ABOUTME: Used for both seed data and remote pulls.

package models

import "time"

// Versioned records can be merged by ID and compared by modification time.
type Versioned interface {
	Identified
	Updated() time.Time
}

func (r Recipe) Updated() time.Time      { return r.UpdatedAt }
func (n GeneralNote) Updated() time.Time { return n.UpdatedAt }

// MergeByID folds incoming into local without mutating either. Records whose
// ID is absent locally are prepended in incoming order. On a collision the
// local record stays unless the incoming one has a strictly newer UpdatedAt.
// Duplicate IDs within incoming keep their first occurrence.
func MergeByID[T Versioned](local, incoming []T) (merged []T, added, replaced int) {
	pos := make(map[int]int, len(local))
	for i, r := range local {
		pos[r.GetID()] = i
	}

	kept := append(make([]T, 0, len(local)), local...)
	var fresh []T
	seen := make(map[int]bool, len(incoming))
	for _, in := range incoming {
		id := in.GetID()
		if seen[id] {
			continue
		}
		seen[id] = true

		i, exists := pos[id]
		if !exists {
			fresh = append(fresh, in)
			continue
		}
		if in.Updated().After(kept[i].Updated()) {
			kept[i] = in
			replaced++
		}
	}

	merged = make([]T, 0, len(fresh)+len(kept))
	merged = append(merged, fresh...)
	merged = append(merged, kept...)
	return merged, len(fresh), replaced
}
