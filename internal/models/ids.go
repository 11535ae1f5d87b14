// ABOUTME: Integer ID allocation for collections.
// ABOUTME: New IDs are one past the largest existing ID, never reused.

package models

// Identified is implemented by every record stored in a collection.
type Identified interface {
	GetID() int
}

// NextID returns max(ids, 0) + 1. An empty collection yields 1.
func NextID[T Identified](items []T) int {
	maxID := 0
	for _, it := range items {
		if id := it.GetID(); id > maxID {
			maxID = id
		}
	}
	return maxID + 1
}

// IndexByID returns the position of the record with id, or -1.
func IndexByID[T Identified](items []T, id int) int {
	for i, it := range items {
		if it.GetID() == id {
			return i
		}
	}
	return -1
}
