// Package glb implements the greatest-lower-bound search shared by every
// sorted offset table in folio: line starts, segment starts, and
// concatenation part boundaries all answer "which entry owns this offset?"
// with the same lookup.
package glb

import (
	"cmp"
	"sort"
)

// Search returns the largest index i such that key(items[i]) <= target,
// along with true. The slice must be sorted by key in non-decreasing order.
// Runs of equal keys resolve to the rightmost entry, so zero-width entries
// never shadow the entry that actually owns the offset. When target
// precedes every key, or items is empty, Search reports false.
func Search[E any, K cmp.Ordered](items []E, key func(E) K, target K) (int, bool) {
	i := sort.Search(len(items), func(i int) bool {
		return key(items[i]) > target
	})
	if i == 0 {
		return 0, false
	}
	return i - 1, true
}

// Ints is Search specialized to a plain offset table.
func Ints(offsets []int, target int) (int, bool) {
	return Search(offsets, func(o int) int { return o }, target)
}
