// Package ranking orders courier candidates for an offer round.
package ranking

import (
	"cmp"
	"slices"

	"service-dispatch/internal/domain"
)

// Rank returns candidates ordered by active assignments ascending, then rating
// descending, then courier ID ascending. The input slice is not modified.
func Rank(candidates []domain.CourierSnapshot) []domain.CourierSnapshot {
	out := slices.Clone(candidates)
	slices.SortStableFunc(out, compare)
	return out
}

// Top returns at most k best-ranked candidates.
func Top(candidates []domain.CourierSnapshot, k int) []domain.CourierSnapshot {
	ranked := Rank(candidates)
	if k < 0 {
		k = 0
	}
	return ranked[:min(k, len(ranked))]
}

func compare(a, b domain.CourierSnapshot) int {
	if c := cmp.Compare(a.ActiveAssignments, b.ActiveAssignments); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Rating, a.Rating); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}
