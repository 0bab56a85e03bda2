package main

// ── Adjacency bonus ─────────────────────────────────────────────────

// HasAdjacencyBonus reports whether b, crafted right after a, earns the x2 multiplier:
// the two must be different recipes sharing a category in any slot.
func HasAdjacencyBonus(a, b *Recipe) bool {
	if a == nil || b == nil || a.Name == b.Name {
		return false
	}
	return sharesCategory(a.Category1, b) || sharesCategory(a.Category2, b)
}

func sharesCategory(c Category, r *Recipe) bool {
	if c == CatNone {
		return false
	}
	return c == r.Category1 || c == r.Category2
}

// stepValue is what r contributes when crafted after prev (nil for the first slot).
func stepValue(prev, r *Recipe) int {
	if HasAdjacencyBonus(prev, r) {
		return r.Value * 2
	}
	return r.Value
}

// sequenceValue scores recipes crafted in the given order.
func sequenceValue(seq []*Recipe) int {
	total := 0
	var prev *Recipe
	for _, r := range seq {
		total += stepValue(prev, r)
		prev = r
	}
	return total
}

// ── Ordering search ─────────────────────────────────────────────────

// bestPermutation extends partial with every ordering of remaining and returns the
// highest-valued complete ordering with its value. partialValue is the value of partial.
// Recipes with the same id are interchangeable, so each is branched once per depth.
// The first ordering found wins ties.
func bestPermutation(recipes []*Recipe, remaining, partial []int, partialValue int) ([]int, int) {
	if len(remaining) == 0 {
		out := make([]int, len(partial))
		copy(out, partial)
		return out, partialValue
	}

	var prev *Recipe
	if len(partial) > 0 {
		prev = recipes[partial[len(partial)-1]]
	}

	var best []int
	bestValue := -1
	tried := make(map[RecipeID]bool, len(remaining))
	for i, idx := range remaining {
		r := recipes[idx]
		if tried[r.ID] {
			continue
		}
		tried[r.ID] = true

		rest := make([]int, 0, len(remaining)-1)
		rest = append(rest, remaining[:i]...)
		rest = append(rest, remaining[i+1:]...)

		order, v := bestPermutation(recipes, rest, append(partial, idx), partialValue+stepValue(prev, r))
		if best == nil || v > bestValue {
			best, bestValue = order, v
		}
	}
	return best, bestValue
}
