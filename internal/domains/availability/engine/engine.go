// Package engine holds the table-combination suggestion logic. Everything in
// here is a pure function over snapshots: the caller fetches the table catalog
// and the booked-table set, the engine only filters and ranks.
package engine

import (
	"sort"

	"resto/internal/domains/table/model"
)

type Rule string

const (
	RuleCurated  Rule = "curated"
	RuleExact    Rule = "exact"
	RuleNearest  Rule = "nearest"
	RuleFallback Rule = "fallback"
)

type Combination struct {
	Tables        []model.Table `json:"tables"`
	TotalCapacity int           `json:"total"`
	Rule          Rule          `json:"rule"`
}

// curatedPatterns maps a guest count to the house-preferred capacity groupings,
// in preference order. A pattern is a multiset of exact table capacities.
var curatedPatterns = map[int][][]int{
	1:  {{2}},
	2:  {{2}},
	3:  {{4}},
	4:  {{2, 2}, {4}},
	5:  {{4, 2}, {6}},
	6:  {{4, 2}, {6}},
	7:  {{4, 4}, {6, 2}, {8}},
	8:  {{4, 4}, {6, 2}, {8}},
	9:  {{4, 4, 2}, {6, 4}, {8, 2}, {10}},
	10: {{6, 4}, {4, 4, 2}, {10}},
	11: {{6, 4, 2}, {8, 4}, {10, 2}},
	12: {{6, 6}, {4, 4, 4}, {8, 4}, {10, 2}},
	13: {{6, 4, 4}, {8, 4, 2}, {10, 4}},
	14: {{6, 4, 4}, {8, 6}, {10, 4}},
	15: {{10, 4, 2}, {8, 4, 4}, {6, 4, 4, 2}, {8, 6, 2}},
	16: {{4, 4, 4, 4}, {8, 8}, {10, 6}, {8, 4, 4}},
}

// AvailableTables filters the catalog down to tables not present in the booked
// set, ordered by table number ascending. An empty booked set returns the full
// catalog in the same order.
func AvailableTables(all []model.Table, booked map[string]bool) []model.Table {
	available := make([]model.Table, 0, len(all))

	for _, t := range all {
		if !booked[t.ID] {
			available = append(available, t)
		}
	}

	sort.SliceStable(available, func(i, j int) bool {
		return available[i].TableNumber < available[j].TableNumber
	})

	return available
}

// SuggestCombinations ranks table combinations that seat the given party over
// the available pool. Curated patterns and exact-capacity matches form the
// first result set; only when that set is empty does the engine fall back to
// nearest-higher single tables, and only after that to bounded multi-table
// subsets seating at least the party. An empty result means no availability,
// not an error.
func SuggestCombinations(guests int, available []model.Table, maxComboTables, maxFallbackCombos int) []Combination {
	if guests < 1 || len(available) == 0 {
		return []Combination{}
	}

	pool := make([]model.Table, len(available))
	copy(pool, available)
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].TableNumber < pool[j].TableNumber
	})

	position := make(map[string]int, len(pool))
	for i, t := range pool {
		position[t.ID] = i
	}

	seen := map[string]bool{}
	combos := []Combination{}

	// Tier 1+2: curated patterns and exact-sum matches, merged.
	for _, pattern := range curatedPatterns[guests] {
		if tables, ok := materializePattern(pattern, pool); ok {
			appendCombination(&combos, seen, tables, RuleCurated)
		}
	}

	for _, t := range pool {
		if t.Capacity == guests {
			appendCombination(&combos, seen, []model.Table{t}, RuleExact)
		}
	}

	forEachSubset(pool, 2, maxComboTables, func(subset []model.Table, total int) bool {
		if total == guests {
			appendCombination(&combos, seen, subset, RuleExact)
		}

		return total < guests
	})

	// Tier 3: nearest-higher single tables, all ties at the minimum.
	if len(combos) == 0 {
		nearest := 0
		for _, t := range pool {
			if t.Capacity > guests && (nearest == 0 || t.Capacity < nearest) {
				nearest = t.Capacity
			}
		}

		for _, t := range pool {
			if nearest != 0 && t.Capacity == nearest {
				appendCombination(&combos, seen, []model.Table{t}, RuleNearest)
			}
		}
	}

	// Tier 4: bounded subsets seating at least the party.
	fallback := false

	if len(combos) == 0 {
		fallback = true

		forEachSubset(pool, 2, maxComboTables, func(subset []model.Table, total int) bool {
			if total >= guests {
				appendCombination(&combos, seen, subset, RuleFallback)
			}

			return true
		})
	}

	sortCombinations(combos, guests, position)

	if fallback && len(combos) > maxFallbackCombos {
		combos = combos[:maxFallbackCombos]
	}

	return combos
}

// materializePattern consumes tables greedily from the pool, one per capacity
// in the pattern, without reuse. The pool must already be in table-number
// order.
func materializePattern(pattern []int, pool []model.Table) ([]model.Table, bool) {
	used := map[string]bool{}
	tables := make([]model.Table, 0, len(pattern))

	for _, capacity := range pattern {
		found := false

		for _, t := range pool {
			if t.Capacity == capacity && !used[t.ID] {
				used[t.ID] = true
				tables = append(tables, t)
				found = true

				break
			}
		}

		if !found {
			return nil, false
		}
	}

	return tables, true
}

// forEachSubset visits every subset of the pool with minSize..maxSize members,
// in pool order. The visitor returns whether extending the current subset with
// more tables is still worthwhile; capacities are positive so exact-sum
// searches can prune as soon as the running total reaches the target.
func forEachSubset(pool []model.Table, minSize, maxSize int, visit func(subset []model.Table, total int) bool) {
	var recurse func(start int, current []model.Table, total int)

	recurse = func(start int, current []model.Table, total int) {
		extend := true

		if len(current) >= minSize {
			subset := make([]model.Table, len(current))
			copy(subset, current)
			extend = visit(subset, total)
		}

		if !extend || len(current) == maxSize {
			return
		}

		for i := start; i < len(pool); i++ {
			recurse(i+1, append(current, pool[i]), total+pool[i].Capacity)
		}
	}

	recurse(0, []model.Table{}, 0)
}

func appendCombination(combos *[]Combination, seen map[string]bool, tables []model.Table, rule Rule) {
	ordered := make([]model.Table, len(tables))
	copy(ordered, tables)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].TableNumber < ordered[j].TableNumber
	})

	key := ""
	total := 0

	for _, t := range ordered {
		key += t.ID + "|"
		total += t.Capacity
	}

	if seen[key] {
		return
	}
	seen[key] = true

	*combos = append(*combos, Combination{
		Tables:        ordered,
		TotalCapacity: total,
		Rule:          rule,
	})
}

func sortCombinations(combos []Combination, guests int, position map[string]int) {
	sort.SliceStable(combos, func(i, j int) bool {
		a, b := combos[i], combos[j]

		if len(a.Tables) != len(b.Tables) {
			return len(a.Tables) < len(b.Tables)
		}

		overageA := a.TotalCapacity - guests
		overageB := b.TotalCapacity - guests
		if overageA != overageB {
			return overageA < overageB
		}

		if a.TotalCapacity != b.TotalCapacity {
			return a.TotalCapacity < b.TotalCapacity
		}

		for k := 0; k < len(a.Tables); k++ {
			if position[a.Tables[k].ID] != position[b.Tables[k].ID] {
				return position[a.Tables[k].ID] < position[b.Tables[k].ID]
			}
		}

		return false
	})
}
