package engine_test

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resto/internal/domains/availability/engine"
	"resto/internal/domains/table/model"
)

func makeTable(number, capacity int) model.Table {
	return model.Table{
		ID:          "table-" + strconv.Itoa(number),
		TableNumber: number,
		Capacity:    capacity,
		Active:      true,
	}
}

func capacities(c engine.Combination) []int {
	caps := make([]int, len(c.Tables))
	for i, t := range c.Tables {
		caps[i] = t.Capacity
	}

	return caps
}

func TestAvailableTables(t *testing.T) {
	catalog := []model.Table{
		makeTable(3, 4),
		makeTable(1, 2),
		makeTable(2, 6),
	}

	tests := []struct {
		name        string
		booked      map[string]bool
		wantNumbers []int
	}{
		{
			name:        "no bookings returns full catalog sorted",
			booked:      map[string]bool{},
			wantNumbers: []int{1, 2, 3},
		},
		{
			name:        "booked tables are removed",
			booked:      map[string]bool{"table-2": true},
			wantNumbers: []int{1, 3},
		},
		{
			name:        "all booked returns empty",
			booked:      map[string]bool{"table-1": true, "table-2": true, "table-3": true},
			wantNumbers: []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			available := engine.AvailableTables(catalog, tt.booked)

			numbers := make([]int, len(available))
			for i, table := range available {
				numbers[i] = table.TableNumber
			}

			assert.Equal(t, tt.wantNumbers, numbers)
		})
	}
}

func TestSuggestCombinations_ExactSingleTableFirst(t *testing.T) {
	pool := []model.Table{
		makeTable(1, 2),
		makeTable(2, 2),
		makeTable(3, 4),
		makeTable(4, 6),
	}

	combos := engine.SuggestCombinations(4, pool, 4, 50)

	require.NotEmpty(t, combos)

	// A single table seating the party exactly beats any pairing.
	assert.Len(t, combos[0].Tables, 1)
	assert.Equal(t, 4, combos[0].TotalCapacity)

	for _, combo := range combos {
		assert.GreaterOrEqual(t, combo.TotalCapacity, 4)
	}
}

func TestSuggestCombinations_CuratedPattern(t *testing.T) {
	pool := []model.Table{
		makeTable(1, 4),
		makeTable(2, 2),
		makeTable(3, 2),
	}

	combos := engine.SuggestCombinations(6, pool, 4, 50)

	require.NotEmpty(t, combos)
	assert.Equal(t, engine.RuleCurated, combos[0].Rule)
	assert.ElementsMatch(t, []int{4, 2}, capacities(combos[0]))
}

func TestSuggestCombinations_CuratedConsumesDistinctTables(t *testing.T) {
	// Pattern {2, 2} must use two different tables even though the
	// capacities repeat.
	pool := []model.Table{
		makeTable(1, 2),
		makeTable(2, 2),
	}

	combos := engine.SuggestCombinations(4, pool, 4, 50)

	require.NotEmpty(t, combos)
	require.Len(t, combos[0].Tables, 2)
	assert.NotEqual(t, combos[0].Tables[0].ID, combos[0].Tables[1].ID)
}

func TestSuggestCombinations_CuratedPatternUnsatisfiable(t *testing.T) {
	// Only one 2-seater, so {2, 2} cannot materialize and the 4-seater
	// exact match wins instead.
	pool := []model.Table{
		makeTable(1, 2),
		makeTable(2, 4),
	}

	combos := engine.SuggestCombinations(4, pool, 4, 50)

	require.NotEmpty(t, combos)
	assert.Len(t, combos[0].Tables, 1)
	assert.Equal(t, 4, combos[0].TotalCapacity)
}

func TestSuggestCombinations_NearestHigherSingle(t *testing.T) {
	pool := []model.Table{
		makeTable(1, 8),
		makeTable(2, 10),
	}

	combos := engine.SuggestCombinations(5, pool, 4, 50)

	require.NotEmpty(t, combos)
	assert.Equal(t, engine.RuleNearest, combos[0].Rule)
	assert.Equal(t, 8, combos[0].TotalCapacity)

	// Only the minimum overage tier is offered, not every larger table.
	for _, combo := range combos {
		assert.Equal(t, 8, combo.TotalCapacity)
	}
}

func TestSuggestCombinations_NearestIncludesAllTies(t *testing.T) {
	pool := []model.Table{
		makeTable(1, 8),
		makeTable(2, 8),
	}

	combos := engine.SuggestCombinations(5, pool, 4, 50)

	assert.Len(t, combos, 2)
	for _, combo := range combos {
		assert.Equal(t, engine.RuleNearest, combo.Rule)
	}
}

func TestSuggestCombinations_FallbackSubsets(t *testing.T) {
	pool := []model.Table{
		makeTable(1, 2),
		makeTable(2, 2),
		makeTable(3, 2),
	}

	combos := engine.SuggestCombinations(5, pool, 4, 50)

	require.Len(t, combos, 1)
	assert.Equal(t, engine.RuleFallback, combos[0].Rule)
	assert.Len(t, combos[0].Tables, 3)
	assert.Equal(t, 6, combos[0].TotalCapacity)
}

func TestSuggestCombinations_FallbackRespectsCap(t *testing.T) {
	pool := make([]model.Table, 0, 8)
	for i := 1; i <= 8; i++ {
		pool = append(pool, makeTable(i, 2))
	}

	// 17 guests cannot be seated by any curated, exact or single-table
	// rule with 2-seaters alone, forcing the subset fallback.
	combos := engine.SuggestCombinations(17, pool, 10, 3)

	assert.LessOrEqual(t, len(combos), 3)
	for _, combo := range combos {
		assert.Equal(t, engine.RuleFallback, combo.Rule)
		assert.GreaterOrEqual(t, combo.TotalCapacity, 17)
	}
}

func TestSuggestCombinations_MaxComboTablesBound(t *testing.T) {
	pool := []model.Table{
		makeTable(1, 2),
		makeTable(2, 2),
		makeTable(3, 2),
	}

	// Seating 5 needs three 2-seaters, but the bound allows only two.
	combos := engine.SuggestCombinations(5, pool, 2, 50)

	assert.Empty(t, combos)
}

func TestSuggestCombinations_RankingPrefersFewerTablesThenOverage(t *testing.T) {
	pool := []model.Table{
		makeTable(1, 2),
		makeTable(2, 4),
		makeTable(3, 6),
		makeTable(4, 8),
	}

	combos := engine.SuggestCombinations(6, pool, 4, 50)

	require.NotEmpty(t, combos)

	for i := 1; i < len(combos); i++ {
		prev, curr := combos[i-1], combos[i]

		if len(prev.Tables) == len(curr.Tables) {
			assert.LessOrEqual(t, prev.TotalCapacity-6, curr.TotalCapacity-6)
		} else {
			assert.Less(t, len(prev.Tables), len(curr.Tables))
		}
	}
}

func TestSuggestCombinations_DeterministicAcrossInputOrder(t *testing.T) {
	pool := []model.Table{
		makeTable(1, 2),
		makeTable(2, 2),
		makeTable(3, 4),
		makeTable(4, 4),
		makeTable(5, 6),
		makeTable(6, 8),
	}

	want := engine.SuggestCombinations(7, pool, 4, 50)

	rng := rand.New(rand.NewSource(1))

	for range 10 {
		shuffled := make([]model.Table, len(pool))
		copy(shuffled, pool)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		assert.Equal(t, want, engine.SuggestCombinations(7, shuffled, 4, 50))
	}
}

func TestSuggestCombinations_NoDuplicateCombinations(t *testing.T) {
	pool := []model.Table{
		makeTable(1, 2),
		makeTable(2, 2),
		makeTable(3, 4),
	}

	// Guests of 4 hits both the curated {2, 2} pattern and the exact
	// pair search; the duplicate must be collapsed.
	combos := engine.SuggestCombinations(4, pool, 4, 50)

	seen := map[string]bool{}

	for _, combo := range combos {
		key := ""
		for _, table := range combo.Tables {
			key += table.ID + "|"
		}

		assert.False(t, seen[key], "duplicate combination %v", capacities(combo))
		seen[key] = true
	}
}

func TestSuggestCombinations_EdgeInputs(t *testing.T) {
	pool := []model.Table{makeTable(1, 4)}

	assert.Empty(t, engine.SuggestCombinations(0, pool, 4, 50))
	assert.Empty(t, engine.SuggestCombinations(-1, pool, 4, 50))
	assert.Empty(t, engine.SuggestCombinations(4, []model.Table{}, 4, 50))
}
