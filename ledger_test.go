package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Test catalog ────────────────────────────────────────────────────

const (
	itemX ItemID = iota
	itemY
	itemFleece
	itemPopoto
	itemPopotoSet
)

func testItems() []Item {
	return []Item{
		{Ref: 101, Name: "Island Cotton", Kind: KindMaterial},
		{Ref: 102, Name: "Island Stone", Kind: KindRareMaterial},
		{Ref: 103, Name: "Sanctuary Fleece", Kind: KindLeavings},
		{Ref: 104, Name: "Island Popoto", Kind: KindProduce},
		{Ref: 105, Name: "Popoto Set", Kind: KindStarter},
	}
}

func ing(id ItemID, qty int) Ingredient { return Ingredient{Item: id, Quantity: qty} }

func testRecipe(name string, hours, value int, c1, c2 Category, ings ...Ingredient) Recipe {
	return Recipe{Name: name, Duration: hours, Value: value, Category1: c1, Category2: c2, Ingredients: ings}
}

// newTestCatalog builds a catalog over testItems with the given recipes and returns
// pointers to them in order.
func newTestCatalog(recipes ...Recipe) (*Catalog, []*Recipe) {
	cat := NewCatalog(testItems(), recipes, map[ItemID]ItemID{itemPopotoSet: itemPopoto})
	ptrs := make([]*Recipe, len(cat.Recipes))
	for i := range cat.Recipes {
		ptrs[i] = &cat.Recipes[i]
	}
	return cat, ptrs
}

// ── Ledger ──────────────────────────────────────────────────────────

func TestLedgerTrackedFeasibility(t *testing.T) {
	cat, rs := newTestCatalog(
		testRecipe("Six", 4, 10, CatTextiles, CatNone, ing(itemX, 6)),
		testRecipe("Five", 4, 10, CatTextiles, CatNone, ing(itemX, 5)),
	)
	l := NewLedger(cat, Budget{Materials: map[ItemID]int{itemX: 5}})

	assert.False(t, l.CanAfford(rs[0]), "6 units from 5")
	require.True(t, l.CanAfford(rs[1]), "5 units from 5")

	l.Consume(rs[1])
	assert.Equal(t, 0, l.Remaining(itemX))
	assert.False(t, l.CanAfford(rs[1]), "nothing left after consume")
}

func TestLedgerMissingEntryIsZero(t *testing.T) {
	cat, rs := newTestCatalog(testRecipe("Needs Y", 4, 10, CatArms, CatNone, ing(itemY, 1)))
	l := NewLedger(cat, Budget{})
	assert.False(t, l.CanAfford(rs[0]))
	assert.Equal(t, 0, l.Remaining(itemY))
}

func TestLedgerPooledCounters(t *testing.T) {
	cat, rs := newTestCatalog(
		testRecipe("Tunic", 6, 72, CatAttire, CatTextiles, ing(itemFleece, 2)),
		testRecipe("Salad", 4, 52, CatFoodstuffs, CatNone, ing(itemPopoto, 2)),
	)
	l := NewLedger(cat, Budget{Leavings: 3, Produce: 1})

	assert.Equal(t, 2, rs[0].LeavingsNeed())
	assert.Equal(t, 2, rs[1].ProduceNeed())

	require.True(t, l.CanAfford(rs[0]))
	l.Consume(rs[0])
	assert.Equal(t, 1, l.Leavings())
	assert.False(t, l.CanAfford(rs[0]))
	assert.False(t, l.CanAfford(rs[1]), "one produce for a recipe needing two")
}

func TestLedgerIgnoredNeverBlocks(t *testing.T) {
	cat, rs := newTestCatalog(testRecipe("Planting", 4, 10, CatIngredients, CatNone, ing(itemPopotoSet, 99)))
	l := NewLedger(cat, Budget{})
	require.True(t, l.CanAfford(rs[0]))
	l.Consume(rs[0])
	assert.True(t, l.CanAfford(rs[0]))
	assert.Empty(t, l.Snapshot().Materials)
}

func TestLedgerBudgetFolding(t *testing.T) {
	cat, _ := newTestCatalog()
	l := NewLedger(cat, Budget{
		Materials: map[ItemID]int{itemX: 4, itemFleece: 2, itemPopoto: 1},
		Leavings:  1,
		Produce:   1,
		Planted:   map[ItemID]int{itemPopotoSet: 3, itemX: 50},
	})
	assert.Equal(t, 4, l.Remaining(itemX))
	assert.Equal(t, 3, l.Leavings())
	assert.Equal(t, 5, l.Produce(), "1 budget + 1 produce item + 3 planted")
}

func TestLedgerRoundTrip(t *testing.T) {
	cat, rs := newTestCatalog(
		testRecipe("Mixed", 6, 40, CatArms, CatNone,
			ing(itemX, 2), ing(itemY, 1), ing(itemX, 1), ing(itemFleece, 1), ing(itemPopoto, 2), ing(itemPopotoSet, 4)),
	)
	l := NewLedger(cat, Budget{
		Materials: map[ItemID]int{itemX: 7, itemY: 1},
		Leavings:  2,
		Produce:   9,
	})
	before := l.Snapshot()

	require.True(t, l.CanAfford(rs[0]))
	l.Consume(rs[0])
	assert.Equal(t, 4, l.Remaining(itemX), "duplicate ingredient lines are summed")
	l.Refund(rs[0])

	if diff := cmp.Diff(before, l.Snapshot()); diff != "" {
		t.Errorf("ledger changed across consume/refund (-before +after):\n%s", diff)
	}
}

func TestLedgerDayAndWeekChecksDoNotMutate(t *testing.T) {
	cat, rs := newTestCatalog(testRecipe("Three", 4, 10, CatArms, CatNone, ing(itemX, 3)))
	l := NewLedger(cat, Budget{Materials: map[ItemID]int{itemX: 7}})

	d := NewDaySchedule()
	d.Add(rs[0])
	d.Add(rs[0])
	assert.True(t, l.CanAffordDay(d))
	d.Add(rs[0])
	assert.False(t, l.CanAffordDay(d), "9 units from 7")
	assert.Equal(t, 7, l.Remaining(itemX))

	w := NewWeekSchedule(2)
	w.Add(rs[0])
	require.True(t, w.AddDay(func() *DaySchedule { x := NewDaySchedule(); x.Add(rs[0]); return x }()))
	assert.True(t, l.CanAffordWeek(w))
	w.days[1].Add(rs[0])
	assert.False(t, l.CanAffordWeek(w))
	assert.Equal(t, 7, l.Remaining(itemX))
}

func TestLedgerCloneIsIndependent(t *testing.T) {
	cat, rs := newTestCatalog(testRecipe("One", 4, 10, CatArms, CatNone, ing(itemX, 1), ing(itemFleece, 1)))
	l := NewLedger(cat, Budget{Materials: map[ItemID]int{itemX: 1}, Leavings: 1})
	c := l.Clone()
	c.Consume(rs[0])

	assert.Equal(t, 1, l.Remaining(itemX))
	assert.Equal(t, 1, l.Leavings())
	assert.Equal(t, 0, c.Remaining(itemX))
	assert.Equal(t, 0, c.Leavings())
}
