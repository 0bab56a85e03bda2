package main

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestNewResultKeepsSameNamedItemsApart(t *testing.T) {
	items := []Item{
		{Ref: 4, Name: "Island Stone", Kind: KindMaterial},
		{Ref: 104, Name: "Island Stone", Kind: KindRareMaterial},
		{Ref: 50, Name: "Sanctuary Fleece", Kind: KindLeavings},
	}
	cat := NewCatalog(items, []Recipe{
		testRecipe("Wall", 6, 40, CatFurnishings, CatNone, ing(0, 3), ing(1, 1), ing(2, 2)),
	}, nil)
	w := NewWeekSchedule(1)
	w.Add(&cat.Recipes[0])
	w.Add(&cat.Recipes[0])

	r := newResult(cat, Scenario{Areas: []string{"Mountains"}}, DefaultConfig(),
		Candidate{Week: w, Score: w.RankingScore()}, SearchStats{Trials: 3}, 1500*time.Millisecond)

	want := []MaterialUse{
		{Ref: 4, Name: "Island Stone", Quantity: 6},
		{Ref: 104, Name: "Island Stone", Quantity: 2},
		{Ref: 50, Name: "Sanctuary Fleece", Quantity: 4},
	}
	if diff := cmp.Diff(want, r.Materials); diff != "" {
		t.Errorf("materials mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 80, r.TotalValue)
	assert.Equal(t, [][]string{{"Wall", "Wall"}}, r.Days)
	assert.Equal(t, int64(1500), r.TimeMs)
	assert.NotEmpty(t, r.RunID)
}

func TestNewResultEmptyWeek(t *testing.T) {
	cat, _ := newTestCatalog()
	r := newResult(cat, Scenario{}, DefaultConfig(), Candidate{}, SearchStats{}, 0)
	assert.Empty(t, r.Materials)
	assert.NotNil(t, r.Materials)
	assert.Empty(t, r.Days)
}
