package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalcDayDetail(t *testing.T) {
	_, rs := newTestCatalog(
		testRecipe("Cap", 4, 10, CatTextiles, CatNone),
		testRecipe("Mat", 4, 8, CatTextiles, CatNone),
		testRecipe("Spear", 6, 12, CatArms, CatNone),
	)
	d := NewDaySchedule()
	d.Add(rs[0])
	d.Add(rs[1])
	d.Add(rs[2])

	detail := CalcDayDetail(d)
	assert.Equal(t, d.TotalValue(), detail.Value)
	assert.Equal(t, 14, detail.Hours)
	require.Len(t, detail.Steps, 3)
	assert.Equal(t, StepDetail{Name: "Cap", Value: 10}, detail.Steps[0])
	assert.Equal(t, StepDetail{Name: "Mat", Value: 16, Bonused: true}, detail.Steps[1])
	assert.Equal(t, StepDetail{Name: "Spear", Value: 12}, detail.Steps[2])
}

func TestValuePerHour(t *testing.T) {
	assert.Equal(t, "4.17", valuePerHour(100, 24).StringFixed(2))
	assert.Equal(t, "0.00", valuePerHour(100, 0).StringFixed(2))
	assert.Equal(t, "12.00", valuePerHour(288, 24).StringFixed(2))
}

func TestFormatResult(t *testing.T) {
	cat, rs := newTestCatalog(
		testRecipe("Cap", 4, 10, CatTextiles, CatNone, ing(itemX, 2)),
		testRecipe("Mat", 4, 8, CatTextiles, CatNone, ing(itemX, 1), ing(itemFleece, 5)),
	)
	w := NewWeekSchedule(2)
	w.Add(rs[0])
	w.Add(rs[1])
	out := FormatResult(cat, Candidate{Week: w, Score: w.RankingScore()})

	assert.Contains(t, out, "Day  1 [ 8h]: Cap(10) -> Mat(16*) = 26\n")
	assert.Contains(t, out, "Value: 26  Score: -174  Unique days: 1/1\n")
	assert.Contains(t, out, "Value/hour: 3.25\n")
	fleece := strings.Index(out, "Sanctuary Fleece")
	cotton := strings.Index(out, "Island Cotton")
	require.Positive(t, fleece)
	require.Positive(t, cotton)
	assert.Less(t, fleece, cotton, "materials sorted by quantity")

	assert.Equal(t, "no feasible schedule\n", FormatResult(cat, Candidate{Week: NewWeekSchedule(2)}))
	assert.Equal(t, "no feasible schedule\n", FormatResult(cat, Candidate{}))
}

func TestPrintTable(t *testing.T) {
	out := printTable([]Result{
		{Areas: []string{"Caves", "Ocean"}, Score: 900, TotalValue: 1500, TimeMs: 1200},
		{Areas: []string{"Meadows", "Meadows"}, Score: 700, TotalValue: 1300, TimeMs: 800},
	})
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[2], "Caves + Ocean")
	assert.Contains(t, lines[2], "900")
	assert.Contains(t, lines[3], "0.8s")
}
