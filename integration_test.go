package main

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

var islandScenarios = []Scenario{
	{Areas: []string{"Mountains", "Meadows"}, Leavings: 20, Planted: map[int]int{60: 6, 61: 4}},
	{Areas: []string{"Caves", "Ocean"}, Leavings: 10},
	{Areas: []string{"Woodlands", "Woodlands"}, Planted: map[int]int{62: 5, 63: 5}},
	{Areas: []string{"Ocean", "Mountains"}, Leavings: 40, Materials: map[int]int{33: 10}},
}

func loadIsland(t *testing.T) *Catalog {
	t.Helper()
	cat, err := LoadCatalogFile("data/island.json")
	if err != nil {
		t.Fatalf("LoadCatalogFile: %v", err)
	}
	return cat
}

// verifyResult runs the checklist against an optimizer result.
func verifyResult(t *testing.T, cat *Catalog, cfg Config, start *Ledger, r Result, best Candidate) {
	t.Helper()
	w := best.Week

	// 1. a week is always returned and its value is positive for a stocked island
	if w == nil {
		t.Fatal("nil week returned")
	}
	if w.TotalValue() <= 0 {
		t.Errorf("total value %d, want > 0", w.TotalValue())
	}

	// 2. day count within the workshop cap
	if len(w.Days()) > cfg.MaxDays() {
		t.Errorf("%d days, want <= %d", len(w.Days()), cfg.MaxDays())
	}

	for i, d := range w.Days() {
		// 3. every day fits the day
		if d.UsedTime() > DayHours {
			t.Errorf("day %d: %dh used, want <= %d", i+1, d.UsedTime(), DayHours)
		}
		// 4. every day is already in its best order
		before := d.TotalValue()
		c := d.Clone()
		c.BestOrdering()
		if c.TotalValue() != before {
			t.Errorf("day %d: value %d, best ordering gives %d", i+1, before, c.TotalValue())
		}
	}

	// 5. the starting budget pays for the whole week
	if !start.CanAffordWeek(w) {
		t.Error("week exceeds the starting budget")
	}

	// 6. score recomputation matches
	want := w.RankingScore()
	if cfg.Scoring == ScoreValue {
		want = w.TotalValue()
	}
	if best.Score != want {
		t.Errorf("score %d, recomputed %d", best.Score, want)
	}

	// 7. the serialized result agrees with the candidate
	if r.Score != best.Score || r.TotalValue != w.TotalValue() || len(r.Days) != len(w.Days()) {
		t.Errorf("result %s disagrees with candidate (score=%d value=%d days=%d)",
			r, best.Score, w.TotalValue(), len(w.Days()))
	}
	if r.RunID == "" {
		t.Error("empty run id")
	}

	// 8. report renders every day
	out := FormatResult(cat, best)
	if got := strings.Count(out, "\nDay ") + boolToInt(strings.HasPrefix(out, "Day ")); got != len(w.Days()) {
		t.Errorf("report renders %d days, want %d", got, len(w.Days()))
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func TestIslandScenarios(t *testing.T) {
	cat := loadIsland(t)

	scenarios := islandScenarios
	if testing.Short() {
		scenarios = scenarios[:1]
	}

	// Reduced search params for test speed.
	testCfg := DefaultConfig()
	testCfg.NoImprovement = 200
	testCfg.MaxTrials = 500
	testCfg.Population = 30
	testCfg.Generations = 10

	for _, mode := range []string{ModeRestart, ModeEvolve} {
		for i, sc := range scenarios {
			t.Run(fmt.Sprintf("%s_%d_%s", mode, i, strings.Join(sc.Areas, "+")), func(t *testing.T) {
				t.Parallel()
				cfg := testCfg
				cfg.Mode = mode
				cfg.Seed = uint64(i + 1)

				budget, err := BuildBudget(cat, sc, cfg.Granary)
				if err != nil {
					t.Fatalf("BuildBudget: %v", err)
				}
				start := NewLedger(cat, budget)

				r, best, err := runScenario(context.Background(), cat, sc, cfg, nil)
				if err != nil {
					t.Fatalf("runScenario: %v", err)
				}
				t.Logf("%s: score=%d value=%d elapsed=%dms", strings.Join(sc.Areas, "+"), r.Score, r.TotalValue, r.TimeMs)
				verifyResult(t, cat, cfg, start, r, best)
			})
		}
	}
}
