package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// DayDetail holds the per-step breakdown of one day for formatted output.
type DayDetail struct {
	Steps []StepDetail
	Hours int
	Value int
}

// StepDetail is one crafted recipe and what it earned in place.
type StepDetail struct {
	Name    string
	Value   int // after the adjacency multiplier
	Bonused bool
}

// CalcDayDetail computes the same value as DaySchedule.TotalValue along with the
// contribution of every step.
func CalcDayDetail(d *DaySchedule) DayDetail {
	detail := DayDetail{Hours: d.UsedTime()}
	var prev *Recipe
	for _, r := range d.Recipes() {
		v := stepValue(prev, r)
		detail.Steps = append(detail.Steps, StepDetail{
			Name:    r.Name,
			Value:   v,
			Bonused: HasAdjacencyBonus(prev, r),
		})
		detail.Value += v
		prev = r
	}
	return detail
}

// valuePerHour returns value/hours rounded to two places, zero for an idle schedule.
func valuePerHour(value, hours int) decimal.Decimal {
	if hours == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(value)).Div(decimal.NewFromInt(int64(hours))).Round(2)
}

// FormatResult renders the winning week, its scores and the materials it consumes.
func FormatResult(cat *Catalog, best Candidate) string {
	var b strings.Builder
	if best.Week == nil || len(best.Week.Days()) == 0 {
		b.WriteString("no feasible schedule\n")
		return b.String()
	}
	w := best.Week

	for i, d := range w.Days() {
		dd := CalcDayDetail(d)
		parts := make([]string, 0, len(dd.Steps))
		for _, s := range dd.Steps {
			mark := ""
			if s.Bonused {
				mark = "*"
			}
			parts = append(parts, fmt.Sprintf("%s(%d%s)", s.Name, s.Value, mark))
		}
		fmt.Fprintf(&b, "Day %2d [%2dh]: %s = %d\n", i+1, dd.Hours, strings.Join(parts, " -> "), dd.Value)
	}

	b.WriteString("-------------------\n")
	fmt.Fprintf(&b, "Value: %d  Score: %d  Unique days: %d/%d\n",
		w.TotalValue(), best.Score, w.UniqueDayCount(), len(w.Days()))
	fmt.Fprintf(&b, "Value/hour: %s\n", valuePerHour(w.TotalValue(), w.Hours()).StringFixed(2))

	mats := w.TotalMaterials()
	ids := make([]ItemID, 0, len(mats))
	for id := range mats {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if mats[ids[i]] != mats[ids[j]] {
			return mats[ids[i]] > mats[ids[j]]
		}
		return ids[i] < ids[j]
	})
	b.WriteString("Materials:\n")
	for _, id := range ids {
		it := cat.Item(id)
		fmt.Fprintf(&b, "  %-28s %4d  (%s)\n", it.Name, mats[id], it.Kind)
	}
	return b.String()
}

func printTable(results []Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-36s %8s %8s %8s\n", "Areas", "Score", "Value", "Time")
	fmt.Fprintf(&b, "%-36s %8s %8s %8s\n", strings.Repeat("-", 36), "--------", "--------", "--------")
	for _, r := range results {
		fmt.Fprintf(&b, "%-36s %8d %8d %7.1fs\n", strings.Join(r.Areas, " + "), r.Score, r.TotalValue, float64(r.TimeMs)/1000)
	}
	return b.String()
}
