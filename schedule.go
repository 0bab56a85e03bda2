package main

import "sort"

// DayHours is the time budget of one workshop day.
const DayHours = 24

// DayPatternPenalty is subtracted from the ranking score once per distinct day pattern.
const DayPatternPenalty = 200

// ── Day ─────────────────────────────────────────────────────────────

// DaySchedule is an ordered list of recipes crafted back to back within DayHours.
type DaySchedule struct {
	content []*Recipe
	used    int
}

func NewDaySchedule() *DaySchedule {
	return &DaySchedule{}
}

func (d *DaySchedule) Len() int { return len(d.content) }

// UsedTime returns the summed duration of the day's recipes.
func (d *DaySchedule) UsedTime() int { return d.used }

// Recipes returns the day's recipes in crafting order. The slice must not be modified.
func (d *DaySchedule) Recipes() []*Recipe { return d.content }

func (d *DaySchedule) CanAdd(r *Recipe) bool {
	return d.used+r.Duration <= DayHours
}

func (d *DaySchedule) Add(r *Recipe) {
	d.content = append(d.content, r)
	d.used += r.Duration
}

func (d *DaySchedule) CanReplace(i int, r *Recipe) bool {
	return d.used-d.content[i].Duration+r.Duration <= DayHours
}

// Replace swaps the recipe at slot i. Callers check CanReplace first.
func (d *DaySchedule) Replace(i int, r *Recipe) {
	d.used += r.Duration - d.content[i].Duration
	d.content[i] = r
}

// TotalValue scores the day in its current order.
func (d *DaySchedule) TotalValue() int {
	return sequenceValue(d.content)
}

// BestOrdering rearranges the day into its highest-valued order. The current order is
// kept unless another one scores strictly higher.
func (d *DaySchedule) BestOrdering() {
	if len(d.content) < 2 {
		return
	}
	current := d.TotalValue()
	remaining := make([]int, len(d.content))
	for i := range remaining {
		remaining[i] = i
	}
	order, value := bestPermutation(d.content, remaining, make([]int, 0, len(d.content)), 0)
	if value <= current {
		return
	}
	next := make([]*Recipe, len(order))
	for i, idx := range order {
		next[i] = d.content[idx]
	}
	d.content = next
}

// Signature fingerprints the day's recipe multiset, ignoring order.
func (d *DaySchedule) Signature() string {
	ids := make([]int, len(d.content))
	for i, r := range d.content {
		ids[i] = int(r.ID)
	}
	sort.Ints(ids)
	buf := make([]byte, 0, len(ids)*4)
	for _, v := range ids {
		buf = append(buf, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	}
	return string(buf)
}

func (d *DaySchedule) Clone() *DaySchedule {
	c := &DaySchedule{content: make([]*Recipe, len(d.content)), used: d.used}
	copy(c.content, d.content)
	return c
}

// ── Week ────────────────────────────────────────────────────────────

// WeekSchedule is an ordered list of days capped at maxDays.
type WeekSchedule struct {
	days    []*DaySchedule
	maxDays int
}

func NewWeekSchedule(maxDays int) *WeekSchedule {
	return &WeekSchedule{maxDays: maxDays}
}

func (w *WeekSchedule) Days() []*DaySchedule { return w.days }

func (w *WeekSchedule) MaxDays() int { return w.maxDays }

func (w *WeekSchedule) lastDay() *DaySchedule {
	if len(w.days) == 0 {
		return nil
	}
	return w.days[len(w.days)-1]
}

// CanAdd reports whether r fits the last day, or a fresh day can still be opened for it.
func (w *WeekSchedule) CanAdd(r *Recipe) bool {
	if last := w.lastDay(); last != nil && last.CanAdd(r) {
		return true
	}
	return len(w.days) < w.maxDays && r.Duration <= DayHours
}

// Add appends r to the last day, opening a new one when it does not fit.
// Callers check CanAdd first.
func (w *WeekSchedule) Add(r *Recipe) {
	last := w.lastDay()
	if last == nil || !last.CanAdd(r) {
		last = NewDaySchedule()
		w.days = append(w.days, last)
	}
	last.Add(r)
}

// AddDay appends a complete day. It returns false when the week is full.
func (w *WeekSchedule) AddDay(d *DaySchedule) bool {
	if len(w.days) >= w.maxDays {
		return false
	}
	w.days = append(w.days, d)
	return true
}

func (w *WeekSchedule) TotalValue() int {
	total := 0
	for _, d := range w.days {
		total += d.TotalValue()
	}
	return total
}

// UniqueDayCount counts distinct day signatures.
func (w *WeekSchedule) UniqueDayCount() int {
	seen := make(map[string]bool, len(w.days))
	for _, d := range w.days {
		seen[d.Signature()] = true
	}
	return len(seen)
}

// RankingScore is the total value minus DayPatternPenalty per distinct day pattern.
func (w *WeekSchedule) RankingScore() int {
	return w.TotalValue() - DayPatternPenalty*w.UniqueDayCount()
}

// TotalMaterials sums every ingredient requirement across the week, pooled and ignored
// items included.
func (w *WeekSchedule) TotalMaterials() map[ItemID]int {
	out := make(map[ItemID]int)
	for _, d := range w.days {
		for _, r := range d.content {
			for _, ing := range r.Ingredients {
				out[ing.Item] += ing.Quantity
			}
		}
	}
	return out
}

// Hours returns the summed used time of all days.
func (w *WeekSchedule) Hours() int {
	h := 0
	for _, d := range w.days {
		h += d.used
	}
	return h
}

func (w *WeekSchedule) Clone() *WeekSchedule {
	c := &WeekSchedule{days: make([]*DaySchedule, len(w.days)), maxDays: w.maxDays}
	for i, d := range w.days {
		c.days[i] = d.Clone()
	}
	return c
}

// ── Candidate ───────────────────────────────────────────────────────

// Candidate is one scored week.
type Candidate struct {
	Week  *WeekSchedule
	Score int
}

func (c Candidate) Clone() Candidate {
	if c.Week == nil {
		return c
	}
	return Candidate{Week: c.Week.Clone(), Score: c.Score}
}
