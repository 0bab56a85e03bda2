package main

// Budget is the starting resource state of one scenario week.
type Budget struct {
	Materials map[ItemID]int
	Leavings  int
	Produce   int
	Planted   map[ItemID]int // starters planted this week
}

// Ledger simulates consumable quantities while schedules are built.
//
// Tracked materials are counted per item. Leavings and produce are fungible and live in
// two scalar counters. Ignored items are not accounted at all.
type Ledger struct {
	cat       *Catalog
	materials map[ItemID]int
	leavings  int
	produce   int
}

// NewLedger folds a budget into ledger form. Budget entries for pooled items are added to
// the matching counter; planted starters count toward produce through the catalog's
// starter mapping.
func NewLedger(cat *Catalog, b Budget) *Ledger {
	l := &Ledger{
		cat:       cat,
		materials: make(map[ItemID]int, len(b.Materials)),
		leavings:  b.Leavings,
		produce:   b.Produce,
	}
	for id, qty := range b.Materials {
		switch cat.Items[id].Class {
		case TrackedMaterial:
			l.materials[id] += qty
		case PooledLeaving:
			l.leavings += qty
		case PooledProduce:
			l.produce += qty
		}
	}
	for starter, qty := range b.Planted {
		if _, ok := cat.StarterProduce[starter]; ok {
			l.produce += qty
		}
	}
	return l
}

// CanAfford reports whether every requirement of r is covered.
func (l *Ledger) CanAfford(r *Recipe) bool {
	if l.leavings < r.leavingsNeed || l.produce < r.produceNeed {
		return false
	}
	for _, ing := range r.tracked {
		if l.materials[ing.Item] < ing.Quantity {
			return false
		}
	}
	return true
}

// Consume takes r's requirements out of the ledger. The caller must have checked
// CanAfford; the ledger does not re-validate.
func (l *Ledger) Consume(r *Recipe) {
	l.leavings -= r.leavingsNeed
	l.produce -= r.produceNeed
	for _, ing := range r.tracked {
		l.materials[ing.Item] -= ing.Quantity
	}
}

// Refund is the exact inverse of Consume.
func (l *Ledger) Refund(r *Recipe) {
	l.leavings += r.leavingsNeed
	l.produce += r.produceNeed
	for _, ing := range r.tracked {
		l.materials[ing.Item] += ing.Quantity
	}
}

// CanAffordDay reports whether every recipe of d can be paid in sequence.
// The receiver is left untouched.
func (l *Ledger) CanAffordDay(d *DaySchedule) bool {
	return l.Clone().takeDay(d)
}

// CanAffordWeek reports whether the whole week can be paid in sequence.
// The receiver is left untouched.
func (l *Ledger) CanAffordWeek(w *WeekSchedule) bool {
	c := l.Clone()
	for _, d := range w.days {
		if !c.takeDay(d) {
			return false
		}
	}
	return true
}

func (l *Ledger) takeDay(d *DaySchedule) bool {
	for _, r := range d.content {
		if !l.CanAfford(r) {
			return false
		}
		l.Consume(r)
	}
	return true
}

// ConsumeDay pays for every recipe of d. Same precondition as Consume.
func (l *Ledger) ConsumeDay(d *DaySchedule) {
	for _, r := range d.content {
		l.Consume(r)
	}
}

// Clone returns a deep copy sharing only the catalog.
func (l *Ledger) Clone() *Ledger {
	c := &Ledger{
		cat:       l.cat,
		materials: make(map[ItemID]int, len(l.materials)),
		leavings:  l.leavings,
		produce:   l.produce,
	}
	for id, qty := range l.materials {
		c.materials[id] = qty
	}
	return c
}

// Remaining returns the quantity left of a tracked item.
func (l *Ledger) Remaining(id ItemID) int { return l.materials[id] }

func (l *Ledger) Leavings() int { return l.leavings }

func (l *Ledger) Produce() int { return l.produce }

// Snapshot returns the observable state. Zero entries are dropped so that two ledgers
// holding the same quantities compare equal.
func (l *Ledger) Snapshot() Budget {
	b := Budget{
		Materials: make(map[ItemID]int, len(l.materials)),
		Leavings:  l.leavings,
		Produce:   l.produce,
	}
	for id, qty := range l.materials {
		if qty != 0 {
			b.Materials[id] = qty
		}
	}
	return b
}
