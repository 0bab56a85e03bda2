package main

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Catalog is the immutable set of items, recipes and expedition areas for one game data
// load. It is shared read-only by every search worker.
type Catalog struct {
	Items   []Item   // indexed by ItemID
	Recipes []Recipe // indexed by RecipeID
	Areas   []Area

	// StarterProduce maps a planting input to the produce it grows into.
	StarterProduce map[ItemID]ItemID

	byRef map[int]ItemID
}

// NewCatalog assigns handles, derives resource classes and precomputes each recipe's
// pooled and tracked requirements. Ingredient item ids must already be handles.
func NewCatalog(items []Item, recipes []Recipe, starters map[ItemID]ItemID) *Catalog {
	c := &Catalog{
		Items:          items,
		Recipes:        recipes,
		StarterProduce: starters,
		byRef:          make(map[int]ItemID, len(items)),
	}
	if c.StarterProduce == nil {
		c.StarterProduce = map[ItemID]ItemID{}
	}
	for i := range c.Items {
		it := &c.Items[i]
		it.ID = ItemID(i)
		it.Class = it.Kind.Class()
		c.byRef[it.Ref] = it.ID
	}
	for i := range c.Recipes {
		c.Recipes[i].ID = RecipeID(i)
		c.indexRecipe(&c.Recipes[i])
	}
	return c
}

func (c *Catalog) indexRecipe(r *Recipe) {
	r.leavingsNeed, r.produceNeed, r.tracked = 0, 0, nil
	pos := make(map[ItemID]int)
	for _, ing := range r.Ingredients {
		switch c.Items[ing.Item].Class {
		case PooledLeaving:
			r.leavingsNeed += ing.Quantity
		case PooledProduce:
			r.produceNeed += ing.Quantity
		case TrackedMaterial:
			if p, ok := pos[ing.Item]; ok {
				r.tracked[p].Quantity += ing.Quantity
				continue
			}
			pos[ing.Item] = len(r.tracked)
			r.tracked = append(r.tracked, ing)
		}
	}
}

// Item returns the item for a handle.
func (c *Catalog) Item(id ItemID) *Item {
	return &c.Items[id]
}

// ItemByRef resolves the id used by the source data.
func (c *Catalog) ItemByRef(ref int) (ItemID, bool) {
	id, ok := c.byRef[ref]
	return id, ok
}

// FindArea returns the index of the area with the given terrain name, or -1.
func (c *Catalog) FindArea(terrain string) int {
	for i := range c.Areas {
		if c.Areas[i].Terrain == terrain {
			return i
		}
	}
	return -1
}

// ── Run result ──────────────────────────────────────────────────────

// Result is the serializable outcome of optimizing one scenario.
type Result struct {
	RunID       string         `json:"runId"`
	Areas       []string       `json:"areas,omitempty"`
	Mode        string         `json:"mode"`
	Score       int            `json:"score"`
	TotalValue  int            `json:"totalValue"`
	UniqueDays  int            `json:"uniqueDays"`
	Days        [][]string     `json:"days"`
	Materials   []MaterialUse  `json:"materials"`
	Trials      int            `json:"trials,omitempty"`
	Generations int            `json:"generations,omitempty"`
	TimeMs      int64          `json:"timeMs"`
}

// MaterialUse is the weekly amount of one item a result consumes. Items sharing a name
// stay separate entries.
type MaterialUse struct {
	Ref      int    `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

func newResult(cat *Catalog, sc Scenario, cfg Config, best Candidate, stats SearchStats, elapsed time.Duration) Result {
	r := Result{
		RunID:       uuid.NewString(),
		Areas:       sc.Areas,
		Mode:        cfg.Mode,
		Score:       best.Score,
		Days:        [][]string{},
		Materials:   []MaterialUse{},
		Trials:      stats.Trials,
		Generations: stats.Generations,
		TimeMs:      elapsed.Milliseconds(),
	}
	if best.Week == nil {
		return r
	}
	r.TotalValue = best.Week.TotalValue()
	r.UniqueDays = best.Week.UniqueDayCount()
	for _, d := range best.Week.Days() {
		names := make([]string, 0, d.Len())
		for _, rec := range d.Recipes() {
			names = append(names, rec.Name)
		}
		r.Days = append(r.Days, names)
	}
	mats := best.Week.TotalMaterials()
	ids := make([]ItemID, 0, len(mats))
	for id := range mats {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		it := cat.Item(id)
		r.Materials = append(r.Materials, MaterialUse{Ref: it.Ref, Name: it.Name, Quantity: mats[id]})
	}
	return r
}

// runScenario derives the weekly budget for a scenario and optimizes it.
func runScenario(ctx context.Context, cat *Catalog, sc Scenario, cfg Config, log *zap.Logger) (Result, Candidate, error) {
	budget, err := BuildBudget(cat, sc, cfg.Granary)
	if err != nil {
		return Result{}, Candidate{}, err
	}
	start := time.Now()
	opt := NewOptimizer(cat, NewLedger(cat, budget), cfg, log)
	best, stats := opt.Optimize(ctx)
	elapsed := time.Since(start)
	return newResult(cat, sc, cfg, best, stats, elapsed), best, nil
}

func (r Result) String() string {
	return fmt.Sprintf("%v: score=%d value=%d in %.1fs", r.Areas, r.Score, r.TotalValue, float64(r.TimeMs)/1000)
}
