package main

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Scenario describes one week's inputs beyond the catalog. Item keys are the ids used by
// the source data.
type Scenario struct {
	Areas     []string    `json:"areas"`
	Leavings  int         `json:"leavings"`
	Planted   map[int]int `json:"planted,omitempty"`
	Materials map[int]int `json:"materials,omitempty"`
}

// BuildBudget derives the starting budget of a scenario: the weekly gathering of every
// item, the granary yield of each chosen area, then the scenario's own leavings, planted
// starters and extra materials.
func BuildBudget(cat *Catalog, sc Scenario, g GranaryConfig) (Budget, error) {
	b := Budget{
		Materials: make(map[ItemID]int),
		Leavings:  sc.Leavings,
		Planted:   make(map[ItemID]int),
	}
	for i := range cat.Items {
		if w := cat.Items[i].Weekly; w > 0 {
			b.Materials[cat.Items[i].ID] += w
		}
	}
	for _, name := range sc.Areas {
		ai := cat.FindArea(name)
		if ai < 0 {
			return Budget{}, fmt.Errorf("%w: %q", ErrUnknownArea, name)
		}
		a := &cat.Areas[ai]
		for _, id := range a.Resources {
			b.Materials[id] += g.NormalPerWeek
		}
		if a.HasRare {
			b.Materials[a.Rare] += g.RarePerWeek
		}
	}
	for ref, qty := range sc.Planted {
		id, ok := cat.ItemByRef(ref)
		if !ok {
			return Budget{}, fmt.Errorf("planted: %w: %d", ErrUnknownItem, ref)
		}
		b.Planted[id] += qty
	}
	for ref, qty := range sc.Materials {
		id, ok := cat.ItemByRef(ref)
		if !ok {
			return Budget{}, fmt.Errorf("materials: %w: %d", ErrUnknownItem, ref)
		}
		b.Materials[id] += qty
	}
	return b, nil
}

// ── Area pair sweep ─────────────────────────────────────────────────

// AreaPairs lists every unordered pair of area indices, an area paired with itself
// included.
func AreaPairs(n int) [][2]int {
	var pairs [][2]int
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			pairs = append(pairs, [2]int{i, j})
		}
	}
	return pairs
}

// Sweep optimizes base with every area pair substituted for its areas. Runs proceed in
// parallel, up to cfg.Workers at a time, each one single-threaded with its own seed.
// Results are sorted best first.
func Sweep(ctx context.Context, cat *Catalog, base Scenario, cfg Config, log *zap.Logger) ([]Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	pairs := AreaPairs(len(cat.Areas))
	results := make([]Result, len(pairs))

	limit := cfg.Workers
	if limit < 1 {
		limit = 1
	}
	runCfg := cfg
	runCfg.Workers = 1

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, p := range pairs {
		sc := base
		sc.Areas = []string{cat.Areas[p[0]].Terrain, cat.Areas[p[1]].Terrain}
		pairCfg := runCfg
		pairCfg.Seed = cfg.Seed + uint64(i)
		g.Go(func() error {
			r, _, err := runScenario(gctx, cat, sc, pairCfg, log.With(zap.Strings("areas", sc.Areas)))
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	return results, nil
}
