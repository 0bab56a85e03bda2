package main

import (
	"context"
	"math"
	"math/rand/v2"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ── Optimizer ───────────────────────────────────────────────────────

// SearchStats counts the work done by one Optimize call.
type SearchStats struct {
	Trials      int
	Generations int
}

// Progress is handed to Optimizer.OnProgress after every restart trial and after every
// generation.
type Progress struct {
	Worker     int
	Trial      int
	Generation int
	Score      int // score of the candidate just built (restart) or generation best (evolve)
	Best       int // best score seen so far by this worker
}

// Optimizer searches for a high-scoring week within one starting budget.
type Optimizer struct {
	catalog *Catalog
	start   *Ledger // never mutated; every trial works on a clone
	cfg     Config
	maxDays int
	pool    []*Recipe
	rng     *rand.Rand
	log     *zap.Logger

	// OnProgress, when set, observes the run. With Workers > 1 it is called from several
	// goroutines at once.
	OnProgress func(Progress)
}

// NewOptimizer creates an optimizer for the given catalog and starting ledger.
func NewOptimizer(cat *Catalog, start *Ledger, cfg Config, log *zap.Logger) *Optimizer {
	if log == nil {
		log = zap.NewNop()
	}
	o := &Optimizer{
		catalog: cat,
		start:   start,
		cfg:     cfg,
		maxDays: cfg.MaxDays(),
		rng:     newRand(cfg.Seed, 0),
		log:     log,
	}
	o.buildPool()
	return o
}

func newRand(seed uint64, stream int) *rand.Rand {
	return rand.New(rand.NewPCG(seed, uint64(stream)))
}

// buildPool keeps the recipes that can be crafted at least once from the starting budget.
func (o *Optimizer) buildPool() {
	o.pool = o.pool[:0]
	for i := range o.catalog.Recipes {
		r := &o.catalog.Recipes[i]
		if r.Duration <= 0 || r.Duration > DayHours {
			continue
		}
		if o.start.CanAfford(r) {
			o.pool = append(o.pool, r)
		}
	}
}

// Pool returns the recipes the search draws from.
func (o *Optimizer) Pool() []*Recipe { return o.pool }

// fork returns an optimizer sharing the read-only inputs with its own random stream.
func (o *Optimizer) fork(worker int) *Optimizer {
	return &Optimizer{
		catalog:    o.catalog,
		start:      o.start,
		cfg:        o.cfg,
		maxDays:    o.maxDays,
		pool:       o.pool,
		rng:        newRand(o.cfg.Seed, worker),
		log:        o.log.With(zap.Int("worker", worker)),
		OnProgress: o.OnProgress,
	}
}

func (o *Optimizer) score(w *WeekSchedule) int {
	if o.cfg.Scoring == ScoreValue {
		return w.TotalValue()
	}
	return w.RankingScore()
}

func (o *Optimizer) emptyCandidate() Candidate {
	w := NewWeekSchedule(o.maxDays)
	return Candidate{Week: w, Score: o.score(w)}
}

func (o *Optimizer) report(p Progress) {
	if o.OnProgress != nil {
		o.OnProgress(p)
	}
}

// ── Construction ────────────────────────────────────────────────────

// GenerateCandidate builds one week by random greedy construction: keep drawing random
// pool recipes, committing those that are affordable and fit, until AttemptBudget draws
// in a row fail. Every day is then put into its best order.
func (o *Optimizer) GenerateCandidate() Candidate {
	week := NewWeekSchedule(o.maxDays)
	if len(o.pool) == 0 || o.maxDays == 0 {
		return Candidate{Week: week, Score: o.score(week)}
	}
	ledger := o.start.Clone()
	for attempts := 0; attempts < o.cfg.AttemptBudget; {
		r := o.pool[o.rng.IntN(len(o.pool))]
		if ledger.CanAfford(r) && week.CanAdd(r) {
			week.Add(r)
			ledger.Consume(r)
			attempts = 0
			continue
		}
		attempts++
	}
	for _, d := range week.days {
		d.BestOrdering()
	}
	return Candidate{Week: week, Score: o.score(week)}
}

// ── Repeated restart ────────────────────────────────────────────────

// restart generates independent candidates until NoImprovement of them in a row fail to
// beat the best, MaxTrials is reached or ctx is done.
func (o *Optimizer) restart(ctx context.Context, worker int) (Candidate, SearchStats) {
	var best Candidate
	var stats SearchStats
	misses := 0
	for ctx.Err() == nil {
		if o.cfg.MaxTrials > 0 && stats.Trials >= o.cfg.MaxTrials {
			break
		}
		c := o.GenerateCandidate()
		stats.Trials++
		if best.Week == nil || c.Score > best.Score {
			best = c
			misses = 0
			o.log.Debug("improved", zap.Int("trial", stats.Trials), zap.Int("score", c.Score))
		} else {
			misses++
		}
		o.report(Progress{Worker: worker, Trial: stats.Trials, Score: c.Score, Best: best.Score})
		if misses >= o.cfg.NoImprovement || len(o.pool) == 0 {
			break
		}
	}
	return best, stats
}

// parallelRestart runs Workers independent restart streams and keeps the best result.
// Ties go to the lowest worker index so a seeded run is reproducible.
func (o *Optimizer) parallelRestart(ctx context.Context) (Candidate, SearchStats) {
	n := o.cfg.Workers
	results := make([]Candidate, n)
	stats := make([]SearchStats, n)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < n; w++ {
		worker := o.fork(w)
		g.Go(func() error {
			results[w], stats[w] = worker.restart(gctx, w)
			return nil
		})
	}
	_ = g.Wait()

	var best Candidate
	var total SearchStats
	for w := 0; w < n; w++ {
		total.Trials += stats[w].Trials
		if results[w].Week == nil {
			continue
		}
		if best.Week == nil || results[w].Score > best.Score {
			best = results[w]
		}
	}
	return best, total
}

// ── Evolution ───────────────────────────────────────────────────────

func (o *Optimizer) evolve(ctx context.Context) (Candidate, SearchStats) {
	var stats SearchStats
	size := o.cfg.Population
	if size == 0 || len(o.pool) == 0 {
		return o.emptyCandidate(), stats
	}

	var pop []Candidate
	for len(pop) < size && ctx.Err() == nil {
		pop = append(pop, o.GenerateCandidate())
	}
	if len(pop) == 0 {
		return o.emptyCandidate(), stats
	}
	best := bestCandidate(pop)
	o.log.Debug("initial population", zap.Int("size", len(pop)), zap.Int("best", best.Score))

	perPair := o.cfg.OffspringPerPair
	if perPair < 1 {
		perPair = 1
	}

	for gen := 0; gen < o.cfg.Generations && ctx.Err() == nil; gen++ {
		parents := o.selectParents(pop)
		next := make([]Candidate, 0, len(pop))
		for len(next) < size {
			p1 := parents[o.rng.IntN(len(parents))]
			p2 := parents[o.rng.IntN(len(parents))]
			for k := 0; k < perPair && len(next) < size; k++ {
				next = append(next, o.breed(p1, p2))
			}
		}
		pop = next
		stats.Generations++

		genBest := bestCandidate(pop)
		if genBest.Score > best.Score {
			best = genBest
			o.log.Debug("improved", zap.Int("generation", gen+1), zap.Int("score", best.Score))
		}
		o.report(Progress{Generation: gen + 1, Score: genBest.Score, Best: best.Score})
	}
	return best, stats
}

// selectParents sorts pop best first and returns the elite fraction plus a random sample
// of the rest. At least one parent is always returned.
func (o *Optimizer) selectParents(pop []Candidate) []Candidate {
	sort.SliceStable(pop, func(i, j int) bool { return pop[i].Score > pop[j].Score })

	elite := int(math.Ceil(float64(len(pop)) * o.cfg.EliteFraction))
	if elite < 1 {
		elite = 1
	}
	if elite > len(pop) {
		elite = len(pop)
	}
	parents := make([]Candidate, 0, len(pop))
	parents = append(parents, pop[:elite]...)

	rest := pop[elite:]
	lucky := int(float64(len(rest)) * o.cfg.LuckyFraction)
	for _, i := range o.rng.Perm(len(rest))[:lucky] {
		parents = append(parents, rest[i])
	}
	return parents
}

// breed crosses two parents day by day, keeps the days the budget can still pay for, and
// applies random single-slot mutations.
func (o *Optimizer) breed(p1, p2 Candidate) Candidate {
	n := len(p1.Week.days)
	if m := len(p2.Week.days); m > n {
		n = m
	}
	picked := make([]*DaySchedule, 0, n)
	for i := 0; i < n; i++ {
		src := p1.Week
		if o.rng.IntN(2) == 1 {
			src = p2.Week
		}
		if i < len(src.days) {
			picked = append(picked, src.days[i])
		}
	}
	o.rng.Shuffle(len(picked), func(i, j int) { picked[i], picked[j] = picked[j], picked[i] })

	ledger := o.start.Clone()
	child := NewWeekSchedule(o.maxDays)
	for _, d := range picked {
		if !ledger.CanAffordDay(d) {
			continue
		}
		day := d.Clone()
		if !child.AddDay(day) {
			break
		}
		ledger.ConsumeDay(day)
	}

	o.mutate(child, ledger)
	return Candidate{Week: child, Score: o.score(child)}
}

// mutate tries MutationAttempts random slot replacements on w. ledger must hold the
// budget left after paying for w; it stays consistent with w throughout.
func (o *Optimizer) mutate(w *WeekSchedule, ledger *Ledger) {
	var touched []*DaySchedule
	for a := 0; a < o.cfg.MutationAttempts; a++ {
		if len(w.days) == 0 || len(o.pool) == 0 {
			break
		}
		d := w.days[o.rng.IntN(len(w.days))]
		if d.Len() == 0 {
			continue
		}
		slot := o.rng.IntN(d.Len())
		repl := o.pool[o.rng.IntN(len(o.pool))]
		if !d.CanReplace(slot, repl) {
			continue
		}
		old := d.content[slot]
		ledger.Refund(old)
		if !ledger.CanAfford(repl) {
			ledger.Consume(old)
			continue
		}
		ledger.Consume(repl)
		d.Replace(slot, repl)
		touched = appendUnique(touched, d)
	}
	for _, d := range touched {
		d.BestOrdering()
	}
}

func appendUnique(days []*DaySchedule, d *DaySchedule) []*DaySchedule {
	for _, x := range days {
		if x == d {
			return days
		}
	}
	return append(days, d)
}

func bestCandidate(cs []Candidate) Candidate {
	best := cs[0]
	for _, c := range cs[1:] {
		if c.Score > best.Score {
			best = c
		}
	}
	return best
}

// ── Main entry point ────────────────────────────────────────────────

// Optimize runs the configured search and returns the best candidate found. Hitting
// TimeLimit or cancelling ctx ends the search early; the best so far is still returned.
func (o *Optimizer) Optimize(ctx context.Context) (Candidate, SearchStats) {
	start := time.Now()
	if o.cfg.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.cfg.TimeLimit)
		defer cancel()
	}

	o.log.Info("search started",
		zap.String("mode", o.cfg.Mode),
		zap.Int("pool", len(o.pool)),
		zap.Int("maxDays", o.maxDays),
		zap.Uint64("seed", o.cfg.Seed))

	if o.cfg.Mode == ModeEvolve && o.cfg.Workers > 1 {
		o.log.Info("evolve runs single-threaded, workers ignored", zap.Int("workers", o.cfg.Workers))
	}

	var best Candidate
	var stats SearchStats
	switch {
	case o.cfg.Mode == ModeEvolve:
		best, stats = o.evolve(ctx)
	case o.cfg.Workers > 1:
		best, stats = o.parallelRestart(ctx)
	default:
		best, stats = o.restart(ctx, 0)
	}
	if best.Week == nil {
		best = o.emptyCandidate()
	}

	o.log.Info("search done",
		zap.Int("best", best.Score),
		zap.Int("value", best.Week.TotalValue()),
		zap.Int("trials", stats.Trials),
		zap.Int("generations", stats.Generations),
		zap.Duration("elapsed", time.Since(start)))
	return best, stats
}
