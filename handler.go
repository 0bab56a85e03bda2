package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// maxRequestTime bounds a single remote optimization.
const maxRequestTime = 30 * time.Second

// Upper bounds on the sizes a remote caller may ask for.
const (
	maxRequestPopulation  = 2000
	maxRequestGenerations = 10000
	maxRequestWorkshops   = 8
	maxRequestMaxTrials   = 1_000_000
)

type optimizeRequest struct {
	Scenario Scenario         `json:"scenario"`
	Config   *configOverrides `json:"config,omitempty"`
}

// configOverrides are the knobs a remote caller may change.
type configOverrides struct {
	Mode          *string `json:"mode,omitempty"`
	Scoring       *string `json:"scoring,omitempty"`
	Seed          *uint64 `json:"seed,omitempty"`
	Workshops     *int    `json:"workshops,omitempty"`
	NoImprovement *int    `json:"noImprovement,omitempty"`
	MaxTrials     *int    `json:"maxTrials,omitempty"`
	Population    *int    `json:"population,omitempty"`
	Generations   *int    `json:"generations,omitempty"`
	TimeLimitMs   *int64  `json:"timeLimitMs,omitempty"`
}

func (o *configOverrides) apply(cfg *Config) {
	if o == nil {
		return
	}
	if o.Mode != nil {
		cfg.Mode = *o.Mode
	}
	if o.Scoring != nil {
		cfg.Scoring = *o.Scoring
	}
	if o.Seed != nil {
		cfg.Seed = *o.Seed
	}
	if o.Workshops != nil {
		cfg.Workshops = *o.Workshops
	}
	if o.NoImprovement != nil {
		cfg.NoImprovement = *o.NoImprovement
	}
	if o.MaxTrials != nil {
		cfg.MaxTrials = *o.MaxTrials
	}
	if o.Population != nil {
		cfg.Population = *o.Population
	}
	if o.Generations != nil {
		cfg.Generations = *o.Generations
	}
	if o.TimeLimitMs != nil {
		cfg.TimeLimit = time.Duration(*o.TimeLimitMs) * time.Millisecond
	}
}

// checkLimits rejects request overrides above the remote size caps.
func (o *configOverrides) checkLimits() error {
	if o == nil {
		return nil
	}
	limits := []struct {
		name string
		v    *int
		max  int
	}{
		{"population", o.Population, maxRequestPopulation},
		{"generations", o.Generations, maxRequestGenerations},
		{"workshops", o.Workshops, maxRequestWorkshops},
		{"maxTrials", o.MaxTrials, maxRequestMaxTrials},
	}
	for _, l := range limits {
		if l.v != nil && *l.v > l.max {
			return fmt.Errorf("%w: %s must be at most %d (got %d)", ErrInvalidConfig, l.name, l.max, *l.v)
		}
	}
	return nil
}

type optimizeResponse struct {
	Result
	Detail string `json:"detail"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleOptimize runs one request body against the loaded catalog and returns the HTTP
// status with the value to encode. Shared by the HTTP server and the Lambda handler.
func handleOptimize(ctx context.Context, cat *Catalog, base Config, log *zap.Logger, body []byte) (int, any) {
	var req optimizeRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return http.StatusBadRequest, errorResponse{"invalid JSON: " + err.Error()}
	}

	if err := req.Config.checkLimits(); err != nil {
		return http.StatusBadRequest, errorResponse{err.Error()}
	}
	cfg := base
	req.Config.apply(&cfg)
	if cfg.TimeLimit <= 0 || cfg.TimeLimit > maxRequestTime {
		cfg.TimeLimit = maxRequestTime
	}
	if err := cfg.Validate(); err != nil {
		return http.StatusBadRequest, errorResponse{err.Error()}
	}

	r, best, err := runScenario(ctx, cat, req.Scenario, cfg, log)
	if err != nil {
		if errors.Is(err, ErrUnknownArea) || errors.Is(err, ErrUnknownItem) {
			return http.StatusBadRequest, errorResponse{err.Error()}
		}
		log.Error("optimize failed", zap.Error(err))
		return http.StatusInternalServerError, errorResponse{"internal error"}
	}
	return http.StatusOK, optimizeResponse{Result: r, Detail: FormatResult(cat, best)}
}
