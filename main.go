//go:build !lambda

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	verbose      bool
	jsonOut      bool
	dataPath     string
	configPath   string
	scenarioPath string
	areaNames    []string
	leavings     int
	modeFlag     string
	seedFlag     uint64

	cfg    Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "island-solver",
	Short: "Weekly workshop schedule optimizer for island sanctuary handicrafts",
	Long: `island-solver searches for a high-value week of workshop handicrafts that fits a
weekly resource budget. Consecutive handicrafts sharing a category earn double value.

The catalog data file lists items, starters, expedition areas and recipes.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = LoadConfig(configPath)
		if err != nil {
			return err
		}
		if modeFlag != "" {
			cfg.Mode = modeFlag
		}
		if cmd.Flags().Changed("seed") {
			cfg.Seed = seedFlag
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		logger, err = newLogger(cfg.Log.Level, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Optimize one scenario",
	RunE:  runOptimize,
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Optimize every expedition area pair and rank them",
	RunE:  runSweep,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve POST /optimize over HTTP",
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "data/island.json", "Catalog data file")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&modeFlag, "mode", "", "Search mode: restart or evolve")
	rootCmd.PersistentFlags().Uint64Var(&seedFlag, "seed", 1, "Random seed")

	for _, c := range []*cobra.Command{optimizeCmd, sweepCmd} {
		c.Flags().BoolVar(&jsonOut, "json", false, "Output results as JSON")
		c.Flags().StringVar(&scenarioPath, "scenario", "", "Scenario JSON file")
		c.Flags().IntVar(&leavings, "leavings", 0, "Weekly leavings (ignored with --scenario)")
	}
	optimizeCmd.Flags().StringSliceVar(&areaNames, "areas", nil, "Expedition areas (ignored with --scenario)")

	rootCmd.AddCommand(optimizeCmd, sweepCmd, serveCmd)
}

func loadScenario() (Scenario, error) {
	if scenarioPath == "" {
		return Scenario{Areas: areaNames, Leavings: leavings}, nil
	}
	raw, err := os.ReadFile(scenarioPath)
	if err != nil {
		return Scenario{}, fmt.Errorf("read %s: %w", scenarioPath, err)
	}
	sc, err := ParseScenario(string(raw))
	if err != nil {
		return Scenario{}, fmt.Errorf("scenario %s: %w", scenarioPath, err)
	}
	return sc, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runOptimize(cmd *cobra.Command, _ []string) error {
	cat, err := LoadCatalogFile(dataPath)
	if err != nil {
		return err
	}
	sc, err := loadScenario()
	if err != nil {
		return err
	}
	logger.Info("catalog loaded",
		zap.Int("items", len(cat.Items)),
		zap.Int("recipes", len(cat.Recipes)),
		zap.Int("areas", len(cat.Areas)))

	ctx, stop := signalContext()
	defer stop()
	r, best, err := runScenario(ctx, cat, sc, cfg, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
	fmt.Fprintf(out, "Run %s (%s, seed=%d)\n", r.RunID, r.Mode, cfg.Seed)
	fmt.Fprint(out, FormatResult(cat, best))
	return nil
}

func runSweep(cmd *cobra.Command, _ []string) error {
	cat, err := LoadCatalogFile(dataPath)
	if err != nil {
		return err
	}
	base, err := loadScenario()
	if err != nil {
		return err
	}
	ctx, stop := signalContext()
	defer stop()

	start := time.Now()
	results, err := Sweep(ctx, cat, base, cfg, logger)
	if err != nil {
		return err
	}
	logger.Info("sweep done", zap.Int("pairs", len(results)), zap.Duration("elapsed", time.Since(start)))

	out := cmd.OutOrStdout()
	if jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	fmt.Fprint(out, printTable(results))
	return nil
}

func runServe(_ *cobra.Command, _ []string) error {
	cat, err := LoadCatalogFile(dataPath)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           NewRouter(cat, cfg, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signalContext()
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
