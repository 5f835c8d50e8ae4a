// PrioFlow runs a bounded priority buffer between producer and consumer
// goroutines and reports latency and throughput for the completed run.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/c360/prioflow/config"
	"github.com/c360/prioflow/metric"
	"github.com/c360/prioflow/pipeline"
)

const appName = "prioflow"

// Version information (set by build flags)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Recover from panics to ensure clean shutdown
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "PANIC: %v\n%s\n", r, debug.Stack())
			os.Exit(2)
		}
	}()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cliCfg, err := parseFlags()
	if err != nil {
		return err
	}

	if cliCfg.ShowVersion {
		fmt.Printf("%s %s (built %s)\n", appName, Version, BuildTime)
		return nil
	}
	if cliCfg.ShowHelp {
		printDetailedHelp()
		return nil
	}

	if err := validateFlags(cliCfg); err != nil {
		return err
	}

	logger := setupLogger(cliCfg)
	slog.SetDefault(logger)

	cfg, err := resolveConfig(cliCfg)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cliCfg.Validate {
		logger.Info("configuration valid",
			"producers", cfg.Producers,
			"consumers", cfg.Consumers,
			"capacity", cfg.Capacity)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var registry *metric.MetricsRegistry
	if cfg.MetricsPort > 0 {
		registry = metric.NewMetricsRegistry()
		server := metric.NewServer(cfg.MetricsPort, "/metrics", registry)
		go func() {
			if err := server.Start(); err != nil {
				logger.Error("metrics server failed", "error", err)
			}
		}()
		defer func() {
			if err := server.Stop(); err != nil {
				logger.Warn("metrics server shutdown", "error", err)
			}
		}()
		logger.Info("metrics server listening", "address", server.Address())
	}

	opts := []pipeline.Option{
		pipeline.WithLogger(logger),
		pipeline.WithItemsPerProducer(cfg.ItemsPerProducer),
		pipeline.WithUrgentPercent(cfg.UrgentPercent),
	}
	if registry != nil {
		opts = append(opts, pipeline.WithMetricsRegistry(registry))
	}
	if cfg.RatePerSec > 0 {
		opts = append(opts, pipeline.WithRate(cfg.RatePerSec))
	}
	if cfg.Seed != 0 {
		opts = append(opts, pipeline.WithSeed(cfg.Seed))
	}

	p, err := pipeline.New(cfg.Producers, cfg.Consumers, cfg.Capacity, opts...)
	if err != nil {
		return err
	}

	logger.Info("starting run",
		"producers", cfg.Producers,
		"consumers", cfg.Consumers,
		"capacity", cfg.Capacity,
		"items_per_producer", cfg.ItemsPerProducer,
		"urgent_percent", cfg.UrgentPercent)

	report, err := p.Run(ctx)
	if err != nil {
		return err
	}

	printReport(cfg, report)
	return nil
}

// resolveConfig merges the optional config file with CLI flags. Flags set
// explicitly on the command line override file values.
func resolveConfig(cliCfg *CLIConfig) (*config.Config, error) {
	cfg := config.Default()

	if cliCfg.ConfigPath != "" {
		loaded, err := config.NewLoader().LoadFile(cliCfg.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	explicit := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	// Positional arguments count as explicit worker/capacity settings.
	positional := flag.NArg() == 3

	if explicit["producers"] || positional || cliCfg.ConfigPath == "" {
		cfg.Producers = cliCfg.Producers
	}
	if explicit["consumers"] || positional || cliCfg.ConfigPath == "" {
		cfg.Consumers = cliCfg.Consumers
	}
	if explicit["capacity"] || positional || cliCfg.ConfigPath == "" {
		cfg.Capacity = cliCfg.Capacity
	}
	if explicit["items"] || cliCfg.ConfigPath == "" {
		cfg.ItemsPerProducer = cliCfg.Items
	}
	if explicit["urgent-percent"] || cliCfg.ConfigPath == "" {
		cfg.UrgentPercent = cliCfg.UrgentPercent
	}
	if explicit["rate"] {
		cfg.RatePerSec = cliCfg.RatePerSec
	}
	if explicit["seed"] {
		cfg.Seed = cliCfg.Seed
	}
	if explicit["metrics-port"] || cliCfg.ConfigPath == "" {
		cfg.MetricsPort = cliCfg.MetricsPort
	}

	return cfg, nil
}

// printReport writes the human-readable summary of a completed run.
func printReport(cfg *config.Config, r pipeline.Report) {
	fmt.Println()
	fmt.Println("========== Performance Metrics ==========")
	fmt.Printf("Producers:          %d\n", cfg.Producers)
	fmt.Printf("Consumers:          %d\n", cfg.Consumers)
	fmt.Printf("Buffer capacity:    %d\n", cfg.Capacity)
	fmt.Printf("Items produced:     %d\n", r.Produced)
	fmt.Printf("Items consumed:     %d\n", r.Consumed)
	fmt.Printf("Sentinels drained:  %d\n", r.Sentinels)
	fmt.Printf("Peak occupancy:     %d\n", r.MaxOccupancy)
	fmt.Printf("Elapsed:            %s\n", r.Elapsed.Round(time.Microsecond))
	fmt.Printf("Avg latency:        %s\n", r.AverageLatency.Round(time.Microsecond))
	fmt.Printf("Min latency:        %s\n", r.MinLatency.Round(time.Microsecond))
	fmt.Printf("Max latency:        %s\n", r.MaxLatency.Round(time.Microsecond))
	fmt.Printf("Throughput:         %.2f items/sec\n", r.Throughput)
	fmt.Println("==========================================")
}
