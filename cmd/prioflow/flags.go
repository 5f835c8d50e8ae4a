package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	ConfigPath    string
	Producers     int
	Consumers     int
	Capacity      int
	Items         int
	UrgentPercent int
	RatePerSec    float64
	Seed          int64
	MetricsPort   int
	LogLevel      string
	LogFormat     string
	ShowVersion   bool
	ShowHelp      bool
	Validate      bool
}

func parseFlags() (*CLIConfig, error) {
	cfg := &CLIConfig{}

	// Define flags with environment variable fallback
	flag.StringVar(&cfg.ConfigPath, "config",
		getEnv("PRIOFLOW_CONFIG", ""),
		"Path to configuration file, JSON or YAML (env: PRIOFLOW_CONFIG)")

	flag.IntVar(&cfg.Producers, "producers",
		getEnvInt("PRIOFLOW_PRODUCERS", 3),
		"Number of producer goroutines (env: PRIOFLOW_PRODUCERS)")

	flag.IntVar(&cfg.Consumers, "consumers",
		getEnvInt("PRIOFLOW_CONSUMERS", 2),
		"Number of consumer goroutines (env: PRIOFLOW_CONSUMERS)")

	flag.IntVar(&cfg.Capacity, "capacity",
		getEnvInt("PRIOFLOW_CAPACITY", 10),
		"Buffer capacity (env: PRIOFLOW_CAPACITY)")

	flag.IntVar(&cfg.Items, "items",
		getEnvInt("PRIOFLOW_ITEMS", 20),
		"Items generated per producer (env: PRIOFLOW_ITEMS)")

	flag.IntVar(&cfg.UrgentPercent, "urgent-percent",
		getEnvInt("PRIOFLOW_URGENT_PERCENT", 25),
		"Probability 0-100 that an item is urgent (env: PRIOFLOW_URGENT_PERCENT)")

	flag.Float64Var(&cfg.RatePerSec, "rate", 0,
		"Limit aggregate production to N items/sec, 0 to disable")

	flag.Int64Var(&cfg.Seed, "seed", 0,
		"Deterministic generation seed, 0 for time-based")

	flag.IntVar(&cfg.MetricsPort, "metrics-port",
		getEnvInt("PRIOFLOW_METRICS_PORT", 0),
		"Prometheus metrics port, 0 to disable (env: PRIOFLOW_METRICS_PORT)")

	flag.StringVar(&cfg.LogLevel, "log-level",
		getEnv("PRIOFLOW_LOG_LEVEL", "info"),
		"Log level: debug, info, warn, error (env: PRIOFLOW_LOG_LEVEL)")

	flag.StringVar(&cfg.LogFormat, "log-format",
		getEnv("PRIOFLOW_LOG_FORMAT", "text"),
		"Log format: json, text (env: PRIOFLOW_LOG_FORMAT)")

	flag.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	flag.BoolVar(&cfg.ShowVersion, "v", false, "Show version information")
	flag.BoolVar(&cfg.ShowHelp, "help", false, "Show help information")
	flag.BoolVar(&cfg.ShowHelp, "h", false, "Show help information")
	flag.BoolVar(&cfg.Validate, "validate", false, "Validate configuration and exit")

	// Custom usage
	flag.Usage = func() {
		printDetailedHelp()
	}

	flag.Parse()

	// Positional form for parity with the classic exercise:
	// prioflow <producers> <consumers> <capacity>
	if args := flag.Args(); len(args) > 0 {
		if len(args) != 3 {
			return nil, fmt.Errorf("expected 3 positional arguments (producers consumers capacity), got %d", len(args))
		}
		values := make([]int, 3)
		for i, arg := range args {
			n, err := strconv.Atoi(arg)
			if err != nil {
				return nil, fmt.Errorf("argument %q is not an integer", arg)
			}
			values[i] = n
		}
		cfg.Producers, cfg.Consumers, cfg.Capacity = values[0], values[1], values[2]
	}

	return cfg, nil
}

func validateFlags(cfg *CLIConfig) error {
	// Skip validation for special flags
	if cfg.ShowVersion || cfg.ShowHelp {
		return nil
	}

	// Validate config file exists when provided
	if cfg.ConfigPath != "" {
		if _, err := os.Stat(cfg.ConfigPath); err != nil {
			return fmt.Errorf("config file not found: %s", cfg.ConfigPath)
		}
	}

	// Validate log level
	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, strings.ToLower(cfg.LogLevel)) {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}

	// Validate log format
	validFormats := []string{"json", "text"}
	if !contains(validFormats, strings.ToLower(cfg.LogFormat)) {
		return fmt.Errorf("invalid log format: %s", cfg.LogFormat)
	}

	return nil
}

func printDetailedHelp() {
	_, _ = fmt.Fprintf(os.Stderr, `%s - Bounded priority buffer runner

Usage: %s [options] [<producers> <consumers> <capacity>]

Options:
`, appName, os.Args[0])
	flag.PrintDefaults()
	_, _ = fmt.Fprintf(os.Stderr, `
Examples:
  # Classic exercise shape: 3 producers, 2 consumers, capacity 10
  %s 3 2 10

  # Flag-driven with deterministic generation
  %s --producers=8 --consumers=8 --capacity=2 --seed=42

  # Run from a config file with Prometheus metrics
  %s --config=run.yaml --metrics-port=9090

  # Validate configuration only
  %s --config=run.json --validate

Version: %s
Build: %s
`, os.Args[0], os.Args[0], os.Args[0], os.Args[0], Version, BuildTime)
}

// Environment variable helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// Utility function to check if slice contains string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
