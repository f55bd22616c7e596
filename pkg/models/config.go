package models

import "runtime"

// DefaultTrials is the per-cell trial budget; at 100,000 trials the 95%
// confidence half-width near p=0.5 is about 0.3%.
const DefaultTrials = 100000

// Config holds the generator configuration
type Config struct {
	// Number of Monte Carlo trials per hand class per table size
	Trials int

	// JSON artifact output path
	OutputFile string

	// Number of parallel simulation workers
	Workers int

	// Regenerate even when a matching artifact already exists
	Force bool

	// Print summary statistics after generation
	Summary bool

	// Enable verbose logging
	Verbose bool

	// Disable the terminal progress bar
	NoProgress bool

	// Web server port for the artifact server
	Port string

	// Show help
	Help bool
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	workers := runtime.NumCPU() - 1
	if workers < 1 {
		workers = 1
	}
	return &Config{
		Trials:     DefaultTrials,
		OutputFile: "equity_data.json",
		Workers:    workers,
		Force:      false,
		Summary:    false,
		Verbose:    false,
		NoProgress: false,
		Port:       "3000",
		Help:       false,
	}
}
