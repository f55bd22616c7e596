package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/pokerlab/equitysim/internal/simulation"
	"github.com/pokerlab/equitysim/pkg/models"
	"github.com/pterm/pterm"
)

func main() {
	config := parseFlags()

	if config.Help {
		flag.Usage()
		return
	}

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	// Artifact path from environment if not set by flag
	if config.OutputFile == "" {
		config.OutputFile = os.Getenv("EQUITY_OUTPUT")
		if config.OutputFile == "" {
			config.OutputFile = models.DefaultConfig().OutputFile
		}
	}

	if config.Trials <= 0 {
		log.Fatalf("Trial count must be positive, got %d", config.Trials)
	}

	// Reuse an existing artifact when its trial count matches, unless a
	// regeneration is forced.
	if !config.Force {
		if artifact, err := simulation.LoadArtifact(config.OutputFile); err == nil {
			if artifact.Metadata.NumSimulations == config.Trials {
				log.Printf("Using cached artifact %s (generated %s, %d simulations per cell)",
					config.OutputFile, artifact.Metadata.GeneratedAt, artifact.Metadata.NumSimulations)
				if config.Summary {
					simulation.PrintSummary(artifact)
				}
				return
			}
			log.Printf("Artifact exists with %d simulations per cell, requested %d; regenerating",
				artifact.Metadata.NumSimulations, config.Trials)
		}
	}

	runGeneration(config)
}

func parseFlags() *models.Config {
	config := models.DefaultConfig()
	config.OutputFile = "" // resolved after env loading

	flag.IntVar(&config.Trials, "sims", config.Trials, "Number of simulations per hand per table size")
	flag.IntVar(&config.Trials, "s", config.Trials, "Number of simulations per hand per table size (shorthand)")
	flag.StringVar(&config.OutputFile, "output", config.OutputFile, "JSON artifact output path")
	flag.StringVar(&config.OutputFile, "o", config.OutputFile, "JSON artifact output path (shorthand)")
	flag.IntVar(&config.Workers, "workers", config.Workers, "Number of parallel simulation workers")
	flag.IntVar(&config.Workers, "w", config.Workers, "Number of parallel simulation workers (shorthand)")
	flag.BoolVar(&config.Force, "force", config.Force, "Regenerate even if a matching artifact exists")
	flag.BoolVar(&config.Force, "f", config.Force, "Regenerate even if a matching artifact exists (shorthand)")
	flag.BoolVar(&config.Summary, "summary", config.Summary, "Print summary statistics after generation")
	flag.BoolVar(&config.Verbose, "verbose", config.Verbose, "Enable verbose logging")
	flag.BoolVar(&config.Verbose, "v", config.Verbose, "Enable verbose logging (shorthand)")
	flag.BoolVar(&config.NoProgress, "no-progress", config.NoProgress, "Disable the terminal progress bar")
	flag.BoolVar(&config.Help, "help", config.Help, "Show help information")
	flag.BoolVar(&config.Help, "h", config.Help, "Show help information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Equitysim - Pre-flop Equity Data Generator\n\n")
		fmt.Fprintf(os.Stderr, "Simulates all 169 starting hands against 1-5 random opponents and\n")
		fmt.Fprintf(os.Stderr, "writes the equity artifact consumed by the presentation layer.\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                # 100k trials per cell, default output\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -s 10000 -o quick.json         # quick low-precision run\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -f --summary                   # force regeneration, print summary\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -w 4 --verbose                 # 4 workers with progress logging\n", os.Args[0])
	}

	flag.Parse()
	return config
}

func runGeneration(config *models.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := simulation.NewManager(ctx, config)

	// Channel to listen for interrupt signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stop
		log.Println("Interrupt received. Stopping generation...")
		manager.Stop()
	}()

	log.Printf("Starting generation: %d simulations per hand per table size -> %s",
		config.Trials, config.OutputFile)

	rs, err := manager.Run()
	if err != nil {
		log.Fatalf("Generation failed: %v", err)
	}

	exporter := simulation.NewJSONExporter(config.OutputFile)
	if err := exporter.Export(rs); err != nil {
		log.Fatalf("Export failed: %v", err)
	}

	pterm.Success.Printfln("Artifact written to %s (%d cells, %d total simulations)",
		config.OutputFile, len(rs.Hands)*models.NumTableSizes, rs.TotalTrials())

	if config.Summary {
		simulation.PrintSummary(simulation.BuildArtifact(rs))
	}
}
