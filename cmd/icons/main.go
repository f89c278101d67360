// Package main provides the icons command that renders the catalog site icon set.
package main

import (
	"flag"
	"fmt"
	"os"

	"catalogo/internal/config"
	"catalogo/internal/icons"
	"catalogo/internal/logger"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config (default: "+config.DefaultPath+" if present)")
	source := flag.String("source", "", "Source image (PNG, JPEG or GIF)")
	outputDir := flag.String("output", "", "Directory for the generated icons")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	flag.Parse()

	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "⚠️  %v\n", err)
	}

	cfg, err := config.Resolve(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Error loading config: %v\n", err)
		os.Exit(1)
	}

	if *source != "" {
		cfg.Icons.Source = *source
	}

	if *outputDir != "" {
		cfg.Icons.OutputDir = *outputDir
	}

	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	if err := cfg.ValidateIcons(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Invalid configuration: %v\n", err)
		flag.PrintDefaults()
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.Logging.Level)

	fmt.Printf("🖼️  Source: %s\n", cfg.Icons.Source)

	gen := icons.NewGenerator(icons.Squares(cfg.Icons.Sizes), cfg.Icons.IcoSize, log)

	paths, err := gen.Generate(cfg.Icons.Source, cfg.Icons.OutputDir)
	for _, p := range paths {
		fmt.Printf("✅ Generated: %s\n", p)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Error processing image: %v\n", err)
		os.Exit(1)
	}
}
