// Package main provides the converter command that turns the mineral spreadsheet into the JSON catalog.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"catalogo/internal/config"
	"catalogo/internal/converter"
	"catalogo/internal/logger"
	"catalogo/internal/report"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config (default: "+config.DefaultPath+" if present)")
	input := flag.String("input", "", "Path to the source spreadsheet (.xlsx)")
	output := flag.String("output", "", "Path to the JSON catalog to write")
	sheet := flag.String("sheet", "", "Sheet name (default: first sheet)")
	noBackup := flag.Bool("no-backup", false, "Do not back up the existing catalog")
	reportPath := flag.String("report", "", "Also write a markdown summary to this path")
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

	applyFlags(cfg, *input, *output, *sheet, *logLevel, *noBackup)

	if err := cfg.ValidateCatalog(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Invalid configuration: %v\n", err)
		flag.PrintDefaults()
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.Logging.Level)

	fmt.Println(strings.Repeat("-", 60))
	fmt.Println("CONVERSOR EXCEL -> JSON - CATALOGO DE MINERALES")
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("\n📂 Archivo Excel: %s\n", cfg.Catalog.Input)

	result, err := converter.New(cfg, log).Run()
	if err != nil {
		fail(cfg, err)
	}

	if result.BackupPath != "" {
		fmt.Printf("💾 Backup guardado como: %s\n", result.BackupPath)
	}

	fmt.Printf("✅ JSON generado: %s (%d minerales)\n\n", result.OutputPath, result.Catalog.Len())

	report.Render(os.Stdout, result.Summary)

	if *reportPath != "" {
		if err := os.WriteFile(*reportPath, []byte(report.Markdown(result.Summary)), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "⚠️  Could not write report: %v\n", err)
		} else {
			fmt.Printf("\n📝 Resumen guardado en: %s\n", *reportPath)
		}
	}

	fmt.Println()
	fmt.Println(strings.Repeat("-", 60))
	fmt.Println("CONVERSION COMPLETADA EXITOSAMENTE")
	fmt.Println(strings.Repeat("-", 60))
}

func applyFlags(cfg *config.Config, input, output, sheet, logLevel string, noBackup bool) {
	if input != "" {
		cfg.Catalog.Input = input
	}

	if output != "" {
		cfg.Catalog.Output = output
	}

	if sheet != "" {
		cfg.Catalog.Sheet = sheet
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	if noBackup {
		cfg.Catalog.Backup = false
	}
}

func fail(cfg *config.Config, err error) {
	if errors.Is(err, converter.ErrInputNotFound) {
		fmt.Fprintf(os.Stderr, "❌ No se encuentra el archivo '%s'\n", cfg.Catalog.Input)
		fmt.Fprintln(os.Stderr, "   Asegurate de que el archivo este en la carpeta indicada o usa -input.")
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "\n❌ Error durante la conversion:\n   %v\n", err)
	fmt.Fprintln(os.Stderr, "\nSugerencias:")
	fmt.Fprintln(os.Stderr, "   - Verifica que el archivo Excel no este abierto en otra aplicacion")
	fmt.Fprintln(os.Stderr, "   - Revisa que el formato del Excel sea correcto")
	os.Exit(1)
}
