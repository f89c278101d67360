// Package converter runs the spreadsheet to JSON catalog conversion end to end.
package converter

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"catalogo/internal/catalog"
	"catalogo/internal/config"
	"catalogo/internal/logger"
	"catalogo/internal/models"
	"catalogo/internal/normalizer"
	"catalogo/internal/report"
	"catalogo/internal/spreadsheet"

	"github.com/google/uuid"
)

// ErrInputNotFound is returned before any processing when the spreadsheet is missing.
var ErrInputNotFound = errors.New("input spreadsheet not found")

// Result describes a completed run.
type Result struct {
	Catalog    *models.Catalog
	Summary    report.Summary
	RunID      string
	OutputPath string
	// BackupPath is empty when no previous output existed or backups are off.
	BackupPath string
	Checksum   string
	Duration   time.Duration
}

// Converter reads the spreadsheet, normalizes it and writes the catalog.
type Converter struct {
	cfg    *config.Config
	log    *logger.Logger
	writer *catalog.Writer
}

// New creates a converter for cfg.Catalog.
func New(cfg *config.Config, log *logger.Logger) *Converter {
	return &Converter{
		cfg:    cfg,
		log:    log,
		writer: catalog.NewWriter(cfg.Catalog.Backup, log),
	}
}

// WithWriter replaces the catalog writer.
func (c *Converter) WithWriter(w *catalog.Writer) *Converter {
	c.writer = w

	return c
}

// Run performs one conversion. The catalog is fully serialized in memory
// before the existing output is touched, so a failed run leaves it intact.
func (c *Converter) Run() (*Result, error) {
	cc := c.cfg.Catalog
	runID := uuid.NewString()
	log := c.log.With("run", runID)
	start := time.Now()

	if _, err := os.Stat(cc.Input); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, cc.Input)
		}

		return nil, fmt.Errorf("failed to stat input: %w", err)
	}

	log.Info("Reading spreadsheet", "input", cc.Input, "sheet", cc.Sheet)

	table, err := spreadsheet.NewReader(cc.Sheet, log).Read(cc.Input)
	if err != nil {
		return nil, fmt.Errorf("failed to read spreadsheet: %w", err)
	}

	log.Info("Spreadsheet read", "rows", table.Len(), "columns", len(table.Columns))

	classes := normalizer.NewClassification(cc.Columns.Text, cc.Columns.Date)

	result, err := normalizer.NewProcessor(classes).Process(table)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize catalog: %w", err)
	}

	data, err := catalog.Encode(result)
	if err != nil {
		return nil, err
	}

	written, err := c.writer.Write(cc.Output, data)
	if err != nil {
		return nil, err
	}

	if written.BackupPath != "" {
		log.Info("Previous catalog backed up", "backup", written.BackupPath)
	}

	summary := report.Summarize(result, report.Options{
		CountryColumn: cc.Report.CountryColumn,
		ValueColumn:   cc.Report.ValueColumn,
		TopCountries:  cc.Report.TopCountries,
	})

	duration := time.Since(start)

	log.Info("Catalog written", "output", written.Path, "records", result.Len(), "bytes", written.Bytes, "duration", duration)

	return &Result{
		Catalog:    result,
		Summary:    summary,
		RunID:      runID,
		OutputPath: written.Path,
		BackupPath: written.BackupPath,
		Checksum:   written.Checksum,
		Duration:   duration,
	}, nil
}
