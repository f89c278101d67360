// Package spreadsheet reads xlsx workbooks into typed tables.
package spreadsheet

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"catalogo/internal/logger"
	"catalogo/internal/models"
	"catalogo/pkg/utils"

	"github.com/xuri/excelize/v2"
)

// Reader errors.
var (
	ErrNoSheets      = errors.New("workbook contains no sheets")
	ErrSheetNotFound = errors.New("sheet not found")
	ErrEmptySheet    = errors.New("sheet has no header row")
)

// Reader loads the first (or a named) sheet of a workbook.
type Reader struct {
	log   *logger.Logger
	sheet string
}

// NewReader creates a reader. An empty sheet name selects the first sheet.
func NewReader(sheet string, log *logger.Logger) *Reader {
	return &Reader{sheet: sheet, log: log}
}

// Read opens path and returns its sheet as a table.
// The first row is the header; every data row is padded to the header width.
func (r *Reader) Read(path string) (*models.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}

	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			r.log.Warn("Failed to close workbook", "path", path, "error", closeErr)
		}
	}()

	sheet, err := r.resolveSheet(f)
	if err != nil {
		return nil, err
	}

	r.log.Debug("Reading sheet", "path", path, "sheet", sheet)

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read rows of %s: %w", sheet, err)
	}

	rows = trimTrailingEmpty(rows)
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptySheet, sheet)
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	table := &models.Table{Columns: headerNames(rows[0], width)}
	typer := newCellTyper(f, sheet)

	for i, raw := range rows[1:] {
		rowNum := i + 2 // 1-based, after the header

		cells := make([]models.Cell, len(raw))
		for col, value := range raw {
			cells[col] = typer.cell(col+1, rowNum, value)
		}

		table.AppendRow(cells)
	}

	r.log.Debug("Sheet loaded", "sheet", sheet, "columns", len(table.Columns), "rows", table.Len())

	return table, nil
}

func (r *Reader) resolveSheet(f *excelize.File) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", ErrNoSheets
	}

	if r.sheet == "" {
		return sheets[0], nil
	}

	for _, s := range sheets {
		if s == r.sheet {
			return s, nil
		}
	}

	return "", fmt.Errorf("%w: %q (available: %s)", ErrSheetNotFound, r.sheet, strings.Join(sheets, ", "))
}

// headerNames builds unique column names for the header row, extended to width.
// Blank names become "Unnamed: <index>"; repeated names get ".1", ".2" suffixes.
func headerNames(header []string, width int) []string {
	names := make([]string, width)
	seen := make(map[string]int, width)
	taken := make(map[string]bool, width)

	for i := 0; i < width; i++ {
		name := ""
		if i < len(header) {
			name = utils.NormalizeName(header[i])
		}

		if strings.TrimSpace(name) == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}

		base := name
		for taken[name] {
			seen[base]++
			name = base + "." + strconv.Itoa(seen[base])
		}

		taken[name] = true
		names[i] = name
	}

	return names
}

func trimTrailingEmpty(rows [][]string) [][]string {
	end := len(rows)
	for end > 0 && isEmptyRow(rows[end-1]) {
		end--
	}

	return rows[:end]
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if v != "" {
			return false
		}
	}

	return true
}

// cellTyper turns raw cell strings into typed cells using the cell type and number format.
type cellTyper struct {
	f          *excelize.File
	dateStyles map[int]bool
	sheet      string
	date1904   bool
}

func newCellTyper(f *excelize.File, sheet string) *cellTyper {
	t := &cellTyper{f: f, sheet: sheet, dateStyles: make(map[int]bool)}

	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		t.date1904 = *props.Date1904
	}

	return t
}

func (t *cellTyper) cell(col, row int, value string) models.Cell {
	if value == "" {
		return models.Missing()
	}

	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return models.Text(value)
	}

	cellType, err := t.f.GetCellType(t.sheet, axis)
	if err != nil {
		return models.Text(value)
	}

	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula, excelize.CellTypeError:
		return models.Text(value)
	case excelize.CellTypeBool:
		if value == "1" || strings.EqualFold(value, "true") {
			return models.Text("TRUE")
		}

		return models.Text("FALSE")
	case excelize.CellTypeDate:
		if ts, ok := parseISODate(value); ok {
			return models.Date(ts)
		}

		return models.Text(value)
	}

	num, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return models.Text(value)
	}

	if t.isDateFormatted(axis) {
		if ts, err := excelize.ExcelDateToTime(num, t.date1904); err == nil {
			return models.Date(ts)
		}
	}

	return models.Number(num)
}

func (t *cellTyper) isDateFormatted(axis string) bool {
	styleID, err := t.f.GetCellStyle(t.sheet, axis)
	if err != nil || styleID == 0 {
		return false
	}

	if isDate, ok := t.dateStyles[styleID]; ok {
		return isDate
	}

	isDate := false

	if style, err := t.f.GetStyle(styleID); err == nil && style != nil {
		if style.CustomNumFmt != nil && *style.CustomNumFmt != "" {
			isDate = IsDateFormatCode(*style.CustomNumFmt)
		} else {
			isDate = IsDateNumFmt(style.NumFmt)
		}
	}

	t.dateStyles[styleID] = isDate

	return isDate
}

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseISODate(value string) (time.Time, bool) {
	for _, layout := range isoLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, true
		}
	}

	return time.Time{}, false
}
