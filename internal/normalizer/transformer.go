package normalizer

import (
	"math"

	"catalogo/internal/models"
)

// isoDate is the layout date-like columns are written with.
const isoDate = "2006-01-02"

// Transformer rewrites every cell according to its column class.
type Transformer struct {
	classes Classification
}

// NewTransformer creates a new transformer instance.
func NewTransformer(classes Classification) *Transformer {
	return &Transformer{classes: classes}
}

// Transform converts a table into a catalog with one record per row, in row order.
func (t *Transformer) Transform(table *models.Table) *models.Catalog {
	columns := append([]string(nil), table.Columns...)

	classes := make([]ColumnClass, len(columns))
	for i, col := range columns {
		classes[i] = t.classes.ClassOf(col)
	}

	catalog := &models.Catalog{
		Columns: columns,
		Records: make([]models.Record, 0, len(table.Rows)),
	}

	for _, row := range table.Rows {
		values := make([]any, len(columns))

		for i := range columns {
			cell := models.Missing()
			if i < len(row) {
				cell = row[i]
			}

			values[i] = t.NormalizeCell(classes[i], cell)
		}

		catalog.Records = append(catalog.Records, models.Record{Columns: columns, Values: values})
	}

	return catalog
}

// NormalizeCell applies the rule for class to a single cell.
// The result is nil, a string or a float64.
func (t *Transformer) NormalizeCell(class ColumnClass, cell models.Cell) any {
	switch class {
	case ClassDate:
		switch {
		case cell.IsMissing(), cell.IsNaN():
			return nil
		case cell.Kind == models.KindDate:
			return cell.Date.Format(isoDate)
		default:
			return cell.String()
		}

	case ClassText:
		if cell.IsMissing() || cell.IsNaN() {
			return ""
		}

		if v := passThrough(cell); v != nil {
			return v
		}

		return cell.String()

	default:
		if cell.IsMissing() {
			return nil
		}

		return passThrough(cell)
	}
}

// passThrough returns the cell's natural JSON value. Numbers JSON cannot carry
// (NaN, ±Inf) become nil; dates become their printable form.
func passThrough(cell models.Cell) any {
	switch cell.Kind {
	case models.KindNumber:
		if math.IsNaN(cell.Number) || math.IsInf(cell.Number, 0) {
			return nil
		}

		return cell.Number
	case models.KindText:
		return cell.Text
	case models.KindDate:
		return cell.String()
	default:
		return nil
	}
}
