package normalizer

import (
	"errors"
	"fmt"
	"math"
	"time"

	"catalogo/internal/models"
)

// Validation errors. Each one means the catalog broke a shape guarantee.
var (
	ErrNilTable          = errors.New("table is nil")
	ErrNilCatalog        = errors.New("catalog is nil")
	ErrRowCountMismatch  = errors.New("record count does not match row count")
	ErrMissingColumn     = errors.New("record is missing a source column")
	ErrUnserializable    = errors.New("record holds a value JSON cannot encode")
	ErrNullInTextColumn  = errors.New("text column holds null")
	ErrUnexpectedKeySize = errors.New("record has a different number of keys than the table")
)

// Validator checks a normalized catalog against the table it came from.
type Validator struct {
	classes Classification
}

// NewValidator creates a new validator instance.
func NewValidator(classes Classification) *Validator {
	return &Validator{classes: classes}
}

// Validate checks that catalog has one record per row of table, every record
// carries every column, and no value breaks its column's rule.
func (v *Validator) Validate(table *models.Table, catalog *models.Catalog) error {
	if table == nil {
		return ErrNilTable
	}

	if catalog == nil {
		return ErrNilCatalog
	}

	if catalog.Len() != table.Len() {
		return fmt.Errorf("%w: %d records for %d rows", ErrRowCountMismatch, catalog.Len(), table.Len())
	}

	for i, rec := range catalog.Records {
		if rec.Len() != len(table.Columns) {
			return fmt.Errorf("%w at record %d", ErrUnexpectedKeySize, i)
		}

		for _, col := range table.Columns {
			value, ok := rec.Get(col)
			if !ok {
				return fmt.Errorf("%w: %q at record %d", ErrMissingColumn, col, i)
			}

			if err := v.checkValue(col, value); err != nil {
				return fmt.Errorf("%w at record %d", err, i)
			}
		}
	}

	return nil
}

func (v *Validator) checkValue(column string, value any) error {
	switch val := value.(type) {
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return fmt.Errorf("%w: %q", ErrUnserializable, column)
		}
	case time.Time, *time.Time:
		return fmt.Errorf("%w: %q holds a native date", ErrUnserializable, column)
	case nil:
		if v.classes.ClassOf(column) == ClassText {
			return fmt.Errorf("%w: %q", ErrNullInTextColumn, column)
		}
	}

	return nil
}
