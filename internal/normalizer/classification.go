// Package normalizer rewrites raw sheet cells into JSON-ready catalog values.
package normalizer

import "catalogo/pkg/utils"

// ColumnClass selects the rewrite rule applied to a column's cells.
type ColumnClass int

// Column classes.
const (
	ClassGeneral ColumnClass = iota
	ClassText
	ClassDate
)

// String returns the class name.
func (c ColumnClass) String() string {
	switch c {
	case ClassText:
		return "text"
	case ClassDate:
		return "date"
	default:
		return "general"
	}
}

// Classification maps column names to classes. Names are compared in NFC form.
type Classification struct {
	text map[string]bool
	date map[string]bool
}

// NewClassification builds a classification from text-like and date-like column names.
func NewClassification(text, date []string) Classification {
	c := Classification{
		text: make(map[string]bool, len(text)),
		date: make(map[string]bool, len(date)),
	}

	for _, name := range text {
		c.text[utils.NormalizeName(name)] = true
	}

	for _, name := range date {
		c.date[utils.NormalizeName(name)] = true
	}

	return c
}

// ClassOf returns the class of column. Date wins over text; unlisted columns are general.
func (c Classification) ClassOf(column string) ColumnClass {
	name := utils.NormalizeName(column)

	switch {
	case c.date[name]:
		return ClassDate
	case c.text[name]:
		return ClassText
	default:
		return ClassGeneral
	}
}
