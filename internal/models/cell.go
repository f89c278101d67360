// Package models defines the data structures shared by the reader, the normalizer and the writer.
package models

import (
	"math"
	"strconv"
	"time"
)

// Kind identifies which variant a Cell holds.
type Kind int

// Cell kinds.
const (
	KindMissing Kind = iota
	KindText
	KindNumber
	KindDate
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Cell is a single value read from the source sheet.
// Only the field matching Kind is meaningful.
type Cell struct {
	Date   time.Time
	Text   string
	Number float64
	Kind   Kind
}

// Missing returns the absent-value cell.
func Missing() Cell {
	return Cell{Kind: KindMissing}
}

// Text returns a text cell.
func Text(s string) Cell {
	return Cell{Kind: KindText, Text: s}
}

// Number returns a numeric cell. NaN is allowed and is treated as missing downstream.
func Number(f float64) Cell {
	return Cell{Kind: KindNumber, Number: f}
}

// Date returns a date cell.
func Date(t time.Time) Cell {
	return Cell{Kind: KindDate, Date: t}
}

// IsMissing reports whether the cell is the structural missing marker.
func (c Cell) IsMissing() bool {
	return c.Kind == KindMissing
}

// IsNaN reports whether the cell is a number holding the not-a-number sentinel.
func (c Cell) IsNaN() bool {
	return c.Kind == KindNumber && math.IsNaN(c.Number)
}

// String returns the printable form of the cell. Missing cells print as "".
func (c Cell) String() string {
	switch c.Kind {
	case KindText:
		return c.Text
	case KindNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case KindDate:
		return c.Date.Format("2006-01-02 15:04:05")
	default:
		return ""
	}
}
