// Package utils provides common utility functions.
package utils

import (
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/norm"
)

// NormalizeName returns s in Unicode NFC form.
// Spreadsheet headers written on macOS often arrive decomposed ("Adquisición"),
// so column names are compared in composed form.
func NormalizeName(s string) string {
	return norm.NFC.String(s)
}

// TruncateWidth truncates s to at most maxWidth display columns, ending with "…" when cut.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 || runewidth.StringWidth(s) <= maxWidth {
		return s
	}

	return runewidth.Truncate(s, maxWidth, "…")
}
