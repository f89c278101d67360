// Package formatter aligns pipe tables by display width.
package formatter

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// minColumnWidth keeps separator rows at least "---" wide.
const minColumnWidth = 3

// FormatMarkdown realigns every pipe table found in content. Lines outside
// tables are returned unchanged.
func FormatMarkdown(content string) string {
	lines := strings.Split(content, "\n")

	var formattedLines []string

	var tableBuffer []string

	for _, line := range lines {
		trimmedLine := strings.TrimSpace(line)

		if strings.HasPrefix(trimmedLine, "|") && strings.HasSuffix(trimmedLine, "|") {
			tableBuffer = append(tableBuffer, line)

			continue
		}

		if len(tableBuffer) > 0 {
			formattedLines = append(formattedLines, processTable(tableBuffer)...)
			tableBuffer = nil
		}

		formattedLines = append(formattedLines, line)
	}

	if len(tableBuffer) > 0 {
		formattedLines = append(formattedLines, processTable(tableBuffer)...)
	}

	return strings.Join(formattedLines, "\n")
}

// Table renders header and rows as an aligned pipe table, separator included.
// Short rows are padded with empty cells.
func Table(header []string, rows [][]string) []string {
	table := make([][]string, 0, len(rows)+1)
	table = append(table, header)
	table = append(table, rows...)

	colCount := 0
	for _, row := range table {
		colCount = max(colCount, len(row))
	}

	if colCount == 0 {
		return nil
	}

	widths := columnWidths(table, colCount, -1)

	result := make([]string, 0, len(table)+1)
	result = append(result, renderRow(header, widths, false))
	result = append(result, renderRow(nil, widths, true))

	for _, row := range rows {
		result = append(result, renderRow(row, widths, false))
	}

	return result
}

func processTable(rows []string) []string {
	// A lone row has no separator to realign against.
	if len(rows) < 2 {
		return rows
	}

	table := make([][]string, 0, len(rows))

	for _, row := range rows {
		table = append(table, splitRow(row))
	}

	colCount := 0
	for _, row := range table {
		colCount = max(colCount, len(row))
	}

	separatorRowIdx := -1
	if isSeparator(table[1]) {
		separatorRowIdx = 1
	}

	widths := columnWidths(table, colCount, separatorRowIdx)

	result := make([]string, 0, len(table))
	for i, row := range table {
		result = append(result, renderRow(row, widths, i == separatorRowIdx))
	}

	return result
}

func splitRow(row string) []string {
	parts := strings.Split(row, "|")

	if len(parts) > 0 && strings.TrimSpace(parts[0]) == "" {
		parts = parts[1:]
	}

	if len(parts) > 0 && strings.TrimSpace(parts[len(parts)-1]) == "" {
		parts = parts[:len(parts)-1]
	}

	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		cells = append(cells, strings.TrimSpace(p))
	}

	return cells
}

// isSeparator reports whether every cell is made of dashes and alignment colons.
func isSeparator(row []string) bool {
	for _, cell := range row {
		trim := strings.NewReplacer("-", "", ":", "", " ", "").Replace(cell)
		if trim != "" {
			return false
		}
	}

	return true
}

func columnWidths(table [][]string, colCount, skipRow int) []int {
	widths := make([]int, colCount)

	for rIdx, row := range table {
		if rIdx == skipRow {
			continue
		}

		for i := 0; i < len(row) && i < colCount; i++ {
			widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
		}
	}

	for i := range widths {
		widths[i] = max(widths[i], minColumnWidth)
	}

	return widths
}

func renderRow(row []string, widths []int, separator bool) string {
	var sb strings.Builder

	sb.WriteString("|")

	for j, width := range widths {
		sb.WriteString(" ")

		if separator {
			sb.WriteString(strings.Repeat("-", width))
		} else {
			content := ""
			if j < len(row) {
				content = row[j]
			}

			sb.WriteString(content)

			if padding := width - runewidth.StringWidth(content); padding > 0 {
				sb.WriteString(strings.Repeat(" ", padding))
			}
		}

		sb.WriteString(" |")
	}

	return sb.String()
}
