// Package report summarizes a converted catalog for the operator.
package report

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"catalogo/internal/formatter"
	"catalogo/internal/models"
	"catalogo/pkg/utils"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// maxCountryWidth bounds country names in the console table.
const maxCountryWidth = 40

// Options selects the columns the summary looks at.
type Options struct {
	CountryColumn string
	ValueColumn   string
	TopCountries  int
}

// CountryCount is one row of the country ranking.
type CountryCount struct {
	Country string
	Count   int
}

// Summary holds the figures printed after a conversion.
type Summary struct {
	Columns      []string
	TopCountries []CountryCount
	TotalValue   decimal.Decimal
	Total        int
	// HasValue is false when the value column is absent.
	HasValue bool
}

// Summarize computes record count, country ranking and estimated value total.
// Null and empty countries are not ranked; ties keep first-appearance order.
func Summarize(c *models.Catalog, opts Options) Summary {
	s := Summary{TotalValue: decimal.Zero}
	if c == nil {
		return s
	}

	s.Total = c.Len()
	s.Columns = append([]string(nil), c.Columns...)

	s.TopCountries = rankCountries(c, opts.CountryColumn, opts.TopCountries)

	for _, col := range c.Columns {
		if col == opts.ValueColumn {
			s.HasValue = true

			break
		}
	}

	if s.HasValue {
		for _, rec := range c.Records {
			v, _ := rec.Get(opts.ValueColumn)
			if f, ok := v.(float64); ok {
				s.TotalValue = s.TotalValue.Add(decimal.NewFromFloat(f))
			}
		}
	}

	return s
}

func rankCountries(c *models.Catalog, column string, top int) []CountryCount {
	if column == "" || top <= 0 {
		return nil
	}

	counts := make(map[string]int)

	var order []string

	for _, rec := range c.Records {
		v, ok := rec.Get(column)
		if !ok {
			continue
		}

		key := displayValue(v)
		if key == "" {
			continue
		}

		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}

		counts[key]++
	}

	ranked := make([]CountryCount, 0, len(order))
	for _, key := range order {
		ranked = append(ranked, CountryCount{Country: key, Count: counts[key]})
	}

	// Stable: equal counts keep first-appearance order.
	slices.SortStableFunc(ranked, func(a, b CountryCount) int {
		return cmp.Compare(b.Count, a.Count)
	})

	if len(ranked) > top {
		ranked = ranked[:top]
	}

	return ranked
}

func displayValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

// FormatEUR renders d with thousands separators and two decimals, e.g. "1,234.56 EUR".
// Rounding is done on the decimal; the integer part must fit in an int64.
func FormatEUR(d decimal.Decimal) string {
	fixed := d.Abs().StringFixed(2)

	intPart, frac, _ := strings.Cut(fixed, ".")

	units, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return d.StringFixed(2) + " EUR"
	}

	sign := ""
	if d.Round(2).IsNegative() {
		sign = "-"
	}

	p := message.NewPrinter(language.English)

	return p.Sprintf("%s%d.%s EUR", sign, units, frac)
}

// Render writes the console summary.
func Render(w io.Writer, s Summary) {
	fmt.Fprintf(w, "📋 Columnas encontradas (%d):\n", len(s.Columns))

	for i, col := range s.Columns {
		fmt.Fprintf(w, "   %2d. %s\n", i+1, col)
	}

	fmt.Fprintf(w, "\n📊 Total de minerales: %d\n", s.Total)

	if len(s.TopCountries) > 0 {
		fmt.Fprintf(w, "\n🌍 Minerales por pais (Top %d):\n", len(s.TopCountries))

		rows := make([][]string, 0, len(s.TopCountries))
		for _, cc := range s.TopCountries {
			rows = append(rows, []string{utils.TruncateWidth(cc.Country, maxCountryWidth), strconv.Itoa(cc.Count)})
		}

		for _, line := range formatter.Table([]string{"Pais", "Minerales"}, rows) {
			fmt.Fprintf(w, "   %s\n", line)
		}
	}

	if s.HasValue {
		fmt.Fprintf(w, "\n💶 Valor total estimado: %s\n", FormatEUR(s.TotalValue))
	}
}

// Markdown renders the summary as a markdown document with aligned tables.
func Markdown(s Summary) string {
	var sb strings.Builder

	sb.WriteString("# Catalogo de minerales\n\n")
	fmt.Fprintf(&sb, "Total de minerales: %d\n\n", s.Total)

	sb.WriteString("| # | Columna |\n| --- | --- |\n")

	for i, col := range s.Columns {
		fmt.Fprintf(&sb, "| %d | %s |\n", i+1, escapeCell(col))
	}

	if len(s.TopCountries) > 0 {
		sb.WriteString("\n| Pais | Minerales |\n| --- | --- |\n")

		for _, cc := range s.TopCountries {
			fmt.Fprintf(&sb, "| %s | %d |\n", escapeCell(cc.Country), cc.Count)
		}
	}

	if s.HasValue {
		fmt.Fprintf(&sb, "\nValor total estimado: %s\n", FormatEUR(s.TotalValue))
	}

	return formatter.FormatMarkdown(sb.String())
}

// escapeCell keeps a cell from being split as an extra column.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "/")
}
