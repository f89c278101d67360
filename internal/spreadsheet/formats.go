package spreadsheet

import "strings"

// Built-in number format ids that render a calendar date.
// Time-only formats (18-21, 45-47) are left as numbers.
var dateNumFmts = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true,
	32: true, 33: true, 34: true, 35: true, 36: true,
	50: true, 51: true, 52: true, 53: true, 54: true,
	55: true, 56: true, 57: true, 58: true,
}

// IsDateNumFmt reports whether a built-in number format id is a date format.
func IsDateNumFmt(id int) bool {
	return dateNumFmts[id]
}

// IsDateFormatCode reports whether a custom number format code renders a date,
// i.e. it has a year or day token outside literals and bracketed sections.
func IsDateFormatCode(code string) bool {
	// Only the first section formats positive numbers.
	if i := strings.IndexByte(code, ';'); i >= 0 {
		code = code[:i]
	}

	var sb strings.Builder

	inQuote, inBracket := false, false

	for i := 0; i < len(code); i++ {
		c := code[i]

		switch {
		case inQuote:
			if c == '"' {
				inQuote = false
			}
		case inBracket:
			if c == ']' {
				inBracket = false
			}
		case c == '"':
			inQuote = true
		case c == '[':
			inBracket = true
		case c == '\\', c == '_', c == '*':
			i++ // skip the escaped or padding character
		default:
			sb.WriteByte(c)
		}
	}

	stripped := strings.ToLower(sb.String())

	return strings.ContainsAny(stripped, "yd") || strings.Contains(stripped, "mmm")
}
