// Package normalize holds the pure value-level normalization functions used
// by the domain transformer. Every function is total: malformed input
// degrades to the empty/null result, it never produces an error.
package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	isoDatePattern = regexp.MustCompile(`^(\d{4})(?:-(\d{2})(?:-(\d{2}))?)?(?:[T ].*)?$`)
	digitsPattern  = regexp.MustCompile(`^\d+$`)
)

// Date converts a raw date into partial ISO-8601 form: YYYY, YYYY-MM or
// YYYY-MM-DD, preserving the precision of the input. Accepted inputs are
// 4/6/8-digit numeric strings, slash- or dash-delimited dates, and strings
// already in ISO form. Unparseable input yields "".
//
// Date is idempotent: Date(Date(x)) == Date(x).
func Date(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	if m := isoDatePattern.FindStringSubmatch(raw); m != nil {
		return assembleDate(m[1], m[2], m[3])
	}

	if digitsPattern.MatchString(raw) {
		switch len(raw) {
		case 4:
			return assembleDate(raw, "", "")
		case 6:
			return assembleDate(raw[:4], raw[4:6], "")
		case 8:
			return assembleDate(raw[:4], raw[4:6], raw[6:8])
		default:
			return ""
		}
	}

	parts := splitDateParts(raw)
	switch len(parts) {
	case 2:
		// YYYY/MM or MM/YYYY
		if len(parts[0]) == 4 {
			return assembleDate(parts[0], pad2(parts[1]), "")
		}
		if len(parts[1]) == 4 {
			return assembleDate(parts[1], pad2(parts[0]), "")
		}
	case 3:
		if len(parts[0]) == 4 {
			return assembleDate(parts[0], pad2(parts[1]), pad2(parts[2]))
		}
		if len(parts[2]) == 4 {
			first, second := parts[0], parts[1]
			// Day-first when the leading token cannot be a month.
			if n, err := strconv.Atoi(first); err == nil && n > 12 {
				return assembleDate(parts[2], pad2(second), pad2(first))
			}
			return assembleDate(parts[2], pad2(first), pad2(second))
		}
	}

	return ""
}

// Numeric attempts float coercion of a raw value. The boolean result is
// false when the value cannot be interpreted as a number.
func Numeric(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	raw = strings.ReplaceAll(raw, ",", "")
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Flag maps common yes/no spellings onto "Y"/"N". Unrecognized input maps
// to "" (unknown); the function never guesses toward a default.
func Flag(raw string) string {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "Y", "YES", "1", "TRUE", "T":
		return "Y"
	case "N", "NO", "0", "FALSE", "F":
		return "N"
	default:
		return ""
	}
}

// Text produces the uppercase-trimmed controlled-term candidate for a free
// text value, collapsing internal runs of whitespace.
func Text(raw string) string {
	fields := strings.Fields(raw)
	return strings.ToUpper(strings.Join(fields, " "))
}

func splitDateParts(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '/' || r == '-' || r == '.'
	})
	for _, p := range parts {
		if !digitsPattern.MatchString(p) {
			return nil
		}
	}
	return parts
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// assembleDate validates the components and joins them at the precision
// supplied. Any out-of-range component invalidates the whole date.
func assembleDate(year, month, day string) string {
	y, err := strconv.Atoi(year)
	if err != nil || y < 1000 || y > 9999 {
		return ""
	}
	out := fmt.Sprintf("%04d", y)

	if month == "" {
		return out
	}
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return ""
	}
	out += fmt.Sprintf("-%02d", m)

	if day == "" {
		return out
	}
	d, err := strconv.Atoi(day)
	if err != nil || d < 1 || d > 31 {
		return ""
	}
	return out + fmt.Sprintf("-%02d", d)
}
