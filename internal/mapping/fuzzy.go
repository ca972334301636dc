package mapping

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
)

// canonicalName lowercases a name and strips separators so that
// "AE_Start_Date" and "aestartdate" compare equal.
func canonicalName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// similarity returns a normalized [0,1] string similarity between two
// names, case- and separator-insensitive. When one name contains the
// other the score is floored at 0.8.
func similarity(a, b string) float64 {
	ca, cb := canonicalName(a), canonicalName(b)
	if ca == "" || cb == "" {
		return 0
	}
	if ca == cb {
		return 1
	}

	distance := levenshtein.ComputeDistance(ca, cb)
	longest := len(ca)
	if len(cb) > longest {
		longest = len(cb)
	}
	score := 1 - float64(distance)/float64(longest)

	if strings.Contains(ca, cb) || strings.Contains(cb, ca) {
		if score < 0.8 {
			score = 0.8
		}
	}
	return score
}
