package mapping

import (
	"strings"

	"github.com/clinforge/sdtm/internal/domain"
	"github.com/clinforge/sdtm/internal/normalize"
)

type valueShape string

const (
	shapeDate      valueShape = "date"
	shapeSex       valueShape = "sex"
	shapeSeverity  valueShape = "severity"
	shapeCausality valueShape = "causality"
	shapeOutcome   valueShape = "outcome"
	shapeYesNo     valueShape = "yes/no"
	shapeNumeric   valueShape = "numeric"
)

var (
	sexTokens = map[string]struct{}{
		"M": {}, "F": {}, "MALE": {}, "FEMALE": {},
	}
	severityTokens = map[string]struct{}{
		"MILD": {}, "MODERATE": {}, "SEVERE": {}, "SLIGHT": {}, "INTENSE": {},
	}
	causalityTokens = map[string]struct{}{
		"RELATED": {}, "NOT RELATED": {}, "UNRELATED": {}, "UNLIKELY": {},
		"POSSIBLE": {}, "POSSIBLY RELATED": {}, "PROBABLE": {}, "PROBABLY RELATED": {},
		"DEFINITE": {},
	}
	outcomeTokens = map[string]struct{}{
		"RECOVERED": {}, "RESOLVED": {}, "RECOVERING": {}, "RESOLVING": {},
		"ONGOING": {}, "NOT RECOVERED": {}, "FATAL": {}, "DEATH": {}, "DIED": {},
		"RECOVERED/RESOLVED": {}, "UNKNOWN": {},
	}
)

// shapeTests are evaluated in order; the first shape matched by at least
// half of the sampled values wins. Vocabularies are tested before the
// generic yes/no and numeric shapes so a column of "F" values reads as sex
// rather than as a false flag.
var shapeTests = []struct {
	shape valueShape
	match func(string) bool
}{
	{shapeDate, isDateShaped},
	{shapeSex, tokenMatcher(sexTokens)},
	{shapeSeverity, tokenMatcher(severityTokens)},
	{shapeCausality, tokenMatcher(causalityTokens)},
	{shapeOutcome, tokenMatcher(outcomeTokens)},
	{shapeYesNo, func(v string) bool { return normalize.Flag(v) != "" }},
	{shapeNumeric, func(v string) bool { _, ok := normalize.Numeric(v); return ok }},
}

func tokenMatcher(tokens map[string]struct{}) func(string) bool {
	return func(v string) bool {
		_, ok := tokens[normalize.Text(v)]
		return ok
	}
}

// isDateShaped accepts 8-digit and delimited/ISO dates. Bare 4-digit
// numbers are deliberately not date-shaped: a year column is
// indistinguishable from a plain numeric one.
func isDateShaped(v string) bool {
	v = strings.TrimSpace(v)
	if len(v) < 6 {
		return false
	}
	return normalize.Date(v) != ""
}

// detectShape returns the dominant shape of the sampled values, requiring
// at least half of the samples to match.
func detectShape(samples []string) (valueShape, bool) {
	if len(samples) == 0 {
		return "", false
	}
	for _, test := range shapeTests {
		matched := 0
		for _, v := range samples {
			if test.match(v) {
				matched++
			}
		}
		if matched*2 >= len(samples) {
			return test.shape, true
		}
	}
	return "", false
}

// inferShapeTarget maps a detected shape plus column-name hints onto a
// catalogue variable. "start"/"end" substrings disambiguate date-shaped
// columns into the start and end timing variables.
func inferShapeTarget(shape valueShape, column string, cat domain.Catalogue) (string, bool) {
	name := strings.ToUpper(column)
	prefix := string(cat.Domain)

	candidate := ""
	switch shape {
	case shapeDate:
		switch {
		case strings.Contains(name, "BIRTH") || strings.Contains(name, "DOB"):
			candidate = "BRTHDTC"
		case strings.Contains(name, "DEATH") || strings.Contains(name, "DTH"):
			candidate = "DTHDTC"
		case strings.Contains(name, "START") || strings.Contains(name, "ONSET"):
			candidate = prefix + "STDTC"
		case strings.Contains(name, "END") || strings.Contains(name, "STOP") || strings.Contains(name, "RESOL"):
			candidate = prefix + "ENDTC"
		default:
			candidate = generalTimingVariable(cat)
		}
	case shapeSex:
		candidate = "SEX"
	case shapeSeverity:
		candidate = "AESEV"
	case shapeCausality:
		candidate = "AEREL"
	case shapeOutcome:
		candidate = "AEOUT"
	case shapeYesNo:
		switch {
		case strings.Contains(name, "SER"):
			candidate = "AESER"
		case strings.Contains(name, "DEATH") || strings.Contains(name, "DTH"):
			candidate = "DTHFL"
		case strings.Contains(name, "HOSP"):
			candidate = "AESHOSP"
		case strings.Contains(name, "LIFE"):
			candidate = "AESLIFE"
		case strings.Contains(name, "ONGO"):
			candidate = prefix + "ONGO"
		}
	case shapeNumeric:
		switch {
		case strings.Contains(name, "AGE"):
			candidate = "AGE"
		case strings.Contains(name, "DOSE"):
			candidate = prefix + "DOSE"
		case strings.Contains(name, "VISIT"):
			candidate = "VISITNUM"
		}
	}

	if candidate == "" {
		return "", false
	}
	if _, ok := cat.Variable(candidate); !ok {
		return "", false
	}
	return candidate, true
}

// generalTimingVariable returns the domain's plain collection-date
// variable (the *DTC without a start/end qualifier), if the catalogue has
// one.
func generalTimingVariable(cat domain.Catalogue) string {
	for _, v := range cat.Variables {
		if v.Role != domain.RoleTiming {
			continue
		}
		if !strings.HasSuffix(v.Name, "DTC") {
			continue
		}
		if strings.HasSuffix(v.Name, "STDTC") || strings.HasSuffix(v.Name, "ENDTC") {
			continue
		}
		switch v.Name {
		case "BRTHDTC", "DTHDTC", "RFSTDTC", "RFENDTC":
			continue
		}
		return v.Name
	}
	return ""
}
