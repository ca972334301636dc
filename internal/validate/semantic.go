package validate

import (
	"fmt"

	"github.com/clinforge/sdtm/internal/domain"
	"github.com/clinforge/sdtm/internal/normalize"
)

// plausibleRange bounds a numeric measurement. Values outside [Low, High]
// are implausible; values outside [CriticalLow, CriticalHigh] are almost
// certainly data errors and graded accordingly.
type plausibleRange struct {
	Low, High                 float64
	CriticalLow, CriticalHigh float64
}

func (pr plausibleRange) classify(v float64) domain.Severity {
	if v < pr.CriticalLow || v > pr.CriticalHigh {
		return domain.SeverityError
	}
	if v < pr.Low || v > pr.High {
		return domain.SeverityWarning
	}
	return ""
}

// vitalRanges holds physiological plausibility bounds per vital-signs test
// code, in the customary unit for that test.
var vitalRanges = map[string]plausibleRange{
	"SYSBP":  {Low: 60, High: 250, CriticalLow: 30, CriticalHigh: 300},
	"DIABP":  {Low: 30, High: 150, CriticalLow: 10, CriticalHigh: 200},
	"PULSE":  {Low: 30, High: 200, CriticalLow: 10, CriticalHigh: 300},
	"RESP":   {Low: 5, High: 60, CriticalLow: 1, CriticalHigh: 100},
	"TEMP":   {Low: 34, High: 42, CriticalLow: 30, CriticalHigh: 45},
	"HEIGHT": {Low: 50, High: 250, CriticalLow: 20, CriticalHigh: 300},
	"WEIGHT": {Low: 2, High: 300, CriticalLow: 0.5, CriticalHigh: 500},
	"BMI":    {Low: 10, High: 70, CriticalLow: 5, CriticalHigh: 100},
	"OXYSAT": {Low: 70, High: 100, CriticalLow: 40, CriticalHigh: 100},
}

var ageRange = plausibleRange{Low: 0, High: 120, CriticalLow: 0, CriticalHigh: 150}

// semanticCheck is one independent clinical plausibility predicate. Checks
// never see each other's findings; the validator unions their issues.
type semanticCheck func(table domain.Table, cat domain.Catalogue) []domain.Issue

// SemanticValidator applies clinical plausibility checks. Unlike the
// structural and conformance layers these rules encode domain knowledge
// about medicine, not about the data model.
type SemanticValidator struct {
	checks []semanticCheck
}

// NewSemanticValidator builds a semantic validator with the stock checks.
func NewSemanticValidator() *SemanticValidator {
	return &SemanticValidator{checks: []semanticCheck{
		checkAgePlausibility,
		checkVitalPlausibility,
		checkFatalOutcomeFlags,
		checkSeriousnessCriteria,
		checkReferenceRangeAgreement,
	}}
}

// Validate runs every check that applies to the table's domain.
func (v *SemanticValidator) Validate(table domain.Table, cat domain.Catalogue) domain.Result {
	var issues []domain.Issue
	for _, check := range v.checks {
		issues = append(issues, check(table, cat)...)
	}
	return domain.NewResult(cat.Domain, len(table.Records), issues)
}

func checkAgePlausibility(table domain.Table, cat domain.Catalogue) []domain.Issue {
	if cat.Domain != domain.DomainDM {
		return nil
	}
	counts := map[domain.Severity]int{}
	for _, rec := range table.Records {
		age, ok := rec.Float("AGE")
		if !ok {
			continue
		}
		if sev := ageRange.classify(age); sev != "" {
			counts[sev]++
		}
	}
	var issues []domain.Issue
	if n := counts[domain.SeverityError]; n > 0 {
		issues = append(issues, domain.Issue{
			RuleID:      RuleAgeImplausible,
			Severity:    domain.SeverityError,
			Message:     "AGE is outside any credible human range",
			Domain:      cat.Domain,
			Variable:    "AGE",
			RecordCount: n,
		})
	}
	if n := counts[domain.SeverityWarning]; n > 0 {
		issues = append(issues, domain.Issue{
			RuleID:      RuleAgeImplausible,
			Severity:    domain.SeverityWarning,
			Message:     "AGE is outside the plausible range 0-120",
			Domain:      cat.Domain,
			Variable:    "AGE",
			RecordCount: n,
		})
	}
	return issues
}

// checkVitalPlausibility grades each numeric vital-signs result against the
// physiological bounds for its test code. A systolic pressure of 400 is a
// data error, not a measurement.
func checkVitalPlausibility(table domain.Table, cat domain.Catalogue) []domain.Issue {
	if cat.Domain != domain.DomainVS {
		return nil
	}
	type bucket struct {
		count   int
		example float64
	}
	warnings := map[string]*bucket{}
	criticals := map[string]*bucket{}
	for _, rec := range table.Records {
		code := rec.String("VSTESTCD")
		pr, known := vitalRanges[code]
		if !known {
			continue
		}
		value, ok := rec.Float("VSSTRESN")
		if !ok {
			value, ok = rec.Float("VSORRES")
		}
		if !ok {
			continue
		}
		target := warnings
		switch pr.classify(value) {
		case domain.SeverityError:
			target = criticals
		case domain.SeverityWarning:
		default:
			continue
		}
		b := target[code]
		if b == nil {
			b = &bucket{example: value}
			target[code] = b
		}
		b.count++
	}
	var issues []domain.Issue
	for code, b := range criticals {
		issues = append(issues, domain.Issue{
			RuleID:      RuleRangeCritical,
			Severity:    domain.SeverityError,
			Message:     fmt.Sprintf("%s value %g is critically implausible", code, b.example),
			Domain:      cat.Domain,
			Variable:    "VSORRES",
			RecordCount: b.count,
		})
	}
	for code, b := range warnings {
		issues = append(issues, domain.Issue{
			RuleID:      RuleRangeImplausible,
			Severity:    domain.SeverityWarning,
			Message:     fmt.Sprintf("%s value %g is outside the plausible range", code, b.example),
			Domain:      cat.Domain,
			Variable:    "VSORRES",
			RecordCount: b.count,
		})
	}
	return issues
}

// checkFatalOutcomeFlags requires a fatal adverse-event outcome to agree
// with the death sub-flag.
func checkFatalOutcomeFlags(table domain.Table, cat domain.Catalogue) []domain.Issue {
	if cat.Domain != domain.DomainAE {
		return nil
	}
	bad := 0
	for _, rec := range table.Records {
		if rec.String("AEOUT") == "FATAL" && rec.String("AESDTH") != "Y" {
			bad++
		}
	}
	if bad == 0 {
		return nil
	}
	return []domain.Issue{{
		RuleID:      RuleFatalOutcome,
		Severity:    domain.SeverityError,
		Message:     "AEOUT is FATAL but AESDTH is not Y",
		Domain:      cat.Domain,
		Variable:    "AEOUT",
		RecordCount: bad,
	}}
}

// checkSeriousnessCriteria requires a serious adverse event to name at
// least one seriousness criterion.
func checkSeriousnessCriteria(table domain.Table, cat domain.Catalogue) []domain.Issue {
	if cat.Domain != domain.DomainAE {
		return nil
	}
	criteria := []string{"AESDTH", "AESHOSP", "AESLIFE"}
	bad := 0
	for _, rec := range table.Records {
		if rec.String("AESER") != "Y" {
			continue
		}
		any := false
		for _, c := range criteria {
			if rec.String(c) == "Y" {
				any = true
				break
			}
		}
		if !any {
			bad++
		}
	}
	if bad == 0 {
		return nil
	}
	return []domain.Issue{{
		RuleID:      RuleSeriousCriteria,
		Severity:    domain.SeverityWarning,
		Message:     "AESER is Y with no seriousness criterion flag set",
		Domain:      cat.Domain,
		Variable:    "AESER",
		RecordCount: bad,
	}}
}

// numericValue reads a record value as a number. The reference range
// bounds are character-typed in the catalogue, so transformed records
// carry them as strings and they must be coerced here.
func numericValue(rec domain.Record, name string) (float64, bool) {
	if v, ok := rec.Float(name); ok {
		return v, true
	}
	return normalize.Numeric(rec.String(name))
}

// checkReferenceRangeAgreement verifies the reported reference range
// indicator against the numeric result and the range bounds.
func checkReferenceRangeAgreement(table domain.Table, cat domain.Catalogue) []domain.Issue {
	if cat.Domain != domain.DomainLB {
		return nil
	}
	bad := 0
	for _, rec := range table.Records {
		indicator := rec.String("LBNRIND")
		if indicator == "" {
			continue
		}
		value, ok := rec.Float("LBSTRESN")
		if !ok {
			continue
		}
		low, hasLow := numericValue(rec, "LBORNRLO")
		high, hasHigh := numericValue(rec, "LBORNRHI")
		expected := ""
		switch {
		case hasLow && value < low:
			expected = "LOW"
		case hasHigh && value > high:
			expected = "HIGH"
		case hasLow && hasHigh:
			expected = "NORMAL"
		default:
			continue
		}
		if indicator != expected && !(expected != "NORMAL" && indicator == "ABNORMAL") {
			bad++
		}
	}
	if bad == 0 {
		return nil
	}
	return []domain.Issue{{
		RuleID:      RuleRefRangeMismatch,
		Severity:    domain.SeverityWarning,
		Message:     "LBNRIND disagrees with the result and reference range",
		Domain:      cat.Domain,
		Variable:    "LBNRIND",
		RecordCount: bad,
	}}
}
