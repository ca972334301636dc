package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/clinforge/sdtm/internal/domain"
	"github.com/clinforge/sdtm/internal/terminology"
)

// Partial ISO 8601 date, optionally followed by a time part.
var isoDateShape = regexp.MustCompile(`^\d{4}(-\d{2}(-\d{2})?)?([T ].*)?$`)

// criticalCodedVariables lists coded fields whose nonconformance is graded
// as an error rather than a warning. These carry safety or analysis
// significance; a bad value here corrupts downstream reporting.
var criticalCodedVariables = map[string]struct{}{
	"SEX":    {},
	"AESER":  {},
	"AESDTH": {},
	"DTHFL":  {},
	"AEOUT":  {},
}

// ConformanceValidator checks value-level conformance: controlled
// terminology membership, timing value shape, start/end ordering, and
// sequence positivity. It uses the same resolver the transformer used, in
// strict mode: here an unrecognized value is flagged, not passed through.
type ConformanceValidator struct {
	resolver *terminology.Resolver
}

// NewConformanceValidator builds a conformance validator. A nil resolver
// falls back to the stock codelists.
func NewConformanceValidator(resolver *terminology.Resolver) *ConformanceValidator {
	if resolver == nil {
		resolver = terminology.DefaultResolver()
	}
	return &ConformanceValidator{resolver: resolver}
}

// Validate runs all conformance checks over one canonical table.
func (v *ConformanceValidator) Validate(table domain.Table, cat domain.Catalogue) domain.Result {
	var issues []domain.Issue
	issues = append(issues, v.checkTerminology(table, cat)...)
	issues = append(issues, v.checkDateShapes(table, cat)...)
	issues = append(issues, v.checkTimingOrder(table, cat)...)
	issues = append(issues, v.checkSequence(table, cat)...)
	return domain.NewResult(cat.Domain, len(table.Records), issues)
}

func (v *ConformanceValidator) checkTerminology(table domain.Table, cat domain.Catalogue) []domain.Issue {
	var issues []domain.Issue
	for _, variable := range cat.Variables {
		if variable.Codelist == "" {
			continue
		}
		bad := 0
		example := ""
		for _, rec := range table.Records {
			value := rec.String(variable.Name)
			if value == "" {
				continue
			}
			if !v.resolver.Member(value, variable.Codelist) {
				bad++
				if example == "" {
					example = value
				}
			}
		}
		if bad == 0 {
			continue
		}
		severity := domain.SeverityWarning
		if _, critical := criticalCodedVariables[variable.Name]; critical {
			severity = domain.SeverityError
		}
		issues = append(issues, domain.Issue{
			RuleID:      RuleCTNonconformant,
			Severity:    severity,
			Message:     fmt.Sprintf("%s has values outside codelist %s, e.g. %q", variable.Name, variable.Codelist, example),
			Domain:      cat.Domain,
			Variable:    variable.Name,
			RecordCount: bad,
		})
	}
	return issues
}

func (v *ConformanceValidator) checkDateShapes(table domain.Table, cat domain.Catalogue) []domain.Issue {
	var issues []domain.Issue
	for _, variable := range cat.Variables {
		if variable.Role != domain.RoleTiming || variable.Kind != domain.KindCharacter {
			continue
		}
		bad := 0
		example := ""
		for _, rec := range table.Records {
			value := rec.String(variable.Name)
			if value == "" {
				continue
			}
			if !isoDateShape.MatchString(value) {
				bad++
				if example == "" {
					example = value
				}
			}
		}
		if bad > 0 {
			issues = append(issues, domain.Issue{
				RuleID:      RuleDateFormat,
				Severity:    domain.SeverityError,
				Message:     fmt.Sprintf("%s has non-ISO date values, e.g. %q", variable.Name, example),
				Domain:      cat.Domain,
				Variable:    variable.Name,
				RecordCount: bad,
			})
		}
	}
	return issues
}

// checkTimingOrder verifies start <= end for every start/end variable pair
// the catalogue declares. Lexicographic comparison is correct here: the
// values are ISO dates, which order textually, and a partial date compares
// against a full one by its available precision.
func (v *ConformanceValidator) checkTimingOrder(table domain.Table, cat domain.Catalogue) []domain.Issue {
	var issues []domain.Issue
	for _, variable := range cat.Variables {
		if !strings.HasSuffix(variable.Name, "STDTC") {
			continue
		}
		endName := strings.TrimSuffix(variable.Name, "STDTC") + "ENDTC"
		if _, ok := cat.Variable(endName); !ok {
			continue
		}
		bad := 0
		for _, rec := range table.Records {
			start := rec.String(variable.Name)
			end := rec.String(endName)
			if start == "" || end == "" {
				continue
			}
			n := len(start)
			if len(end) < n {
				n = len(end)
			}
			if start[:n] > end[:n] {
				bad++
			}
		}
		if bad > 0 {
			issues = append(issues, domain.Issue{
				RuleID:      RuleStartAfterEnd,
				Severity:    domain.SeverityError,
				Message:     fmt.Sprintf("%s is after %s", variable.Name, endName),
				Domain:      cat.Domain,
				Variable:    variable.Name,
				RecordCount: bad,
			})
		}
	}
	return issues
}

func (v *ConformanceValidator) checkSequence(table domain.Table, cat domain.Catalogue) []domain.Issue {
	seqVar := cat.SequenceVariable()
	if seqVar == "" {
		return nil
	}
	bad := 0
	for _, rec := range table.Records {
		if rec.Get(seqVar) == nil {
			continue
		}
		if f, ok := rec.Float(seqVar); !ok || f <= 0 {
			bad++
		}
	}
	if bad == 0 {
		return nil
	}
	return []domain.Issue{{
		RuleID:      RuleSequenceInvalid,
		Severity:    domain.SeverityError,
		Message:     fmt.Sprintf("%s must be a positive number", seqVar),
		Domain:      cat.Domain,
		Variable:    seqVar,
		RecordCount: bad,
	}}
}
