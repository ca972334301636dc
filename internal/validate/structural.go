// Package validate holds the read-only conformance layers run over
// transformed canonical tables. Validators are independent and
// composable: none depends on another's output, and running them in any
// order yields the same issue multiset.
package validate

import (
	"fmt"

	"github.com/clinforge/sdtm/internal/domain"
)

// Rule identifiers, stable across runs for downstream tooling.
const (
	RuleRequiredMissing  = "REQUIRED_VARIABLE_MISSING"
	RuleDomainConstant   = "DOMAIN_CONSTANT_MISMATCH"
	RuleDuplicateKey     = "DUPLICATE_KEY"
	RuleLengthExceeded   = "LENGTH_EXCEEDED"
	RuleCTNonconformant  = "CT_NONCONFORMANT"
	RuleDateFormat       = "DATE_FORMAT_NONCONFORMANT"
	RuleStartAfterEnd    = "START_AFTER_END"
	RuleSequenceInvalid  = "SEQUENCE_NONPOSITIVE"
	RuleUnresolvedRef    = "UNRESOLVED_SUBJECT_REFERENCE"
	RuleOrphanSupplement = "ORPHAN_SUPPLEMENTAL_RECORD"
	RuleVisitCoverage    = "VISIT_COVERAGE_GAP"
	RuleRangeImplausible = "VALUE_OUTSIDE_PLAUSIBLE_RANGE"
	RuleRangeCritical    = "VALUE_CRITICALLY_IMPLAUSIBLE"
	RuleFatalOutcome     = "FATAL_OUTCOME_FLAG_DISAGREEMENT"
	RuleSeriousCriteria  = "SERIOUSNESS_CRITERIA_MISSING"
	RuleRefRangeMismatch = "REFERENCE_RANGE_DISAGREEMENT"
	RuleAgeImplausible   = "AGE_OUTSIDE_PLAUSIBLE_RANGE"
)

// StructuralValidator checks the skeleton of a canonical table: required
// variables, the fixed domain constant, key uniqueness, and declared
// field lengths.
type StructuralValidator struct{}

// NewStructuralValidator builds a structural validator.
func NewStructuralValidator() *StructuralValidator {
	return &StructuralValidator{}
}

// Validate runs the structural checks in a single pass.
func (v *StructuralValidator) Validate(table domain.Table, cat domain.Catalogue) domain.Result {
	var issues []domain.Issue

	for _, variable := range cat.ByRequirement(domain.RequirementRequired) {
		allNull := true
		for _, rec := range table.Records {
			if rec.Get(variable.Name) != nil && rec.String(variable.Name) != "" {
				allNull = false
				break
			}
		}
		if allNull {
			issues = append(issues, domain.Issue{
				RuleID:      RuleRequiredMissing,
				Severity:    domain.SeverityError,
				Message:     fmt.Sprintf("required variable %s is missing or fully null", variable.Name),
				Domain:      cat.Domain,
				Variable:    variable.Name,
				RecordCount: len(table.Records),
			})
		}
	}

	wrongDomain := 0
	for _, rec := range table.Records {
		if rec.String("DOMAIN") != string(cat.Domain) {
			wrongDomain++
		}
	}
	if wrongDomain > 0 {
		issues = append(issues, domain.Issue{
			RuleID:      RuleDomainConstant,
			Severity:    domain.SeverityError,
			Message:     fmt.Sprintf("DOMAIN must equal %s for every record", cat.Domain),
			Domain:      cat.Domain,
			Variable:    "DOMAIN",
			RecordCount: wrongDomain,
		})
	}

	issues = append(issues, v.checkKeyUniqueness(table, cat)...)
	issues = append(issues, v.checkLengths(table, cat)...)

	return domain.NewResult(cat.Domain, len(table.Records), issues)
}

func (v *StructuralValidator) checkKeyUniqueness(table domain.Table, cat domain.Catalogue) []domain.Issue {
	seqVar := cat.SequenceVariable()
	seen := make(map[string]int)
	duplicates := 0
	for _, rec := range table.Records {
		key := rec.SubjectID()
		if seqVar != "" {
			key += "|" + rec.String(seqVar)
		}
		seen[key]++
		if seen[key] > 1 {
			duplicates++
		}
	}
	if duplicates == 0 {
		return nil
	}
	keyDesc := "subject"
	if seqVar != "" {
		keyDesc = "subject + " + seqVar
	}
	return []domain.Issue{{
		RuleID:      RuleDuplicateKey,
		Severity:    domain.SeverityError,
		Message:     fmt.Sprintf("%d records share a duplicate %s key", duplicates, keyDesc),
		Domain:      cat.Domain,
		RecordCount: duplicates,
	}}
}

func (v *StructuralValidator) checkLengths(table domain.Table, cat domain.Catalogue) []domain.Issue {
	var issues []domain.Issue
	for _, variable := range cat.Variables {
		if variable.Kind != domain.KindCharacter || variable.MaxLength <= 0 {
			continue
		}
		over := 0
		for _, rec := range table.Records {
			if len(rec.String(variable.Name)) > variable.MaxLength {
				over++
			}
		}
		if over > 0 {
			issues = append(issues, domain.Issue{
				RuleID:      RuleLengthExceeded,
				Severity:    domain.SeverityWarning,
				Message:     fmt.Sprintf("%s exceeds declared length %d", variable.Name, variable.MaxLength),
				Domain:      cat.Domain,
				Variable:    variable.Name,
				RecordCount: over,
			})
		}
	}
	return issues
}
