package validate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/clinforge/sdtm/internal/domain"
)

// CrossDomainValidator checks relationships that span datasets: subject
// referential integrity against the demographics anchor, supplemental
// qualifier back-references, and visit coverage consistency. It runs once
// per study after every per-domain pipeline has finished.
type CrossDomainValidator struct{}

// NewCrossDomainValidator builds a cross-domain validator.
func NewCrossDomainValidator() *CrossDomainValidator {
	return &CrossDomainValidator{}
}

// Validate checks the given tables as a set. The demographics table is the
// anchor; when it is absent the subject integrity checks are skipped and an
// info issue notes the gap.
func (v *CrossDomainValidator) Validate(tables map[domain.Code]domain.Table) []domain.Issue {
	var issues []domain.Issue

	anchor, hasAnchor := tables[domain.DomainDM]
	if hasAnchor {
		issues = append(issues, v.checkSubjectIntegrity(anchor, tables)...)
	} else if len(tables) > 0 {
		issues = append(issues, domain.Issue{
			RuleID:   RuleUnresolvedRef,
			Severity: domain.SeverityInfo,
			Message:  "no demographics dataset present; subject integrity not checked",
		})
	}

	issues = append(issues, v.checkSupplementalReferences(tables)...)
	issues = append(issues, v.checkVisitCoverage(tables)...)
	return issues
}

// checkSubjectIntegrity flags subjects referenced by a dependent domain but
// absent from demographics. One issue per offending domain, carrying the
// orphan count.
func (v *CrossDomainValidator) checkSubjectIntegrity(anchor domain.Table, tables map[domain.Code]domain.Table) []domain.Issue {
	known := anchor.SubjectSet()
	var issues []domain.Issue
	for _, code := range sortedCodes(tables) {
		if code == domain.DomainDM || isSupplemental(code) {
			continue
		}
		table := tables[code]
		orphans := make(map[string]struct{})
		for _, rec := range table.Records {
			id := rec.SubjectID()
			if id == "" {
				continue
			}
			if _, ok := known[id]; !ok {
				orphans[id] = struct{}{}
			}
		}
		if len(orphans) > 0 {
			issues = append(issues, domain.Issue{
				RuleID:      RuleUnresolvedRef,
				Severity:    domain.SeverityError,
				Message:     fmt.Sprintf("%d subject(s) in %s are not present in demographics", len(orphans), code),
				Domain:      code,
				Variable:    "USUBJID",
				RecordCount: len(orphans),
			})
		}
	}
	return issues
}

// checkSupplementalReferences verifies that every supplemental qualifier
// record points at an existing parent record via RDOMAIN, IDVAR and
// IDVARVAL. Orphans are reported individually; each one is a distinct
// broken link.
func (v *CrossDomainValidator) checkSupplementalReferences(tables map[domain.Code]domain.Table) []domain.Issue {
	var issues []domain.Issue
	for _, code := range sortedCodes(tables) {
		if !isSupplemental(code) {
			continue
		}
		supp := tables[code]
		for i, rec := range supp.Records {
			parentCode := domain.Code(rec.String("RDOMAIN"))
			parent, ok := tables[parentCode]
			if !ok {
				issues = append(issues, domain.Issue{
					RuleID:      RuleOrphanSupplement,
					Severity:    domain.SeverityError,
					Message:     fmt.Sprintf("%s record %d references missing parent dataset %s", code, i+1, parentCode),
					Domain:      code,
					RecordCount: 1,
				})
				continue
			}
			if !parentRecordExists(parent, rec) {
				issues = append(issues, domain.Issue{
					RuleID:      RuleOrphanSupplement,
					Severity:    domain.SeverityError,
					Message:     fmt.Sprintf("%s record %d has no matching %s parent record", code, i+1, parentCode),
					Domain:      code,
					RecordCount: 1,
				})
			}
		}
	}
	return issues
}

func parentRecordExists(parent domain.Table, supp domain.Record) bool {
	subject := supp.SubjectID()
	idvar := supp.String("IDVAR")
	idval := supp.String("IDVARVAL")
	for _, rec := range parent.Records {
		if rec.SubjectID() != subject {
			continue
		}
		if idvar == "" || rec.String(idvar) == idval {
			return true
		}
	}
	return false
}

// checkVisitCoverage compares the visit numbers each domain observed. A
// visit seen in one findings domain but absent from another is worth a
// look, not necessarily wrong, so this is informational.
func (v *CrossDomainValidator) checkVisitCoverage(tables map[domain.Code]domain.Table) []domain.Issue {
	perDomain := make(map[domain.Code]map[string]struct{})
	union := make(map[string]struct{})
	for code, table := range tables {
		if isSupplemental(code) {
			continue
		}
		visits := make(map[string]struct{})
		for _, rec := range table.Records {
			if visit := rec.String("VISITNUM"); visit != "" {
				visits[visit] = struct{}{}
				union[visit] = struct{}{}
			}
		}
		if len(visits) > 0 {
			perDomain[code] = visits
		}
	}
	if len(perDomain) < 2 {
		return nil
	}

	var issues []domain.Issue
	codes := make([]domain.Code, 0, len(perDomain))
	for code := range perDomain {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	for _, code := range codes {
		var missing []string
		for visit := range union {
			if _, ok := perDomain[code][visit]; !ok {
				missing = append(missing, visit)
			}
		}
		if len(missing) == 0 {
			continue
		}
		sort.Strings(missing)
		issues = append(issues, domain.Issue{
			RuleID:      RuleVisitCoverage,
			Severity:    domain.SeverityInfo,
			Message:     fmt.Sprintf("%s has no records for visit(s) %s seen in other domains", code, strings.Join(missing, ", ")),
			Domain:      code,
			Variable:    "VISITNUM",
			RecordCount: len(missing),
		})
	}
	return issues
}

func isSupplemental(code domain.Code) bool {
	return strings.HasPrefix(string(code), "SUPP")
}

func sortedCodes(tables map[domain.Code]domain.Table) []domain.Code {
	codes := make([]domain.Code, 0, len(tables))
	for code := range tables {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}
