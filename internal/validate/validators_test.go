package validate

import (
	"reflect"
	"testing"

	"github.com/clinforge/sdtm/internal/domain"
)

// The table validators share no state; running them in any order must
// yield the same issue multiset over the same table.
func TestValidatorOrderIndependence(t *testing.T) {
	cat, _ := domain.CatalogueFor(domain.DomainAE)
	table := domain.Table{Domain: domain.DomainAE, Records: []domain.Record{
		aeRecord(map[string]any{"AESEV": "HORRIBLE"}),
		aeRecord(map[string]any{"AEOUT": "FATAL"}), // duplicates AESEQ 1
		aeRecord(map[string]any{"AESEQ": float64(2), "AESER": "MAYBE"}),
	}}

	type validator interface {
		Validate(domain.Table, domain.Catalogue) domain.Result
	}
	validators := []validator{
		NewStructuralValidator(),
		NewConformanceValidator(nil),
		NewSemanticValidator(),
	}

	tally := func(order ...int) map[domain.Issue]int {
		counts := map[domain.Issue]int{}
		for _, i := range order {
			for _, issue := range validators[i].Validate(table, cat).Issues {
				counts[issue]++
			}
		}
		return counts
	}

	forward := tally(0, 1, 2)
	reversed := tally(2, 1, 0)

	if !reflect.DeepEqual(forward, reversed) {
		t.Fatalf("issue multisets differ:\nforward:  %v\nreversed: %v", forward, reversed)
	}

	// Each layer contributes at least one finding to the fixture, so the
	// comparison is not vacuous.
	for _, rule := range []string{RuleDuplicateKey, RuleCTNonconformant, RuleFatalOutcome} {
		found := false
		for issue := range forward {
			if issue.RuleID == rule {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("no %s issue raised over the fixture", rule)
		}
	}
}
