// Package mapping discovers which raw source columns correspond to which
// catalogue variables for a target domain. Four strategies run in priority
// order (name patterns, fuzzy name similarity, value-shape inference,
// external suggestions); each later strategy only considers columns and
// variables the earlier ones left unclaimed.
package mapping

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/clinforge/sdtm/internal/domain"
)

const (
	defaultSampleLimit = 100

	fuzzyAcceptScore      = 0.6
	suggestionAcceptScore = 0.5
)

// Discoverer produces DomainMappingSpecs. It carries no per-table state;
// one Discoverer may serve any number of tables and domains.
type Discoverer struct {
	suggester   Suggester
	sampleLimit int
}

// NewDiscoverer builds a discoverer. A nil suggester disables the external
// knowledge step.
func NewDiscoverer(suggester Suggester) *Discoverer {
	if suggester == nil {
		suggester = NoopSuggester{}
	}
	return &Discoverer{suggester: suggester, sampleLimit: defaultSampleLimit}
}

// Discover derives the mapping spec for one (source table, domain) pair.
// It never fails: partial and ambiguous input yield lower confidence and
// unmapped leftovers, not errors. The result is meant to be computed once
// per table and reused for every row.
func (d *Discoverer) Discover(ctx context.Context, table domain.RawTable, cat domain.Catalogue) domain.MappingSpec {
	spec := domain.MappingSpec{Domain: cat.Domain}

	claimedVars := make(map[string]struct{})
	claimedCols := make(map[string]struct{})

	claim := func(m domain.ColumnMapping) {
		if v, ok := cat.Variable(m.TargetVariable); ok {
			m.Codelist = v.Codelist
		}
		spec.Mappings = append(spec.Mappings, m)
		claimedVars[m.TargetVariable] = struct{}{}
		claimedCols[strings.ToUpper(m.SourceColumn)] = struct{}{}
	}

	d.applyPatterns(table, cat, claimedVars, claimedCols, claim)
	d.applyFuzzy(table, cat, claimedVars, claimedCols, claim)
	d.applyShapes(table, cat, claimedVars, claimedCols, claim)
	d.applySuggestions(ctx, table, cat, claimedVars, claimedCols, claim)

	for _, col := range table.Columns {
		if _, ok := claimedCols[strings.ToUpper(col)]; !ok {
			spec.UnmappedColumns = append(spec.UnmappedColumns, col)
		}
	}
	for _, v := range cat.Variables {
		if v.Name == "DOMAIN" || v.Name == cat.SequenceVariable() || v.Name == "USUBJID" {
			// Always derived by the transformer, never mapped from source.
			continue
		}
		if _, ok := claimedVars[v.Name]; !ok {
			spec.UnmappedVariables = append(spec.UnmappedVariables, v.Name)
		}
	}

	return spec
}

func (d *Discoverer) applyPatterns(table domain.RawTable, cat domain.Catalogue, claimedVars, claimedCols map[string]struct{}, claim func(domain.ColumnMapping)) {
	patterns := patternsFor(cat.Domain)
	for _, col := range table.Columns {
		name := strings.TrimSpace(col)
		if _, taken := claimedCols[strings.ToUpper(name)]; taken {
			continue
		}
		for _, p := range patterns {
			if !p.re.MatchString(name) {
				continue
			}
			if _, ok := cat.Variable(p.target); !ok {
				continue
			}
			if _, taken := claimedVars[p.target]; taken {
				continue
			}
			claim(domain.ColumnMapping{
				SourceColumn:   col,
				TargetVariable: p.target,
				Confidence:     p.confidence,
				Reason:         fmt.Sprintf("column name matches pattern %s", p.re.String()),
				Strategy:       domain.StrategyPattern,
			})
			break
		}
	}
}

func (d *Discoverer) applyFuzzy(table domain.RawTable, cat domain.Catalogue, claimedVars, claimedCols map[string]struct{}, claim func(domain.ColumnMapping)) {
	for _, col := range table.Columns {
		if _, taken := claimedCols[strings.ToUpper(col)]; taken {
			continue
		}

		bestScore := 0.0
		bestVar := ""
		for _, v := range cat.Variables {
			if _, taken := claimedVars[v.Name]; taken {
				continue
			}
			if score := similarity(col, v.Name); score > bestScore {
				bestScore = score
				bestVar = v.Name
			}
		}

		if bestVar == "" || bestScore < fuzzyAcceptScore {
			continue
		}
		claim(domain.ColumnMapping{
			SourceColumn:   col,
			TargetVariable: bestVar,
			Confidence:     bestScore,
			Reason:         fmt.Sprintf("name similarity %.2f to %s", bestScore, bestVar),
			Strategy:       domain.StrategyFuzzy,
		})
	}
}

func (d *Discoverer) applyShapes(table domain.RawTable, cat domain.Catalogue, claimedVars, claimedCols map[string]struct{}, claim func(domain.ColumnMapping)) {
	for _, col := range table.Columns {
		if _, taken := claimedCols[strings.ToUpper(col)]; taken {
			continue
		}
		samples := table.SampleValues(col, d.sampleLimit)
		shape, ok := detectShape(samples)
		if !ok {
			continue
		}
		target, ok := inferShapeTarget(shape, col, cat)
		if !ok {
			continue
		}
		if _, taken := claimedVars[target]; taken {
			continue
		}
		claim(domain.ColumnMapping{
			SourceColumn:   col,
			TargetVariable: target,
			Confidence:     shapeConfidence(shape),
			Reason:         fmt.Sprintf("sampled values are %s-shaped", shape),
			Strategy:       domain.StrategyShape,
		})
	}
}

func (d *Discoverer) applySuggestions(ctx context.Context, table domain.RawTable, cat domain.Catalogue, claimedVars, claimedCols map[string]struct{}, claim func(domain.ColumnMapping)) {
	if _, isNoop := d.suggester.(NoopSuggester); isNoop {
		return
	}
	for _, col := range table.Columns {
		if _, taken := claimedCols[strings.ToUpper(col)]; taken {
			continue
		}
		suggestions, err := d.suggester.Suggest(ctx, cat.Domain, col, table.SampleValues(col, d.sampleLimit))
		if err != nil {
			// Best effort: a failed lookup yields no candidate for this column.
			log.Printf("[MAPPING] suggestion lookup failed for column %s: %v", col, err)
			continue
		}

		bestScore := 0.0
		bestVar := ""
		var bestSuggestion Suggestion
		for _, s := range suggestions {
			for _, v := range cat.Variables {
				if _, taken := claimedVars[v.Name]; taken {
					continue
				}
				score := similarity(s.Target, v.Name)
				if labelScore := similarity(s.Target, v.Label); labelScore > score {
					score = labelScore
				}
				if score > bestScore {
					bestScore = score
					bestVar = v.Name
					bestSuggestion = s
				}
			}
		}

		if bestVar == "" || bestScore < suggestionAcceptScore {
			continue
		}
		reason := fmt.Sprintf("external suggestion %q matched %s (%.2f)", bestSuggestion.Target, bestVar, bestScore)
		if bestSuggestion.Rationale != "" {
			reason += ": " + bestSuggestion.Rationale
		}
		claim(domain.ColumnMapping{
			SourceColumn:   col,
			TargetVariable: bestVar,
			Confidence:     bestScore,
			Reason:         reason,
			Strategy:       domain.StrategySuggestion,
		})
	}
}

func shapeConfidence(shape valueShape) float64 {
	switch shape {
	case shapeSex, shapeSeverity, shapeCausality, shapeOutcome:
		return 0.65
	case shapeDate, shapeYesNo:
		return 0.6
	default:
		return 0.55
	}
}
