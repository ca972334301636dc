package domain

import (
	"sort"
	"strings"
)

// MappingStrategy identifies which discovery strategy produced a mapping.
type MappingStrategy string

const (
	StrategyPattern    MappingStrategy = "pattern"
	StrategyFuzzy      MappingStrategy = "fuzzy"
	StrategyShape      MappingStrategy = "shape"
	StrategySuggestion MappingStrategy = "suggestion"
	StrategyDeclared   MappingStrategy = "declared"
)

// ColumnMapping binds one source column to one target catalogue variable.
type ColumnMapping struct {
	SourceColumn   string          `json:"sourceColumn"`
	TargetVariable string          `json:"targetVariable"`
	Confidence     float64         `json:"confidence"`
	Reason         string          `json:"reason"`
	Strategy       MappingStrategy `json:"strategy"`
	Codelist       string          `json:"codelist,omitempty"`
}

// MappingSpec is the discovery result for one (source table, domain) pair.
// It is derived once per table and reused for every row of that table.
// Invariant: a target variable appears in at most one mapping.
type MappingSpec struct {
	Domain            Code            `json:"domain"`
	Mappings          []ColumnMapping `json:"mappings"`
	UnmappedColumns   []string        `json:"unmappedColumns"`
	UnmappedVariables []string        `json:"unmappedVariables"`
}

// ForVariable returns the mapping claiming the given target variable.
func (s MappingSpec) ForVariable(name string) (ColumnMapping, bool) {
	for _, m := range s.Mappings {
		if m.TargetVariable == name {
			return m, true
		}
	}
	return ColumnMapping{}, false
}

// ClaimedVariables returns the set of target variables already bound.
func (s MappingSpec) ClaimedVariables() map[string]struct{} {
	claimed := make(map[string]struct{}, len(s.Mappings))
	for _, m := range s.Mappings {
		claimed[m.TargetVariable] = struct{}{}
	}
	return claimed
}

// ClaimedColumns returns the set of source columns already bound, keyed
// by uppercased column name.
func (s MappingSpec) ClaimedColumns() map[string]struct{} {
	claimed := make(map[string]struct{}, len(s.Mappings))
	for _, m := range s.Mappings {
		claimed[strings.ToUpper(strings.TrimSpace(m.SourceColumn))] = struct{}{}
	}
	return claimed
}

// Sorted returns a copy with mappings ordered by descending confidence and
// then target variable name, for stable reporting.
func (s MappingSpec) Sorted() MappingSpec {
	out := s
	out.Mappings = append([]ColumnMapping(nil), s.Mappings...)
	sort.SliceStable(out.Mappings, func(i, j int) bool {
		if out.Mappings[i].Confidence != out.Mappings[j].Confidence {
			return out.Mappings[i].Confidence > out.Mappings[j].Confidence
		}
		return out.Mappings[i].TargetVariable < out.Mappings[j].TargetVariable
	})
	return out
}
