package domain

import "strings"

// Code identifies a target SDTM domain.
type Code string

const (
	DomainDM Code = "DM" // demographics
	DomainAE Code = "AE" // adverse events
	DomainVS Code = "VS" // vital signs
	DomainLB Code = "LB" // laboratory results
	DomainCM Code = "CM" // concomitant medications
	DomainEX Code = "EX" // exposure
	DomainMH Code = "MH" // medical history
	DomainDS Code = "DS" // disposition
)

// DataKind represents the declared data type of a catalogue variable.
type DataKind string

const (
	KindCharacter DataKind = "character"
	KindNumeric   DataKind = "numeric"
)

// Requirement represents the conformance tier of a catalogue variable.
type Requirement string

const (
	RequirementRequired    Requirement = "required"
	RequirementExpected    Requirement = "expected"
	RequirementPermissible Requirement = "permissible"
)

// Role classifies a variable's function within its domain.
type Role string

const (
	RoleIdentifier Role = "identifier"
	RoleTopic      Role = "topic"
	RoleQualifier  Role = "qualifier"
	RoleTiming     Role = "timing"
)

// Variable is one entry of a domain catalogue.
type Variable struct {
	Name        string      `json:"name"`
	Label       string      `json:"label"`
	Kind        DataKind    `json:"kind"`
	Requirement Requirement `json:"requirement"`
	Role        Role        `json:"role"`
	Codelist    string      `json:"codelist,omitempty"`
	MaxLength   int         `json:"maxLength,omitempty"` // 0 means unbounded
}

// Catalogue is the authoritative variable list for one target domain.
// Catalogues are static reference data; they are loaded once and never
// mutated at run time.
type Catalogue struct {
	Domain              Code       `json:"domain"`
	Label               string     `json:"label"`
	OneRecordPerSubject bool       `json:"oneRecordPerSubject"`
	Variables           []Variable `json:"variables"`
}

// Variable returns the catalogue entry for the named variable.
func (c Catalogue) Variable(name string) (Variable, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for _, v := range c.Variables {
		if v.Name == name {
			return v, true
		}
	}
	return Variable{}, false
}

// SequenceVariable returns the name of the domain's sequence variable, or ""
// for one-record-per-subject domains.
func (c Catalogue) SequenceVariable() string {
	if c.OneRecordPerSubject {
		return ""
	}
	return string(c.Domain) + "SEQ"
}

// MaterializedVariables returns the variables every canonical record must
// carry as keys, i.e. the required and expected tiers.
func (c Catalogue) MaterializedVariables() []Variable {
	out := make([]Variable, 0, len(c.Variables))
	for _, v := range c.Variables {
		if v.Requirement == RequirementRequired || v.Requirement == RequirementExpected {
			out = append(out, v)
		}
	}
	return out
}

// ByRequirement returns the variables of the given tier in declaration order.
func (c Catalogue) ByRequirement(req Requirement) []Variable {
	var out []Variable
	for _, v := range c.Variables {
		if v.Requirement == req {
			out = append(out, v)
		}
	}
	return out
}

// CanonicalOrder returns the deterministic output column order: required,
// then expected, then permissible, then any extras appended at the end in
// the order supplied.
func (c Catalogue) CanonicalOrder(extras []string) []string {
	order := make([]string, 0, len(c.Variables)+len(extras))
	for _, req := range []Requirement{RequirementRequired, RequirementExpected, RequirementPermissible} {
		for _, v := range c.ByRequirement(req) {
			order = append(order, v.Name)
		}
	}
	seen := make(map[string]struct{}, len(order))
	for _, name := range order {
		seen[name] = struct{}{}
	}
	for _, extra := range extras {
		if _, ok := seen[extra]; ok {
			continue
		}
		seen[extra] = struct{}{}
		order = append(order, extra)
	}
	return order
}
