// Package terminology resolves raw categorical values against controlled
// terminology codelists. The resolver normalizes optimistically and never
// rejects input; strict membership flagging is the conformance validator's
// job.
package terminology

import "strings"

// Codelist is one controlled-terminology vocabulary. Decode tables map
// recognized raw spellings, including numeric legacy encodings, onto the
// standard term.
type Codelist struct {
	Name       string
	Extensible bool
	codes      map[string]struct{}
	synonyms   map[string]string
}

// NewCodelist builds a codelist from its standard codes and a synonym
// decode table. Lookup keys are stored uppercased.
func NewCodelist(name string, extensible bool, codes []string, synonyms map[string]string) Codelist {
	cl := Codelist{
		Name:       name,
		Extensible: extensible,
		codes:      make(map[string]struct{}, len(codes)),
		synonyms:   make(map[string]string, len(synonyms)),
	}
	for _, code := range codes {
		cl.codes[normalizeKey(code)] = struct{}{}
	}
	for raw, code := range synonyms {
		cl.synonyms[normalizeKey(raw)] = code
	}
	return cl
}

// Resolve maps a raw value onto the standard term. The boolean result
// reports whether the value was recognized.
func (c Codelist) Resolve(value string) (string, bool) {
	key := normalizeKey(value)
	if key == "" {
		return "", false
	}
	if _, ok := c.codes[key]; ok {
		return key, true
	}
	if code, ok := c.synonyms[key]; ok {
		return code, true
	}
	return key, false
}

// IsStandard reports whether the value is one of the codelist's standard
// terms.
func (c Codelist) IsStandard(value string) bool {
	_, ok := c.codes[normalizeKey(value)]
	return ok
}

// Codes returns the standard terms in no particular order.
func (c Codelist) Codes() []string {
	out := make([]string, 0, len(c.codes))
	for code := range c.codes {
		out = append(out, code)
	}
	return out
}

// Resolver holds the loaded codelists. It is immutable configuration,
// built once and passed explicitly to the transformer and validators.
type Resolver struct {
	lists map[string]Codelist
}

// NewResolver builds a resolver over the given codelists.
func NewResolver(lists []Codelist) *Resolver {
	r := &Resolver{lists: make(map[string]Codelist, len(lists))}
	for _, cl := range lists {
		r.lists[normalizeKey(cl.Name)] = cl
	}
	return r
}

// Lookup returns the named codelist.
func (r *Resolver) Lookup(name string) (Codelist, bool) {
	cl, ok := r.lists[normalizeKey(name)]
	return cl, ok
}

// Resolve maps a raw value onto the standard term of the named codelist.
// It is total: when the codelist is unknown or the value unrecognized, the
// uppercased original is returned unchanged. An empty input stays empty.
func (r *Resolver) Resolve(value, codelist string) string {
	trimmed := normalizeKey(value)
	if trimmed == "" {
		return ""
	}
	cl, ok := r.Lookup(codelist)
	if !ok {
		return trimmed
	}
	resolved, _ := cl.Resolve(value)
	return resolved
}

// Member reports whether a value resolves to a standard term of the named
// codelist. Extensible codelists accept any non-empty value.
func (r *Resolver) Member(value, codelist string) bool {
	cl, ok := r.Lookup(codelist)
	if !ok {
		return true
	}
	if _, recognized := cl.Resolve(value); recognized {
		return true
	}
	return cl.Extensible && normalizeKey(value) != ""
}

func normalizeKey(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}
