package mapping

import (
	"context"

	"github.com/clinforge/sdtm/internal/domain"
)

// Suggestion is one candidate mapping from an external knowledge source.
// Target may be a variable name or a free-text label; the discoverer
// matches it against the catalogue before accepting it.
type Suggestion struct {
	Target    string
	Score     float64
	Rationale string
}

// Suggester is the optional external suggestion source consulted for
// columns the built-in strategies could not map. Implementations are
// best-effort: an error is treated as "no suggestion", never as a failure
// of discovery.
type Suggester interface {
	Suggest(ctx context.Context, code domain.Code, column string, samples []string) ([]Suggestion, error)
}

// NoopSuggester is the default Suggester: it never suggests anything.
type NoopSuggester struct{}

// Suggest implements Suggester.
func (NoopSuggester) Suggest(context.Context, domain.Code, string, []string) ([]Suggestion, error) {
	return nil, nil
}

var _ Suggester = NoopSuggester{}
