package explain

import (
	"context"
	"log/slog"
	"strings"

	"divvy/internal/models"
)

// Explainer produces a natural-language explanation of the current
// settlement, preferring the configured generator and falling back to the
// algorithmic explanation when the generator is absent, fails, or returns
// empty output.
type Explainer struct {
	gen Generator
}

// New returns an Explainer. gen may be nil, in which case every
// explanation uses the fallback.
func New(gen Generator) *Explainer {
	return &Explainer{gen: gen}
}

// Explain returns the explanation text for the given ledger snapshot.
func (e *Explainer) Explain(ctx context.Context, summary string, balances []models.Balance, transfers []models.Transfer) string {
	if e.gen != nil {
		text, err := e.gen.Generate(ctx, summary)
		if err != nil {
			slog.Warn("Explanation generator failed, using fallback", "error", err)
		} else if strings.TrimSpace(text) != "" {
			return text
		} else {
			slog.Debug("Explanation generator returned empty output, using fallback")
		}
	}
	return Fallback(balances, transfers)
}
