// Package audit rates a candidate password by combining three independent
// signals: structural keyspace entropy, a pattern-aware strength score and
// a k-anonymity breach lookup. Each evaluation is a standalone pipeline
// over the input password; nothing is shared or kept between calls.
package audit

import (
	"context"
	"unicode/utf8"

	"pwd-audit/pkg/hibp"
)

// BreachChecker is the capability the pipeline needs from a breach corpus.
// Lookup trouble is reported through the result, not an error, so a broken
// corpus degrades the report instead of aborting it.
type BreachChecker interface {
	Check(ctx context.Context, password string) hibp.Result
}

type Auditor struct {
	breach   BreachChecker
	strength StrengthEstimator
}

func NewAuditor(breach BreachChecker, strength StrengthEstimator) *Auditor {
	return &Auditor{breach: breach, strength: strength}
}

// Run evaluates one password. The breach lookup is the only call that may
// block, bounded by the checker's timeout.
func (a *Auditor) Run(ctx context.Context, password string) Report {
	entropy := EstimateEntropy(password)
	breach := a.breach.Check(ctx, password)
	strength := a.strength.Estimate(password)

	return Report{
		Length:      utf8.RuneCountInString(password),
		Rating:      Aggregate(breach, strength),
		Breach:      breach,
		Strength:    strength,
		EntropyBits: entropy,
	}
}
