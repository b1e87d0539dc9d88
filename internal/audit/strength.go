package audit

import (
	"fmt"
	"math"

	"github.com/nbutton23/zxcvbn-go"
	"github.com/nbutton23/zxcvbn-go/match"
	"github.com/nbutton23/zxcvbn-go/scoring"
)

// Strength is what the rating needs from a pattern-aware estimator: a
// discrete 0-4 score, a crack-time string to display, and remediation
// suggestions in the order they should be shown.
type Strength struct {
	Score            int
	CrackTimeDisplay string
	Suggestions      []string
}

// StrengthEstimator scores a password for realistic guessing resistance.
// Implementations must be local and deterministic; no I/O.
type StrengthEstimator interface {
	Estimate(password string) Strength
}

// Guess rate of an offline attacker against a slow hash (bcrypt/scrypt
// class). The most conservative of the usual zxcvbn attack scenarios.
const slowHashGuessesPerSecond = 1e4

// ZxcvbnEstimator scores with the zxcvbn pattern matcher. The Go port
// exposes a single crack model and no feedback strings, so the display
// time is recomputed for the slow-hash offline attacker and suggestions
// are derived from the match sequence.
type ZxcvbnEstimator struct{}

func (ZxcvbnEstimator) Estimate(password string) Strength {
	res := zxcvbn.PasswordStrength(password, nil)

	guesses := 0.5 * math.Pow(2, res.Entropy)
	return Strength{
		Score:            res.Score,
		CrackTimeDisplay: displayTime(guesses / slowHashGuessesPerSecond),
		Suggestions:      suggestions(res),
	}
}

func displayTime(seconds float64) string {
	const (
		minute  = 60
		hour    = minute * 60
		day     = hour * 24
		month   = day * 31
		year    = month * 12
		century = year * 100
	)

	switch {
	case seconds < 1:
		return "less than a second"
	case seconds < minute:
		return plural(seconds, "second")
	case seconds < hour:
		return plural(seconds/minute, "minute")
	case seconds < day:
		return plural(seconds/hour, "hour")
	case seconds < month:
		return plural(seconds/day, "day")
	case seconds < year:
		return plural(seconds/month, "month")
	case seconds < century:
		return plural(seconds/year, "year")
	default:
		return "centuries"
	}
}

func plural(value float64, unit string) string {
	n := math.Round(value)
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%.0f %ss", n, unit)
}

// suggestions maps the dominant match of a weak password to the classic
// zxcvbn feedback texts. Strong passwords (score 3+) get none.
func suggestions(res scoring.MinEntropyMatch) []string {
	if res.Score > 2 {
		return nil
	}

	out := []string{"Add another word or two. Uncommon words are better."}

	var longest match.Match
	for _, m := range res.MatchSequence {
		if len(m.Token) > len(longest.Token) {
			longest = m
		}
	}

	switch longest.Pattern {
	case "dictionary":
		out = append(out, "Avoid common words, names and predictable substitutions.")
	case "spatial":
		out = append(out, "Use a longer keyboard pattern with more turns.")
	case "repeat":
		out = append(out, "Avoid repeated words and characters.")
	case "sequence":
		out = append(out, "Avoid sequences.")
	case "date":
		out = append(out, "Avoid dates and years that are associated with you.")
	}

	return out
}
