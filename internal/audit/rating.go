package audit

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"pwd-audit/pkg/hibp"
)

// Rating is the overall verdict for one evaluated password. It is derived
// fresh per evaluation and never cached.
type Rating int

const (
	RatingPoor Rating = iota
	RatingFair
	RatingGood
	RatingExcellent
	RatingCompromised
)

func (r Rating) String() string {
	switch r {
	case RatingCompromised:
		return "COMPROMISED (CRITICAL)"
	case RatingExcellent:
		return "Excellent (Very Strong)"
	case RatingGood:
		return "Good (Strong)"
	case RatingFair:
		return "Fair (Medium)"
	default:
		return "Poor (Weak)"
	}
}

// Aggregate ranks the signals with a fixed precedence: a confirmed breach
// outranks any structural quality, then the strength score decides the
// tier. A failed breach check never upgrades to Compromised; the report
// surfaces it instead. Entropy does not participate, it only annotates the
// report, since it overstates strength for structured passwords.
func Aggregate(breach hibp.Result, strength Strength) Rating {
	switch {
	case breach.Breached():
		return RatingCompromised
	case strength.Score == 4:
		return RatingExcellent
	case strength.Score >= 3:
		return RatingGood
	case strength.Score >= 2:
		return RatingFair
	default:
		return RatingPoor
	}
}

// Report is everything shown to the user for one evaluation. It carries
// the password's length, never the password.
type Report struct {
	Length      int
	Rating      Rating
	Breach      hibp.Result
	Strength    Strength
	EntropyBits float64
}

// Render produces the fixed-format analysis report.
func (r Report) Render() string {
	var b strings.Builder

	b.WriteString("\n--- Password Analysis Report ---\n")
	fmt.Fprintf(&b, "Password: %s\n", strings.Repeat("*", r.Length))
	fmt.Fprintf(&b, "Length: %d\n", r.Length)
	fmt.Fprintf(&b, "Overall Rating: %s\n", r.ratingLine())

	b.WriteString("\n--- Security Metrics ---\n")
	fmt.Fprintf(&b, "Strength Score: %d/4 (Realistic Strength)\n", r.Strength.Score)
	fmt.Fprintf(&b, "Keyspace Entropy: %.2f bits (Upper Bound)\n", r.EntropyBits)
	fmt.Fprintf(&b, "Estimated Crack Time: %s (Slow-Hash Offline Attack)\n", r.Strength.CrackTimeDisplay)
	if r.Breach.Failed() {
		b.WriteString("Breach Check: unavailable (lookup service could not be reached)\n")
	}

	if len(r.Strength.Suggestions) > 0 {
		b.WriteString("\nSuggestions for Improvement:\n")
		for _, s := range r.Strength.Suggestions {
			fmt.Fprintf(&b, " - %s\n", s)
		}
	}

	b.WriteString(strings.Repeat("-", 30) + "\n")
	return b.String()
}

func (r Report) ratingLine() string {
	if r.Rating == RatingCompromised {
		p := message.NewPrinter(language.English)
		return p.Sprintf("%s - Found %d times in breaches!", r.Rating, r.Breach.Count)
	}
	return r.Rating.String()
}

// Summary is the one-line variant used by batch output. Same rule as the
// full report: masked, never the raw password.
func (r Report) Summary() string {
	s := fmt.Sprintf("%s len=%d rating=%q score=%d/4 entropy=%.2f",
		strings.Repeat("*", r.Length), r.Length, r.Rating, r.Strength.Score, r.EntropyBits)

	switch {
	case r.Breach.Breached():
		p := message.NewPrinter(language.English)
		s += p.Sprintf(" breached=%d", r.Breach.Count)
	case r.Breach.Failed():
		s += " breach-check=failed"
	}

	return s
}
