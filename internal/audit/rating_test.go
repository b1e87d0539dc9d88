package audit

import (
	"strings"
	"testing"

	"pwd-audit/pkg/hibp"
)

func TestAggregateBreachDominates(t *testing.T) {
	breached := hibp.Result{Status: hibp.StatusBreached, Count: 3861493}
	for score := 0; score <= 4; score++ {
		if got := Aggregate(breached, Strength{Score: score}); got != RatingCompromised {
			t.Errorf("Aggregate with breach and score %d: %v, want: %v", score, got, RatingCompromised)
		}
	}
}

func TestAggregateScoreTiers(t *testing.T) {
	cases := []struct {
		score int
		want  Rating
	}{
		{0, RatingPoor},
		{1, RatingPoor},
		{2, RatingFair},
		{3, RatingGood},
		{4, RatingExcellent},
	}

	for _, tc := range cases {
		got := Aggregate(hibp.Result{Status: hibp.StatusClean}, Strength{Score: tc.score})
		if got != tc.want {
			t.Errorf("Aggregate with score %d: %v, want: %v", tc.score, got, tc.want)
		}
	}
}

func TestAggregateFailedCheckStaysFailOpen(t *testing.T) {
	// An unavailable corpus must not read as a confirmed breach; the tier
	// falls back to the strength score and the report carries the caveat.
	failed := hibp.Result{Status: hibp.StatusFailed}
	for score := 0; score <= 4; score++ {
		if got := Aggregate(failed, Strength{Score: score}); got == RatingCompromised {
			t.Errorf("A failed check with score %d should never rate as compromised", score)
		}
	}

	if got := Aggregate(failed, Strength{Score: 4}); got != RatingExcellent {
		t.Errorf("A failed check with score 4: %v, want: %v", got, RatingExcellent)
	}
}

func TestReportRender(t *testing.T) {
	report := Report{
		Length:      11,
		Rating:      RatingCompromised,
		Breach:      hibp.Result{Status: hibp.StatusBreached, Count: 3861493},
		Strength:    Strength{Score: 0, CrackTimeDisplay: "less than a second", Suggestions: []string{"Avoid sequences."}},
		EntropyBits: 51.7,
	}

	out := report.Render()
	for _, want := range []string{
		"Password: ***********",
		"Length: 11",
		"COMPROMISED (CRITICAL) - Found 3,861,493 times in breaches!",
		"Strength Score: 0/4",
		"Keyspace Entropy: 51.70 bits",
		"Estimated Crack Time: less than a second (Slow-Hash Offline Attack)",
		"Suggestions for Improvement:",
		" - Avoid sequences.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Report should contain %q, was:\n%s", want, out)
		}
	}
}

func TestReportRenderOmitsEmptySuggestions(t *testing.T) {
	report := Report{
		Length:   20,
		Rating:   RatingExcellent,
		Breach:   hibp.Result{Status: hibp.StatusClean},
		Strength: Strength{Score: 4, CrackTimeDisplay: "centuries"},
	}

	if out := report.Render(); strings.Contains(out, "Suggestions") {
		t.Errorf("Report without suggestions should omit the section, was:\n%s", out)
	}
}

func TestReportRenderSurfacesFailedCheck(t *testing.T) {
	report := Report{
		Length:   8,
		Rating:   RatingPoor,
		Breach:   hibp.Result{Status: hibp.StatusFailed},
		Strength: Strength{Score: 1, CrackTimeDisplay: "3 hours"},
	}

	if out := report.Render(); !strings.Contains(out, "Breach Check: unavailable") {
		t.Errorf("Report should surface a failed breach check, was:\n%s", out)
	}
}

func TestSummaryMasksPassword(t *testing.T) {
	report := Report{
		Length:   6,
		Rating:   RatingPoor,
		Breach:   hibp.Result{Status: hibp.StatusBreached, Count: 42},
		Strength: Strength{Score: 1},
	}

	out := report.Summary()
	if !strings.HasPrefix(out, "******") {
		t.Errorf("Summary should start with the mask, was %q", out)
	}
	if !strings.Contains(out, "breached=42") {
		t.Errorf("Summary should carry the breach count, was %q", out)
	}
}
