package audit

import (
	"context"
	"errors"
	"strings"
	"testing"

	"pwd-audit/pkg/hibp"
)

type fakeChecker struct {
	result hibp.Result
}

func (f fakeChecker) Check(_ context.Context, _ string) hibp.Result {
	return f.result
}

type fakeEstimator struct {
	strength Strength
}

func (f fakeEstimator) Estimate(_ string) Strength {
	return f.strength
}

func TestAuditorBreachedPassword(t *testing.T) {
	auditor := NewAuditor(
		fakeChecker{hibp.Result{Status: hibp.StatusBreached, Count: 17}},
		fakeEstimator{Strength{Score: 4, CrackTimeDisplay: "centuries"}},
	)

	report := auditor.Run(context.Background(), "Tr0ub4dour&3-but-leaked")
	if report.Rating != RatingCompromised {
		t.Errorf("A breached password should rate as compromised even at score 4, was %v", report.Rating)
	}
	if report.Breach.Count != 17 {
		t.Errorf("Breach count should pass through, was %d", report.Breach.Count)
	}
}

func TestAuditorFailedCheck(t *testing.T) {
	auditor := NewAuditor(
		fakeChecker{hibp.Result{Status: hibp.StatusFailed, Err: errors.New("dial timeout")}},
		fakeEstimator{Strength{Score: 2, CrackTimeDisplay: "4 days"}},
	)

	report := auditor.Run(context.Background(), "s0me-Pas$word")
	if report.Rating != RatingFair {
		t.Errorf("A failed check should fall back to the score tier, was %v", report.Rating)
	}
	if !strings.Contains(report.Render(), "Breach Check: unavailable") {
		t.Errorf("The report should state that the check failed")
	}
}

func TestAuditorReportFields(t *testing.T) {
	auditor := NewAuditor(
		fakeChecker{hibp.Result{Status: hibp.StatusClean}},
		fakeEstimator{Strength{Score: 3, CrackTimeDisplay: "2 years"}},
	)

	password := "Añ1!xkcd"
	report := auditor.Run(context.Background(), password)

	if report.Length != 8 {
		t.Errorf("Length should count runes, was %d", report.Length)
	}
	if report.EntropyBits != EstimateEntropy(password) {
		t.Errorf("Report should carry the entropy of the input")
	}
	if strings.Contains(report.Render(), password) {
		t.Errorf("The raw password must never appear in the report")
	}
}
