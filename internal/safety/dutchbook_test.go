package safety

import "testing"

func TestValidateAcceptsExactPartition(t *testing.T) {
	margin, err := Validate([]float64{0.5, 0.3, 0.2}, DefaultTolerance)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if margin > DefaultTolerance {
		t.Fatalf("margin %v exceeds tolerance for an exact partition", margin)
	}
}

func TestValidateRejectsNegativeProbability(t *testing.T) {
	if _, err := Validate([]float64{-0.1, 1.1}, DefaultTolerance); err == nil {
		t.Fatalf("expected error for a negative probability")
	}
}

func TestValidateRejectsBookmakerOverround(t *testing.T) {
	// A classic Dutch-book: implied probabilities summing well above 1.
	if _, err := Validate([]float64{0.6, 0.6}, DefaultTolerance); err == nil {
		t.Fatalf("expected a margin-exceeds-tolerance error for an overround book")
	}
}

func TestNormalizeDividesByTotal(t *testing.T) {
	probs, err := Normalize([]float64{1, 1, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{0.25, 0.25, 0.5}
	for i, p := range probs {
		if p != want[i] {
			t.Fatalf("Normalize()[%d] = %v, want %v", i, p, want[i])
		}
	}
}

func TestNormalizeRejectsZeroTotal(t *testing.T) {
	if _, err := Normalize([]float64{0, 0}); err == nil {
		t.Fatalf("expected error for zero total weight")
	}
}

func TestNormalizeRejectsNegativeWeight(t *testing.T) {
	if _, err := Normalize([]float64{1, -1}); err == nil {
		t.Fatalf("expected error for a negative weight")
	}
}

func TestFromOddsConvertsDecimalOdds(t *testing.T) {
	// Two-outcome fair book at even odds: 1/2 + 1/2 = 1.
	margin, err := FromOdds([]float64{2.0, 2.0}, DefaultTolerance)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if margin > DefaultTolerance {
		t.Fatalf("margin %v exceeds tolerance for a fair two-outcome book", margin)
	}
}

func TestFromOddsRejectsNonPositiveOdds(t *testing.T) {
	if _, err := FromOdds([]float64{0, 2.0}, DefaultTolerance); err == nil {
		t.Fatalf("expected error for non-positive odds")
	}
}
