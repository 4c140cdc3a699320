package safety

import "testing"

func TestKellyFractionWorkedExample(t *testing.T) {
	// p=0.6, net odds b=1 (even money): f* = (0.6*1 - 0.4)/1 = 0.2.
	got := KellyFraction(0.6, 1)
	want := 0.2
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("KellyFraction(0.6, 1) = %v, want %v", got, want)
	}
}

func TestKellyFractionClampsToZeroForNegativeEdge(t *testing.T) {
	// p=0.4, b=1: raw f* = (0.4 - 0.6)/1 = -0.2, clamped to 0 (no edge, no bet).
	if got := KellyFraction(0.4, 1); got != 0 {
		t.Fatalf("KellyFraction with negative edge = %v, want 0", got)
	}
}

func TestKellyFractionZeroOddsIsZero(t *testing.T) {
	if got := KellyFraction(0.9, 0); got != 0 {
		t.Fatalf("KellyFraction with b=0 = %v, want 0", got)
	}
}

func TestSafeStakeWithinBothBounds(t *testing.T) {
	// full Kelly at p=0.6,b=1 is 0.2; quarter-Kelly bound is 0.05, equal
	// to DefaultMaxRisk, so a stake at exactly that ratio is safe.
	ratio, safe := SafeStake(5, 100, 0.6, 1, DefaultKellyFraction, DefaultMaxRisk)
	if !safe {
		t.Fatalf("stake at the quarter-Kelly/max-risk boundary should be safe, ratio=%v", ratio)
	}
}

func TestSafeStakeExceedsKellyBound(t *testing.T) {
	// p=0.51, b=1: full Kelly = 0.02, quarter-Kelly = 0.005; a 5% stake
	// blows through the Kelly bound even though it sits at DefaultMaxRisk.
	_, safe := SafeStake(5, 100, 0.51, 1, DefaultKellyFraction, DefaultMaxRisk)
	if safe {
		t.Fatalf("stake exceeding the Kelly-fraction bound should be unsafe")
	}
}

func TestSafeStakeExceedsMaxRisk(t *testing.T) {
	// p=0.9,b=5: full Kelly = (0.9*5-0.1)/5 = 0.88, quarter-Kelly = 0.22,
	// well above a 10% stake, but 10% > DefaultMaxRisk of 5%.
	_, safe := SafeStake(10, 100, 0.9, 5, DefaultKellyFraction, DefaultMaxRisk)
	if safe {
		t.Fatalf("stake exceeding the absolute max-risk cap should be unsafe even under Kelly")
	}
}

func TestSafeStakeNonPositiveBankrollIsUnsafe(t *testing.T) {
	_, safe := SafeStake(1, 0, 0.6, 1, DefaultKellyFraction, DefaultMaxRisk)
	if safe {
		t.Fatalf("a non-positive bankroll must never be reported safe")
	}
}
