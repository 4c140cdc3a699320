package safety

import (
	"context"
	"testing"

	"github.com/hyperpolymath/betlang/internal/rng"
)

func TestAnalyticRiskOfRuin(t *testing.T) {
	if got := Analytic(200, 100); got != 0.5 {
		t.Fatalf("Analytic(200, 100) = %v, want 0.5", got)
	}
	if got := Analytic(100, 100); got != 0 {
		t.Fatalf("Analytic(100, 100) = %v, want 0 (already at target)", got)
	}
	if got := Analytic(0, 100); got != 1 {
		t.Fatalf("Analytic with non-positive target = %v, want 1", got)
	}
}

func TestAnalyticRiskOfRuinClampsToUnitInterval(t *testing.T) {
	if got := Analytic(100, 500); got != 0 {
		t.Fatalf("wealth already past target should clamp to 0, got %v", got)
	}
}

func TestMonteCarloDeterministicUnderFixedSeed(t *testing.T) {
	ctx := context.Background()
	src1 := rng.NewSource(11)
	got1, err := MonteCarlo(ctx, src1, 100, 5, 0.5, 1, 0, 200, 500, 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	src2 := rng.NewSource(11)
	got2, err := MonteCarlo(ctx, src2, 100, 5, 0.5, 1, 0, 200, 500, 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got1 != got2 {
		t.Fatalf("MonteCarlo estimates diverged under identical seeds: %v vs %v", got1, got2)
	}
}

func TestMonteCarloWithinUnitRange(t *testing.T) {
	src := rng.NewSource(3)
	got, err := MonteCarlo(context.Background(), src, 100, 5, 0.5, 1, 0, 200, 1000, 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got < 0 || got > 1 {
		t.Fatalf("MonteCarlo ruin estimate out of [0,1]: %v", got)
	}
}

func TestMonteCarloUnfavorableEdgeRuinsAlmostAlways(t *testing.T) {
	// p well below break-even and a low ruin threshold close to starting
	// wealth: nearly every trajectory should be ruined before reaching
	// the (distant) target.
	src := rng.NewSource(5)
	got, err := MonteCarlo(context.Background(), src, 100, 10, 0.2, 1, 50, 1000, 500, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got < 0.9 {
		t.Fatalf("expected near-certain ruin under an unfavorable edge, got %v", got)
	}
}

func TestMonteCarloZeroTrajectoriesIsZero(t *testing.T) {
	src := rng.NewSource(1)
	got, err := MonteCarlo(context.Background(), src, 100, 5, 0.5, 1, 0, 200, 0, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Fatalf("MonteCarlo with 0 trajectories = %v, want 0", got)
	}
}
