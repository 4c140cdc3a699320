package safety

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/hyperpolymath/betlang/internal/rng"
)

// DefaultTrajectories and DefaultMaxBets are the Monte-Carlo estimator's
// default bounds (spec §4.8: "up to N trajectories (default 10^4) for
// up to K bets (default 10^3)").
const (
	DefaultTrajectories = 10000
	DefaultMaxBets      = 1000
)

// Analytic computes the symmetric fair-game (p=0.5) ruin probability:
// RoR = (target - wealth) / target (spec §4.8), clamped to [0, 1].
func Analytic(target, wealth float64) float64 {
	if target <= 0 {
		return 1
	}
	ror := (target - wealth) / target
	switch {
	case ror < 0:
		return 0
	case ror > 1:
		return 1
	default:
		return ror
	}
}

// MonteCarlo estimates ruin probability across `trajectories`
// independent wealth paths of up to `maxBets` bets each. Each
// trajectory draws its own seed sequentially from src before any
// goroutine starts, then runs on an independent *rng.Source derived
// from that seed — this keeps the whole estimate reproducible under a
// fixed seed (the per-trajectory seed draw order is fixed) while still
// letting the trajectories themselves run concurrently via
// golang.org/x/sync/errgroup, grounded on
// SeleniaProject-Orizon/internal/packagemanager/manager.go's
// errgroup.WithContext fan-out.
func MonteCarlo(ctx context.Context, src *rng.Source, wealth, stake, p, b, ruinThreshold, target float64, trajectories, maxBets int) (float64, error) {
	if trajectories <= 0 {
		return 0, nil
	}

	seeds := make([]uint64, trajectories)
	for i := range seeds {
		seeds[i] = src.NextUint64()
	}

	ruined := make([]bool, trajectories)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < trajectories; i++ {
		i := i
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			sub := rng.NewSource(seeds[i])
			ruined[i] = simulateTrajectory(sub, wealth, stake, p, b, ruinThreshold, target, maxBets)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	var count int
	for _, r := range ruined {
		if r {
			count++
		}
	}
	return float64(count) / float64(trajectories), nil
}

// simulateTrajectory runs a single wealth path: ruined if wealth ever
// hits the ruin threshold, survived if it reaches the target or
// exhausts maxBets first (spec §4.8).
func simulateTrajectory(src *rng.Source, wealth, stake, p, b, ruinThreshold, target float64, maxBets int) bool {
	w := wealth
	for i := 0; i < maxBets; i++ {
		if w <= ruinThreshold {
			return true
		}
		if w >= target {
			return false
		}
		if src.Float64() < p {
			w += stake * b
		} else {
			w -= stake
		}
	}
	return w <= ruinThreshold
}
