package safety

import (
	"fmt"
	"time"
)

// ValidatedBetParams bundles every input the composite precondition
// chain needs (spec §4.8: "enforce Dutch-book safety, enforce
// Kelly/risk bound, enforce cool-off, then perform the draw").
type ValidatedBetParams struct {
	Probs     []float64
	Tolerance float64

	Stake, Bankroll, WinProb, NetOdds float64
	KellyFraction, MaxRisk            float64

	CoolOff *CoolOffState
	Now     time.Time
}

// ValidateBet runs the three preconditions in the order spec §4.8 names
// and returns the first unsatisfied one's error; a nil CoolOff skips
// that precondition entirely (no gate configured). Callers (internal/eval's
// validated-bet builtin) perform the actual draw only after this
// returns nil, and call CoolOff.RecordBet themselves once the draw
// succeeds, keeping the single state mutation at one well-defined site
// per spec §4.6.
func ValidateBet(p ValidatedBetParams) error {
	if _, err := Validate(p.Probs, p.Tolerance); err != nil {
		return err
	}
	if ratio, safe := SafeStake(p.Stake, p.Bankroll, p.WinProb, p.NetOdds, p.KellyFraction, p.MaxRisk); !safe {
		return fmt.Errorf("validated-bet: stake/bankroll ratio %g exceeds the safe bound", ratio)
	}
	if p.CoolOff != nil {
		if err := p.CoolOff.Check(p.Now); err != nil {
			return err
		}
	}
	return nil
}
