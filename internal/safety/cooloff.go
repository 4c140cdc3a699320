package safety

import (
	"fmt"
	"time"
)

// status is the cool-off gate's two-state machine (spec §4.8).
type status int

const (
	Idle status = iota
	Cooling
)

// DefaultCoolOffPeriod is the base cooling window applied after a
// successful bet.
const DefaultCoolOffPeriod = 30 * time.Second

// CoolOffState is the gate's mutable state, owned by the caller (the
// driver, per spec §5) and passed into the evaluator's validated-bet
// builtin by reference rather than held globally.
type CoolOffState struct {
	Enabled    bool
	BasePeriod time.Duration

	status             status
	until              time.Time
	selfExclusionUntil time.Time
	violations         int
	recentBets         []time.Time
}

// NewCoolOffState constructs an Idle gate.
func NewCoolOffState(enabled bool, basePeriod time.Duration) *CoolOffState {
	return &CoolOffState{Enabled: enabled, BasePeriod: basePeriod, status: Idle}
}

// Check reports whether a bet may proceed at now. It does not itself
// transition state; RecordBet does that after a successful draw. A
// blocked attempt bumps the violation counter but leaves the Cooling
// deadline unchanged (spec §4.8: "on a blocked attempt -> Cooling
// unchanged, violation counter++").
func (c *CoolOffState) Check(now time.Time) error {
	// Self-exclusion is non-bypassable: it is checked even when Enabled
	// is false (spec §4.8), unlike ordinary cooling.
	if now.Before(c.selfExclusionUntil) {
		c.violations++
		return fmt.Errorf("cool-off: self-exclusion active until %s", c.selfExclusionUntil.Format(time.RFC3339))
	}
	if !c.Enabled {
		return nil
	}
	if c.status == Cooling && now.Before(c.until) {
		c.violations++
		return fmt.Errorf("cool-off: cooling until %s", c.until.Format(time.RFC3339))
	}
	return nil
}

// RecordBet transitions to Cooling(now + period) after a successful
// bet, applying the adaptive multiplier when the recent bet rate is
// high (spec §4.8: 2x above 5/minute, 4x above 10/minute).
func (c *CoolOffState) RecordBet(now time.Time) {
	if !c.Enabled {
		return
	}
	c.recentBets = append(c.recentBets, now)
	cutoff := now.Add(-time.Minute)
	kept := c.recentBets[:0]
	for _, t := range c.recentBets {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	c.recentBets = kept

	period := c.BasePeriod
	switch {
	case len(c.recentBets) > 10:
		period *= 4
	case len(c.recentBets) > 5:
		period *= 2
	}
	c.status = Cooling
	c.until = now.Add(period)
}

// SelfExclude installs a longer, non-bypassable Cooling window that
// Enabled=false cannot short-circuit around (spec §4.8: "Self-exclusion
// is a longer, non-bypassable Cooling window").
func (c *CoolOffState) SelfExclude(now time.Time, d time.Duration) {
	c.selfExclusionUntil = now.Add(d)
}

// Violations returns the accumulated blocked-attempt count.
func (c *CoolOffState) Violations() int { return c.violations }
