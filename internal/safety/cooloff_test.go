package safety

import (
	"testing"
	"time"
)

func TestCoolOffIdleAllowsBet(t *testing.T) {
	c := NewCoolOffState(true, time.Second)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := c.Check(now); err != nil {
		t.Fatalf("unexpected error on an idle gate: %v", err)
	}
}

func TestCoolOffBlocksDuringCoolingWindow(t *testing.T) {
	c := NewCoolOffState(true, 30*time.Second)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.RecordBet(now)

	if err := c.Check(now.Add(10 * time.Second)); err == nil {
		t.Fatalf("expected cooling window to block a bet 10s later")
	}
	if err := c.Check(now.Add(31 * time.Second)); err != nil {
		t.Fatalf("unexpected error once the base cooling window has elapsed: %v", err)
	}
}

func TestCoolOffBlockedAttemptIncrementsViolationsAndLeavesDeadlineUnchanged(t *testing.T) {
	c := NewCoolOffState(true, 30*time.Second)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.RecordBet(now)

	deadline := c.until
	if err := c.Check(now.Add(5 * time.Second)); err == nil {
		t.Fatalf("expected a blocked attempt")
	}
	if c.Violations() != 1 {
		t.Fatalf("Violations() = %d, want 1", c.Violations())
	}
	if !c.until.Equal(deadline) {
		t.Fatalf("a blocked attempt must not change the cooling deadline")
	}
}

func TestCoolOffAdaptiveMultiplierEscalates(t *testing.T) {
	base := 10 * time.Second
	c := NewCoolOffState(true, base)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	// A single bet uses the base period.
	c.RecordBet(now)
	if got := c.until.Sub(now); got != base {
		t.Fatalf("single-bet cooling period = %v, want base %v", got, base)
	}

	// Six bets within the last minute (>5) escalate to 2x.
	c2 := NewCoolOffState(true, base)
	for i := 0; i < 6; i++ {
		c2.RecordBet(now.Add(time.Duration(i) * time.Second))
	}
	if got := c2.until.Sub(now.Add(5 * time.Second)); got != 2*base {
		t.Fatalf("6th bet within a minute cooling period = %v, want 2x base = %v", got, 2*base)
	}

	// Eleven bets within the last minute (>10) escalate to 4x.
	c3 := NewCoolOffState(true, base)
	for i := 0; i < 11; i++ {
		c3.RecordBet(now.Add(time.Duration(i) * time.Second))
	}
	if got := c3.until.Sub(now.Add(10 * time.Second)); got != 4*base {
		t.Fatalf("11th bet within a minute cooling period = %v, want 4x base = %v", got, 4*base)
	}
}

func TestCoolOffSelfExclusionBypassesEvenWhenDisabled(t *testing.T) {
	c := NewCoolOffState(false, 30*time.Second)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.SelfExclude(now, time.Hour)

	if err := c.Check(now.Add(time.Minute)); err == nil {
		t.Fatalf("self-exclusion must block even when the gate is disabled")
	}
}

func TestCoolOffDisabledOtherwiseAllowsBets(t *testing.T) {
	c := NewCoolOffState(false, 30*time.Second)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.RecordBet(now)
	if err := c.Check(now.Add(time.Second)); err != nil {
		t.Fatalf("a disabled gate with no self-exclusion should never block: %v", err)
	}
}

func TestCoolOffSelfExclusionExpires(t *testing.T) {
	c := NewCoolOffState(true, 30*time.Second)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.SelfExclude(now, time.Hour)
	if err := c.Check(now.Add(2 * time.Hour)); err != nil {
		t.Fatalf("self-exclusion should have expired: %v", err)
	}
}
