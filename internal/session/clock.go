package session

import (
	"fmt"
	"time"
)

// phaseClock alternates between a labeling phase and a break phase. Time is
// only observed when the loop asks, so a phase can overrun until the operator
// next acts.
type phaseClock struct {
	labelLen   time.Duration
	breakLen   time.Duration
	phaseStart time.Time
	onBreak    bool
}

func newPhaseClock(sessionMinutes, breakMinutes int) *phaseClock {
	return &phaseClock{
		labelLen: time.Duration(sessionMinutes) * time.Minute,
		breakLen: time.Duration(breakMinutes) * time.Minute,
	}
}

func (c *phaseClock) reset(now time.Time) {
	c.phaseStart = now
	c.onBreak = false
}

// tick flips the phase when the current one has exceeded its limit.
func (c *phaseClock) tick(now time.Time) {
	if now.Sub(c.phaseStart) >= c.limit() {
		c.onBreak = !c.onBreak
		c.phaseStart = now
	}
}

func (c *phaseClock) limit() time.Duration {
	if c.onBreak {
		return c.breakLen
	}
	return c.labelLen
}

// remaining reports how much of the current phase is left.
func (c *phaseClock) remaining(now time.Time) time.Duration {
	left := c.limit() - now.Sub(c.phaseStart)
	if left < 0 {
		return 0
	}
	return left
}

func formatRemaining(d time.Duration) string {
	total := int(d.Seconds())
	return fmt.Sprintf("%dm %ds", total/60, total%60)
}
