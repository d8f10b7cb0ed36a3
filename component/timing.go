package component

import "time"

// Geometry fallbacks used when a container or image cannot be measured.
const (
	FallbackTrackWidth  = 400.0
	FallbackPetWidth    = 200.0
	FallbackWalkerWidth = 120.0
)

// Timing holds every nominal delay the engine schedules.
type Timing struct {
	// MovementInterval paces position updates independently of sprite fps.
	MovementInterval time.Duration
	// SettleDelay separates a completed animation from the default state.
	SettleDelay time.Duration
	// UserCooldown keeps autonomous scheduling off after a user animation.
	UserCooldown time.Duration
	// AutoMin and AutoMax bound the random delay before a special animation.
	AutoMin time.Duration
	AutoMax time.Duration

	EmphasisRaise time.Duration
	EmphasisClear time.Duration
	ButtonPress   time.Duration

	WalkerRestart time.Duration
	BounceSteps   [3]time.Duration
	Glow          time.Duration
}

// DefaultTiming returns the nominal values.
func DefaultTiming() Timing {
	return Timing{
		MovementInterval: 16 * time.Millisecond,
		SettleDelay:      500 * time.Millisecond,
		UserCooldown:     3000 * time.Millisecond,
		AutoMin:          5000 * time.Millisecond,
		AutoMax:          15000 * time.Millisecond,
		EmphasisRaise:    300 * time.Millisecond,
		EmphasisClear:    2000 * time.Millisecond,
		ButtonPress:      300 * time.Millisecond,
		WalkerRestart:    100 * time.Millisecond,
		BounceSteps:      [3]time.Duration{0, 200 * time.Millisecond, 400 * time.Millisecond},
		Glow:             1000 * time.Millisecond,
	}
}

// WithDefaults fills zero fields from DefaultTiming. Zero is a legal bounce
// step, so BounceSteps is only replaced when all three are zero.
func (t Timing) WithDefaults() Timing {
	d := DefaultTiming()
	fill := func(v *time.Duration, def time.Duration) {
		if *v <= 0 {
			*v = def
		}
	}
	fill(&t.MovementInterval, d.MovementInterval)
	fill(&t.SettleDelay, d.SettleDelay)
	fill(&t.UserCooldown, d.UserCooldown)
	fill(&t.AutoMin, d.AutoMin)
	fill(&t.AutoMax, d.AutoMax)
	fill(&t.EmphasisRaise, d.EmphasisRaise)
	fill(&t.EmphasisClear, d.EmphasisClear)
	fill(&t.ButtonPress, d.ButtonPress)
	fill(&t.WalkerRestart, d.WalkerRestart)
	fill(&t.Glow, d.Glow)
	if t.BounceSteps == [3]time.Duration{} {
		t.BounceSteps = d.BounceSteps
	}
	if t.AutoMax <= t.AutoMin {
		t.AutoMax = t.AutoMin + time.Millisecond
	}
	return t
}
