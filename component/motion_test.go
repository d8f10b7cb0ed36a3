package component

import "testing"

func TestMotionFlipsOnReachingBound(t *testing.T) {
	m := NewMotion()
	const max = 200.0
	for tick := 1; tick <= 285; tick++ {
		if m.Step(0.7, max) {
			t.Fatalf("flipped early on tick %d at %g", tick, m.Position)
		}
		if m.Direction != 1 || m.FacingLeft {
			t.Fatalf("tick %d: direction changed", tick)
		}
	}
	if !m.Step(0.7, max) {
		t.Fatalf("expected flip on tick 286 at %g", m.Position)
	}
	if m.Direction != -1 || !m.FacingLeft {
		t.Fatalf("expected heading left after flip")
	}
	if m.Position != max {
		t.Fatalf("expected clamp to %g, got %g", max, m.Position)
	}
}

func TestMotionStaysInBounds(t *testing.T) {
	cases := []struct {
		name  string
		speed float64
		max   float64
	}{
		{"slow", 0.7, 200},
		{"fast", 37, 100},
		{"zero_track", 0.8, 0},
		{"speed_exceeds_track", 50, 20},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m := NewMotion()
			flips := 0
			for i := 0; i < 2000; i++ {
				if m.Step(c.speed, c.max) {
					flips++
				}
				if m.Position < 0 || m.Position > c.max {
					t.Fatalf("tick %d: position %g outside [0, %g]", i, m.Position, c.max)
				}
				if m.FacingLeft != (m.Direction == -1) {
					t.Fatalf("tick %d: facing out of sync with direction", i)
				}
			}
			if flips == 0 {
				t.Fatalf("expected at least one flip")
			}
		})
	}
}

func TestMotionClamp(t *testing.T) {
	m := Motion{Position: 300, Direction: 1}
	if !m.Clamp(250) || m.Position != 250 {
		t.Fatalf("expected clamp to 250, got %g", m.Position)
	}
	if m.Clamp(250) {
		t.Fatalf("second clamp should be a no-op")
	}
	if MaxPosition(100, 200) != 0 {
		t.Fatalf("negative max position should floor at zero")
	}
}
