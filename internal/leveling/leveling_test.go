package leveling

import "testing"

func TestForXP_Boundaries(t *testing.T) {
	cases := []struct {
		xp    int
		level int
		title string
	}{
		{0, 1, "Awakened Hunter"},
		{99, 1, "Awakened Hunter"},
		{100, 2, "E-Rank Hunter"},
		{105, 2, "E-Rank Hunter"},
		{299, 2, "E-Rank Hunter"},
		{300, 3, "D-Rank Hunter"},
		{2400, 6, "B-Rank Hunter"},
		{99999, 24, "National Hunter"},
		{100000, 25, "Shadow Monarch"},
		{5000000, 25, "Shadow Monarch"},
	}
	for _, c := range cases {
		level, title := ForXP(c.xp)
		if level != c.level || title != c.title {
			t.Fatalf("ForXP(%d) = (%d, %q), want (%d, %q)", c.xp, level, title, c.level, c.title)
		}
	}
}

func TestForXP_Monotonic(t *testing.T) {
	prev := 0
	for xp := 0; xp <= 110000; xp += 50 {
		level, _ := ForXP(xp)
		if level < prev {
			t.Fatalf("level decreased at xp=%d: %d -> %d", xp, prev, level)
		}
		prev = level
	}
}

func TestNextLevelXP(t *testing.T) {
	if got := NextLevelXP(1); got != 100 {
		t.Fatalf("NextLevelXP(1) = %d, want 100", got)
	}
	if got := NextLevelXP(24); got != 100000 {
		t.Fatalf("NextLevelXP(24) = %d, want 100000", got)
	}
	// Maxed players keep the top threshold.
	if got := NextLevelXP(25); got != 100000 {
		t.Fatalf("NextLevelXP(25) = %d, want 100000", got)
	}
}

func TestCurrentLevelXP(t *testing.T) {
	if got := CurrentLevelXP(1); got != 0 {
		t.Fatalf("CurrentLevelXP(1) = %d, want 0", got)
	}
	if got := CurrentLevelXP(3); got != 300 {
		t.Fatalf("CurrentLevelXP(3) = %d, want 300", got)
	}
}

func TestApplyMultiplier(t *testing.T) {
	cases := []struct {
		base int
		mult float64
		want int
	}{
		{30, 1.0, 30},
		{10, 1.2, 12},
		{15, 1.2, 18},
		{25, 1.5, 38}, // 37.5 rounds up
		{50, 2.0, 100},
		{0, 1.5, 0},
		{-10, 1.5, 0},
		{10, 0.5, 10}, // below-floor multipliers are treated as 1.0
	}
	for _, c := range cases {
		if got := ApplyMultiplier(c.base, c.mult); got != c.want {
			t.Fatalf("ApplyMultiplier(%d, %v) = %d, want %d", c.base, c.mult, got, c.want)
		}
	}
}
