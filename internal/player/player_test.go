package player

import "testing"

func TestAddXPRecomputesLevel(t *testing.T) {
	p := Default()
	if up := p.AddXP(95); up {
		t.Fatal("95 xp should not level up")
	}
	// 95 + 10 crosses the level 2 threshold at 100.
	if up := p.AddXP(10); !up {
		t.Fatal("expected level up at 105 total xp")
	}
	if p.TotalXP != 105 || p.Level != 2 || p.Title != "E-Rank Hunter" {
		t.Fatalf("got total=%d level=%d title=%q", p.TotalXP, p.Level, p.Title)
	}
}

func TestAddXPIgnoresNonPositive(t *testing.T) {
	p := Default()
	p.AddXP(0)
	p.AddXP(-20)
	if p.TotalXP != 0 {
		t.Fatalf("total should stay 0, got %d", p.TotalXP)
	}
}

func TestDeductXPClampsAtZero(t *testing.T) {
	p := Default()
	p.AddXP(120)
	p.DeductXP(30)
	if p.TotalXP != 90 {
		t.Fatalf("expected 90, got %d", p.TotalXP)
	}
	if p.Level != 1 {
		t.Fatalf("deduction below threshold must demote, got level %d", p.Level)
	}
	p.DeductXP(500)
	if p.TotalXP != 0 || p.Level != 1 || p.Title != "Awakened Hunter" {
		t.Fatalf("expected floor at zero, got total=%d level=%d", p.TotalXP, p.Level)
	}
}

func TestProgressBetweenLevels(t *testing.T) {
	p := Default()
	p.AddXP(150)
	// Level 2 spans 100..300, so 150 is a quarter of the way.
	pr := p.Progress()
	if pr.Level != 2 || pr.CurrentLevelXP != 100 || pr.NextLevelXP != 300 {
		t.Fatalf("progress bounds off: %+v", pr)
	}
	if pr.Percent != 25 {
		t.Fatalf("percent = %v, want 25", pr.Percent)
	}

	p.AddXP(200000)
	pr = p.Progress()
	if pr.Level != 25 || pr.Percent != 100 {
		t.Fatalf("maxed hunter progress: %+v", pr)
	}
}

func TestMultiplierBounds(t *testing.T) {
	p := Default()
	p.LowerMultiplier(0.1)
	if p.XPMultiplier != 1.0 {
		t.Fatalf("multiplier fell through floor: %v", p.XPMultiplier)
	}

	p.SetMultiplier(1.9)
	p.RaiseMultiplier(0.1)
	p.RaiseMultiplier(0.1)
	if p.XPMultiplier != 2.0 {
		t.Fatalf("multiplier exceeded ceiling: %v", p.XPMultiplier)
	}

	p.SetMultiplier(5.0)
	if p.XPMultiplier != 2.0 {
		t.Fatalf("SetMultiplier should clamp, got %v", p.XPMultiplier)
	}
}

func TestMultiplierStepsStayExact(t *testing.T) {
	p := Default()
	for i := 0; i < 3; i++ {
		p.RaiseMultiplier(0.1)
	}
	if p.XPMultiplier != 1.3 {
		t.Fatalf("expected 1.3 after three steps, got %v", p.XPMultiplier)
	}
}

func TestCompleteDayMilestones(t *testing.T) {
	p := Default()
	for day := 1; day <= 6; day++ {
		if _, hit := p.CompleteDay(); hit {
			t.Fatalf("unexpected milestone at day %d", day)
		}
	}
	bonus, hit := p.CompleteDay()
	if !hit || bonus.Days != 7 || bonus.XP != 50 || bonus.Multiplier != 1.2 {
		t.Fatalf("expected 7-day milestone, got %+v hit=%v", bonus, hit)
	}
	// Day 8 is not a milestone.
	if _, hit := p.CompleteDay(); hit {
		t.Fatal("day 8 must not re-trigger the milestone")
	}
	if p.Streaks.Daily != 8 || p.Streaks.LongestDaily != 8 {
		t.Fatalf("streaks off: %+v", p.Streaks)
	}
}

func TestBreakStreakKeepsLongest(t *testing.T) {
	p := Default()
	for i := 0; i < 5; i++ {
		p.CompleteDay()
	}
	p.BreakStreak()
	if p.Streaks.Daily != 0 || p.Streaks.LongestDaily != 5 {
		t.Fatalf("streaks after break: %+v", p.Streaks)
	}
	// Re-reaching 7 after a break triggers the milestone again.
	var hits int
	for i := 0; i < 7; i++ {
		if _, hit := p.CompleteDay(); hit {
			hits++
		}
	}
	if hits != 1 {
		t.Fatalf("expected exactly one milestone after re-reaching 7, got %d", hits)
	}
}
