package achievement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/boss"
	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/pillar"
	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/player"
)

func baseSnapshot() Snapshot {
	return Snapshot{
		Player:  player.Default(),
		Pillars: pillar.Defaults(),
		Bosses:  boss.Seed(),
	}
}

func TestSeedStartsLocked(t *testing.T) {
	for _, a := range Seed() {
		if a.Unlocked {
			t.Fatalf("achievement %s seeded unlocked", a.ID)
		}
		if a.XP <= 0 {
			t.Fatalf("achievement %s has no XP reward", a.ID)
		}
	}
}

func TestEvaluateUnlocksFirstQuest(t *testing.T) {
	s := baseSnapshot()
	s.QuestsCompleted = 1

	updated, newly := Evaluate(Seed(), s)

	require.Len(t, newly, 1)
	assert.Equal(t, "first-quest", newly[0].ID)
	for _, a := range updated {
		if a.ID == "first-quest" {
			assert.True(t, a.Unlocked)
			assert.Equal(t, 100, a.Progress)
		}
	}
}

func TestEvaluateIsIdempotent(t *testing.T) {
	s := baseSnapshot()
	s.QuestsCompleted = 3
	s.Player.Streaks.Daily = 7

	updated, newly := Evaluate(Seed(), s)
	require.Len(t, newly, 2)

	again, newly2 := Evaluate(updated, s)
	assert.Empty(t, newly2, "second pass with unchanged inputs must unlock nothing")
	assert.Equal(t, updated, again)
}

func TestStreakProgress(t *testing.T) {
	s := baseSnapshot()
	s.Player.Streaks.Daily = 15

	updated, newly := Evaluate(Seed(), s)

	// 15 days clears week-warrior but not month-master.
	require.Len(t, newly, 1)
	assert.Equal(t, "week-warrior", newly[0].ID)
	for _, a := range updated {
		if a.ID == "month-master" {
			assert.False(t, a.Unlocked)
			assert.Equal(t, 50, a.Progress)
		}
	}
}

func TestBookwormTracksEducationXP(t *testing.T) {
	s := baseSnapshot()
	p := s.Pillars[pillar.Education]
	p.AddXP(250)
	s.Pillars[pillar.Education] = p

	updated, newly := Evaluate(Seed(), s)
	assert.Empty(t, newly)
	for _, a := range updated {
		if a.ID == "bookworm" {
			assert.Equal(t, 50, a.Progress)
		}
	}

	p.AddXP(250)
	s.Pillars[pillar.Education] = p
	_, newly = Evaluate(updated, s)
	require.Len(t, newly, 1)
	assert.Equal(t, "bookworm", newly[0].ID)
}

func TestShadowSlayerNeedsDefeatedBoss(t *testing.T) {
	s := baseSnapshot()
	_, newly := Evaluate(Seed(), s)
	assert.Empty(t, newly)

	s.Bosses[2].Defeated = true
	_, newly = Evaluate(Seed(), s)
	require.Len(t, newly, 1)
	assert.Equal(t, "shadow-slayer", newly[0].ID)
}

func TestPenaltySurvivor(t *testing.T) {
	s := baseSnapshot()
	s.PenaltiesSurvived = 1

	_, newly := Evaluate(Seed(), s)
	require.Len(t, newly, 1)
	assert.Equal(t, "penalty-survivor", newly[0].ID)
}

func TestProgressCapped(t *testing.T) {
	s := baseSnapshot()
	s.Player.Streaks.Daily = 29

	updated, _ := Evaluate(Seed(), s)
	for _, a := range updated {
		assert.LessOrEqual(t, a.Progress, 100, a.ID)
		assert.GreaterOrEqual(t, a.Progress, 0, a.ID)
	}
}
