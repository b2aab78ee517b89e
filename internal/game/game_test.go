package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/achievement"
	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/boss"
	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/config"
	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/history"
	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/pillar"
	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/player"
	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/quest"
	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/store"
)

// fixedRand makes combat deterministic: Intn(n) returns v clamped into
// range.
type fixedRand struct{ v int }

func (f fixedRand) Intn(n int) int {
	if f.v >= n {
		return n - 1
	}
	return f.v
}

var testStart = time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC) // a Tuesday

// preUnlocked returns the achievement seed with the given ids already
// unlocked, keeping their bonus XP out of a test's arithmetic.
func preUnlocked(ids ...string) []achievement.Achievement {
	list := achievement.Seed()
	for i := range list {
		for _, id := range ids {
			if list[i].ID == id {
				list[i].Unlocked = true
				list[i].Progress = 100
			}
		}
	}
	return list
}

func newTestGame(t *testing.T, seed func(s *store.MemStore)) (*Game, *FakeClock, *store.MemStore) {
	t.Helper()
	ms := store.NewMemStore()
	if seed != nil {
		seed(ms)
	}
	clock := NewFakeClock(testStart)
	g, err := New(ms, clock, config.Default())
	require.NoError(t, err)

	// Anchor the reset cycle so zero-valued lastReset times do not fire
	// mid-test.
	_, err = g.ApplyDueResets()
	require.NoError(t, err)
	g.Notifications()
	return g, clock, ms
}

func TestTrackSpendingScenario(t *testing.T) {
	g, _, _ := newTestGame(t, nil)

	q, err := g.CreateQuest(quest.Daily, quest.Draft{Task: "Track Spending", XP: 30, Pillar: pillar.Financial})
	require.NoError(t, err)

	before := g.Snapshot().Player.TotalXP
	out, err := g.ToggleQuest(quest.Daily, q.ID)
	require.NoError(t, err)
	assert.True(t, out.NowCompleted)
	assert.Equal(t, 30, out.AwardedXP)

	st := g.Snapshot()
	// First-quest achievement pays its own 10 XP on top of the quest's 30.
	assert.Equal(t, before+30+10, st.Player.TotalXP)
	assert.Equal(t, 40, st.History.On(history.Key(testStart)).XP)
	assert.Equal(t, 30, st.Pillars[pillar.Financial].XP)
}

func TestLevelUpAt105(t *testing.T) {
	g, _, _ := newTestGame(t, func(s *store.MemStore) {
		p := player.Default()
		p.TotalXP = 95
		require.NoError(t, s.Save(store.KeyPlayer, p))
		require.NoError(t, s.Save(store.KeyDailyQuests, quest.Collection{
			{ID: "daily-x", Task: "Read 10 pages", XP: 10},
		}))
		require.NoError(t, s.Save(store.KeyAchievements, preUnlocked("first-quest")))
	})
	st := g.Snapshot()
	require.Equal(t, 95, st.Player.TotalXP)

	_, err := g.ToggleQuest(quest.Daily, "daily-x")
	require.NoError(t, err)

	st = g.Snapshot()
	assert.Equal(t, 105, st.Player.TotalXP)
	assert.Equal(t, 2, st.Player.Level)
	assert.Equal(t, "E-Rank Hunter", st.Player.Title)
}

func TestToggleCycleAwardsOncePerCycle(t *testing.T) {
	g, clock, _ := newTestGame(t, func(s *store.MemStore) {
		require.NoError(t, s.Save(store.KeyDailyQuests, quest.Collection{
			{ID: "d1", Task: "Meditate", XP: 20},
		}))
		require.NoError(t, s.Save(store.KeyAchievements, preUnlocked("first-quest")))
	})

	out, err := g.ToggleQuest(quest.Daily, "d1")
	require.NoError(t, err)
	assert.Equal(t, 20, out.AwardedXP)
	xpAfterFirst := g.Snapshot().Player.TotalXP

	// Uncomplete: no clawback.
	out, err = g.ToggleQuest(quest.Daily, "d1")
	require.NoError(t, err)
	assert.False(t, out.NowCompleted)
	assert.Equal(t, xpAfterFirst, g.Snapshot().Player.TotalXP)

	// Re-complete within the same cycle: no second award.
	out, err = g.ToggleQuest(quest.Daily, "d1")
	require.NoError(t, err)
	assert.True(t, out.NowCompleted)
	assert.Equal(t, 0, out.AwardedXP)
	assert.Equal(t, xpAfterFirst, g.Snapshot().Player.TotalXP)

	// After the daily reset the quest pays again.
	clock.Advance(24 * time.Hour)
	fired, err := g.ApplyDueResets()
	require.NoError(t, err)
	require.Contains(t, fired, quest.Daily)
	assert.False(t, g.Snapshot().Daily[0].Completed)

	out, err = g.ToggleQuest(quest.Daily, "d1")
	require.NoError(t, err)
	assert.Equal(t, 20, out.AwardedXP)
}

func TestResetPreservesDefinitions(t *testing.T) {
	g, clock, _ := newTestGame(t, nil)

	q, err := g.CreateQuest(quest.Weekly, quest.Draft{Task: "Deep clean", XP: 40, Pillar: pillar.Personal})
	require.NoError(t, err)
	_, err = g.ToggleQuest(quest.Weekly, q.ID)
	require.NoError(t, err)

	clock.Advance(7 * 24 * time.Hour)
	fired, err := g.ApplyDueResets()
	require.NoError(t, err)
	require.Contains(t, fired, quest.Weekly)

	var got *quest.Quest
	for _, wq := range g.Snapshot().Weekly {
		if wq.ID == q.ID {
			q2 := wq
			got = &q2
		}
	}
	require.NotNil(t, got, "custom quest must survive the reset")
	assert.False(t, got.Completed)
	assert.Equal(t, "Deep clean", got.Task)
	assert.Equal(t, 40, got.XP)
	assert.Equal(t, pillar.Personal, got.Pillar)
}

func completeAllDaily(t *testing.T, g *Game) {
	t.Helper()
	for _, q := range g.Snapshot().Daily {
		if !q.Completed {
			_, err := g.ToggleQuest(quest.Daily, q.ID)
			require.NoError(t, err)
		}
	}
}

func TestStreakMilestoneAtSeven(t *testing.T) {
	g, clock, _ := newTestGame(t, func(s *store.MemStore) {
		require.NoError(t, s.Save(store.KeyDailyQuests, quest.Collection{
			{ID: "d1", Task: "Morning run", XP: 10},
		}))
		require.NoError(t, s.Save(store.KeyAchievements, preUnlocked("first-quest")))
	})

	for day := 1; day <= 7; day++ {
		completeAllDaily(t, g)
		clock.Advance(24 * time.Hour)
		_, err := g.ApplyDueResets()
		require.NoError(t, err)
	}

	st := g.Snapshot()
	assert.Equal(t, 7, st.Player.Streaks.Daily)
	assert.Equal(t, 7, st.Player.Streaks.LongestDaily)
	assert.InDelta(t, 1.2, st.Player.XPMultiplier, 1e-9)
	// 7 days x 10 XP at x1.0, +50 milestone bonus at the pre-milestone
	// multiplier, +50 week-warrior achievement at x1.2 = 60.
	assert.Equal(t, 70+50+60, st.Player.TotalXP)

	// Day 8 must not re-trigger the milestone.
	completeAllDaily(t, g)
	clock.Advance(24 * time.Hour)
	_, err := g.ApplyDueResets()
	require.NoError(t, err)

	st = g.Snapshot()
	assert.Equal(t, 8, st.Player.Streaks.Daily)
	assert.InDelta(t, 1.2, st.Player.XPMultiplier, 1e-9)
}

func TestIncompleteDayDoesNotAdvanceStreak(t *testing.T) {
	g, clock, _ := newTestGame(t, nil)

	clock.Advance(24 * time.Hour)
	_, err := g.ApplyDueResets()
	require.NoError(t, err)

	assert.Equal(t, 0, g.Snapshot().Player.Streaks.Daily)
}

func seedPenaltyState(missed int) func(s *store.MemStore) {
	return func(s *store.MemStore) {
		col := make(quest.Collection, missed)
		for i := range col {
			col[i] = quest.Quest{ID: "d" + string(rune('1'+i)), Task: "quest", XP: 10}
		}
		_ = s.Save(store.KeyDailyQuests, col)
		p := player.Default()
		p.TotalXP = 200
		p.Level = 3
		p.XPMultiplier = 1.5
		p.Streaks.Daily = 4
		p.Streaks.LongestDaily = 9
		_ = s.Save(store.KeyPlayer, p)
		_ = s.Save(store.KeyMeta, Meta{
			LastVisitDate:   history.Key(testStart.AddDate(0, 0, -1)),
			QuestsCompleted: 1,
		})
	}
}

func TestSessionStartPenaltyZone(t *testing.T) {
	g, _, _ := newTestGame(t, seedPenaltyState(3))

	report, err := g.SessionStart()
	require.NoError(t, err)
	assert.Equal(t, 3, report.MissedQuests)
	assert.Equal(t, 30, report.XPDeducted)
	assert.True(t, report.EnteredZone)
	assert.True(t, report.StreakBroken)

	st := g.Snapshot()
	assert.Equal(t, 170, st.Player.TotalXP)
	assert.InDelta(t, 1.4, st.Player.XPMultiplier, 1e-9)
	assert.True(t, st.Player.Penalties.Active)
	assert.Equal(t, player.PenaltyZone, st.Player.Penalties.Kind)
	assert.Equal(t, 1, st.Player.Penalties.MissedDays)
	assert.Equal(t, 0, st.Player.Streaks.Daily)
	assert.Equal(t, 9, st.Player.Streaks.LongestDaily)

	// A second session start the same day must not double-punish.
	report, err = g.SessionStart()
	require.NoError(t, err)
	assert.Zero(t, report.MissedQuests)
	assert.Equal(t, 170, g.Snapshot().Player.TotalXP)
}

func TestSessionStartBelowThreshold(t *testing.T) {
	g, _, _ := newTestGame(t, seedPenaltyState(2))

	report, err := g.SessionStart()
	require.NoError(t, err)
	assert.Equal(t, 2, report.MissedQuests)
	assert.False(t, report.EnteredZone)

	st := g.Snapshot()
	assert.Equal(t, 180, st.Player.TotalXP)
	assert.False(t, st.Player.Penalties.Active)
}

func TestPenaltyExitGatedOnRecovery(t *testing.T) {
	g, clock, _ := newTestGame(t, seedPenaltyState(4))
	_, err := g.SessionStart()
	require.NoError(t, err)
	require.True(t, g.Snapshot().Player.Penalties.Active)

	assert.ErrorIs(t, g.ExitPenaltyZone(), ErrPenaltyNotCleared)

	// Countdown is cosmetic: let it lapse, the zone stays.
	clock.Advance(time.Duration(config.Default().CountdownSeconds+60) * time.Second)
	assert.Equal(t, time.Duration(0), g.PenaltyCountdown())
	assert.True(t, g.Snapshot().Player.Penalties.Active)
	assert.ErrorIs(t, g.ExitPenaltyZone(), ErrPenaltyNotCleared)

	xpBefore := g.Snapshot().Player.TotalXP
	multBefore := g.Snapshot().Player.XPMultiplier
	for _, rq := range g.Snapshot().Recovery {
		out, err := g.ToggleRecoveryQuest(rq.ID)
		require.NoError(t, err)
		assert.True(t, out.NowCompleted)
		assert.Positive(t, out.AwardedXP)
	}

	require.NoError(t, g.ExitPenaltyZone())
	st := g.Snapshot()
	assert.False(t, st.Player.Penalties.Active)
	assert.Equal(t, 1, st.Meta.PenaltiesSurvived)
	assert.InDelta(t, multBefore+0.1, st.Player.XPMultiplier, 1e-9)
	assert.Greater(t, st.Player.TotalXP, xpBefore)

	// Recovery quests re-armed for next time.
	for _, rq := range st.Recovery {
		assert.False(t, rq.Completed)
	}
	// Survivor achievement unlocked exactly once.
	survived := false
	for _, a := range st.Achievements {
		if a.ID == "penalty-survivor" {
			survived = a.Unlocked
		}
	}
	assert.True(t, survived)

	assert.ErrorIs(t, g.ExitPenaltyZone(), ErrNoPenalty)

	// The re-armed recovery quests are not a free XP source after exit.
	xpAfterExit := st.Player.TotalXP
	for _, rq := range st.Recovery {
		_, err := g.ToggleRecoveryQuest(rq.ID)
		assert.ErrorIs(t, err, ErrNoPenalty)
	}
	assert.Equal(t, xpAfterExit, g.Snapshot().Player.TotalXP)
}

func TestRecoveryLockedOutsideZone(t *testing.T) {
	g, _, _ := newTestGame(t, nil)

	rq := g.Snapshot().Recovery[0]
	_, err := g.ToggleRecoveryQuest(rq.ID)
	assert.ErrorIs(t, err, ErrNoPenalty)
	assert.Equal(t, 0, g.Snapshot().Player.TotalXP)
}

func TestMultiplierCapsOnRecoveryExit(t *testing.T) {
	g, _, _ := newTestGame(t, func(s *store.MemStore) {
		p := player.Default()
		p.XPMultiplier = 2.0
		p.Penalties.Active = true
		p.Penalties.Kind = player.PenaltyZone
		_ = s.Save(store.KeyPlayer, p)
		_ = s.Save(store.KeyMeta, Meta{QuestsCompleted: 1, PenaltyEnteredAt: testStart})
	})

	for _, rq := range g.Snapshot().Recovery {
		_, err := g.ToggleRecoveryQuest(rq.ID)
		require.NoError(t, err)
	}
	require.NoError(t, g.ExitPenaltyZone())
	assert.InDelta(t, 2.0, g.Snapshot().Player.XPMultiplier, 1e-9)
}

func TestBalanceTunablesFlowThrough(t *testing.T) {
	ms := store.NewMemStore()
	bal := config.Default()
	bal.DefaultQuestXP = 25
	bal.PlayerMaxHP = 150

	clock := NewFakeClock(testStart)
	g, err := New(ms, clock, bal)
	require.NoError(t, err)
	_, err = g.ApplyDueResets()
	require.NoError(t, err)

	// A draft without XP picks up the configured default, not the
	// package fallback.
	q, err := g.CreateQuest(quest.Daily, quest.Draft{Task: "Stretch"})
	require.NoError(t, err)
	assert.Equal(t, 25, q.XP)

	// Battles start from the configured HP pool.
	g.SetRand(fixedRand{v: 5})
	enc, err := g.StartBattle("addiction-boss")
	require.NoError(t, err)
	assert.Equal(t, 150, enc.PlayerHP)
}

func TestBossBattleVictoryAwardsOnce(t *testing.T) {
	g, _, _ := newTestGame(t, func(s *store.MemStore) {
		_ = s.Save(store.KeyMeta, Meta{QuestsCompleted: 1})
	})
	g.SetRand(fixedRand{v: 5}) // zero variance, mid counter

	enc, err := g.StartBattle("addiction-boss")
	require.NoError(t, err)
	assert.Equal(t, boss.PhaseBattle, enc.Phase)
	assert.Equal(t, 100, enc.BossHP) // level 1, no scaling above base

	_, err = g.StartBattle("addiction-boss")
	assert.ErrorIs(t, err, ErrBattleInProgress)

	for {
		res, err := g.Attack()
		require.NoError(t, err)
		if res.Victory {
			break
		}
		_, err = g.ResolveCounter()
		require.NoError(t, err)
	}

	report, err := g.ClaimVictory()
	require.NoError(t, err)
	assert.True(t, report.FirstKill)
	assert.Equal(t, 500, report.AwardedXP)
	assert.True(t, report.Boss.Defeated)

	st := g.Snapshot()
	slayer := false
	for _, a := range st.Achievements {
		if a.ID == "shadow-slayer" {
			slayer = a.Unlocked
		}
	}
	assert.True(t, slayer)

	// Refight: victory again, but no second payout.
	xpBefore := g.Snapshot().Player.TotalXP
	_, err = g.StartBattle("addiction-boss")
	require.NoError(t, err)
	for {
		res, err := g.Attack()
		require.NoError(t, err)
		if res.Victory {
			break
		}
		_, err = g.ResolveCounter()
		require.NoError(t, err)
	}
	report, err = g.ClaimVictory()
	require.NoError(t, err)
	assert.False(t, report.FirstKill)
	assert.Zero(t, report.AwardedXP)
	assert.Equal(t, xpBefore, g.Snapshot().Player.TotalXP)
}

func TestBossLockedByLevel(t *testing.T) {
	g, _, _ := newTestGame(t, nil)
	_, err := g.StartBattle("procrastination-boss") // needs level 5
	assert.ErrorIs(t, err, ErrBossLocked)

	_, err = g.StartBattle("no-such-boss")
	assert.ErrorIs(t, err, ErrBossNotFound)
}

func TestDefeatAllowsRetry(t *testing.T) {
	// A boss bulky enough that the player's HP pool runs out first.
	g, _, _ := newTestGame(t, func(s *store.MemStore) {
		require.NoError(t, s.Save(store.KeyBosses, []boss.Boss{
			{ID: "gatekeeper", Name: "The Gatekeeper", HP: 1000, XPReward: 100, LevelRequired: 1},
		}))
	})
	g.SetRand(fixedRand{v: 0}) // worst player rolls, weakest counters

	_, err := g.StartBattle("gatekeeper")
	require.NoError(t, err)

	defeated := false
	for i := 0; i < 20 && !defeated; i++ {
		res, err := g.Attack()
		require.NoError(t, err)
		require.False(t, res.Victory)
		cr, err := g.ResolveCounter()
		require.NoError(t, err)
		defeated = cr.Defeat
	}
	require.True(t, defeated)

	_, err = g.ClaimVictory()
	assert.ErrorIs(t, err, ErrBattleNotWon)
	g.CloseBattle()

	enc, err := g.StartBattle("gatekeeper")
	require.NoError(t, err)
	assert.Equal(t, 100, enc.PlayerHP, "retry starts from a fresh HP pool")
	assert.Equal(t, 1000, enc.BossHP, "boss HP is not persistent across attempts")
}

func TestNotificationsDrain(t *testing.T) {
	g, _, _ := newTestGame(t, func(s *store.MemStore) {
		require.NoError(t, s.Save(store.KeyDailyQuests, quest.Collection{
			{ID: "d1", Task: "Stretch", XP: 5},
		}))
		_ = s.Save(store.KeyMeta, Meta{QuestsCompleted: 1})
	})

	_, err := g.ToggleQuest(quest.Daily, "d1")
	require.NoError(t, err)

	first := g.Notifications()
	require.NotEmpty(t, first)
	assert.Empty(t, g.Notifications(), "drain must clear the queue")
}

func TestPersistenceRoundTrip(t *testing.T) {
	ms := store.NewMemStore()
	clock := NewFakeClock(testStart)
	g, err := New(ms, clock, config.Default())
	require.NoError(t, err)

	q, err := g.CreateQuest(quest.Daily, quest.Draft{Task: "Journal", XP: 15})
	require.NoError(t, err)
	_, err = g.ToggleQuest(quest.Daily, q.ID)
	require.NoError(t, err)
	want := g.Snapshot()

	// A second orchestrator over the same store sees the same world.
	g2, err := New(ms, NewFakeClock(testStart), config.Default())
	require.NoError(t, err)
	got := g2.Snapshot()

	assert.Equal(t, want.Player, got.Player)
	assert.Equal(t, want.Daily, got.Daily)
	assert.Equal(t, want.History, got.History)
	assert.Equal(t, want.Meta.QuestsCompleted, got.Meta.QuestsCompleted)
}

func TestExportImportRoundTrip(t *testing.T) {
	g, _, _ := newTestGame(t, nil)
	q, err := g.CreateQuest(quest.Monthly, quest.Draft{Task: "Ship the side project", XP: 100})
	require.NoError(t, err)
	_, err = g.ToggleQuest(quest.Monthly, q.ID)
	require.NoError(t, err)
	want := g.Snapshot().Player.TotalXP

	dump, err := g.Export()
	require.NoError(t, err)

	g2, _, _ := newTestGame(t, nil)
	require.NoError(t, g2.Import(dump))
	assert.Equal(t, want, g2.Snapshot().Player.TotalXP)

	// A bad dump leaves the world untouched.
	err = g2.Import(store.Dump{"rogue": []byte(`{}`)})
	require.Error(t, err)
	assert.Equal(t, want, g2.Snapshot().Player.TotalXP)
}

func TestCorruptDocumentFallsBackToSeed(t *testing.T) {
	ms := store.NewMemStore()
	require.NoError(t, ms.Save(store.KeyPlayer, "not a player object"))

	g, err := New(ms, NewFakeClock(testStart), config.Default())
	require.NoError(t, err)

	st := g.Snapshot()
	assert.Equal(t, player.Default().Name, st.Player.Name)
	assert.Equal(t, 1, st.Player.Level)

	notes := g.Notifications()
	require.NotEmpty(t, notes)
	assert.Equal(t, "warning", notes[0].Kind)
}
