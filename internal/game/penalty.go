package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/history"
	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/pillar"
	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/player"
	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/quest"
)

var (
	ErrNoPenalty         = errors.New("game: penalty zone not active")
	ErrPenaltyNotCleared = errors.New("game: recovery quests incomplete")
	ErrRecoveryNotFound  = errors.New("game: recovery quest not found")
)

// SessionReport summarizes what the session-start check did.
type SessionReport struct {
	MissedQuests int  `json:"missedQuests"`
	XPDeducted   int  `json:"xpDeducted"`
	EnteredZone  bool `json:"enteredZone"`
	StreakBroken bool `json:"streakBroken"`
}

// SessionStart runs the missed-day penalty check. When the last visit
// was yesterday and daily quests were left incomplete, each miss costs
// XP and the multiplier drops one step; three or more misses open the
// Penalty Zone. The check then records today as the visit date, so it
// fires at most once per calendar day.
func (g *Game) SessionStart() (SessionReport, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock.Now()
	today := history.Key(now)
	yesterday := history.Key(now.AddDate(0, 0, -1))

	var report SessionReport
	if g.st.Meta.LastVisitDate == yesterday {
		missed := g.st.Daily.Incomplete()
		if missed > 0 {
			deduct := g.bal.PenaltyXPPerMiss * missed
			g.st.Player.DeductXP(deduct)
			g.st.Player.LowerMultiplier(g.bal.MultiplierStep)
			g.st.Player.BreakStreak()

			report.MissedQuests = missed
			report.XPDeducted = deduct
			report.StreakBroken = true
			g.noticeLocked("penalty",
				fmt.Sprintf("%d quests missed yesterday: -%d XP", missed, deduct), 0)

			if missed >= g.bal.PenaltyZoneThreshold {
				g.enterPenaltyZoneLocked(now)
				report.EnteredZone = true
			}
		}
	}
	g.st.Meta.LastVisitDate = today
	return report, g.persistLocked()
}

func (g *Game) enterPenaltyZoneLocked(now time.Time) {
	g.st.Player.Penalties.Active = true
	g.st.Player.Penalties.Kind = player.PenaltyZone
	g.st.Player.Penalties.MissedDays++
	g.st.Recovery = g.st.Recovery.Reset()
	g.clearAwardMarksLocked("recovery")
	g.st.Meta.PenaltyEnteredAt = now
	g.noticeLocked("penalty_zone", "You have entered the Penalty Zone", 0)
}

// PenaltyCountdown reports the cosmetic countdown remaining. Reaching
// zero changes nothing; the only exit is completing the recovery quests.
func (g *Game) PenaltyCountdown() time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.st.Player.Penalties.Active {
		return 0
	}
	total := time.Duration(g.bal.CountdownSeconds) * time.Second
	remaining := total - g.clock.Now().Sub(g.st.Meta.PenaltyEnteredAt)
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// ToggleRecoveryQuest flips a recovery quest. Completing one awards its
// XP immediately against the personal pillar. Recovery quests only
// exist inside the Penalty Zone; outside it the re-armed seeds would be
// a free XP source.
func (g *Game) ToggleRecoveryQuest(id string) (ToggleOutcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.st.Player.Penalties.Active {
		return ToggleOutcome{}, ErrNoPenalty
	}

	updated, res, err := g.st.Recovery.Toggle(id)
	if err != nil {
		if errors.Is(err, quest.ErrNotFound) {
			return ToggleOutcome{}, fmt.Errorf("%w: %s", ErrRecoveryNotFound, id)
		}
		return ToggleOutcome{}, err
	}
	g.st.Recovery = updated

	out := ToggleOutcome{Quest: res.Quest, NowCompleted: res.NowCompleted}
	key := "recovery:" + id
	if res.NowCompleted && !g.st.Meta.AwardedQuests[key] {
		g.st.Meta.AwardedQuests[key] = true
		out.AwardedXP, _ = g.awardXPLocked(res.Quest.XP, pillar.Personal)
	}
	return out, g.persistLocked()
}

// ExitPenaltyZone leaves the Penalty Zone once every recovery quest is
// complete: a flat bonus is awarded, the multiplier rises one step
// capped at the ceiling, and the recovery quests re-arm for next time.
func (g *Game) ExitPenaltyZone() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.st.Player.Penalties.Active {
		return ErrNoPenalty
	}
	if !g.st.Recovery.AllCompleted() {
		return ErrPenaltyNotCleared
	}

	actual, _ := g.awardXPLocked(g.bal.RecoveryBonusXP, "")
	g.st.Player.RaiseMultiplier(g.bal.MultiplierStep)
	g.st.Player.Penalties.Active = false
	g.st.Player.Penalties.Kind = player.PenaltyNone
	g.st.Recovery = g.st.Recovery.Reset()
	g.clearAwardMarksLocked("recovery")
	g.st.Meta.PenaltyEnteredAt = time.Time{}
	g.st.Meta.PenaltiesSurvived++

	g.noticeLocked("recovery",
		fmt.Sprintf("Penalty Zone cleared: +%d XP", actual), actual)
	g.evaluateAchievementsLocked()
	return g.persistLocked()
}
