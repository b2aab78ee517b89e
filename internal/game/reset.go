package game

import (
	"fmt"
	"time"

	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/quest"
	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/schedule"
)

// ApplyDueResets clears completion flags for every cadence whose
// boundary has passed since its last reset, and runs the end-of-day
// streak evaluation before the daily flags are wiped. Returns the
// cadences that were reset.
func (g *Game) ApplyDueResets() ([]quest.Cadence, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock.Now()
	var fired []quest.Cadence

	for _, c := range []quest.Cadence{quest.Daily, quest.Weekly, quest.Monthly} {
		if !schedule.ShouldReset(c, g.st.Meta.LastResets[c], now) {
			continue
		}
		if c == quest.Daily {
			g.settleDayLocked()
		}
		col := g.st.collection(c)
		*col = col.Reset()
		g.clearAwardMarksLocked(string(c))
		g.st.Meta.LastResets[c] = now
		fired = append(fired, c)
	}

	if len(fired) == 0 {
		return nil, nil
	}
	return fired, g.persistLocked()
}

// settleDayLocked is the once-per-daily-cycle streak evaluation: a fully
// completed day advances the streak and may land on a milestone. An
// incomplete day leaves the streak alone here; breaking it is the
// session-start penalty check's job.
func (g *Game) settleDayLocked() {
	if !g.st.Daily.AllCompleted() {
		return
	}

	bonus, hit := g.st.Player.CompleteDay()
	if !hit {
		return
	}
	// Bonus XP rides the pre-milestone multiplier; the milestone value
	// replaces it afterwards.
	actual, _ := g.awardXPLocked(bonus.XP, "")
	g.st.Player.SetMultiplier(bonus.Multiplier)

	kind := "streak"
	if bonus.Major {
		kind = "streak_major"
	}
	g.noticeLocked(kind,
		fmt.Sprintf("%d-day streak! +%d XP, multiplier x%.1f", bonus.Days, actual, bonus.Multiplier),
		actual)
	g.evaluateAchievementsLocked()
}

// TimeUntilReset reports the duration until the next boundary of the
// given cadence.
func (g *Game) TimeUntilReset(c quest.Cadence) (time.Duration, error) {
	if !c.Valid() {
		return 0, fmt.Errorf("%w: %s", ErrUnknownCadence, c)
	}
	return schedule.TimeUntilReset(c, g.clock.Now()), nil
}
