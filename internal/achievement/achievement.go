// Package achievement evaluates one-way unlock conditions over the
// current game snapshot.
package achievement

import (
	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/boss"
	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/pillar"
	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/player"
)

// bookwormTargetXP is the education XP standing in for "read 5 books"
// (one completed book quest is worth 100 XP).
const bookwormTargetXP = 500

type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	XP          int    `json:"xp"`
	Unlocked    bool   `json:"unlocked"`
	Progress    int    `json:"progress"`
}

// Seed returns the default locked achievement catalog.
func Seed() []Achievement {
	return []Achievement{
		{ID: "first-quest", Name: "First Steps", Description: "Complete your first quest", Category: "quests", XP: 10},
		{ID: "week-warrior", Name: "Week Warrior", Description: "Maintain a 7-day streak", Category: "streak", XP: 50},
		{ID: "month-master", Name: "Month Master", Description: "Maintain a 30-day streak", Category: "streak", XP: 200},
		{ID: "bookworm", Name: "Bookworm", Description: "Read 5 books", Category: "pillar_education", XP: 250},
		{ID: "shadow-slayer", Name: "Shadow Slayer", Description: "Defeat your first boss", Category: "boss", XP: 500},
		{ID: "penalty-survivor", Name: "Penalty Survivor", Description: "Exit the Penalty Zone", Category: "level", XP: 100},
	}
}

// Snapshot is the read-only state the evaluator scans. Counters are
// lifetime values so predicates survive quest resets.
type Snapshot struct {
	Player            player.Player
	Pillars           map[pillar.ID]pillar.Pillar
	Bosses            []boss.Boss
	QuestsCompleted   int
	PenaltiesSurvived int
}

// Evaluate tests every locked achievement against the snapshot and
// returns the updated list plus the achievements unlocked by this pass.
// Already-unlocked achievements are skipped entirely, never re-awarded;
// calling Evaluate twice with unchanged inputs unlocks nothing the
// second time. Locked achievements get their advisory progress
// percentage refreshed.
func Evaluate(list []Achievement, s Snapshot) (updated []Achievement, newly []Achievement) {
	updated = make([]Achievement, len(list))
	copy(updated, list)

	for i := range updated {
		a := &updated[i]
		if a.Unlocked {
			continue
		}

		done, progress := predicate(a.ID, s)
		if done {
			a.Unlocked = true
			a.Progress = 100
			newly = append(newly, *a)
			continue
		}
		if progress > 100 {
			progress = 100
		}
		if progress < 0 {
			progress = 0
		}
		a.Progress = progress
	}
	return updated, newly
}

func predicate(id string, s Snapshot) (done bool, progress int) {
	switch id {
	case "first-quest":
		return s.QuestsCompleted >= 1, pct(s.QuestsCompleted, 1)
	case "week-warrior":
		return s.Player.Streaks.Daily >= 7, pct(s.Player.Streaks.Daily, 7)
	case "month-master":
		return s.Player.Streaks.Daily >= 30, pct(s.Player.Streaks.Daily, 30)
	case "bookworm":
		xp := s.Pillars[pillar.Education].XP
		return xp >= bookwormTargetXP, pct(xp, bookwormTargetXP)
	case "shadow-slayer":
		for _, b := range s.Bosses {
			if b.Defeated {
				return true, 100
			}
		}
		return false, 0
	case "penalty-survivor":
		return s.PenaltiesSurvived >= 1, pct(s.PenaltiesSurvived, 1)
	default:
		return false, 0
	}
}

func pct(have, want int) int {
	if want <= 0 {
		return 0
	}
	return have * 100 / want
}
