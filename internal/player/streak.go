package player

// StreakBonus is one milestone row: a flat XP bonus plus a replacement
// multiplier value. Major milestones get a celebratory notification.
type StreakBonus struct {
	Days       int
	XP         int
	Multiplier float64
	Major      bool
}

// StreakBonuses is the milestone table, keyed by exact streak length.
var StreakBonuses = map[int]StreakBonus{
	7:   {Days: 7, XP: 50, Multiplier: 1.2},
	30:  {Days: 30, XP: 200, Multiplier: 1.5, Major: true},
	100: {Days: 100, XP: 500, Multiplier: 2.0, Major: true},
}

// CompleteDay advances the daily streak after a fully-completed day and
// returns the milestone bonus when the new length lands exactly on a
// table entry. The bonus XP itself is awarded by the caller so the
// multiplier snapshot rules stay in one place.
func (p *Player) CompleteDay() (StreakBonus, bool) {
	p.Streaks.Daily++
	if p.Streaks.Daily > p.Streaks.LongestDaily {
		p.Streaks.LongestDaily = p.Streaks.Daily
	}
	bonus, ok := StreakBonuses[p.Streaks.Daily]
	return bonus, ok
}

// BreakStreak resets the current daily streak. The longest-streak record
// survives.
func (p *Player) BreakStreak() {
	p.Streaks.Daily = 0
}
