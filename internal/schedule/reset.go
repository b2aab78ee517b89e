// Package schedule computes quest reset boundaries and signals when a
// cadence reset comes due. It holds no quest data; it is purely
// clock-differencing.
package schedule

import (
	"fmt"
	"time"

	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/quest"
)

// NextReset returns the next reset boundary for a cadence, in now's
// location.
//
// daily: next local midnight. weekly: next Monday local midnight — if
// now is already Monday the target is the FOLLOWING Monday, a full
// seven-day wait; the boundary for the current Monday fired at its own
// midnight. monthly: first of next month, local midnight.
func NextReset(cadence quest.Cadence, now time.Time) time.Time {
	y, m, d := now.Date()
	loc := now.Location()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, loc)

	switch cadence {
	case quest.Daily:
		return midnight.AddDate(0, 0, 1)
	case quest.Weekly:
		daysUntilMonday := (8 - int(now.Weekday())) % 7
		if daysUntilMonday == 0 {
			daysUntilMonday = 7
		}
		return midnight.AddDate(0, 0, daysUntilMonday)
	case quest.Monthly:
		return time.Date(y, m+1, 1, 0, 0, 0, 0, loc)
	default:
		return midnight.AddDate(0, 0, 1)
	}
}

// TimeUntilReset returns the duration from now until the next cadence
// boundary.
func TimeUntilReset(cadence quest.Cadence, now time.Time) time.Duration {
	return NextReset(cadence, now).Sub(now)
}

// ShouldReset reports whether a reset boundary has passed between
// lastReset and now. Used on session start to catch up resets that came
// due while the process was not running. A zero lastReset always resets.
func ShouldReset(cadence quest.Cadence, lastReset, now time.Time) bool {
	if lastReset.IsZero() {
		return true
	}
	switch cadence {
	case quest.Daily:
		ly, lm, ld := lastReset.Date()
		ny, nm, nd := now.Date()
		return ly != ny || lm != nm || ld != nd
	case quest.Weekly:
		ly, lw := lastReset.ISOWeek()
		ny, nw := now.ISOWeek()
		return ly != ny || lw != nw
	case quest.Monthly:
		ly, lm, _ := lastReset.Date()
		ny, nm, _ := now.Date()
		return ly != ny || lm != nm
	default:
		return false
	}
}

// FormatRemaining renders a countdown the way the quest timer displays
// it: "2d 4h", "4h 10m" or "10m 5s".
func FormatRemaining(d time.Duration) string {
	if d <= 0 {
		return "Resetting..."
	}
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
}
