// Package history aggregates XP earned per calendar day for the
// heatmap view.
package history

import "time"

// DateFormat is the ISO day key used throughout the save.
const DateFormat = "2006-01-02"

type Entry struct {
	XP        int  `json:"xp"`
	Completed bool `json:"completed"`
}

// Map keys entries by ISO date string.
type Map map[string]Entry

// Add upserts the day's entry, adding xp to whatever was already earned
// that day and marking the day active.
func (m Map) Add(day string, xp int) {
	e := m[day]
	e.XP += xp
	e.Completed = true
	m[day] = e
}

// On returns the entry for the given day, zero-valued when absent.
func (m Map) On(day string) Entry {
	return m[day]
}

// Key formats t as a history day key.
func Key(t time.Time) string {
	return t.Format(DateFormat)
}
