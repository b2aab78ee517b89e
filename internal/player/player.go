// Package player models the hunter: total XP, derived level and title,
// XP multiplier, streaks and the penalty record.
package player

import (
	"math"

	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/leveling"
	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/pillar"
)

const (
	MultiplierFloor   = 1.0
	MultiplierCeiling = 2.0
)

// PenaltyKind labels the penalty state. Only the penalty zone has a
// fully implemented transition; the other kinds exist in the save shape
// for forward compatibility.
type PenaltyKind string

const (
	PenaltyNone        PenaltyKind = ""
	PenaltyWarning     PenaltyKind = "warning"
	PenaltyXPReduction PenaltyKind = "xp_reduction"
	PenaltyZone        PenaltyKind = "penalty_zone"
)

type Streaks struct {
	Daily        int `json:"daily"`
	Weekly       int `json:"weekly"`
	LongestDaily int `json:"longestDaily"`
}

// Penalties records the penalty state machine's data. MissedDays is a
// lifetime counter, never reset on exit.
type Penalties struct {
	Active      bool        `json:"active"`
	Kind        PenaltyKind `json:"type"`
	MissedDays  int         `json:"missedDays"`
	XPReduction int         `json:"xpReduction"`
}

type Player struct {
	Name         string            `json:"name"`
	Level        int               `json:"level"`
	TotalXP      int               `json:"totalXP"`
	Title        string            `json:"title"`
	Avatar       string            `json:"avatar"`
	XPMultiplier float64           `json:"xpMultiplier"`
	Streaks      Streaks           `json:"streaks"`
	Penalties    Penalties         `json:"penalties"`
	SkillPoints  map[pillar.ID]int `json:"skillPoints"`
}

// Default returns the fresh hunter.
func Default() Player {
	return Player{
		Name:         "Primus",
		Level:        1,
		TotalXP:      0,
		Title:        "Awakened Hunter",
		Avatar:       "hunter-1",
		XPMultiplier: 1.0,
		SkillPoints: map[pillar.ID]int{
			pillar.Personal:  0,
			pillar.Spiritual: 0,
			pillar.Financial: 0,
			pillar.Career:    0,
			pillar.Education: 0,
		},
	}
}

// LevelProgress is the display view of progress toward the next level.
type LevelProgress struct {
	Level          int     `json:"level"`
	Title          string  `json:"title"`
	CurrentLevelXP int     `json:"currentLevelXP"`
	NextLevelXP    int     `json:"nextLevelXP"`
	Percent        float64 `json:"percent"`
}

// Progress reports how far the hunter is between the current level's
// threshold and the next. At the top of the table Percent is 100.
func (p Player) Progress() LevelProgress {
	cur := leveling.CurrentLevelXP(p.Level)
	next := leveling.NextLevelXP(p.Level)
	out := LevelProgress{
		Level:          p.Level,
		Title:          p.Title,
		CurrentLevelXP: cur,
		NextLevelXP:    next,
		Percent:        100,
	}
	if next > cur {
		pct := float64(p.TotalXP-cur) / float64(next-cur) * 100
		out.Percent = math.Round(math.Min(100, math.Max(0, pct))*10) / 10
	}
	return out
}

// AddXP credits an already-multiplied XP amount and recomputes level and
// title. It reports whether the player levelled up.
func (p *Player) AddXP(actual int) (levelledUp bool) {
	if actual <= 0 {
		return false
	}
	before := p.Level
	p.TotalXP += actual
	p.Level, p.Title = leveling.ForXP(p.TotalXP)
	return p.Level > before
}

// DeductXP subtracts a penalty amount, clamped at zero, and recomputes
// level and title. This is the only path by which total XP decreases.
func (p *Player) DeductXP(amount int) {
	if amount <= 0 {
		return
	}
	p.TotalXP -= amount
	if p.TotalXP < 0 {
		p.TotalXP = 0
	}
	p.Level, p.Title = leveling.ForXP(p.TotalXP)
}

// LowerMultiplier reduces the multiplier by step, floored at 1.0.
func (p *Player) LowerMultiplier(step float64) {
	p.XPMultiplier = roundMultiplier(p.XPMultiplier - step)
	if p.XPMultiplier < MultiplierFloor {
		p.XPMultiplier = MultiplierFloor
	}
}

// RaiseMultiplier increases the multiplier by step, capped at the 2.0
// ceiling.
func (p *Player) RaiseMultiplier(step float64) {
	p.XPMultiplier = roundMultiplier(p.XPMultiplier + step)
	if p.XPMultiplier > MultiplierCeiling {
		p.XPMultiplier = MultiplierCeiling
	}
}

// SetMultiplier replaces the multiplier outright (streak milestones are
// replacement values, not additive), clamped into [floor, ceiling].
func (p *Player) SetMultiplier(m float64) {
	m = roundMultiplier(m)
	if m < MultiplierFloor {
		m = MultiplierFloor
	}
	if m > MultiplierCeiling {
		m = MultiplierCeiling
	}
	p.XPMultiplier = m
}

// Repeated ±0.1 steps drift in binary floating point; keep the stored
// multiplier at two decimals.
func roundMultiplier(m float64) float64 {
	return math.Round(m*100) / 100
}
