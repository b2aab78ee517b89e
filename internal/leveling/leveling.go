// Package leveling holds the hunter progression table and the pure math
// that maps accumulated XP to a level and title.
package leveling

import "math"

// Threshold is one row of the progression table. Titles may repeat
// across adjacent levels; the table is monotonically increasing in both
// Level and XPRequired.
type Threshold struct {
	Level      int    `json:"level"`
	XPRequired int    `json:"xpRequired"`
	Title      string `json:"title"`
}

// Thresholds is the hunter rank ladder, level 1 through 25.
var Thresholds = []Threshold{
	{Level: 1, XPRequired: 0, Title: "Awakened Hunter"},
	{Level: 2, XPRequired: 100, Title: "E-Rank Hunter"},
	{Level: 3, XPRequired: 300, Title: "D-Rank Hunter"},
	{Level: 4, XPRequired: 700, Title: "C-Rank Hunter"},
	{Level: 5, XPRequired: 1400, Title: "B-Rank Hunter"},
	{Level: 6, XPRequired: 2400, Title: "B-Rank Hunter"},
	{Level: 7, XPRequired: 3700, Title: "B-Rank Hunter"},
	{Level: 8, XPRequired: 5300, Title: "A-Rank Hunter"},
	{Level: 9, XPRequired: 7200, Title: "A-Rank Hunter"},
	{Level: 10, XPRequired: 10000, Title: "A-Rank Hunter"},
	{Level: 11, XPRequired: 13000, Title: "A-Rank Hunter"},
	{Level: 12, XPRequired: 16000, Title: "A-Rank Hunter"},
	{Level: 13, XPRequired: 19000, Title: "A-Rank Hunter"},
	{Level: 14, XPRequired: 22000, Title: "A-Rank Hunter"},
	{Level: 15, XPRequired: 25000, Title: "S-Rank Hunter"},
	{Level: 16, XPRequired: 30000, Title: "S-Rank Hunter"},
	{Level: 17, XPRequired: 35000, Title: "S-Rank Hunter"},
	{Level: 18, XPRequired: 40000, Title: "S-Rank Hunter"},
	{Level: 19, XPRequired: 45000, Title: "S-Rank Hunter"},
	{Level: 20, XPRequired: 50000, Title: "National Hunter"},
	{Level: 21, XPRequired: 60000, Title: "National Hunter"},
	{Level: 22, XPRequired: 70000, Title: "National Hunter"},
	{Level: 23, XPRequired: 80000, Title: "National Hunter"},
	{Level: 24, XPRequired: 90000, Title: "National Hunter"},
	{Level: 25, XPRequired: 100000, Title: "Shadow Monarch"},
}

// ForXP returns the level and title for a total XP amount: the highest
// table row whose threshold the total meets or exceeds.
func ForXP(totalXP int) (level int, title string) {
	level, title = 1, Thresholds[0].Title
	for i := len(Thresholds) - 1; i >= 0; i-- {
		if totalXP >= Thresholds[i].XPRequired {
			return Thresholds[i].Level, Thresholds[i].Title
		}
	}
	return level, title
}

// NextLevelXP returns the XP threshold of the first level above the
// given one, or the top threshold when already maxed.
func NextLevelXP(currentLevel int) int {
	for _, t := range Thresholds {
		if t.Level > currentLevel {
			return t.XPRequired
		}
	}
	return Thresholds[len(Thresholds)-1].XPRequired
}

// CurrentLevelXP returns the XP threshold at which the given level
// begins.
func CurrentLevelXP(currentLevel int) int {
	for i := len(Thresholds) - 1; i >= 0; i-- {
		if Thresholds[i].Level <= currentLevel {
			return Thresholds[i].XPRequired
		}
	}
	return 0
}

// ApplyMultiplier returns the actual XP for a base amount under the
// player's multiplier, rounded to the nearest integer. The multiplier
// is applied exactly once per award; callers must not compound it.
func ApplyMultiplier(base int, multiplier float64) int {
	if base <= 0 {
		return 0
	}
	if multiplier < 1.0 {
		multiplier = 1.0
	}
	return int(math.Round(float64(base) * multiplier))
}
