// Package boss holds the boss catalog and the turn-based combat
// resolver.
package boss

import "github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/pillar"

type Boss struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	HP            int       `json:"hp"`
	XPReward      int       `json:"xpReward"`
	TitleReward   string    `json:"titleReward,omitempty"`
	LevelRequired int       `json:"levelRequired"`
	Defeated      bool      `json:"defeated"`
	Pillar        pillar.ID `json:"pillar,omitempty"`
}

// Unlocked reports whether the player's level meets the boss's gate.
func (b Boss) Unlocked(playerLevel int) bool {
	return playerLevel >= b.LevelRequired
}

// ScaleHP computes the effective HP for an encounter: +10% of base HP
// per player level above 1, so battles stay meaningful at high level.
// Recomputed at challenge time, never stored.
func ScaleHP(baseHP, playerLevel int) int {
	if playerLevel < 1 {
		playerLevel = 1
	}
	return baseHP + (playerLevel-1)*baseHP/10
}

// Seed returns the default boss catalog.
func Seed() []Boss {
	return []Boss{
		{
			ID:          "addiction-boss",
			Name:        "Shadow of Temptation",
			Description: "Defeat addiction through discipline",
			HP:          100, XPReward: 500, TitleReward: "Willpower Master",
			LevelRequired: 1, Pillar: pillar.Personal,
		},
		{
			ID:          "debt-boss",
			Name:        "Debt Dragon",
			Description: "Slay the beast of financial burden",
			HP:          150, XPReward: 1000, TitleReward: "Debt Slayer",
			LevelRequired: 3, Pillar: pillar.Financial,
		},
		{
			ID:          "fear-boss",
			Name:        "Fear of Failure",
			Description: "Overcome the paralysis of doubt",
			HP:          80, XPReward: 300, TitleReward: "Fearless",
			LevelRequired: 2, Pillar: pillar.Personal,
		},
		{
			ID:          "procrastination-boss",
			Name:        "Time Thief",
			Description: "Vanquish the stealer of hours",
			HP:          120, XPReward: 750, TitleReward: "Time Lord",
			LevelRequired: 5, Pillar: pillar.Career,
		},
	}
}
