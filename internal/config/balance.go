package config

// Balance holds gameplay balance configuration
type Balance struct {
	// Quests
	DefaultQuestXP int `yaml:"default_quest_xp" json:"default_quest_xp"`

	// Penalties
	PenaltyXPPerMiss     int `yaml:"penalty_xp_per_miss" json:"penalty_xp_per_miss"`
	PenaltyZoneThreshold int `yaml:"penalty_zone_threshold" json:"penalty_zone_threshold"`
	RecoveryBonusXP      int `yaml:"recovery_bonus_xp" json:"recovery_bonus_xp"`
	CountdownSeconds     int `yaml:"countdown_seconds" json:"countdown_seconds"`

	// Multiplier
	MultiplierStep float64 `yaml:"multiplier_step" json:"multiplier_step"`

	// Combat
	PlayerMaxHP int `yaml:"player_max_hp" json:"player_max_hp"`
}

// Default returns the default balance configuration
func Default() Balance {
	return Balance{
		DefaultQuestXP:       10,
		PenaltyXPPerMiss:     10,
		PenaltyZoneThreshold: 3,
		RecoveryBonusXP:      50,
		CountdownSeconds:     900,
		MultiplierStep:       0.1,
		PlayerMaxHP:          100,
	}
}

// Casual returns easier balance for casual difficulty
func Casual() Balance {
	cfg := Default()
	cfg.PenaltyXPPerMiss = 5
	cfg.PenaltyZoneThreshold = 5
	cfg.RecoveryBonusXP = 75
	return cfg
}

// Hard returns harder balance for experienced players
func Hard() Balance {
	cfg := Default()
	cfg.PenaltyXPPerMiss = 15
	cfg.PenaltyZoneThreshold = 2
	cfg.RecoveryBonusXP = 25
	return cfg
}

// ApplyDefaults fills zero-valued fields so a partial yaml balance
// block keeps the stock numbers for everything it omits.
func (b *Balance) ApplyDefaults() {
	d := Default()
	if b.DefaultQuestXP == 0 {
		b.DefaultQuestXP = d.DefaultQuestXP
	}
	if b.PenaltyXPPerMiss == 0 {
		b.PenaltyXPPerMiss = d.PenaltyXPPerMiss
	}
	if b.PenaltyZoneThreshold == 0 {
		b.PenaltyZoneThreshold = d.PenaltyZoneThreshold
	}
	if b.RecoveryBonusXP == 0 {
		b.RecoveryBonusXP = d.RecoveryBonusXP
	}
	if b.CountdownSeconds == 0 {
		b.CountdownSeconds = d.CountdownSeconds
	}
	if b.MultiplierStep == 0 {
		b.MultiplierStep = d.MultiplierStep
	}
	if b.PlayerMaxHP == 0 {
		b.PlayerMaxHP = d.PlayerMaxHP
	}
}
