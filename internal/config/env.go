package config

import (
	"os"
	"strconv"
)

// FromEnv layers balance overrides from environment variables on top
// of base. Unset or malformed variables leave the base value untouched;
// an explicit "0" is honored for the knobs where zero is meaningful.
func FromEnv(base Balance) Balance {
	cfg := base
	cfg.ApplyDefaults()

	if val, ok := getEnvInt("DEFAULT_QUEST_XP"); ok && val > 0 {
		cfg.DefaultQuestXP = val
	}
	if val, ok := getEnvInt("PENALTY_XP_PER_MISS"); ok && val >= 0 {
		cfg.PenaltyXPPerMiss = val
	}
	if val, ok := getEnvInt("PENALTY_ZONE_THRESHOLD"); ok && val > 0 {
		cfg.PenaltyZoneThreshold = val
	}
	if val, ok := getEnvInt("RECOVERY_BONUS_XP"); ok && val >= 0 {
		cfg.RecoveryBonusXP = val
	}
	if val, ok := getEnvInt("COUNTDOWN_SECONDS"); ok && val > 0 {
		cfg.CountdownSeconds = val
	}
	if val, ok := getEnvInt("PLAYER_MAX_HP"); ok && val > 0 {
		cfg.PlayerMaxHP = val
	}

	// Support preset modes
	if mode := os.Getenv("DIFFICULTY"); mode != "" {
		switch mode {
		case "casual":
			return Casual()
		case "hard":
			return Hard()
		}
	}

	return cfg
}

func getEnvInt(key string) (int, bool) {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return 0, false
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return num, true
}
