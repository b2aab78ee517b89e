// Package store persists the game state as namespaced JSON documents.
// Backends share one contract: a flat key/value space where every value
// is a JSON blob and keys carry the versioned app prefix.
package store

import "errors"

// Prefix namespaces every persisted key so a shared data directory or
// database can hold other apps' state without collisions. The version
// suffix lets a future save-format break start from a clean slate.
const Prefix = "solo-leveling-v3-"

// Logical document keys. Backends store them with Prefix applied.
const (
	KeyPlayer       = "player"
	KeyPillars      = "pillars"
	KeyDailyQuests  = "quests-daily"
	KeyWeeklyQuests = "quests-weekly"
	KeyMonthlyGoals = "quests-monthly"
	KeyRecovery     = "quests-recovery"
	KeyBosses       = "bosses"
	KeyAchievements = "achievements"
	KeyRewards      = "rewards"
	KeyJournal      = "journal"
	KeyHistory      = "history"
	KeySettings     = "settings"
	KeyMeta         = "meta"
)

// ErrNoRecord is returned by Load when the key has never been saved.
var ErrNoRecord = errors.New("store: no record")

// Store is the persistence port the game engine writes through. Load
// unmarshals the stored document into v and returns ErrNoRecord when
// the key is absent; Keys lists the logical keys present, without the
// prefix.
type Store interface {
	Load(key string, v any) error
	Save(key string, v any) error
	Delete(key string) error
	Keys() ([]string, error)
	Close() error
}

// KnownKeys is the full set of documents a complete save contains.
func KnownKeys() []string {
	return []string{
		KeyPlayer, KeyPillars,
		KeyDailyQuests, KeyWeeklyQuests, KeyMonthlyGoals, KeyRecovery,
		KeyBosses, KeyAchievements, KeyRewards, KeyJournal,
		KeyHistory, KeySettings, KeyMeta,
	}
}

func knownKey(key string) bool {
	for _, k := range KnownKeys() {
		if k == key {
			return true
		}
	}
	return false
}
