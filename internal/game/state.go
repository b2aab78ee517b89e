package game

import (
	"time"

	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/achievement"
	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/boss"
	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/history"
	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/journal"
	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/pillar"
	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/player"
	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/quest"
	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/reward"
)

// Settings are the user-facing toggles persisted under their own key.
type Settings struct {
	SoundEnabled         bool `json:"soundEnabled"`
	NotificationsEnabled bool `json:"notificationsEnabled"`
	DarkMode             bool `json:"darkMode"`
}

func defaultSettings() Settings {
	return Settings{SoundEnabled: true, NotificationsEnabled: true, DarkMode: true}
}

// Meta is bookkeeping that belongs to no single entity: visit tracking
// for the penalty check, per-cadence reset anchors and the lifetime
// counters the achievement evaluator reads.
type Meta struct {
	LastVisitDate     string                      `json:"lastVisitDate"`
	LastResets        map[quest.Cadence]time.Time `json:"lastResets"`
	QuestsCompleted   int                         `json:"questsCompleted"`
	PenaltiesSurvived int                         `json:"penaltiesSurvived"`
	PenaltyEnteredAt  time.Time                   `json:"penaltyEnteredAt"`

	// AwardedQuests marks quests that already paid out this cadence
	// cycle, keyed "<cadence>:<questID>". Uncompleting keeps XP (no
	// clawback) and re-completing inside the same cycle pays nothing;
	// the cadence reset clears its marks so the next cycle pays again.
	AwardedQuests map[string]bool `json:"awardedQuests"`
}

// State is the full game snapshot the orchestrator owns.
type State struct {
	Player       player.Player               `json:"player"`
	Pillars      map[pillar.ID]pillar.Pillar `json:"pillars"`
	Daily        quest.Collection            `json:"dailyQuests"`
	Weekly       quest.Collection            `json:"weeklyQuests"`
	Monthly      quest.Collection            `json:"monthlyQuests"`
	Recovery     quest.Collection            `json:"recoveryQuests"`
	Bosses       []boss.Boss                 `json:"bossBattles"`
	Achievements []achievement.Achievement   `json:"achievements"`
	Rewards      []reward.Reward             `json:"rewards"`
	Journal      []journal.Entry             `json:"journal"`
	History      history.Map                 `json:"history"`
	Settings     Settings                    `json:"settings"`
	Meta         Meta                        `json:"meta"`
}

func defaultState() State {
	return State{
		Player:       player.Default(),
		Pillars:      pillar.Defaults(),
		Daily:        quest.SeedDaily(),
		Weekly:       quest.SeedWeekly(),
		Monthly:      quest.SeedMonthly(),
		Recovery:     quest.SeedRecovery(),
		Bosses:       boss.Seed(),
		Achievements: achievement.Seed(),
		Rewards:      reward.Seed(),
		History:      history.Map{},
		Settings:     defaultSettings(),
		Meta: Meta{
			LastResets:    map[quest.Cadence]time.Time{},
			AwardedQuests: map[string]bool{},
		},
	}
}

// clone deep-copies the snapshot so callers can read it without holding
// the orchestrator lock.
func (s State) clone() State {
	out := s

	out.Pillars = make(map[pillar.ID]pillar.Pillar, len(s.Pillars))
	for id, p := range s.Pillars {
		stats := make([]pillar.Stat, len(p.Stats))
		copy(stats, p.Stats)
		p.Stats = stats
		out.Pillars[id] = p
	}

	out.Daily = append(quest.Collection(nil), s.Daily...)
	out.Weekly = append(quest.Collection(nil), s.Weekly...)
	out.Monthly = append(quest.Collection(nil), s.Monthly...)
	out.Recovery = append(quest.Collection(nil), s.Recovery...)
	out.Bosses = append([]boss.Boss(nil), s.Bosses...)
	out.Achievements = append([]achievement.Achievement(nil), s.Achievements...)
	out.Rewards = append([]reward.Reward(nil), s.Rewards...)
	out.Journal = append([]journal.Entry(nil), s.Journal...)

	out.History = make(history.Map, len(s.History))
	for k, v := range s.History {
		out.History[k] = v
	}

	out.Meta.LastResets = make(map[quest.Cadence]time.Time, len(s.Meta.LastResets))
	for c, t := range s.Meta.LastResets {
		out.Meta.LastResets[c] = t
	}

	out.Meta.AwardedQuests = make(map[string]bool, len(s.Meta.AwardedQuests))
	for k, v := range s.Meta.AwardedQuests {
		out.Meta.AwardedQuests[k] = v
	}

	sp := make(map[pillar.ID]int, len(s.Player.SkillPoints))
	for id, n := range s.Player.SkillPoints {
		sp[id] = n
	}
	out.Player.SkillPoints = sp

	return out
}

// collection maps a cadence to its ledger. The returned pointer lets
// mutating operations write the toggled collection back.
func (s *State) collection(c quest.Cadence) *quest.Collection {
	switch c {
	case quest.Daily:
		return &s.Daily
	case quest.Weekly:
		return &s.Weekly
	case quest.Monthly:
		return &s.Monthly
	}
	return nil
}
