// Package game is the orchestrator: it owns the full snapshot,
// serializes every mutation through one mutex and runs the post-mutation
// effects (XP award, history, achievements, notification) in order.
package game

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/achievement"
	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/boss"
	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/config"
	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/history"
	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/journal"
	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/leveling"
	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/pillar"
	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/player"
	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/quest"
	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/reward"
	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/store"
)

var (
	ErrUnknownCadence = errors.New("game: unknown cadence")
)

// Notice is a user-facing notification surfaced as data. The UI drains
// them; nothing in the engine logs them.
type Notice struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	XP      int    `json:"xp,omitempty"`
}

// Game serializes all state transitions. Every exported operation takes
// the one mutex, mutates the snapshot, persists it and fires onChange so
// the remote saver can debounce a push.
type Game struct {
	mu        sync.Mutex
	st        State
	store     store.Store
	clock     Clock
	bal       config.Balance
	rng       boss.Rand
	encounter *boss.Encounter
	notices   []Notice
	onChange  func()
}

// New loads the snapshot from the store, seeding each entity whose
// document is missing or corrupt. A corrupt document never aborts the
// load; the entity falls back to its default seed.
func New(st store.Store, clock Clock, bal config.Balance) (*Game, error) {
	if clock == nil {
		clock = RealClock{}
	}
	g := &Game{
		st:    defaultState(),
		store: st,
		clock: clock,
		bal:   bal,
	}
	g.loadAll()
	return g, nil
}

// SetRand replaces the combat randomness source. Tests pass a seeded
// generator for reproducible battles.
func (g *Game) SetRand(r boss.Rand) {
	g.mu.Lock()
	g.rng = r
	g.mu.Unlock()
}

// SetOnChange registers the hook fired after every persisted mutation.
func (g *Game) SetOnChange(fn func()) {
	g.mu.Lock()
	g.onChange = fn
	g.mu.Unlock()
}

func (g *Game) loadAll() {
	load := func(key string, v any) {
		if err := g.store.Load(key, v); err != nil && !errors.Is(err, store.ErrNoRecord) {
			// Corrupt document: keep the seed and tell the user.
			g.notices = append(g.notices, Notice{
				Kind:    "warning",
				Message: fmt.Sprintf("Saved %s could not be read; defaults restored", key),
			})
		}
	}
	load(store.KeyPlayer, &g.st.Player)
	load(store.KeyPillars, &g.st.Pillars)
	load(store.KeyDailyQuests, &g.st.Daily)
	load(store.KeyWeeklyQuests, &g.st.Weekly)
	load(store.KeyMonthlyGoals, &g.st.Monthly)
	load(store.KeyRecovery, &g.st.Recovery)
	load(store.KeyBosses, &g.st.Bosses)
	load(store.KeyAchievements, &g.st.Achievements)
	load(store.KeyRewards, &g.st.Rewards)
	load(store.KeyJournal, &g.st.Journal)
	load(store.KeyHistory, &g.st.History)
	load(store.KeySettings, &g.st.Settings)
	load(store.KeyMeta, &g.st.Meta)

	if g.st.Pillars == nil {
		g.st.Pillars = pillar.Defaults()
	}
	if g.st.History == nil {
		g.st.History = history.Map{}
	}
	if g.st.Meta.LastResets == nil {
		g.st.Meta.LastResets = map[quest.Cadence]time.Time{}
	}
	if g.st.Meta.AwardedQuests == nil {
		g.st.Meta.AwardedQuests = map[string]bool{}
	}
}

// awardKey marks a quest as paid within its current cadence cycle.
func awardKey(scope, id string) string {
	return scope + ":" + id
}

// clearAwardMarksLocked drops the paid marks for one scope, re-enabling
// awards after a reset.
func (g *Game) clearAwardMarksLocked(scope string) {
	prefix := scope + ":"
	for k := range g.st.Meta.AwardedQuests {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			delete(g.st.Meta.AwardedQuests, k)
		}
	}
}

func (g *Game) persistLocked() error {
	docs := map[string]any{
		store.KeyPlayer:       g.st.Player,
		store.KeyPillars:      g.st.Pillars,
		store.KeyDailyQuests:  g.st.Daily,
		store.KeyWeeklyQuests: g.st.Weekly,
		store.KeyMonthlyGoals: g.st.Monthly,
		store.KeyRecovery:     g.st.Recovery,
		store.KeyBosses:       g.st.Bosses,
		store.KeyAchievements: g.st.Achievements,
		store.KeyRewards:      g.st.Rewards,
		store.KeyJournal:      g.st.Journal,
		store.KeyHistory:      g.st.History,
		store.KeySettings:     g.st.Settings,
		store.KeyMeta:         g.st.Meta,
	}
	var firstErr error
	for key, v := range docs {
		if err := g.store.Save(key, v); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("save %s: %w", key, err)
		}
	}
	if g.onChange != nil {
		g.onChange()
	}
	return firstErr
}

// Snapshot returns a deep copy of the current state.
func (g *Game) Snapshot() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.st.clone()
}

// Notifications drains and returns the pending notices, oldest first.
func (g *Game) Notifications() []Notice {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := g.notices
	g.notices = nil
	return out
}

func (g *Game) noticeLocked(kind, msg string, xp int) {
	g.notices = append(g.notices, Notice{Kind: kind, Message: msg, XP: xp})
}

// Notify queues a notice from outside the engine, such as boot-time
// sync status.
func (g *Game) Notify(kind, msg string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.noticeLocked(kind, msg, 0)
}

// awardXPLocked is the single XP entry point: the multiplier is read
// once, applied exactly once, and the day's history entry absorbs the
// actual amount. Returns the actual awarded XP.
func (g *Game) awardXPLocked(base int, pid pillar.ID) (actual int, levelledUp bool) {
	actual = leveling.ApplyMultiplier(base, g.st.Player.XPMultiplier)
	if actual <= 0 {
		return 0, false
	}
	levelledUp = g.st.Player.AddXP(actual)

	if pid != "" {
		if p, ok := g.st.Pillars[pid]; ok {
			p.AddXP(actual)
			g.st.Pillars[pid] = p
		}
	}
	g.st.History.Add(history.Key(g.clock.Now()), actual)

	if levelledUp {
		g.noticeLocked("levelup",
			fmt.Sprintf("Level %d reached: %s", g.st.Player.Level, g.st.Player.Title), 0)
	}
	return actual, levelledUp
}

// evaluateAchievementsLocked re-scans unlock predicates and awards each
// fresh unlock once.
func (g *Game) evaluateAchievementsLocked() {
	snap := achievement.Snapshot{
		Player:            g.st.Player,
		Pillars:           g.st.Pillars,
		Bosses:            g.st.Bosses,
		QuestsCompleted:   g.st.Meta.QuestsCompleted,
		PenaltiesSurvived: g.st.Meta.PenaltiesSurvived,
	}
	updated, newly := achievement.Evaluate(g.st.Achievements, snap)
	g.st.Achievements = updated
	for _, a := range newly {
		actual, _ := g.awardXPLocked(a.XP, "")
		g.noticeLocked("achievement",
			fmt.Sprintf("Achievement unlocked: %s", a.Name), actual)
	}
}

// ToggleOutcome reports what a quest toggle did.
type ToggleOutcome struct {
	Quest        quest.Quest `json:"quest"`
	NowCompleted bool        `json:"nowCompleted"`
	AwardedXP    int         `json:"awardedXP"`
}

// ToggleQuest flips a quest's completion flag. Completing pays the
// quest's XP at most once per cadence cycle: uncompleting never claws
// XP back, and re-completing before the next reset pays nothing, so a
// true→false→true cycle nets exactly one award.
func (g *Game) ToggleQuest(c quest.Cadence, id string) (ToggleOutcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	col := g.st.collection(c)
	if col == nil {
		return ToggleOutcome{}, fmt.Errorf("%w: %s", ErrUnknownCadence, c)
	}
	updated, res, err := col.Toggle(id)
	if err != nil {
		return ToggleOutcome{}, err
	}
	*col = updated

	out := ToggleOutcome{Quest: res.Quest, NowCompleted: res.NowCompleted}
	key := awardKey(string(c), id)
	if res.NowCompleted && !g.st.Meta.AwardedQuests[key] {
		g.st.Meta.AwardedQuests[key] = true
		out.AwardedXP, _ = g.awardXPLocked(res.Quest.XP, res.Quest.Pillar)
		g.st.Meta.QuestsCompleted++
		g.noticeLocked("xp", fmt.Sprintf("+%d XP: %s", out.AwardedXP, res.Quest.Task), out.AwardedXP)
		g.evaluateAchievementsLocked()
	}
	return out, g.persistLocked()
}

// CreateQuest authors a custom quest in the given cadence collection.
// Drafts without an XP value fall back to the configured default.
func (g *Game) CreateQuest(c quest.Cadence, d quest.Draft) (quest.Quest, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	col := g.st.collection(c)
	if col == nil {
		return quest.Quest{}, fmt.Errorf("%w: %s", ErrUnknownCadence, c)
	}
	if d.XP <= 0 {
		d.XP = g.bal.DefaultQuestXP
	}
	updated, q, err := col.Create(d)
	if err != nil {
		return quest.Quest{}, err
	}
	*col = updated
	return q, g.persistLocked()
}

// DeleteQuest removes a quest from the given cadence collection.
func (g *Game) DeleteQuest(c quest.Cadence, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	col := g.st.collection(c)
	if col == nil {
		return fmt.Errorf("%w: %s", ErrUnknownCadence, c)
	}
	*col = col.Delete(id)
	return g.persistLocked()
}

// CreateReward adds a real-life reward to the shelf.
func (g *Game) CreateReward(d reward.Draft) (reward.Reward, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	r, err := reward.Create(d)
	if err != nil {
		return reward.Reward{}, err
	}
	g.st.Rewards = append(g.st.Rewards, r)
	return r, g.persistLocked()
}

// ClaimReward claims a reward once lifetime XP meets its threshold.
func (g *Game) ClaimReward(id string) (reward.Reward, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	updated, claimed, err := reward.Claim(g.st.Rewards, id, g.st.Player.TotalXP)
	if err != nil {
		return reward.Reward{}, err
	}
	g.st.Rewards = updated
	g.noticeLocked("reward", fmt.Sprintf("Reward claimed: %s", claimed.Name), 0)
	return claimed, g.persistLocked()
}

// DeleteReward removes a reward from the shelf.
func (g *Game) DeleteReward(id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.st.Rewards = reward.Delete(g.st.Rewards, id)
	return g.persistLocked()
}

// AddJournalEntry appends a date-stamped journal entry.
func (g *Game) AddJournalEntry(text string) (journal.Entry, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	e, err := journal.New(text, g.clock.Now())
	if err != nil {
		return journal.Entry{}, err
	}
	g.st.Journal = append(g.st.Journal, e)
	return e, g.persistLocked()
}

// DeleteJournalEntry removes a journal entry.
func (g *Game) DeleteJournalEntry(id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.st.Journal = journal.Delete(g.st.Journal, id)
	return g.persistLocked()
}

// UpdateSettings replaces the settings record.
func (g *Game) UpdateSettings(s Settings) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.st.Settings = s
	return g.persistLocked()
}

// ToggleSound flips the sound setting and returns the new settings.
func (g *Game) ToggleSound() (Settings, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.st.Settings.SoundEnabled = !g.st.Settings.SoundEnabled
	return g.st.Settings, g.persistLocked()
}

// LevelProgress reports the hunter's progress toward the next level.
func (g *Game) LevelProgress() player.LevelProgress {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.st.Player.Progress()
}

// Export bundles the persisted documents into one portable dump.
func (g *Game) Export() (store.Dump, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.persistLocked(); err != nil {
		return nil, err
	}
	return store.Export(g.store)
}

// Dump reads the persisted documents without writing anything. Every
// mutation persists before it reports a change, so this is always
// current when a change listener reads it.
func (g *Game) Dump() (store.Dump, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return store.Export(g.store)
}

// Import validates and writes a dump, then reloads the in-memory
// snapshot from it. A failed validation leaves both the store and the
// snapshot untouched.
func (g *Game) Import(dump store.Dump) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := store.Import(g.store, dump); err != nil {
		return err
	}
	g.st = defaultState()
	g.loadAll()
	g.noticeLocked("info", "Save data imported", 0)
	if g.onChange != nil {
		g.onChange()
	}
	return nil
}
