package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/boss"
	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/game"
	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/journal"
	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/quest"
	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/reward"
	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/schedule"
	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/store"
)

// App holds what the handlers depend on. The orchestrator serializes
// all mutations, so handlers never coordinate with each other.
type App struct {
	Game *game.Game
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain sentinels onto HTTP codes: unknown entities
// are 404, rejected-but-retryable states are 409, bad input is 400.
func writeError(w http.ResponseWriter, err error) {
	var verr validator.ValidationErrors
	switch {
	case errors.Is(err, quest.ErrNotFound),
		errors.Is(err, game.ErrBossNotFound),
		errors.Is(err, game.ErrRecoveryNotFound),
		errors.Is(err, reward.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, game.ErrBattleInProgress),
		errors.Is(err, game.ErrNoBattle),
		errors.Is(err, game.ErrBattleNotWon),
		errors.Is(err, game.ErrBossLocked),
		errors.Is(err, game.ErrNoPenalty),
		errors.Is(err, game.ErrPenaltyNotCleared),
		errors.Is(err, reward.ErrLocked),
		errors.Is(err, reward.ErrAlreadyOurs),
		errors.Is(err, boss.ErrNotInBattle),
		errors.Is(err, boss.ErrAttackInFlight),
		errors.Is(err, boss.ErrNoPendingCounter):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, game.ErrUnknownCadence),
		errors.Is(err, journal.ErrEmpty),
		errors.As(err, &verr):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return false
	}
	return true
}

func RegisterAPIRoutes(mux *http.ServeMux, rr *RouteRegistry, app *App) {
	g := app.Game

	Handle(mux, rr, "GET /api/state", "Full game snapshot", "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, g.Snapshot())
	})

	Handle(mux, rr, "GET /api/progress", "Progress toward the next level", "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, g.LevelProgress())
	})

	Handle(mux, rr, "GET /api/notifications", "Drain pending notifications", "", func(w http.ResponseWriter, r *http.Request) {
		notes := g.Notifications()
		if notes == nil {
			notes = []game.Notice{}
		}
		writeJSON(w, notes)
	})

	Handle(mux, rr, "POST /api/session/start", "Run the session-start penalty check", "", func(w http.ResponseWriter, r *http.Request) {
		report, err := g.SessionStart()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, report)
	})

	// Quests
	Handle(mux, rr, "POST /api/quests/toggle", "Toggle a quest", `{"cadence":"daily","id":"daily-1"}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Cadence quest.Cadence `json:"cadence"`
			ID      string        `json:"id"`
		}
		if !decode(w, r, &body) {
			return
		}
		out, err := g.ToggleQuest(body.Cadence, body.ID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, out)
	})

	Handle(mux, rr, "POST /api/quests", "Create a custom quest", `{"cadence":"daily","task":"Track Spending","xp":30,"pillar":"financial"}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Cadence quest.Cadence `json:"cadence"`
			quest.Draft
		}
		if !decode(w, r, &body) {
			return
		}
		q, err := g.CreateQuest(body.Cadence, body.Draft)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, q)
	})

	Handle(mux, rr, "POST /api/quests/delete", "Delete a quest", `{"cadence":"daily","id":"custom-…"}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Cadence quest.Cadence `json:"cadence"`
			ID      string        `json:"id"`
		}
		if !decode(w, r, &body) {
			return
		}
		if err := g.DeleteQuest(body.Cadence, body.ID); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, map[string]any{"deleted": body.ID})
	})

	// Resets
	Handle(mux, rr, "GET /api/resets", "Time remaining until each cadence boundary", "", func(w http.ResponseWriter, r *http.Request) {
		type remaining struct {
			Seconds int64  `json:"seconds"`
			Display string `json:"display"`
		}
		out := map[quest.Cadence]remaining{}
		for _, c := range []quest.Cadence{quest.Daily, quest.Weekly, quest.Monthly} {
			d, err := g.TimeUntilReset(c)
			if err != nil {
				writeError(w, err)
				return
			}
			out[c] = remaining{Seconds: int64(d.Seconds()), Display: schedule.FormatRemaining(d)}
		}
		writeJSON(w, out)
	})

	Handle(mux, rr, "POST /api/resets/apply", "Apply any due cadence resets", "", func(w http.ResponseWriter, r *http.Request) {
		fired, err := g.ApplyDueResets()
		if err != nil {
			writeError(w, err)
			return
		}
		if fired == nil {
			fired = []quest.Cadence{}
		}
		writeJSON(w, map[string]any{"reset": fired})
	})

	// Penalty zone
	Handle(mux, rr, "POST /api/recovery/toggle", "Toggle a recovery quest", `{"id":"recovery-1"}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ID string `json:"id"`
		}
		if !decode(w, r, &body) {
			return
		}
		out, err := g.ToggleRecoveryQuest(body.ID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, out)
	})

	Handle(mux, rr, "POST /api/penalty/exit", "Exit the penalty zone", "", func(w http.ResponseWriter, r *http.Request) {
		if err := g.ExitPenaltyZone(); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, map[string]any{"cleared": true})
	})

	Handle(mux, rr, "GET /api/penalty/countdown", "Cosmetic penalty countdown", "", func(w http.ResponseWriter, r *http.Request) {
		d := g.PenaltyCountdown()
		writeJSON(w, map[string]any{
			"seconds": int64(d.Seconds()),
			"display": schedule.FormatRemaining(d),
		})
	})

	// Boss battles
	Handle(mux, rr, "POST /api/battles/start", "Start a boss battle", `{"bossId":"addiction-boss"}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			BossID string `json:"bossId"`
		}
		if !decode(w, r, &body) {
			return
		}
		enc, err := g.StartBattle(body.BossID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, enc)
	})

	Handle(mux, rr, "GET /api/battles", "Current encounter state", "", func(w http.ResponseWriter, r *http.Request) {
		enc, ok := g.Encounter()
		if !ok {
			http.Error(w, game.ErrNoBattle.Error(), http.StatusNotFound)
			return
		}
		writeJSON(w, enc)
	})

	Handle(mux, rr, "POST /api/battles/attack", "Player attack", "", func(w http.ResponseWriter, r *http.Request) {
		res, err := g.Attack()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, res)
	})

	Handle(mux, rr, "POST /api/battles/counter", "Resolve the boss counter-attack", "", func(w http.ResponseWriter, r *http.Request) {
		res, err := g.ResolveCounter()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, res)
	})

	Handle(mux, rr, "POST /api/battles/claim", "Claim a won battle's rewards", "", func(w http.ResponseWriter, r *http.Request) {
		report, err := g.ClaimVictory()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, report)
	})

	Handle(mux, rr, "POST /api/battles/close", "Abandon the current encounter", "", func(w http.ResponseWriter, r *http.Request) {
		g.CloseBattle()
		writeJSON(w, map[string]any{"closed": true})
	})

	// Rewards
	Handle(mux, rr, "POST /api/rewards", "Add a real-life reward", `{"name":"Movie Night","xpRequired":200}`, func(w http.ResponseWriter, r *http.Request) {
		var body reward.Draft
		if !decode(w, r, &body) {
			return
		}
		rw, err := g.CreateReward(body)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, rw)
	})

	Handle(mux, rr, "POST /api/rewards/claim", "Claim a reward", `{"id":"reward-1"}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ID string `json:"id"`
		}
		if !decode(w, r, &body) {
			return
		}
		rw, err := g.ClaimReward(body.ID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, rw)
	})

	Handle(mux, rr, "POST /api/rewards/delete", "Delete a reward", `{"id":"reward-1"}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ID string `json:"id"`
		}
		if !decode(w, r, &body) {
			return
		}
		if err := g.DeleteReward(body.ID); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, map[string]any{"deleted": body.ID})
	})

	// Journal
	Handle(mux, rr, "POST /api/journal", "Add a journal entry", `{"text":"shipped the tracker"}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Text string `json:"text"`
		}
		if !decode(w, r, &body) {
			return
		}
		e, err := g.AddJournalEntry(body.Text)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, e)
	})

	Handle(mux, rr, "GET /api/journal", "List journal entries, optionally for one day", "", func(w http.ResponseWriter, r *http.Request) {
		entries := g.Snapshot().Journal
		if day := r.URL.Query().Get("date"); day != "" {
			entries = journal.OnDay(entries, day)
		}
		if entries == nil {
			entries = []journal.Entry{}
		}
		writeJSON(w, entries)
	})

	Handle(mux, rr, "POST /api/journal/delete", "Delete a journal entry", `{"id":"journal-…"}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ID string `json:"id"`
		}
		if !decode(w, r, &body) {
			return
		}
		if err := g.DeleteJournalEntry(body.ID); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, map[string]any{"deleted": body.ID})
	})

	// Settings
	Handle(mux, rr, "POST /api/settings", "Replace settings", `{"soundEnabled":true,"notificationsEnabled":true,"darkMode":true}`, func(w http.ResponseWriter, r *http.Request) {
		var body game.Settings
		if !decode(w, r, &body) {
			return
		}
		if err := g.UpdateSettings(body); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, body)
	})

	Handle(mux, rr, "POST /api/settings/sound", "Flip the sound setting", "", func(w http.ResponseWriter, r *http.Request) {
		s, err := g.ToggleSound()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, s)
	})

	// Export / import
	Handle(mux, rr, "GET /api/export", "Export the full save", "", func(w http.ResponseWriter, r *http.Request) {
		dump, err := g.Export()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, dump)
	})

	Handle(mux, rr, "POST /api/import", "Import a full save", `{"player":{…},"history":{…}}`, func(w http.ResponseWriter, r *http.Request) {
		var dump store.Dump
		if !decode(w, r, &dump) {
			return
		}
		if err := g.Import(dump); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, map[string]any{"imported": len(dump)})
	})
}
