package game

import (
	"errors"
	"fmt"

	"github.com/primus-the-first/Solo-Leveling-Growth-Tracker/internal/boss"
)

var (
	ErrBossNotFound     = errors.New("game: boss not found")
	ErrBossLocked       = errors.New("game: player level too low for this boss")
	ErrBattleInProgress = errors.New("game: a battle is already in progress")
	ErrNoBattle         = errors.New("game: no active battle")
	ErrBattleNotWon     = errors.New("game: battle is not in the victory phase")
)

// StartBattle opens an encounter against the given boss and moves it
// straight into the battle phase. Boss HP is scaled to the player's
// level at this moment and never persisted.
func (g *Game) StartBattle(bossID string) (boss.Encounter, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.encounter != nil && !g.encounter.Terminal() {
		return boss.Encounter{}, ErrBattleInProgress
	}

	var target *boss.Boss
	for i := range g.st.Bosses {
		if g.st.Bosses[i].ID == bossID {
			target = &g.st.Bosses[i]
			break
		}
	}
	if target == nil {
		return boss.Encounter{}, fmt.Errorf("%w: %s", ErrBossNotFound, bossID)
	}
	if !target.Unlocked(g.st.Player.Level) {
		return boss.Encounter{}, fmt.Errorf("%w: need level %d", ErrBossLocked, target.LevelRequired)
	}

	e := boss.NewEncounter(*target, g.st.Player.Level, g.bal.PlayerMaxHP, g.rng)
	e.Begin()
	g.encounter = e
	return *e, nil
}

// Attack resolves one player strike in the active battle.
func (g *Game) Attack() (boss.AttackResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.encounter == nil {
		return boss.AttackResult{}, ErrNoBattle
	}
	return g.encounter.Attack()
}

// ResolveCounter applies the pending boss counter-attack.
func (g *Game) ResolveCounter() (boss.CounterResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.encounter == nil {
		return boss.CounterResult{}, ErrNoBattle
	}
	return g.encounter.ResolveCounter()
}

// Encounter returns a copy of the active encounter, if any.
func (g *Game) Encounter() (boss.Encounter, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.encounter == nil {
		return boss.Encounter{}, false
	}
	return *g.encounter, true
}

// VictoryReport describes a claimed boss victory.
type VictoryReport struct {
	Boss        boss.Boss `json:"boss"`
	AwardedXP   int       `json:"awardedXP"`
	TitleReward string    `json:"titleReward,omitempty"`
	FirstKill   bool      `json:"firstKill"`
}

// ClaimVictory collects the rewards of a won battle and closes the
// encounter. The defeated flag is one-way and guards the XP award: a
// re-fought boss can be beaten again but pays out only once.
func (g *Game) ClaimVictory() (VictoryReport, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.encounter == nil {
		return VictoryReport{}, ErrNoBattle
	}
	if g.encounter.Phase != boss.PhaseVictory {
		return VictoryReport{}, ErrBattleNotWon
	}

	report := VictoryReport{Boss: g.encounter.Boss}
	for i := range g.st.Bosses {
		if g.st.Bosses[i].ID != g.encounter.Boss.ID {
			continue
		}
		if !g.st.Bosses[i].Defeated {
			g.st.Bosses[i].Defeated = true
			report.FirstKill = true
			report.AwardedXP, _ = g.awardXPLocked(g.st.Bosses[i].XPReward, "")
			if title := g.st.Bosses[i].TitleReward; title != "" {
				report.TitleReward = title
				g.noticeLocked("title", fmt.Sprintf("Title earned: %s", title), 0)
			}
			g.noticeLocked("boss",
				fmt.Sprintf("%s defeated! +%d XP", g.st.Bosses[i].Name, report.AwardedXP),
				report.AwardedXP)
		}
		report.Boss = g.st.Bosses[i]
		break
	}

	g.encounter = nil
	g.evaluateAchievementsLocked()
	return report, g.persistLocked()
}

// CloseBattle abandons the active encounter without rewards. Used after
// a defeat or a retreat; the boss keeps nothing, the player loses
// nothing.
func (g *Game) CloseBattle() {
	g.mu.Lock()
	g.encounter = nil
	g.mu.Unlock()
}
