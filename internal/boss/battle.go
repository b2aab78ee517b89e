package boss

import (
	"errors"
	"math/rand"
)

const (
	// PlayerMaxHP is the default hit-point pool the player enters a
	// battle with; callers may override it per encounter.
	PlayerMaxHP = 100

	minPlayerDamage    = 5
	playerBaseDamage   = 15
	playerDamagePerLvl = 2
	playerVarianceSpan = 11 // symmetric ±5
	bossCounterBase    = 10
	bossCounterSpan    = 15 // counter damage in [10, 24]
)

var (
	ErrNotInBattle      = errors.New("encounter is not in the battle phase")
	ErrAttackInFlight   = errors.New("attack already resolving")
	ErrNoPendingCounter = errors.New("no counter-attack pending")
)

// Phase is the encounter state. Victory and Defeat are terminal.
type Phase string

const (
	PhaseIntro   Phase = "intro"
	PhaseBattle  Phase = "battle"
	PhaseVictory Phase = "victory"
	PhaseDefeat  Phase = "defeat"
)

// Rand is the injectable randomness source for combat, so resolution is
// reproducible under test.
type Rand interface {
	Intn(n int) int
}

// Encounter is one attempt at a boss. Boss HP is never persisted across
// attempts; a defeated player may simply start a new encounter.
type Encounter struct {
	Boss        Boss  `json:"boss"`
	PlayerLevel int   `json:"playerLevel"`
	Phase       Phase `json:"phase"`
	BossHP      int   `json:"bossHP"`
	MaxBossHP   int   `json:"maxBossHP"`
	PlayerHP    int   `json:"playerHP"`

	resolving bool
	rng       Rand
}

// NewEncounter opens an encounter in the intro phase with effective HP
// scaled to the player's level. playerHP values below 1 fall back to
// PlayerMaxHP; a nil rng falls back to the global source.
func NewEncounter(b Boss, playerLevel, playerHP int, rng Rand) *Encounter {
	if playerLevel < 1 {
		playerLevel = 1
	}
	if playerHP < 1 {
		playerHP = PlayerMaxHP
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	hp := ScaleHP(b.HP, playerLevel)
	return &Encounter{
		Boss:        b,
		PlayerLevel: playerLevel,
		Phase:       PhaseIntro,
		BossHP:      hp,
		MaxBossHP:   hp,
		PlayerHP:    playerHP,
		rng:         rng,
	}
}

// Begin moves the encounter from intro to battle. Calling it in any
// other phase is a no-op.
func (e *Encounter) Begin() {
	if e.Phase == PhaseIntro {
		e.Phase = PhaseBattle
	}
}

// AttackResult describes one player strike.
type AttackResult struct {
	Damage         int  `json:"damage"`
	BossHP         int  `json:"bossHP"`
	Victory        bool `json:"victory"`
	CounterPending bool `json:"counterPending"`
}

// Attack resolves one player strike: damage scales linearly with level
// plus a small symmetric variance, floored at 5. When the boss survives
// a counter-attack becomes pending and further attacks are rejected
// until ResolveCounter runs. When boss HP reaches zero the encounter
// transitions to victory with no counter-attack.
func (e *Encounter) Attack() (AttackResult, error) {
	if e.Phase != PhaseBattle {
		return AttackResult{}, ErrNotInBattle
	}
	if e.resolving {
		return AttackResult{}, ErrAttackInFlight
	}

	base := playerBaseDamage + playerDamagePerLvl*e.PlayerLevel
	variance := e.rng.Intn(playerVarianceSpan) - playerVarianceSpan/2
	damage := base + variance
	if damage < minPlayerDamage {
		damage = minPlayerDamage
	}

	e.BossHP -= damage
	if e.BossHP <= 0 {
		e.BossHP = 0
		e.Phase = PhaseVictory
		return AttackResult{Damage: damage, BossHP: 0, Victory: true}, nil
	}

	e.resolving = true
	return AttackResult{Damage: damage, BossHP: e.BossHP, CounterPending: true}, nil
}

// CounterResult describes the boss's answer to a survived strike.
type CounterResult struct {
	Damage   int  `json:"damage"`
	PlayerHP int  `json:"playerHP"`
	Defeat   bool `json:"defeat"`
}

// ResolveCounter applies the pending boss counter-attack: a bounded
// random hit subtracted from player HP, clamped at zero. Player HP at
// zero is terminal defeat.
func (e *Encounter) ResolveCounter() (CounterResult, error) {
	if e.Phase != PhaseBattle {
		return CounterResult{}, ErrNotInBattle
	}
	if !e.resolving {
		return CounterResult{}, ErrNoPendingCounter
	}
	e.resolving = false

	damage := bossCounterBase + e.rng.Intn(bossCounterSpan)
	e.PlayerHP -= damage
	if e.PlayerHP <= 0 {
		e.PlayerHP = 0
		e.Phase = PhaseDefeat
		return CounterResult{Damage: damage, PlayerHP: 0, Defeat: true}, nil
	}
	return CounterResult{Damage: damage, PlayerHP: e.PlayerHP}, nil
}

// Resolving reports whether a counter-attack is pending.
func (e *Encounter) Resolving() bool {
	return e.resolving
}

// Terminal reports whether the encounter has ended.
func (e *Encounter) Terminal() bool {
	return e.Phase == PhaseVictory || e.Phase == PhaseDefeat
}
