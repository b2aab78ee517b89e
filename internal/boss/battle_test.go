package boss

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRand always returns the same value, clamped into range.
type fixedRand struct{ v int }

func (f fixedRand) Intn(n int) int {
	if f.v >= n {
		return n - 1
	}
	return f.v
}

func TestScaleHP(t *testing.T) {
	assert.Equal(t, 100, ScaleHP(100, 1))
	assert.Equal(t, 110, ScaleHP(100, 2))
	assert.Equal(t, 190, ScaleHP(100, 10))
	assert.Equal(t, 100, ScaleHP(100, 0), "levels below 1 are treated as 1")

	prev := 0
	for lvl := 1; lvl <= 25; lvl++ {
		hp := ScaleHP(150, lvl)
		require.GreaterOrEqual(t, hp, prev, "scaling must be monotonic")
		prev = hp
	}
}

func TestEncounterLifecycle(t *testing.T) {
	b := Seed()[0]
	// Variance 5 maps to 0 after centering: damage is exactly base.
	e := NewEncounter(b, 2, 0, fixedRand{v: 5})

	assert.Equal(t, PhaseIntro, e.Phase)
	assert.Equal(t, 110, e.BossHP)
	assert.Equal(t, PlayerMaxHP, e.PlayerHP)

	// Attacking during the intro is rejected.
	_, err := e.Attack()
	require.ErrorIs(t, err, ErrNotInBattle)

	e.Begin()
	require.Equal(t, PhaseBattle, e.Phase)

	res, err := e.Attack()
	require.NoError(t, err)
	assert.Equal(t, 19, res.Damage) // 15 + 2*2 + 0
	assert.True(t, res.CounterPending)
	assert.Equal(t, 91, res.BossHP)
}

func TestAttackReentrancyRejected(t *testing.T) {
	e := NewEncounter(Seed()[0], 1, 0, fixedRand{v: 5})
	e.Begin()

	_, err := e.Attack()
	require.NoError(t, err)
	require.True(t, e.Resolving())

	_, err = e.Attack()
	require.ErrorIs(t, err, ErrAttackInFlight)

	_, err = e.ResolveCounter()
	require.NoError(t, err)
	require.False(t, e.Resolving())

	_, err = e.Attack()
	require.NoError(t, err)
}

func TestVictorySkipsCounter(t *testing.T) {
	b := Boss{ID: "dummy", Name: "Dummy", HP: 10, XPReward: 5}
	e := NewEncounter(b, 1, 0, fixedRand{v: 5}) // damage 17 per hit
	e.Begin()

	res, err := e.Attack()
	require.NoError(t, err)
	assert.True(t, res.Victory)
	assert.Equal(t, 0, res.BossHP)
	assert.False(t, res.CounterPending)
	assert.Equal(t, PhaseVictory, e.Phase)
	assert.True(t, e.Terminal())

	// No counter-attack is pending after a killing blow.
	_, err = e.ResolveCounter()
	assert.ErrorIs(t, err, ErrNoPendingCounter)

	// Terminal phases reject further attacks.
	_, err = e.Attack()
	assert.ErrorIs(t, err, ErrNotInBattle)
}

func TestDefeatIsTerminalAndRetryable(t *testing.T) {
	b := Boss{ID: "tank", Name: "Tank", HP: 100000, XPReward: 5}
	// Max counter damage (24) fells the player in five rounds.
	e := NewEncounter(b, 1, 0, fixedRand{v: 100})
	e.Begin()

	var defeated bool
	for i := 0; i < 10 && !defeated; i++ {
		_, err := e.Attack()
		require.NoError(t, err)
		res, err := e.ResolveCounter()
		require.NoError(t, err)
		defeated = res.Defeat
	}
	require.True(t, defeated)
	assert.Equal(t, PhaseDefeat, e.Phase)
	assert.Equal(t, 0, e.PlayerHP)

	// A fresh encounter starts from full HP on both sides.
	retry := NewEncounter(b, 1, 0, fixedRand{v: 0})
	retry.Begin()
	assert.Equal(t, PlayerMaxHP, retry.PlayerHP)
	assert.Equal(t, ScaleHP(b.HP, 1), retry.BossHP)
}

func TestConfiguredPlayerHPPool(t *testing.T) {
	b := Seed()[0]
	e := NewEncounter(b, 1, 150, fixedRand{v: 5})
	assert.Equal(t, 150, e.PlayerHP)

	// Below 1 falls back to the default pool.
	e = NewEncounter(b, 1, -3, fixedRand{v: 5})
	assert.Equal(t, PlayerMaxHP, e.PlayerHP)
}

func TestDamageBounds(t *testing.T) {
	e := NewEncounter(Boss{ID: "b", HP: 100000}, 1, 0, fixedRand{v: 0}) // worst roll: -5
	e.Begin()
	res, err := e.Attack()
	require.NoError(t, err)
	// 15 + 2 - 5 = 12, above the floor.
	assert.Equal(t, 12, res.Damage)

	cr, err := e.ResolveCounter()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, cr.Damage, 10)
	assert.LessOrEqual(t, cr.Damage, 24)
}

func TestSeedCatalog(t *testing.T) {
	bosses := Seed()
	require.Len(t, bosses, 4)
	for _, b := range bosses {
		assert.False(t, b.Defeated)
		assert.Positive(t, b.HP)
		assert.Positive(t, b.XPReward)
	}
	assert.True(t, bosses[0].Unlocked(1))
	assert.False(t, bosses[1].Unlocked(2), "Debt Dragon needs level 3")
}
