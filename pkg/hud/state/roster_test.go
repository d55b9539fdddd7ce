package state

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRoster_CanonicalFields(t *testing.T) {
	enc, err := ParseRoster([]byte(`{
		"party": [{
			"name": "Hero",
			"hp": 15, "hpMax": 20,
			"initiativeModifier": 3,
			"statuses": ["Poisoned", "On Fire"],
			"portraitPath": "portraits/hero.png",
			"side": "ally"
		}],
		"turn_index": 0,
		"round": 4
	}`))
	require.NoError(t, err)
	require.Len(t, enc.Combatants, 1)
	require.Equal(t, 4, enc.Round)
	require.Equal(t, 0, enc.ActiveIndex)

	hero := enc.Combatants[0]
	require.Equal(t, 15, hero.HP)
	require.Equal(t, 20, hero.HPMax)
	require.Equal(t, 3, hero.InitiativeModifier)
	require.Equal(t, []string{"poisoned", "on_fire"}, hero.Statuses)
	require.Equal(t, "portraits/hero.png", hero.PortraitPath)
	require.Equal(t, SideAlly, hero.Side)
}

// One test per legacy alias: the console has written several historical
// spellings and all of them must stay recognized.

func TestParseRoster_LegacyMaxHP(t *testing.T) {
	enc, err := ParseRoster([]byte(`{"party":[{"name":"A","maxHP":30,"currentHP":12}]}`))
	require.NoError(t, err)
	require.Equal(t, 30, enc.Combatants[0].HPMax)
}

func TestParseRoster_LegacyCurrentHP(t *testing.T) {
	enc, err := ParseRoster([]byte(`{"party":[{"name":"A","maxHP":30,"currentHP":12}]}`))
	require.NoError(t, err)
	require.Equal(t, 12, enc.Combatants[0].HP)
}

func TestParseRoster_LegacyIsEnemy(t *testing.T) {
	enc, err := ParseRoster([]byte(`{"party":[{"name":"A","isEnemy":true},{"name":"B","isEnemy":false}]}`))
	require.NoError(t, err)
	require.Equal(t, SideEnemy, enc.Combatants[0].Side)
	require.Equal(t, SideAlly, enc.Combatants[1].Side)
}

func TestParseRoster_LegacyStatusEffects(t *testing.T) {
	enc, err := ParseRoster([]byte(`{"party":[{"name":"A","statusEffects":["Stunned"]}]}`))
	require.NoError(t, err)
	require.Equal(t, []string{"stunned"}, enc.Combatants[0].Statuses)
}

func TestParseRoster_LegacyInitiative(t *testing.T) {
	enc, err := ParseRoster([]byte(`{"party":[{"name":"A","initiative":2}]}`))
	require.NoError(t, err)
	require.Equal(t, 2, enc.Combatants[0].InitiativeModifier)
}

func TestParseRoster_LegacyIcon(t *testing.T) {
	enc, err := ParseRoster([]byte(`{"party":[{"name":"A","icon":"icons/goblin.png"}]}`))
	require.NoError(t, err)
	require.Equal(t, "icons/goblin.png", enc.Combatants[0].PortraitPath)
}

func TestParseRoster_CanonicalWinsOverLegacy(t *testing.T) {
	enc, err := ParseRoster([]byte(`{
		"party":[{"name":"A","hp":5,"currentHP":99,"hpMax":10,"maxHP":99,"side":"neutral","isEnemy":true}]
	}`))
	require.NoError(t, err)
	rec := enc.Combatants[0]
	require.Equal(t, 5, rec.HP)
	require.Equal(t, 10, rec.HPMax)
	require.Equal(t, SideNeutral, rec.Side)
}

func TestParseRoster_ClampsActiveIndex(t *testing.T) {
	// activeIndex 7 on a 3-entry roster resolves inside [0,2].
	enc, err := ParseRoster([]byte(`{
		"party":[{"name":"A"},{"name":"B"},{"name":"C"}],
		"turn_index": 7
	}`))
	require.NoError(t, err)
	require.Equal(t, 2, enc.ActiveIndex)
	require.NotNil(t, enc.Active())

	// Empty roster clamps to -1 with no active combatant.
	enc, err = ParseRoster([]byte(`{"party":[],"turn_index":7}`))
	require.NoError(t, err)
	require.Equal(t, -1, enc.ActiveIndex)
	require.Nil(t, enc.Active())

	// Negative indices mean "no active turn".
	enc, err = ParseRoster([]byte(`{"party":[{"name":"A"}],"turn_index":-5}`))
	require.NoError(t, err)
	require.Equal(t, -1, enc.ActiveIndex)
}

func TestParseRoster_ClampsHP(t *testing.T) {
	enc, err := ParseRoster([]byte(`{"party":[{"name":"A","hp":50,"hpMax":20},{"name":"B","hp":-4,"hpMax":20}]}`))
	require.NoError(t, err)
	require.Equal(t, 20, enc.Combatants[0].HP)
	require.Equal(t, 0, enc.Combatants[1].HP)
	require.InDelta(t, 1.0, enc.Combatants[0].HPFraction(), 1e-9)
	require.InDelta(t, 0.0, enc.Combatants[1].HPFraction(), 1e-9)
}

func TestParseRoster_Malformed(t *testing.T) {
	_, err := ParseRoster([]byte(`{"party": [{`))
	require.Error(t, err)
}

func TestStatusKey(t *testing.T) {
	require.Equal(t, "on_fire", StatusKey(" On Fire "))
	require.Equal(t, "poisoned", StatusKey("POISONED"))
	require.Equal(t, "", StatusKey("   "))
}
