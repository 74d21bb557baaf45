package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedDefaults(t *testing.T) {
	tables, err := NewLoader(nil).Load()
	require.NoError(t, err)

	fighter := tables.Class("fighter")
	require.NotNil(t, fighter)
	assert.Equal(t, []string{"strength"}, fighter.PrimeRequisites)
	assert.Equal(t, "1d10", fighter.HitDie)
	assert.Equal(t, 9, fighter.Requirements["strength"])

	dwarf := tables.Race("dwarf")
	require.NotNil(t, dwarf)
	assert.Equal(t, 1, dwarf.Adjustments[Constitution])
	assert.True(t, dwarf.Allows("fighter"))
	assert.False(t, dwarf.Allows("magic-user"))

	assert.Equal(t, 2, tables.Spells.WisdomBonusSlots[16])
}

func TestLoadDirectoryShadowsEmbedded(t *testing.T) {
	dir := t.TempDir()
	custom := `
classes:
  fighter:
    name: Custom Fighter
    prime_requisites: [strength]
    hit_die: 1d12
    xp_levels: [0, 1000]
races:
  human:
    name: Human
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "classes.yaml"), []byte(custom), 0o644))

	tables, err := NewLoader([]string{dir}).Load()
	require.NoError(t, err)
	assert.Equal(t, "1d12", tables.Class("fighter").HitDie)
	assert.Nil(t, tables.Class("thief"))
}

func TestLevelForXP(t *testing.T) {
	c := &Class{XPLevels: []int{0, 2000, 4000, 8000}}

	assert.Equal(t, 1, c.LevelForXP(0))
	assert.Equal(t, 1, c.LevelForXP(1999))
	assert.Equal(t, 2, c.LevelForXP(2000))
	assert.Equal(t, 4, c.LevelForXP(999999))
}

func TestSaveTarget(t *testing.T) {
	c := &Class{SavingThrows: []SaveRow{
		{MinLevel: 1, Targets: map[string]int{"death": 14}},
		{MinLevel: 5, Targets: map[string]int{"death": 11}},
	}}

	assert.Equal(t, 14, c.SaveTarget("death", 1))
	assert.Equal(t, 14, c.SaveTarget("death", 4))
	assert.Equal(t, 11, c.SaveTarget("death", 5))
	assert.Equal(t, 0, c.SaveTarget("unknown", 1))
}
