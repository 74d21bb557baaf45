package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graydelve/graydelve/internal/data"
	"github.com/graydelve/graydelve/internal/dice"
	"github.com/graydelve/graydelve/internal/engine"
)

// stubCommand satisfies engine.Command for exercising rules directly.
type stubCommand struct {
	kind   engine.CommandType
	actors []string
}

func (c *stubCommand) Type() engine.CommandType { return c.kind }
func (c *stubCommand) Execute(ctx context.Context, gs *engine.Context) *engine.Result {
	return engine.Ok("staged")
}
func (c *stubCommand) CanExecute(gs *engine.Context) bool { return true }
func (c *stubCommand) RequiredRules() []string            { return nil }
func (c *stubCommand) InvolvedEntities() []string         { return c.actors }

func loadTables(t *testing.T) *data.Tables {
	t.Helper()
	tables, err := data.NewLoader(nil).Load()
	require.NoError(t, err)
	return tables
}

func creationChain(tables *data.Tables, roller *dice.Roller) *engine.RuleChain {
	return engine.NewRuleChain(
		engine.ChainConfig{StopOnFailure: true, MergeResults: true, ClearTemporary: true},
		NewAbilityScoreGenerationRule(roller),
		NewRacialAdjustmentRule(tables),
		NewClassRequirementRule(tables),
		NewStartingHitPointsRule(tables, roller),
		NewStartingGoldRule(tables, roller),
		NewCharacterAssemblyRule(),
	)
}

func TestCreationChainBuildsDwarfFighter(t *testing.T) {
	tables := loadTables(t)
	roller := dice.NewRoller()

	// Six abilities at 4d6 drop lowest: 6+5+4 = 15 each.
	for i := 0; i < 6; i++ {
		roller.Enqueue(6, 5, 4, 3)
	}
	roller.Enqueue(7)             // hit die 1d10
	roller.Enqueue(4, 4, 4, 4, 4) // starting gold 5d4 -> 20 x10

	gs := engine.NewContext()
	gs.SetTemporary(KeyCreateRequest, &CreateRequest{Name: "Durin Stonehelm", Race: "dwarf", Class: "fighter"})

	res := creationChain(tables, roller).Execute(context.Background(), gs, &stubCommand{kind: engine.CommandCreateCharacter})
	require.True(t, res.Success, res.Message)

	c, ok := gs.GetEntity("durin-stonehelm").(*Character)
	require.True(t, ok)
	assert.Equal(t, "Durin Stonehelm", c.Name)
	assert.Equal(t, 1, c.Level)
	assert.Equal(t, 15, c.Abilities[data.Strength])
	assert.Equal(t, 16, c.Abilities[data.Constitution], "dwarf constitution bonus")
	assert.Equal(t, 14, c.Abilities[data.Charisma], "dwarf charisma penalty")
	assert.Equal(t, 9, c.HitPoints, "1d10=7 plus constitution bonus 2")
	assert.Equal(t, c.HitPoints, c.MaxHitPoints)
	assert.Equal(t, 200, c.Gold)

	// Chain cleans its scratch space on the way out.
	assert.Nil(t, gs.GetTemporary(KeyGeneratedScores))
	assert.Nil(t, gs.GetTemporary(KeyAdjustedScores))
}

func TestCreationChainReportsEveryRequirementViolation(t *testing.T) {
	tables := loadTables(t)

	gs := engine.NewContext()
	gs.SetTemporary(KeyCreateRequest, &CreateRequest{Name: "Pip", Race: "halfling", Class: "paladin"})
	gs.SetTemporary(KeyAdjustedScores, map[string]int{
		data.Strength: 8, data.Wisdom: 14, data.Constitution: 12, data.Charisma: 9,
	})

	rule := NewClassRequirementRule(tables)
	res := rule.Execute(context.Background(), gs, &stubCommand{kind: engine.CommandCreateCharacter})

	require.False(t, res.Success)
	assert.Equal(t, engine.CodeValidation, res.Code)
	assert.Contains(t, res.Message, "Halfling may not be a Paladin")
	assert.Contains(t, res.Message, "strength score must be at least 12")
	assert.Contains(t, res.Message, "charisma score must be at least 17")
	violations, ok := res.Data["violations"].([]string)
	require.True(t, ok)
	assert.Len(t, violations, 3)
}

func TestRacialAdjustmentUnknownRace(t *testing.T) {
	tables := loadTables(t)

	gs := engine.NewContext()
	gs.SetTemporary(KeyCreateRequest, &CreateRequest{Name: "X", Race: "gnoll", Class: "fighter"})
	gs.SetTemporary(KeyGeneratedScores, map[string]int{data.Strength: 12})

	res := NewRacialAdjustmentRule(tables).Execute(context.Background(), gs, &stubCommand{kind: engine.CommandCreateCharacter})
	require.False(t, res.Success)
	assert.Equal(t, engine.CodeValidation, res.Code)
	assert.Contains(t, res.Message, "gnoll")
}

func TestRacialAdjustmentClampsToRange(t *testing.T) {
	tables := loadTables(t)

	gs := engine.NewContext()
	gs.SetTemporary(KeyCreateRequest, &CreateRequest{Name: "X", Race: "dwarf", Class: "fighter"})
	gs.SetTemporary(KeyGeneratedScores, map[string]int{
		data.Constitution: 18, // +1 would exceed the cap
		data.Charisma:     3,  // -1 would drop below the floor
	})

	res := NewRacialAdjustmentRule(tables).Execute(context.Background(), gs, &stubCommand{kind: engine.CommandCreateCharacter})
	require.True(t, res.Success)

	adjusted := gs.GetTemporary(KeyAdjustedScores).(map[string]int)
	assert.Equal(t, 18, adjusted[data.Constitution])
	assert.Equal(t, 3, adjusted[data.Charisma])
}

func TestCharacterAssemblyRejectsDuplicateName(t *testing.T) {
	gs := engine.NewContext()
	gs.SetEntity("durin", &Character{ID: "durin", Name: "Durin"})
	gs.SetTemporary(KeyCreateRequest, &CreateRequest{Name: "Durin", Race: "dwarf", Class: "fighter"})
	gs.SetTemporary(KeyAdjustedScores, map[string]int{data.Strength: 12})
	gs.SetTemporary(KeyStartingHitPoints, 8)

	res := NewCharacterAssemblyRule().Execute(context.Background(), gs, &stubCommand{kind: engine.CommandCreateCharacter})
	require.False(t, res.Success)
	assert.Equal(t, engine.CodeStoreConstraint, res.Code)
}

func TestConstitutionHPBonus(t *testing.T) {
	assert.Equal(t, -2, ConstitutionHPBonus(3))
	assert.Equal(t, -1, ConstitutionHPBonus(5))
	assert.Equal(t, 0, ConstitutionHPBonus(12))
	assert.Equal(t, 1, ConstitutionHPBonus(15))
	assert.Equal(t, 2, ConstitutionHPBonus(17))
	assert.Equal(t, 3, ConstitutionHPBonus(18))
}
