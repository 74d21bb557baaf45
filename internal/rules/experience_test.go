package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graydelve/graydelve/internal/data"
	"github.com/graydelve/graydelve/internal/engine"
)

func experienceChain(tables *data.Tables) *engine.RuleChain {
	return engine.NewRuleChain(
		engine.ChainConfig{StopOnFailure: true, MergeResults: true, ClearTemporary: true},
		NewPrimeRequisiteBonusRule(tables),
		NewExperienceAwardRule(tables),
	)
}

func seedFighter(gs *engine.Context, strength int) *Character {
	c := &Character{
		ID: "brom", Name: "Brom", Race: "human", Class: "fighter", Level: 1,
		Abilities: map[string]int{data.Strength: strength, data.Constitution: 12},
		HitPoints: 8, MaxHitPoints: 8,
	}
	gs.SetEntity(c.ID, c)
	return c
}

func TestPrimeRequisiteBonusAppliesExactly(t *testing.T) {
	tables := loadTables(t)
	gs := engine.NewContext()
	seedFighter(gs, 16)

	gs.SetTemporary(KeyExperienceRequest, &ExperienceRequest{CharacterID: "brom", Amount: 100, Source: "treasure"})
	res := experienceChain(tables).Execute(context.Background(), gs,
		&stubCommand{kind: engine.CommandGainExperience, actors: []string{"brom"}})

	require.True(t, res.Success, res.Message)
	c := gs.GetEntity("brom").(*Character)
	assert.Equal(t, 110, c.Experience, "100 base plus 10% prime requisite bonus")
}

func TestNoBonusBelowSixteen(t *testing.T) {
	tables := loadTables(t)
	gs := engine.NewContext()
	seedFighter(gs, 15)

	gs.SetTemporary(KeyExperienceRequest, &ExperienceRequest{CharacterID: "brom", Amount: 100, Source: "combat"})
	res := experienceChain(tables).Execute(context.Background(), gs,
		&stubCommand{kind: engine.CommandGainExperience, actors: []string{"brom"}})

	require.True(t, res.Success, res.Message)
	assert.Equal(t, 100, gs.GetEntity("brom").(*Character).Experience)
}

func TestExperienceAwardLevelsUp(t *testing.T) {
	tables := loadTables(t)
	gs := engine.NewContext()
	c := seedFighter(gs, 12)
	c.Experience = 1950
	gs.SetEntity(c.ID, c)

	gs.SetTemporary(KeyExperienceRequest, &ExperienceRequest{CharacterID: "brom", Amount: 100, Source: "quest"})
	res := experienceChain(tables).Execute(context.Background(), gs,
		&stubCommand{kind: engine.CommandGainExperience, actors: []string{"brom"}})

	require.True(t, res.Success, res.Message)
	after := gs.GetEntity("brom").(*Character)
	assert.Equal(t, 2050, after.Experience)
	assert.Equal(t, 2, after.Level, "fighter reaches level 2 at 2000")
	assert.Equal(t, true, res.Data["leveledUp"])
}

func TestExperienceForMissingCharacter(t *testing.T) {
	tables := loadTables(t)
	gs := engine.NewContext()

	gs.SetTemporary(KeyExperienceRequest, &ExperienceRequest{CharacterID: "nobody", Amount: 50, Source: "combat"})
	res := experienceChain(tables).Execute(context.Background(), gs,
		&stubCommand{kind: engine.CommandGainExperience, actors: []string{"nobody"}})

	require.False(t, res.Success)
	assert.Equal(t, engine.CodeCharacterNotFound, res.Code)
}

func TestAwardDoesNotMutateStoredSnapshot(t *testing.T) {
	tables := loadTables(t)
	gs := engine.NewContext()
	before := seedFighter(gs, 12)

	gs.SetTemporary(KeyExperienceRequest, &ExperienceRequest{CharacterID: "brom", Amount: 500, Source: "combat"})
	res := experienceChain(tables).Execute(context.Background(), gs,
		&stubCommand{kind: engine.CommandGainExperience, actors: []string{"brom"}})
	require.True(t, res.Success, res.Message)

	// Replace-on-write: the pre-award pointer is untouched.
	assert.Equal(t, 0, before.Experience)
	assert.Equal(t, 500, gs.GetEntity("brom").(*Character).Experience)
}
