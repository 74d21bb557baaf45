package command

import (
	"context"

	"github.com/graydelve/graydelve/internal/engine"
	"github.com/graydelve/graydelve/internal/rules"
)

// MoraleCheck stages a 2d6 morale test for a character. The chain behind
// it is manifest-defined, so the staged payload is a plain map the formula
// evaluator can address as `command`.
type MoraleCheck struct {
	CharacterID string
	Modifier    int
}

func (c *MoraleCheck) Type() engine.CommandType { return engine.CommandMoraleCheck }

func (c *MoraleCheck) CanExecute(gs *engine.Context) bool { return true }

func (c *MoraleCheck) RequiredRules() []string {
	return []string{"morale-roll", "morale-outcome"}
}

func (c *MoraleCheck) InvolvedEntities() []string { return []string{c.CharacterID} }

func (c *MoraleCheck) Execute(ctx context.Context, gs *engine.Context) *engine.Result {
	if !gs.HasEntity(c.CharacterID) {
		return engine.Failf(engine.CodeCharacterNotFound, "character %s not found", c.CharacterID)
	}
	gs.SetTemporary(rules.KeyMoraleRequest, map[string]any{
		"characterId": c.CharacterID,
		"modifier":    c.Modifier,
	})
	return engine.Okf("testing morale for %s", c.CharacterID)
}
