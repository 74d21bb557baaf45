package command

import (
	"context"
	"strings"

	"github.com/graydelve/graydelve/internal/engine"
	"github.com/graydelve/graydelve/internal/rules"
)

// RollDice stages a free-standing dice roll. The actor is optional: the
// table itself can roll.
type RollDice struct {
	ActorID  string
	Notation string
}

func (c *RollDice) Type() engine.CommandType { return engine.CommandRollDice }

func (c *RollDice) CanExecute(gs *engine.Context) bool { return true }

func (c *RollDice) RequiredRules() []string { return []string{rules.RuleNarrateRoll} }

func (c *RollDice) InvolvedEntities() []string {
	if c.ActorID == "" {
		return nil
	}
	return []string{c.ActorID}
}

func (c *RollDice) Execute(ctx context.Context, gs *engine.Context) *engine.Result {
	if strings.TrimSpace(c.Notation) == "" {
		return engine.Fail(engine.CodeValidation, "Dice notation is required")
	}
	gs.SetTemporary(rules.KeyRollRequest, &rules.RollRequest{
		ActorID:  c.ActorID,
		Notation: strings.TrimSpace(c.Notation),
	})
	return engine.Okf("rolling %s", c.Notation)
}
