package command

import (
	"context"
	"strings"

	"github.com/graydelve/graydelve/internal/engine"
	"github.com/graydelve/graydelve/internal/rules"
)

// CastSpell stages a spell casting request for a caster.
type CastSpell struct {
	CasterID   string
	SpellName  string
	SpellLevel int
}

func (c *CastSpell) Type() engine.CommandType { return engine.CommandCastSpell }

func (c *CastSpell) CanExecute(gs *engine.Context) bool {
	ch, ok := gs.GetEntity(c.CasterID).(*rules.Character)
	return !ok || ch.IsConscious()
}

func (c *CastSpell) RequiredRules() []string {
	return []string{rules.RuleSpellProgression, rules.RuleSpellCasting}
}

func (c *CastSpell) InvolvedEntities() []string { return []string{c.CasterID} }

func (c *CastSpell) Execute(ctx context.Context, gs *engine.Context) *engine.Result {
	var problems []string
	if strings.TrimSpace(c.SpellName) == "" {
		problems = append(problems, "Spell name is required")
	}
	if c.SpellLevel < 1 {
		problems = append(problems, "Spell level must be at least 1")
	}
	if len(problems) > 0 {
		return engine.Fail(engine.CodeValidation, strings.Join(problems, "; "))
	}
	if !gs.HasEntity(c.CasterID) {
		return engine.Failf(engine.CodeCharacterNotFound, "character %s not found", c.CasterID)
	}

	gs.SetTemporary(rules.KeyCastRequest, &rules.CastRequest{
		CasterID:   c.CasterID,
		SpellName:  strings.TrimSpace(c.SpellName),
		SpellLevel: c.SpellLevel,
	})
	return engine.Okf("%s prepares to cast %s", c.CasterID, c.SpellName)
}
