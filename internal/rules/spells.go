package rules

import (
	"context"
	"fmt"

	"github.com/graydelve/graydelve/internal/data"
	"github.com/graydelve/graydelve/internal/engine"
)

const (
	RuleSpellProgression = "spell-progression"
	RuleSpellCasting     = "spell-casting"
)

// SpellProgressionRule computes the caster's available first-level slots
// (base progression plus wisdom bonus) and publishes them for the casting
// rule.
type SpellProgressionRule struct {
	tables *data.Tables
}

func NewSpellProgressionRule(tables *data.Tables) *SpellProgressionRule {
	return &SpellProgressionRule{tables: tables}
}

func (r *SpellProgressionRule) Name() string  { return RuleSpellProgression }
func (r *SpellProgressionRule) Priority() int { return 0 }

func (r *SpellProgressionRule) CanApply(gs *engine.Context, cmd engine.Command) bool {
	if cmd.Type() != engine.CommandCastSpell {
		return false
	}
	_, ok := gs.GetTemporary(KeyCastRequest).(*CastRequest)
	return ok
}

func (r *SpellProgressionRule) Execute(ctx context.Context, gs *engine.Context, cmd engine.Command) *engine.Result {
	req := gs.GetTemporary(KeyCastRequest).(*CastRequest)
	c, ok := gs.GetEntity(req.CasterID).(*Character)
	if !ok {
		return engine.Failf(engine.CodeCharacterNotFound, "character %s not found", req.CasterID)
	}
	class := r.tables.Class(c.Class)
	if class == nil {
		return engine.Failf(engine.CodeValidation, "unknown class %q", c.Class)
	}
	if !class.Spellcaster {
		return engine.Failf(engine.CodeValidation, "%s cannot cast spells", class.Name)
	}

	slots := BaseFirstLevelSlots(c.Class, c.Level)
	// TODO: gate the wisdom bonus on the class actually having reached its
	// casting level; right now paladins and rangers collect bonus slots
	// from level 1 even though their base progression grants none.
	if bonus, ok := r.tables.Spells.WisdomBonusSlots[c.Abilities[data.Wisdom]]; ok {
		slots += bonus
	}

	gs.SetTemporary(KeySpellSlots, slots)
	return engine.Okf("%s has %d first-level slots", c.Name, slots).
		WithData(map[string]any{KeySpellSlots: slots})
}

// SpellCastingRule spends a slot of the requested level if one remains.
type SpellCastingRule struct{}

func NewSpellCastingRule() *SpellCastingRule { return &SpellCastingRule{} }

func (r *SpellCastingRule) Name() string  { return RuleSpellCasting }
func (r *SpellCastingRule) Priority() int { return 10 }

func (r *SpellCastingRule) CanApply(gs *engine.Context, cmd engine.Command) bool {
	if cmd.Type() != engine.CommandCastSpell {
		return false
	}
	_, ok := gs.GetTemporary(KeySpellSlots).(int)
	return ok
}

func (r *SpellCastingRule) Execute(ctx context.Context, gs *engine.Context, cmd engine.Command) *engine.Result {
	req := gs.GetTemporary(KeyCastRequest).(*CastRequest)
	slots := gs.GetTemporary(KeySpellSlots).(int)
	c, ok := gs.GetEntity(req.CasterID).(*Character)
	if !ok {
		return engine.Failf(engine.CodeCharacterNotFound, "character %s not found", req.CasterID)
	}

	used := c.SlotsUsed[req.SpellLevel]
	if used >= slots {
		return engine.Failf(engine.CodeValidation,
			"%s has no level %d slots remaining (%d of %d spent)", c.Name, req.SpellLevel, used, slots)
	}

	next := c.Clone()
	if next.SlotsUsed == nil {
		next.SlotsUsed = make(map[int]int)
	}
	next.SlotsUsed[req.SpellLevel]++
	gs.SetEntity(next.ID, next)

	return engine.Okf("%s casts %s (%d of %d level %d slots spent)",
		next.Name, req.SpellName, next.SlotsUsed[req.SpellLevel], slots, req.SpellLevel).
		WithData(map[string]any{
			"slotsTotal": slots,
			"slotsUsed":  next.SlotsUsed[req.SpellLevel],
		}).
		WithEffect(next.ID, fmt.Sprintf("cast %s", req.SpellName))
}

// BaseFirstLevelSlots returns the base first-level slot count for a class
// at a level. Paladins start casting at level 9 and rangers at level 8;
// the full casters start at level 1.
func BaseFirstLevelSlots(class string, level int) int {
	switch class {
	case "paladin":
		if level < 9 {
			return 0
		}
		return 1
	case "ranger":
		if level < 8 {
			return 0
		}
		return 1
	default:
		slots := 1 + (level-1)/2
		if slots > 4 {
			slots = 4
		}
		return slots
	}
}
