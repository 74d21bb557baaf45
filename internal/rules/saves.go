package rules

import (
	"context"
	"fmt"

	"github.com/graydelve/graydelve/internal/data"
	"github.com/graydelve/graydelve/internal/dice"
	"github.com/graydelve/graydelve/internal/engine"
)

const (
	RuleSavingThrow = "saving-throw"
	RuleSystemShock = "system-shock"
)

// SavingThrowRule rolls 1d20 plus the situational modifier against the
// class saving throw matrix for the requested category.
type SavingThrowRule struct {
	tables *data.Tables
	roller *dice.Roller
}

func NewSavingThrowRule(tables *data.Tables, roller *dice.Roller) *SavingThrowRule {
	return &SavingThrowRule{tables: tables, roller: roller}
}

func (r *SavingThrowRule) Name() string  { return RuleSavingThrow }
func (r *SavingThrowRule) Priority() int { return 0 }

func (r *SavingThrowRule) CanApply(gs *engine.Context, cmd engine.Command) bool {
	if cmd.Type() != engine.CommandSavingThrow {
		return false
	}
	_, ok := gs.GetTemporary(KeySaveRequest).(*SaveRequest)
	return ok
}

func (r *SavingThrowRule) Execute(ctx context.Context, gs *engine.Context, cmd engine.Command) *engine.Result {
	req := gs.GetTemporary(KeySaveRequest).(*SaveRequest)
	c, ok := gs.GetEntity(req.CharacterID).(*Character)
	if !ok {
		return engine.Failf(engine.CodeCharacterNotFound, "character %s not found", req.CharacterID)
	}
	class := r.tables.Class(c.Class)
	if class == nil {
		return engine.Failf(engine.CodeValidation, "unknown class %q", c.Class)
	}
	target := class.SaveTarget(req.Category, c.Level)
	if target == 0 {
		return engine.Failf(engine.CodeValidation, "unknown save category %q", req.Category)
	}

	res, err := r.roller.Roll("1d20")
	if err != nil {
		return engine.Failf(engine.CodeRuleException, "%s error: %v", r.Name(), err)
	}
	total := res.Total + req.Modifier
	passed := total >= target

	payload := map[string]any{
		"roll":     res.Total,
		"modifier": req.Modifier,
		"total":    total,
		"target":   target,
		"passed":   passed,
	}
	if passed {
		return engine.Okf("%s saves versus %s (%d vs %d)", c.Name, req.Category, total, target).
			WithData(payload).
			WithEffect(c.ID, fmt.Sprintf("passed %s save", req.Category))
	}
	return engine.Lost(
		fmt.Sprintf("%s fails the save versus %s (%d vs %d)", c.Name, req.Category, total, target)).
		WithData(payload).
		WithEffect(c.ID, fmt.Sprintf("failed %s save", req.Category))
}

// SystemShockRule rolls percentile dice against the constitution-based
// survival threshold.
type SystemShockRule struct {
	roller *dice.Roller
}

func NewSystemShockRule(roller *dice.Roller) *SystemShockRule {
	return &SystemShockRule{roller: roller}
}

func (r *SystemShockRule) Name() string  { return RuleSystemShock }
func (r *SystemShockRule) Priority() int { return 0 }

func (r *SystemShockRule) CanApply(gs *engine.Context, cmd engine.Command) bool {
	if cmd.Type() != engine.CommandSystemShock {
		return false
	}
	_, ok := gs.GetTemporary(KeyShockRequest).(*ShockRequest)
	return ok
}

func (r *SystemShockRule) Execute(ctx context.Context, gs *engine.Context, cmd engine.Command) *engine.Result {
	req := gs.GetTemporary(KeyShockRequest).(*ShockRequest)
	c, ok := gs.GetEntity(req.CharacterID).(*Character)
	if !ok {
		return engine.Failf(engine.CodeCharacterNotFound, "character %s not found", req.CharacterID)
	}

	threshold := SystemShockChance(c.Abilities[data.Constitution])
	res, err := r.roller.Roll("1d100")
	if err != nil {
		return engine.Failf(engine.CodeRuleException, "%s error: %v", r.Name(), err)
	}
	survived := res.Total <= threshold

	payload := map[string]any{
		"roll":      res.Total,
		"threshold": threshold,
		"survived":  survived,
	}
	if survived {
		return engine.Okf("%s survives system shock (%d%% under %d%%)", c.Name, res.Total, threshold).
			WithData(payload)
	}
	return engine.Lost(
		fmt.Sprintf("%s succumbs to system shock (%d%% over %d%%)", c.Name, res.Total, threshold)).
		WithData(payload).
		WithEffect(c.ID, "slain by system shock")
}

// SystemShockChance returns the percentile survival chance for a
// constitution score.
func SystemShockChance(con int) int {
	switch {
	case con <= 3:
		return 35
	case con <= 6:
		return 50
	case con <= 9:
		return 65
	case con <= 12:
		return 80
	case con <= 15:
		return 90
	case con == 16:
		return 95
	case con == 17:
		return 97
	default:
		return 99
	}
}
