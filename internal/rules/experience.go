package rules

import (
	"context"
	"fmt"

	"github.com/graydelve/graydelve/internal/data"
	"github.com/graydelve/graydelve/internal/engine"
)

const (
	RulePrimeRequisiteBonus = "prime-requisite-bonus"
	RuleExperienceAward     = "experience-award"
)

// PrimeRequisiteBonusRule grants the 10% experience bonus when any of the
// class's prime requisites is 16 or higher, publishing the adjusted amount
// for the award rule.
type PrimeRequisiteBonusRule struct {
	tables *data.Tables
}

func NewPrimeRequisiteBonusRule(tables *data.Tables) *PrimeRequisiteBonusRule {
	return &PrimeRequisiteBonusRule{tables: tables}
}

func (r *PrimeRequisiteBonusRule) Name() string  { return RulePrimeRequisiteBonus }
func (r *PrimeRequisiteBonusRule) Priority() int { return 0 }

func (r *PrimeRequisiteBonusRule) CanApply(gs *engine.Context, cmd engine.Command) bool {
	if cmd.Type() != engine.CommandGainExperience {
		return false
	}
	_, ok := gs.GetTemporary(KeyExperienceRequest).(*ExperienceRequest)
	return ok
}

func (r *PrimeRequisiteBonusRule) Execute(ctx context.Context, gs *engine.Context, cmd engine.Command) *engine.Result {
	req := gs.GetTemporary(KeyExperienceRequest).(*ExperienceRequest)
	c, ok := gs.GetEntity(req.CharacterID).(*Character)
	if !ok {
		return engine.Failf(engine.CodeCharacterNotFound, "character %s not found", req.CharacterID)
	}
	class := r.tables.Class(c.Class)
	if class == nil {
		return engine.Failf(engine.CodeValidation, "unknown class %q", c.Class)
	}

	bonus := 0
	for _, ability := range class.PrimeRequisites {
		if c.Abilities[ability] >= 16 {
			bonus = 10
			break
		}
	}

	adjusted := req.Amount + req.Amount*bonus/100
	gs.SetTemporary(KeyAdjustedExperience, adjusted)
	return engine.Okf("%d experience from %s (%d%% prime requisite bonus)", adjusted, req.Source, bonus).
		WithData(map[string]any{
			"baseAmount":     req.Amount,
			"bonusPercent":   bonus,
			"adjustedAmount": adjusted,
		})
}

// ExperienceAwardRule adds the adjusted experience to the character and
// detects level gain against the class progression table.
type ExperienceAwardRule struct {
	tables *data.Tables
}

func NewExperienceAwardRule(tables *data.Tables) *ExperienceAwardRule {
	return &ExperienceAwardRule{tables: tables}
}

func (r *ExperienceAwardRule) Name() string  { return RuleExperienceAward }
func (r *ExperienceAwardRule) Priority() int { return 10 }

func (r *ExperienceAwardRule) CanApply(gs *engine.Context, cmd engine.Command) bool {
	if cmd.Type() != engine.CommandGainExperience {
		return false
	}
	_, ok := gs.GetTemporary(KeyAdjustedExperience).(int)
	return ok
}

func (r *ExperienceAwardRule) Execute(ctx context.Context, gs *engine.Context, cmd engine.Command) *engine.Result {
	req := gs.GetTemporary(KeyExperienceRequest).(*ExperienceRequest)
	amount := gs.GetTemporary(KeyAdjustedExperience).(int)
	c, ok := gs.GetEntity(req.CharacterID).(*Character)
	if !ok {
		return engine.Failf(engine.CodeCharacterNotFound, "character %s not found", req.CharacterID)
	}
	class := r.tables.Class(c.Class)
	if class == nil {
		return engine.Failf(engine.CodeValidation, "unknown class %q", c.Class)
	}

	next := c.Clone()
	next.Experience += amount
	newLevel := class.LevelForXP(next.Experience)
	leveled := newLevel > next.Level
	if leveled {
		next.Level = newLevel
	}
	gs.SetEntity(next.ID, next)

	out := engine.Okf("%s gains %d experience (total %d)", next.Name, amount, next.Experience).
		WithData(map[string]any{
			"experience": next.Experience,
			"level":      next.Level,
			"leveledUp":  leveled,
		}).
		WithEffect(next.ID, fmt.Sprintf("gained %d experience", amount))
	if leveled {
		out = out.WithEffect(next.ID, fmt.Sprintf("advanced to level %d", newLevel))
	}
	return out
}
