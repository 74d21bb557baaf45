package rules

import (
	"context"
	"fmt"

	"github.com/graydelve/graydelve/internal/dice"
	"github.com/graydelve/graydelve/internal/engine"
)

const RuleNarrateRoll = "narrate-roll"

// NarrateRollRule resolves a plain dice roll request and reports the
// individual dice alongside the total.
type NarrateRollRule struct {
	roller *dice.Roller
}

func NewNarrateRollRule(roller *dice.Roller) *NarrateRollRule {
	return &NarrateRollRule{roller: roller}
}

func (r *NarrateRollRule) Name() string  { return RuleNarrateRoll }
func (r *NarrateRollRule) Priority() int { return 0 }

func (r *NarrateRollRule) CanApply(gs *engine.Context, cmd engine.Command) bool {
	if cmd.Type() != engine.CommandRollDice {
		return false
	}
	_, ok := gs.GetTemporary(KeyRollRequest).(*RollRequest)
	return ok
}

func (r *NarrateRollRule) Execute(ctx context.Context, gs *engine.Context, cmd engine.Command) *engine.Result {
	req := gs.GetTemporary(KeyRollRequest).(*RollRequest)
	res, err := r.roller.Roll(req.Notation)
	if err != nil {
		return engine.Failf(engine.CodeValidation, "cannot roll %q: %v", req.Notation, err)
	}

	who := req.ActorID
	if who == "" {
		who = "the table"
	}
	return engine.Okf("%s rolls %s: %v = %d", who, res.Notation, res.Rolls, res.Total).
		WithData(map[string]any{
			"notation": res.Notation,
			"rolls":    res.Rolls,
			"modifier": res.Modifier,
			"total":    res.Total,
		}).
		WithEffect(req.ActorID, fmt.Sprintf("rolled %d on %s", res.Total, res.Notation))
}
