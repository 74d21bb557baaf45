package rules

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/google/cel-go/ext"

	"github.com/graydelve/graydelve/internal/engine"
)

// RollFunc evaluates a dice notation (e.g. "2d6+1") and returns the total.
// It is injected so manifest formulas roll through the session's dice
// service and stay deterministic under test.
type RollFunc func(notation string) int

// Evaluator wraps a CEL environment configured for manifest formula
// evaluation. Formulas see the acting character as `actor`, the staged
// command payload as `command`, and the temporary bag as `temp`.
type Evaluator struct {
	env *cel.Env
}

// NewEvaluator builds the CEL environment with the roll() dice function
// bound to the given roller.
func NewEvaluator(rollFunc RollFunc) (*Evaluator, error) {
	if rollFunc == nil {
		return nil, fmt.Errorf("evaluator requires a roll function")
	}

	env, err := cel.NewEnv(
		ext.Strings(),
		ext.Lists(),

		cel.Variable("actor", cel.DynType),
		cel.Variable("command", cel.DynType),
		cel.Variable("temp", cel.MapType(cel.StringType, cel.AnyType)),

		cel.Function("roll",
			cel.Overload("roll_string",
				[]*cel.Type{cel.StringType},
				cel.IntType,
				cel.UnaryBinding(func(val ref.Val) ref.Val {
					notation := val.Value().(string)
					return types.Int(rollFunc(notation))
				}),
			),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return &Evaluator{env: env}, nil
}

// Eval compiles and evaluates a CEL expression against the given context.
func (ev *Evaluator) Eval(formula string, ctx map[string]any) (any, error) {
	ast, issues := ev.env.Compile(formula)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("CEL compile error: %w", issues.Err())
	}
	prg, err := ev.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("CEL program error: %w", err)
	}
	out, _, err := prg.Eval(ctx)
	if err != nil {
		return nil, fmt.Errorf("CEL eval error: %w", err)
	}
	return convertRefVal(out), nil
}

// convertRefVal converts a CEL ref.Val to a native Go value, recursively
// handling maps and lists so downstream code can use plain type assertions.
func convertRefVal(val ref.Val) any {
	native := val.Value()
	switch v := native.(type) {
	case map[ref.Val]ref.Val:
		result := make(map[string]any, len(v))
		for mk, mv := range v {
			result[fmt.Sprintf("%v", mk.Value())] = convertRefVal(mv)
		}
		return result
	case []ref.Val:
		result := make([]any, len(v))
		for i, rv := range v {
			result[i] = convertRefVal(rv)
		}
		return result
	default:
		return native
	}
}

// FormulaRuleDef is the manifest shape of a CEL-driven rule.
type FormulaRuleDef struct {
	Name     string `yaml:"name"`
	Priority int    `yaml:"priority"`
	// Applies gates the rule; empty means always applicable for the chain's
	// command type.
	Applies string `yaml:"applies,omitempty"`
	// Formula computes a value published to the temporary bag under Publish.
	Formula string `yaml:"formula,omitempty"`
	Publish string `yaml:"publish,omitempty"`
	// Check is a boolean expression deciding success when present.
	Check   string `yaml:"check,omitempty"`
	Success string `yaml:"success"`
	Failure string `yaml:"failure,omitempty"`
}

// FormulaRule executes a manifest-defined CEL formula as an engine rule.
type FormulaRule struct {
	def     FormulaRuleDef
	forType engine.CommandType
	eval    *Evaluator
}

// NewFormulaRule binds a manifest rule definition to a command type and
// evaluator.
func NewFormulaRule(def FormulaRuleDef, forType engine.CommandType, eval *Evaluator) *FormulaRule {
	return &FormulaRule{def: def, forType: forType, eval: eval}
}

func (r *FormulaRule) Name() string  { return r.def.Name }
func (r *FormulaRule) Priority() int { return r.def.Priority }

func (r *FormulaRule) CanApply(gs *engine.Context, cmd engine.Command) bool {
	if cmd.Type() != r.forType {
		return false
	}
	if r.def.Applies == "" {
		return true
	}
	out, err := r.eval.Eval(r.def.Applies, r.buildContext(gs, cmd))
	if err != nil {
		return false
	}
	b, ok := out.(bool)
	return ok && b
}

func (r *FormulaRule) Execute(ctx context.Context, gs *engine.Context, cmd engine.Command) *engine.Result {
	evalCtx := r.buildContext(gs, cmd)

	var value any
	if r.def.Formula != "" {
		out, err := r.eval.Eval(r.def.Formula, evalCtx)
		if err != nil {
			return engine.Failf(engine.CodeRuleException, "%s error: %v", r.def.Name, err)
		}
		value = out
		if r.def.Publish != "" {
			gs.SetTemporary(r.def.Publish, out)
			if temp, ok := evalCtx["temp"].(map[string]any); ok {
				temp[r.def.Publish] = out
			}
		}
	}

	passed := true
	if r.def.Check != "" {
		out, err := r.eval.Eval(r.def.Check, evalCtx)
		if err != nil {
			return engine.Failf(engine.CodeRuleException, "%s error: %v", r.def.Name, err)
		}
		b, ok := out.(bool)
		if !ok {
			return engine.Failf(engine.CodeRuleException, "%s check did not return a boolean", r.def.Name)
		}
		passed = b
	}

	data := map[string]any{}
	if r.def.Publish != "" {
		data[r.def.Publish] = value
	}
	actorName, _ := evalCtx["actorName"].(string)

	if passed {
		return engine.Ok(r.renderMessage(r.def.Success, actorName, value)).WithData(data)
	}
	return engine.Lost(r.renderMessage(r.def.Failure, actorName, value)).WithData(data)
}

// buildContext assembles the CEL variable set from the game state, the
// acting character, and the staged command payload.
func (r *FormulaRule) buildContext(gs *engine.Context, cmd engine.Command) map[string]any {
	actor := map[string]any{}
	actorName := ""
	if ids := cmd.InvolvedEntities(); len(ids) > 0 {
		if c, ok := gs.GetEntity(ids[0]).(*Character); ok {
			actor = characterToMap(c)
			actorName = c.Name
		}
	}

	params := map[string]any{}
	if staged, ok := gs.GetTemporary(KeyMoraleRequest).(map[string]any); ok {
		params = staged
	}

	temp := map[string]any{}
	for _, key := range []string{KeyMoraleRoll} {
		if v := gs.GetTemporary(key); v != nil {
			temp[key] = v
		}
	}

	return map[string]any{
		"actor":     actor,
		"command":   params,
		"temp":      temp,
		"actorName": actorName,
	}
}

// renderMessage substitutes {actor} and {value} placeholders in a manifest
// message template.
func (r *FormulaRule) renderMessage(template, actorName string, value any) string {
	if template == "" {
		template = r.def.Name
	}
	out := strings.ReplaceAll(template, "{actor}", actorName)
	out = strings.ReplaceAll(out, "{value}", fmt.Sprintf("%v", value))
	return out
}

// characterToMap converts a Character to a map for CEL evaluation, so
// formulas can access fields like actor.morale or actor.abilities.wisdom.
func characterToMap(c *Character) map[string]any {
	abilities := make(map[string]any, len(c.Abilities))
	for k, v := range c.Abilities {
		abilities[k] = int64(v)
	}
	return map[string]any{
		"id":         c.ID,
		"name":       c.Name,
		"race":       c.Race,
		"class":      c.Class,
		"level":      int64(c.Level),
		"abilities":  abilities,
		"hitPoints":  int64(c.HitPoints),
		"experience": int64(c.Experience),
		"morale":     int64(c.Morale),
	}
}
