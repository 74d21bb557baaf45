package rules

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/graydelve/graydelve/internal/data"
	"github.com/graydelve/graydelve/internal/dice"
	"github.com/graydelve/graydelve/internal/engine"
)

// Rule names for the character creation chain.
const (
	RuleAbilityScoreGeneration = "ability-score-generation"
	RuleRacialAdjustment       = "racial-ability-adjustment"
	RuleClassRequirement       = "class-requirement"
	RuleStartingHitPoints      = "starting-hit-points"
	RuleStartingGold           = "starting-gold"
	RuleCharacterAssembly      = "character-assembly"
)

// AbilityScoreGenerationRule rolls 4d6-drop-lowest for each of the six
// abilities and publishes the generated score set.
type AbilityScoreGenerationRule struct {
	roller *dice.Roller
}

func NewAbilityScoreGenerationRule(roller *dice.Roller) *AbilityScoreGenerationRule {
	return &AbilityScoreGenerationRule{roller: roller}
}

func (r *AbilityScoreGenerationRule) Name() string  { return RuleAbilityScoreGeneration }
func (r *AbilityScoreGenerationRule) Priority() int { return 0 }

func (r *AbilityScoreGenerationRule) CanApply(gs *engine.Context, cmd engine.Command) bool {
	if cmd.Type() != engine.CommandCreateCharacter {
		return false
	}
	_, ok := gs.GetTemporary(KeyCreateRequest).(*CreateRequest)
	return ok
}

func (r *AbilityScoreGenerationRule) Execute(ctx context.Context, gs *engine.Context, cmd engine.Command) *engine.Result {
	scores := make(map[string]int, len(data.AbilityNames))
	for _, ability := range data.AbilityNames {
		res, err := r.roller.Roll("4d6")
		if err != nil {
			return engine.Failf(engine.CodeRuleException, "%s error: %v", r.Name(), err)
		}
		lowest := res.Rolls[0]
		for _, v := range res.Rolls[1:] {
			if v < lowest {
				lowest = v
			}
		}
		scores[ability] = res.Total - lowest
	}

	gs.SetTemporary(KeyGeneratedScores, scores)
	return engine.Ok("ability scores generated").
		WithData(map[string]any{KeyGeneratedScores: scores})
}

// RacialAdjustmentRule applies the race's ability adjustments to the
// generated scores, clamping to the 3..18 range.
type RacialAdjustmentRule struct {
	tables *data.Tables
}

func NewRacialAdjustmentRule(tables *data.Tables) *RacialAdjustmentRule {
	return &RacialAdjustmentRule{tables: tables}
}

func (r *RacialAdjustmentRule) Name() string  { return RuleRacialAdjustment }
func (r *RacialAdjustmentRule) Priority() int { return 10 }

func (r *RacialAdjustmentRule) CanApply(gs *engine.Context, cmd engine.Command) bool {
	if cmd.Type() != engine.CommandCreateCharacter {
		return false
	}
	_, ok := gs.GetTemporary(KeyGeneratedScores).(map[string]int)
	return ok
}

func (r *RacialAdjustmentRule) Execute(ctx context.Context, gs *engine.Context, cmd engine.Command) *engine.Result {
	req, ok := gs.GetTemporary(KeyCreateRequest).(*CreateRequest)
	if !ok {
		return engine.Fail(engine.CodeValidation, "no character creation request staged")
	}
	race := r.tables.Race(req.Race)
	if race == nil {
		return engine.Failf(engine.CodeValidation, "unknown race %q", req.Race)
	}

	generated := gs.GetTemporary(KeyGeneratedScores).(map[string]int)
	adjusted := make(map[string]int, len(generated))
	for ability, score := range generated {
		v := score + race.Adjustments[ability]
		if v < 3 {
			v = 3
		}
		if v > 18 {
			v = 18
		}
		adjusted[ability] = v
	}

	gs.SetTemporary(KeyAdjustedScores, adjusted)
	return engine.Okf("racial adjustments applied for %s", race.Name).
		WithData(map[string]any{KeyAdjustedScores: adjusted})
}

// ClassRequirementRule verifies the adjusted scores meet the class's
// minimums and the race allows the class. Every violation is reported, not
// just the first.
type ClassRequirementRule struct {
	tables *data.Tables
}

func NewClassRequirementRule(tables *data.Tables) *ClassRequirementRule {
	return &ClassRequirementRule{tables: tables}
}

func (r *ClassRequirementRule) Name() string  { return RuleClassRequirement }
func (r *ClassRequirementRule) Priority() int { return 20 }

func (r *ClassRequirementRule) CanApply(gs *engine.Context, cmd engine.Command) bool {
	if cmd.Type() != engine.CommandCreateCharacter {
		return false
	}
	_, ok := gs.GetTemporary(KeyAdjustedScores).(map[string]int)
	return ok
}

func (r *ClassRequirementRule) Execute(ctx context.Context, gs *engine.Context, cmd engine.Command) *engine.Result {
	req, ok := gs.GetTemporary(KeyCreateRequest).(*CreateRequest)
	if !ok {
		return engine.Fail(engine.CodeValidation, "no character creation request staged")
	}
	class := r.tables.Class(req.Class)
	if class == nil {
		return engine.Failf(engine.CodeValidation, "unknown class %q", req.Class)
	}

	var problems []string
	if race := r.tables.Race(req.Race); race != nil && !race.Allows(req.Class) {
		problems = append(problems, fmt.Sprintf("%s may not be a %s", race.Name, class.Name))
	}

	scores := gs.GetTemporary(KeyAdjustedScores).(map[string]int)
	abilities := make([]string, 0, len(class.Requirements))
	for ability := range class.Requirements {
		abilities = append(abilities, ability)
	}
	sort.Strings(abilities)
	for _, ability := range abilities {
		minimum := class.Requirements[ability]
		if scores[ability] < minimum {
			problems = append(problems, fmt.Sprintf(
				"%s score must be at least %d for %s (rolled %d)",
				ability, minimum, class.Name, scores[ability]))
		}
	}

	if len(problems) > 0 {
		return engine.Fail(engine.CodeValidation, strings.Join(problems, "; ")).
			WithData(map[string]any{"violations": problems})
	}
	return engine.Okf("%s qualifies for %s", req.Name, class.Name)
}

// StartingHitPointsRule rolls the class hit die plus the constitution
// bonus, minimum 1.
type StartingHitPointsRule struct {
	tables *data.Tables
	roller *dice.Roller
}

func NewStartingHitPointsRule(tables *data.Tables, roller *dice.Roller) *StartingHitPointsRule {
	return &StartingHitPointsRule{tables: tables, roller: roller}
}

func (r *StartingHitPointsRule) Name() string  { return RuleStartingHitPoints }
func (r *StartingHitPointsRule) Priority() int { return 30 }

func (r *StartingHitPointsRule) CanApply(gs *engine.Context, cmd engine.Command) bool {
	if cmd.Type() != engine.CommandCreateCharacter {
		return false
	}
	_, ok := gs.GetTemporary(KeyAdjustedScores).(map[string]int)
	return ok
}

func (r *StartingHitPointsRule) Execute(ctx context.Context, gs *engine.Context, cmd engine.Command) *engine.Result {
	req := gs.GetTemporary(KeyCreateRequest).(*CreateRequest)
	class := r.tables.Class(req.Class)
	if class == nil {
		return engine.Failf(engine.CodeValidation, "unknown class %q", req.Class)
	}

	res, err := r.roller.Roll(class.HitDie)
	if err != nil {
		return engine.Failf(engine.CodeRuleException, "%s error: %v", r.Name(), err)
	}

	scores := gs.GetTemporary(KeyAdjustedScores).(map[string]int)
	hp := res.Total + ConstitutionHPBonus(scores[data.Constitution])
	if hp < 1 {
		hp = 1
	}

	gs.SetTemporary(KeyStartingHitPoints, hp)
	return engine.Okf("rolled %d hit points", hp).
		WithData(map[string]any{KeyStartingHitPoints: hp})
}

// StartingGoldRule rolls the class starting gold (result x10 gp).
type StartingGoldRule struct {
	tables *data.Tables
	roller *dice.Roller
}

func NewStartingGoldRule(tables *data.Tables, roller *dice.Roller) *StartingGoldRule {
	return &StartingGoldRule{tables: tables, roller: roller}
}

func (r *StartingGoldRule) Name() string  { return RuleStartingGold }
func (r *StartingGoldRule) Priority() int { return 40 }

func (r *StartingGoldRule) CanApply(gs *engine.Context, cmd engine.Command) bool {
	if cmd.Type() != engine.CommandCreateCharacter {
		return false
	}
	_, ok := gs.GetTemporary(KeyAdjustedScores).(map[string]int)
	return ok
}

func (r *StartingGoldRule) Execute(ctx context.Context, gs *engine.Context, cmd engine.Command) *engine.Result {
	req := gs.GetTemporary(KeyCreateRequest).(*CreateRequest)
	class := r.tables.Class(req.Class)
	if class == nil {
		return engine.Failf(engine.CodeValidation, "unknown class %q", req.Class)
	}

	notation := class.StartingGold
	if notation == "" {
		notation = "3d6"
	}
	res, err := r.roller.Roll(notation)
	if err != nil {
		return engine.Failf(engine.CodeRuleException, "%s error: %v", r.Name(), err)
	}
	gold := res.Total * 10

	gs.SetTemporary(KeyStartingGold, gold)
	return engine.Okf("starting purse of %d gold", gold).
		WithData(map[string]any{KeyStartingGold: gold})
}

// CharacterAssemblyRule builds the final character from the staged pieces
// and registers it in the entity store.
type CharacterAssemblyRule struct{}

func NewCharacterAssemblyRule() *CharacterAssemblyRule { return &CharacterAssemblyRule{} }

func (r *CharacterAssemblyRule) Name() string  { return RuleCharacterAssembly }
func (r *CharacterAssemblyRule) Priority() int { return 50 }

func (r *CharacterAssemblyRule) CanApply(gs *engine.Context, cmd engine.Command) bool {
	if cmd.Type() != engine.CommandCreateCharacter {
		return false
	}
	if _, ok := gs.GetTemporary(KeyAdjustedScores).(map[string]int); !ok {
		return false
	}
	_, ok := gs.GetTemporary(KeyStartingHitPoints).(int)
	return ok
}

func (r *CharacterAssemblyRule) Execute(ctx context.Context, gs *engine.Context, cmd engine.Command) *engine.Result {
	req := gs.GetTemporary(KeyCreateRequest).(*CreateRequest)
	scores := gs.GetTemporary(KeyAdjustedScores).(map[string]int)
	hp := gs.GetTemporary(KeyStartingHitPoints).(int)
	gold, _ := gs.GetTemporary(KeyStartingGold).(int)

	id := CharacterID(req.Name)
	if gs.HasEntity(id) {
		return engine.Failf(engine.CodeStoreConstraint, "a character named %s already exists", req.Name)
	}

	c := &Character{
		ID:           id,
		Name:         req.Name,
		Race:         req.Race,
		Class:        req.Class,
		Level:        1,
		Abilities:    scores,
		HitPoints:    hp,
		MaxHitPoints: hp,
		Gold:         gold,
		Morale:       7,
	}
	gs.SetEntity(id, c)

	return engine.Okf("%s the %s %s enters play with %d hit points", req.Name, req.Race, req.Class, hp).
		WithData(map[string]any{"characterId": id}).
		WithEffect(id, fmt.Sprintf("%s joins the party", req.Name))
}

// ConstitutionHPBonus returns the hit point adjustment for a constitution
// score on the standard table.
func ConstitutionHPBonus(con int) int {
	switch {
	case con <= 3:
		return -2
	case con <= 6:
		return -1
	case con <= 14:
		return 0
	case con == 15:
		return 1
	case con <= 17:
		return 2
	default:
		return 3
	}
}
