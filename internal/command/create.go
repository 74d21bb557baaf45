// Package command defines the closed set of player-facing commands. A
// command validates its parameters, stages a typed request into the game
// context, and leaves the actual rules work to its chain.
package command

import (
	"context"
	"strings"

	"github.com/graydelve/graydelve/internal/engine"
	"github.com/graydelve/graydelve/internal/rules"
)

// CreateCharacter stages a character creation request. Validation reports
// every problem at once so the player can fix the whole submission in one
// pass.
type CreateCharacter struct {
	Name  string
	Race  string
	Class string
}

func (c *CreateCharacter) Type() engine.CommandType { return engine.CommandCreateCharacter }

func (c *CreateCharacter) CanExecute(gs *engine.Context) bool { return true }

func (c *CreateCharacter) RequiredRules() []string {
	return []string{
		rules.RuleAbilityScoreGeneration,
		rules.RuleRacialAdjustment,
		rules.RuleClassRequirement,
		rules.RuleStartingHitPoints,
		rules.RuleStartingGold,
		rules.RuleCharacterAssembly,
	}
}

func (c *CreateCharacter) InvolvedEntities() []string {
	return []string{rules.CharacterID(c.Name)}
}

func (c *CreateCharacter) Execute(ctx context.Context, gs *engine.Context) *engine.Result {
	var problems []string
	if strings.TrimSpace(c.Name) == "" {
		problems = append(problems, "Character name is required")
	}
	if strings.TrimSpace(c.Race) == "" {
		problems = append(problems, "Character race is required")
	}
	if strings.TrimSpace(c.Class) == "" {
		problems = append(problems, "Character class is required")
	}
	if len(problems) > 0 {
		return engine.Fail(engine.CodeValidation, strings.Join(problems, "; "))
	}

	gs.SetTemporary(rules.KeyCreateRequest, &rules.CreateRequest{
		Name:  strings.TrimSpace(c.Name),
		Race:  strings.ToLower(strings.TrimSpace(c.Race)),
		Class: strings.ToLower(strings.TrimSpace(c.Class)),
	})
	return engine.Okf("creating %s", c.Name)
}
