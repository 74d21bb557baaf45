package command

import (
	"context"
	"strings"

	"github.com/graydelve/graydelve/internal/engine"
	"github.com/graydelve/graydelve/internal/rules"
)

// Experience award sources recognized by GainExperience.
var experienceSources = map[string]bool{
	"combat":   true,
	"treasure": true,
	"quest":    true,
}

// GainExperience stages an experience award for an existing character.
type GainExperience struct {
	CharacterID string
	Amount      int
	Source      string
}

func (c *GainExperience) Type() engine.CommandType { return engine.CommandGainExperience }

func (c *GainExperience) CanExecute(gs *engine.Context) bool { return true }

func (c *GainExperience) RequiredRules() []string {
	return []string{rules.RulePrimeRequisiteBonus, rules.RuleExperienceAward}
}

func (c *GainExperience) InvolvedEntities() []string { return []string{c.CharacterID} }

func (c *GainExperience) Execute(ctx context.Context, gs *engine.Context) *engine.Result {
	var problems []string
	if c.Amount <= 0 {
		problems = append(problems, "Experience amount must be positive")
	}
	source := strings.ToLower(strings.TrimSpace(c.Source))
	if !experienceSources[source] {
		problems = append(problems, "Experience source must be combat, treasure, or quest")
	}
	if len(problems) > 0 {
		return engine.Fail(engine.CodeValidation, strings.Join(problems, "; "))
	}

	if !gs.HasEntity(c.CharacterID) {
		return engine.Failf(engine.CodeCharacterNotFound, "character %s not found", c.CharacterID)
	}

	gs.SetTemporary(rules.KeyExperienceRequest, &rules.ExperienceRequest{
		CharacterID: c.CharacterID,
		Amount:      c.Amount,
		Source:      source,
	})
	return engine.Okf("awarding %d experience from %s", c.Amount, source)
}
