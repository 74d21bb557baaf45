package command

import (
	"context"
	"strings"

	"github.com/graydelve/graydelve/internal/engine"
	"github.com/graydelve/graydelve/internal/rules"
)

// Save categories from the classic five-column matrix.
var saveCategories = map[string]bool{
	"aimed":         true,
	"breath":        true,
	"death":         true,
	"petrification": true,
	"spells":        true,
}

// SavingThrow stages a saving throw for a character. Saving throws are
// critical: a failed one halts batch processing.
type SavingThrow struct {
	CharacterID string
	Category    string
	Modifier    int
}

func (c *SavingThrow) Type() engine.CommandType { return engine.CommandSavingThrow }

func (c *SavingThrow) CanExecute(gs *engine.Context) bool {
	ch, ok := gs.GetEntity(c.CharacterID).(*rules.Character)
	return !ok || ch.IsConscious()
}

func (c *SavingThrow) RequiredRules() []string { return []string{rules.RuleSavingThrow} }

func (c *SavingThrow) InvolvedEntities() []string { return []string{c.CharacterID} }

func (c *SavingThrow) Execute(ctx context.Context, gs *engine.Context) *engine.Result {
	category := strings.ToLower(strings.TrimSpace(c.Category))
	if !saveCategories[category] {
		return engine.Failf(engine.CodeValidation,
			"unknown save category %q: expected aimed, breath, death, petrification, or spells", c.Category)
	}
	if !gs.HasEntity(c.CharacterID) {
		return engine.Failf(engine.CodeCharacterNotFound, "character %s not found", c.CharacterID)
	}

	gs.SetTemporary(rules.KeySaveRequest, &rules.SaveRequest{
		CharacterID: c.CharacterID,
		Category:    category,
		Modifier:    c.Modifier,
	})
	return engine.Okf("rolling %s save for %s", category, c.CharacterID)
}

// SystemShock stages a system shock survival roll, the percentile check a
// character makes against magical transformation effects. Like saving
// throws it is critical in batches.
type SystemShock struct {
	CharacterID string
}

func (c *SystemShock) Type() engine.CommandType { return engine.CommandSystemShock }

func (c *SystemShock) CanExecute(gs *engine.Context) bool { return true }

func (c *SystemShock) RequiredRules() []string { return []string{rules.RuleSystemShock} }

func (c *SystemShock) InvolvedEntities() []string { return []string{c.CharacterID} }

func (c *SystemShock) Execute(ctx context.Context, gs *engine.Context) *engine.Result {
	if !gs.HasEntity(c.CharacterID) {
		return engine.Failf(engine.CodeCharacterNotFound, "character %s not found", c.CharacterID)
	}
	gs.SetTemporary(rules.KeyShockRequest, &rules.ShockRequest{CharacterID: c.CharacterID})
	return engine.Okf("rolling system shock for %s", c.CharacterID)
}
