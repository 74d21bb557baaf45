package rules

import (
	"fmt"

	"github.com/graydelve/graydelve/internal/data"
	"github.com/graydelve/graydelve/internal/dice"
	"github.com/graydelve/graydelve/internal/engine"
)

// BuildEngine assembles the rule engine with one chain per command type:
// the native rule chains plus the manifest-defined morale chain.
func BuildEngine(tables *data.Tables, roller *dice.Roller, manifest *ChainManifest) (*engine.Engine, error) {
	eval, err := NewEvaluator(func(notation string) int {
		res, err := roller.Roll(notation)
		if err != nil {
			return 0
		}
		return res.Total
	})
	if err != nil {
		return nil, err
	}

	e := engine.New()

	register := func(t engine.CommandType, chain *engine.RuleChain) error {
		if err := e.Register(t, chain); err != nil {
			return fmt.Errorf("failed to register %s chain: %w", t, err)
		}
		return nil
	}

	creation := engine.NewRuleChain(
		engine.ChainConfig{StopOnFailure: true, MergeResults: true, ClearTemporary: true},
		NewAbilityScoreGenerationRule(roller),
		NewRacialAdjustmentRule(tables),
		NewClassRequirementRule(tables),
		NewStartingHitPointsRule(tables, roller),
		NewStartingGoldRule(tables, roller),
		NewCharacterAssemblyRule(),
	)
	if err := register(engine.CommandCreateCharacter, creation); err != nil {
		return nil, err
	}

	experience := engine.NewRuleChain(
		engine.ChainConfig{StopOnFailure: true, MergeResults: true, ClearTemporary: true},
		NewPrimeRequisiteBonusRule(tables),
		NewExperienceAwardRule(tables),
	)
	if err := register(engine.CommandGainExperience, experience); err != nil {
		return nil, err
	}

	saves := engine.NewRuleChain(
		engine.ChainConfig{StopOnFailure: true, MergeResults: true, ClearTemporary: true},
		NewSavingThrowRule(tables, roller),
	)
	if err := register(engine.CommandSavingThrow, saves); err != nil {
		return nil, err
	}

	if manifest == nil {
		manifest, err = LoadChainManifest("")
		if err != nil {
			return nil, err
		}
	}
	morale, err := manifest.Build("moraleCheck", engine.CommandMoraleCheck, eval)
	if err != nil {
		return nil, err
	}
	if err := register(engine.CommandMoraleCheck, morale); err != nil {
		return nil, err
	}

	casting := engine.NewRuleChain(
		engine.ChainConfig{StopOnFailure: true, MergeResults: true, ClearTemporary: true},
		NewSpellProgressionRule(tables),
		NewSpellCastingRule(),
	)
	if err := register(engine.CommandCastSpell, casting); err != nil {
		return nil, err
	}

	rolling := engine.NewRuleChain(
		engine.ChainConfig{StopOnFailure: true, MergeResults: true, ClearTemporary: true},
		NewNarrateRollRule(roller),
	)
	if err := register(engine.CommandRollDice, rolling); err != nil {
		return nil, err
	}

	shock := engine.NewRuleChain(
		engine.ChainConfig{StopOnFailure: true, MergeResults: true, ClearTemporary: true},
		NewSystemShockRule(roller),
	)
	if err := register(engine.CommandSystemShock, shock); err != nil {
		return nil, err
	}

	return e, nil
}
