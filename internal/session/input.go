package session

import (
	"fmt"

	"github.com/graydelve/graydelve/internal/command"
	"github.com/graydelve/graydelve/internal/engine"
	"github.com/graydelve/graydelve/internal/parser"
)

// CommandForLine maps a parsed input line onto its engine command.
func CommandForLine(line *parser.Line) (engine.Command, error) {
	switch {
	case line.Create != nil:
		return &command.CreateCharacter{
			Name:  line.Create.Name,
			Race:  line.Create.Race,
			Class: line.Create.Class,
		}, nil
	case line.XP != nil:
		return &command.GainExperience{
			CharacterID: line.XP.Character,
			Amount:      line.XP.Amount,
			Source:      line.XP.Source,
		}, nil
	case line.Save != nil:
		return &command.SavingThrow{
			CharacterID: line.Save.Character,
			Category:    line.Save.Category,
			Modifier:    line.Save.Modifier,
		}, nil
	case line.Shock != nil:
		return &command.SystemShock{CharacterID: line.Shock.Character}, nil
	case line.Morale != nil:
		return &command.MoraleCheck{
			CharacterID: line.Morale.Character,
			Modifier:    line.Morale.Modifier,
		}, nil
	case line.Cast != nil:
		return &command.CastSpell{
			CasterID:   line.Cast.Caster,
			SpellName:  line.Cast.Spell,
			SpellLevel: line.Cast.Level,
		}, nil
	case line.Roll != nil:
		return &command.RollDice{
			ActorID:  line.Roll.Actor,
			Notation: line.Roll.Dice,
		}, nil
	}
	return nil, fmt.Errorf("unsupported command pattern")
}
