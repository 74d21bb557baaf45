package engine

import "context"

// CommandType identifies a kind of player or GM intent. The set is closed:
// every type the engine can dispatch is declared here, so a misspelled type
// is a compile-time problem at the construction site rather than a silent
// "no chain found" at runtime.
type CommandType string

const (
	CommandCreateCharacter CommandType = "createCharacter"
	CommandGainExperience  CommandType = "gainExperience"
	CommandSavingThrow     CommandType = "savingThrow"
	CommandMoraleCheck     CommandType = "moraleCheck"
	CommandCastSpell       CommandType = "castSpell"
	CommandRollDice        CommandType = "rollDice"
	CommandSystemShock     CommandType = "systemShock"
)

// Command is a typed, validated unit of intent. A Command is constructed
// immutable per invocation, executed exactly once, and discarded.
//
// Execute validates parameters and stages whatever intermediate values the
// downstream rules need into the Context's temporary bag, returning a
// preliminary result acknowledging the intent. Expected domain failures
// (missing entity, malformed input) come back as a failed Result with a
// descriptive message, never as a panic or error.
type Command interface {
	// Type returns the dispatch discriminant.
	Type() CommandType

	// Execute stages data for the rule chain, or fails with a diagnostic
	// Result when the command's own parameters are invalid. Validation
	// failures concatenate every applicable problem so the caller sees the
	// complete list in one round-trip.
	Execute(ctx context.Context, gs *Context) *Result

	// CanExecute is a cheap, side-effect-free precondition check. It must be
	// idempotent and safe to call many times.
	CanExecute(gs *Context) bool

	// RequiredRules declares the rule names this command expects its chain
	// to contain. Advisory only: tests use it to assert chain completeness,
	// the engine does not enforce it.
	RequiredRules() []string

	// InvolvedEntities returns the union of actor and target ids, used for
	// journaling and auditing.
	InvolvedEntities() []string
}
