package rules

// Temporary-bag keys forming the producer/consumer contract between
// commands and their rule chains. Each rule's CanApply checks its upstream
// key; its Execute publishes its output key. Renaming a key silently
// disables every downstream consumer, so they all live here.
const (
	// KeyCreateRequest is staged by the createCharacter command.
	KeyCreateRequest = "create-character-request"
	// KeyGeneratedScores is published by ability score generation.
	KeyGeneratedScores = "generated-ability-scores"
	// KeyAdjustedScores is published by racial adjustment.
	KeyAdjustedScores = "adjusted-ability-scores"
	// KeyStartingHitPoints is published by the hit point roll.
	KeyStartingHitPoints = "starting-hit-points"
	// KeyStartingGold is published by the gold roll.
	KeyStartingGold = "starting-gold"

	// KeyExperienceRequest is staged by the gainExperience command.
	KeyExperienceRequest = "experience-request"
	// KeyAdjustedExperience is published by the prime requisite bonus.
	KeyAdjustedExperience = "adjusted-experience"

	// KeySaveRequest is staged by the savingThrow command.
	KeySaveRequest = "saving-throw-request"
	// KeyMoraleRequest is staged by the moraleCheck command.
	KeyMoraleRequest = "morale-request"
	// KeyMoraleRoll is published by the manifest-defined morale roll rule.
	KeyMoraleRoll = "morale-roll"
	// KeyCastRequest is staged by the castSpell command.
	KeyCastRequest = "cast-request"
	// KeySpellSlots is published by spell progression.
	KeySpellSlots = "spell-slots"
	// KeyRollRequest is staged by the rollDice command.
	KeyRollRequest = "roll-request"
	// KeyShockRequest is staged by the systemShock command.
	KeyShockRequest = "system-shock-request"
)

// CreateRequest is the staged payload for character creation.
type CreateRequest struct {
	Name  string
	Race  string
	Class string
}

// ExperienceRequest is the staged payload for experience gain.
type ExperienceRequest struct {
	CharacterID string
	Amount      int
	Source      string // "combat", "treasure", "quest"
}

// SaveRequest is the staged payload for a saving throw.
type SaveRequest struct {
	CharacterID string
	Category    string // "aimed", "breath", "death", "petrification", "spells"
	Modifier    int
}

// CastRequest is the staged payload for spell casting.
type CastRequest struct {
	CasterID   string
	SpellName  string
	SpellLevel int
}

// RollRequest is the staged payload for a plain dice roll.
type RollRequest struct {
	ActorID  string
	Notation string
}

// ShockRequest is the staged payload for a system shock survival roll.
type ShockRequest struct {
	CharacterID string
}
