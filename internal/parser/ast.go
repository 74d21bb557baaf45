// Package parser defines the table-side input grammar. One line of player
// input parses into exactly one Line; the session layer maps lines onto
// commands.
package parser

// Line represents one top-level action typed at the table.
type Line struct {
	Create *CreateCmd `parser:"( @@"`
	XP     *XPCmd     `parser:"| @@"`
	Save   *SaveCmd   `parser:"| @@"`
	Shock  *ShockCmd  `parser:"| @@"`
	Morale *MoraleCmd `parser:"| @@"`
	Cast   *CastCmd   `parser:"| @@"`
	Roll   *RollCmd   `parser:"| @@ )"`
}

// CreateCmd rolls up a new character: create "Brom Ironhand" human fighter
type CreateCmd struct {
	Keyword string `parser:"@(\"create\"|\"Create\")"`
	Name    string `parser:"@String"`
	Race    string `parser:"@Ident"`
	Class   string `parser:"@Ident"`
}

// XPCmd awards experience: xp brom 100 treasure
type XPCmd struct {
	Keyword   string `parser:"@(\"xp\"|\"Xp\"|\"XP\")"`
	Character string `parser:"@Ident"`
	Amount    int    `parser:"@Int"`
	Source    string `parser:"@Ident"`
}

// SaveCmd rolls a saving throw: save brom death +2
type SaveCmd struct {
	Keyword   string `parser:"@(\"save\"|\"Save\")"`
	Character string `parser:"@Ident"`
	Category  string `parser:"@Ident"`
	Modifier  int    `parser:"@Signed?"`
}

// ShockCmd rolls system shock survival: shock brom
type ShockCmd struct {
	Keyword   string `parser:"@(\"shock\"|\"Shock\")"`
	Character string `parser:"@Ident"`
}

// MoraleCmd tests morale: morale wulf -1
type MoraleCmd struct {
	Keyword   string `parser:"@(\"morale\"|\"Morale\")"`
	Character string `parser:"@Ident"`
	Modifier  int    `parser:"@Signed?"`
}

// CastCmd casts a spell: cast ansel "cure light wounds" 1
type CastCmd struct {
	Keyword string `parser:"@(\"cast\"|\"Cast\")"`
	Caster  string `parser:"@Ident"`
	Spell   string `parser:"@String"`
	Level   int    `parser:"@Int"`
}

// RollCmd rolls bare dice, optionally on behalf of a character:
// roll 2d6+1 / roll brom 1d20
type RollCmd struct {
	Keyword string `parser:"@(\"roll\"|\"Roll\")"`
	Actor   string `parser:"@Ident?"`
	Dice    string `parser:"@DiceMacro"`
}
