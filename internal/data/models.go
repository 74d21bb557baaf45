// Package data holds the read-only OSRIC reference tables: class
// progressions, racial adjustments, saving throw matrices, and spell slot
// bonuses. Tables ship embedded and can be overridden by world data
// directories.
package data

// Ability score names used as map keys throughout the tables.
const (
	Strength     = "strength"
	Dexterity    = "dexterity"
	Constitution = "constitution"
	Intelligence = "intelligence"
	Wisdom       = "wisdom"
	Charisma     = "charisma"
)

// AbilityNames lists the six ability scores in rulebook order.
var AbilityNames = []string{
	Strength, Dexterity, Constitution, Intelligence, Wisdom, Charisma,
}

// SaveRow is one band of a class's saving throw matrix: the targets apply
// from MinLevel until the next row's MinLevel.
type SaveRow struct {
	MinLevel int            `yaml:"min_level"`
	Targets  map[string]int `yaml:"targets"`
}

// Class describes a character class: requirements, prime requisites, hit
// dice, experience thresholds, and the saving throw matrix.
type Class struct {
	Name            string         `yaml:"name"`
	PrimeRequisites []string       `yaml:"prime_requisites"`
	HitDie          string         `yaml:"hit_die"`
	Requirements    map[string]int `yaml:"requirements"`
	StartingGold    string         `yaml:"starting_gold"` // dice notation, result x10 gp
	XPLevels        []int          `yaml:"xp_levels"`     // index 0 = level 1
	SavingThrows    []SaveRow      `yaml:"saving_throws"`
	Spellcaster     bool           `yaml:"spellcaster"`
}

// LevelForXP returns the level a character with the given experience total
// occupies on this class's progression table.
func (c *Class) LevelForXP(xp int) int {
	level := 1
	for i, threshold := range c.XPLevels {
		if xp >= threshold {
			level = i + 1
		}
	}
	return level
}

// SaveTarget returns the target number for a save category at a level, or
// 0 when the category is unknown.
func (c *Class) SaveTarget(category string, level int) int {
	target := 0
	for _, row := range c.SavingThrows {
		if level >= row.MinLevel {
			if v, ok := row.Targets[category]; ok {
				target = v
			}
		}
	}
	return target
}

// Race describes a playable race: ability adjustments and class limits.
type Race struct {
	Name           string         `yaml:"name"`
	Adjustments    map[string]int `yaml:"adjustments"`
	AllowedClasses []string       `yaml:"allowed_classes"` // empty = all
}

// Allows reports whether the race may take the named class.
func (r *Race) Allows(class string) bool {
	if len(r.AllowedClasses) == 0 {
		return true
	}
	for _, c := range r.AllowedClasses {
		if c == class {
			return true
		}
	}
	return false
}

// SpellTables holds spell progression reference data.
type SpellTables struct {
	// WisdomBonusSlots maps a wisdom score to bonus first-level divine
	// spell slots.
	WisdomBonusSlots map[int]int `yaml:"wisdom_bonus_slots"`
}

// Tables is the full loaded reference set.
type Tables struct {
	Classes map[string]*Class `yaml:"classes"`
	Races   map[string]*Race  `yaml:"races"`
	Spells  SpellTables       `yaml:"spells"`
}

// Class returns the named class table, or nil.
func (t *Tables) Class(name string) *Class {
	return t.Classes[name]
}

// Race returns the named race table, or nil.
func (t *Tables) Race(name string) *Race {
	return t.Races[name]
}
