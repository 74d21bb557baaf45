// Package rules implements the OSRIC domain rules that plug into the
// engine's Rule contract, plus the CEL formula bridge for manifest-defined
// rules.
package rules

import "strings"

// Character is the durable player-character entity tracked by the engine
// Context. Rules mutate characters replace-on-write: read, clone, modify,
// write back under the same id.
type Character struct {
	ID           string         `json:"id" yaml:"id"`
	Name         string         `json:"name" yaml:"name"`
	Race         string         `json:"race" yaml:"race"`
	Class        string         `json:"class" yaml:"class"`
	Level        int            `json:"level" yaml:"level"`
	Abilities    map[string]int `json:"abilities" yaml:"abilities"`
	HitPoints    int            `json:"hit_points" yaml:"hit_points"`
	MaxHitPoints int            `json:"max_hit_points" yaml:"max_hit_points"`
	Experience   int            `json:"experience" yaml:"experience"`
	Gold         int            `json:"gold" yaml:"gold"`
	Morale       int            `json:"morale" yaml:"morale"`
	SlotsUsed    map[int]int    `json:"slots_used,omitempty" yaml:"slots_used,omitempty"`
	Conditions   []string       `json:"conditions,omitempty" yaml:"conditions,omitempty"`
}

// EntityID implements engine.Entity.
func (c *Character) EntityID() string { return c.ID }

// IsConscious reports whether the character can initiate commands.
func (c *Character) IsConscious() bool { return c.HitPoints > 0 }

// Clone returns a deep copy suitable for replace-on-write mutation.
func (c *Character) Clone() *Character {
	out := *c
	out.Abilities = make(map[string]int, len(c.Abilities))
	for k, v := range c.Abilities {
		out.Abilities[k] = v
	}
	if c.SlotsUsed != nil {
		out.SlotsUsed = make(map[int]int, len(c.SlotsUsed))
		for k, v := range c.SlotsUsed {
			out.SlotsUsed[k] = v
		}
	}
	out.Conditions = append([]string(nil), c.Conditions...)
	return &out
}

// CharacterID derives the registry id from a display name.
func CharacterID(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}
