package parser

import (
	"fmt"
	"strings"
)

// MapError turns a raw participle error into per-command usage guidance.
func MapError(input string, err error) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return fmt.Errorf("I wasn't able to understand your command")
	}

	switch strings.ToLower(strings.Fields(input)[0]) {
	case "create":
		return fmt.Errorf(`The command create must be: create "Name" <race> <class>`)
	case "xp":
		return fmt.Errorf("The command xp must be: xp <character> <amount> <combat|treasure|quest>")
	case "save":
		return fmt.Errorf("The command save must be: save <character> <category> [+/-modifier]")
	case "shock":
		return fmt.Errorf("The command shock must be: shock <character>")
	case "morale":
		return fmt.Errorf("The command morale must be: morale <character> [+/-modifier]")
	case "cast":
		return fmt.Errorf(`The command cast must be: cast <character> "spell name" <level>`)
	case "roll":
		return fmt.Errorf("The command roll must be: roll [character] <dice>")
	}

	return fmt.Errorf("I wasn't able to understand your command")
}
