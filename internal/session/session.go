// Package session wires the full table loop: parse a line of input, run
// the command through the rule engine, journal the outcome, and keep the
// character sheets on disk current.
package session

import (
	"context"
	"fmt"

	"github.com/alecthomas/participle/v2"

	"github.com/graydelve/graydelve/internal/data"
	"github.com/graydelve/graydelve/internal/dice"
	"github.com/graydelve/graydelve/internal/engine"
	"github.com/graydelve/graydelve/internal/parser"
	"github.com/graydelve/graydelve/internal/persistence"
	"github.com/graydelve/graydelve/internal/rules"
)

// Journal is the persistence dependency Session needs: append-only records
// of processed commands.
type Journal interface {
	Append(rec persistence.Record) error
	Load() ([]persistence.Record, error)
	Close() error
}

// CharacterStore persists character sheets between sessions.
type CharacterStore interface {
	SaveCharacter(ch *rules.Character) error
	LoadCharacters() ([]*rules.Character, error)
}

// Session coordinates the parse-execute-journal loop against one campaign.
type Session struct {
	tables  *data.Tables
	roller  *dice.Roller
	engine  *engine.Engine
	state   *engine.Context
	journal Journal
	sheets  CharacterStore
	parse   *participle.Parser[parser.Line]
}

// Options configures a session.
type Options struct {
	// DataDirs are table override directories, earliest wins.
	DataDirs []string
	// ManifestPath overrides the embedded chain manifest.
	ManifestPath string
	// Journal receives one record per processed command. Required.
	Journal Journal
	// Sheets persists character state after mutating commands. Optional.
	Sheets CharacterStore
	// Roller overrides the default crypto-backed roller, for tests.
	Roller *dice.Roller
}

// New bootstraps a session: loads tables, builds the engine, and restores
// characters from the sheet store into the game context.
func New(opts Options) (*Session, error) {
	if opts.Journal == nil {
		return nil, fmt.Errorf("session requires a journal")
	}

	tables, err := data.NewLoader(opts.DataDirs).Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load reference tables: %w", err)
	}

	manifest, err := rules.LoadChainManifest(opts.ManifestPath)
	if err != nil {
		return nil, err
	}

	roller := opts.Roller
	if roller == nil {
		roller = dice.NewRoller()
	}

	eng, err := rules.BuildEngine(tables, roller, manifest)
	if err != nil {
		return nil, fmt.Errorf("failed to build rule engine: %w", err)
	}

	s := &Session{
		tables:  tables,
		roller:  roller,
		engine:  eng,
		state:   engine.NewContext(),
		journal: opts.Journal,
		sheets:  opts.Sheets,
		parse:   parser.Build(),
	}
	if err := s.restore(); err != nil {
		return nil, err
	}
	return s, nil
}

// restore loads persisted character sheets into the game context.
func (s *Session) restore() error {
	if s.sheets == nil {
		return nil
	}
	chars, err := s.sheets.LoadCharacters()
	if err != nil {
		return fmt.Errorf("failed to restore characters: %w", err)
	}
	for _, ch := range chars {
		s.state.SetEntity(ch.ID, ch)
	}
	return nil
}

// State exposes the live game context.
func (s *Session) State() *engine.Context { return s.state }

// Engine exposes the rule engine, mainly for metrics and validation.
func (s *Session) Engine() *engine.Engine { return s.engine }

// Execute runs one line of table input through the full pipeline and
// returns the command's result.
func (s *Session) Execute(ctx context.Context, input string) (*engine.Result, error) {
	line, err := s.parse.ParseString("", input)
	if err != nil {
		return nil, parser.MapError(input, err)
	}

	cmd, err := CommandForLine(line)
	if err != nil {
		return nil, err
	}

	res, err := s.engine.Process(ctx, cmd, s.state)
	if err != nil {
		return nil, err
	}

	if err := s.journal.Append(persistence.Record{
		Command: cmd.Type(),
		Input:   input,
		Result:  res,
	}); err != nil {
		return nil, fmt.Errorf("failed to journal command: %w", err)
	}

	if s.sheets != nil {
		for _, id := range cmd.InvolvedEntities() {
			if ch, ok := s.state.GetEntity(id).(*rules.Character); ok {
				if err := s.sheets.SaveCharacter(ch); err != nil {
					return nil, fmt.Errorf("failed to save character %s: %w", id, err)
				}
			}
		}
	}

	return res, nil
}

// History replays the journal, oldest first.
func (s *Session) History() ([]persistence.Record, error) {
	return s.journal.Load()
}

// Close releases the journal.
func (s *Session) Close() error {
	return s.journal.Close()
}
