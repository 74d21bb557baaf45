package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graydelve/graydelve/internal/dice"
	"github.com/graydelve/graydelve/internal/engine"
	"github.com/graydelve/graydelve/internal/persistence"
	"github.com/graydelve/graydelve/internal/rules"
)

func enqueueCreation(roller *dice.Roller) {
	for i := 0; i < 6; i++ {
		roller.Enqueue(6, 5, 4, 3)
	}
	roller.Enqueue(7)
	roller.Enqueue(4, 4, 4, 4, 4)
}

func openTestSession(t *testing.T, roller *dice.Roller) *Session {
	t.Helper()
	mgr := persistence.NewCampaignManager(t.TempDir())
	journal, err := mgr.Create("greyhawk", "intro")
	require.NoError(t, err)

	s, err := New(Options{
		Journal: journal,
		Sheets:  &campaignSheets{mgr: mgr, world: "greyhawk", campaign: "intro"},
		Roller:  roller,
	})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSessionCreateAndJournal(t *testing.T) {
	roller := dice.NewRoller()
	enqueueCreation(roller)
	s := openTestSession(t, roller)

	res, err := s.Execute(context.Background(), `create "Brom Ironhand" human fighter`)
	require.NoError(t, err)
	require.True(t, res.Success, res.Message)

	c, ok := s.State().GetEntity("brom-ironhand").(*rules.Character)
	require.True(t, ok)
	assert.Equal(t, "fighter", c.Class)

	records, err := s.History()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, engine.CommandCreateCharacter, records[0].Command)
	assert.Contains(t, records[0].Input, "Brom Ironhand")
}

func TestSessionRestoresCharactersAcrossOpens(t *testing.T) {
	worlds := t.TempDir()
	mgr := persistence.NewCampaignManager(worlds)
	journal, err := mgr.Create("greyhawk", "intro")
	require.NoError(t, err)

	roller := dice.NewRoller()
	enqueueCreation(roller)
	s, err := New(Options{
		Journal: journal,
		Sheets:  &campaignSheets{mgr: mgr, world: "greyhawk", campaign: "intro"},
		Roller:  roller,
	})
	require.NoError(t, err)

	_, err = s.Execute(context.Background(), `create "Elyra" elf magic-user`)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := Open(worlds, "greyhawk", "intro", false)
	require.NoError(t, err)
	defer reopened.Close()

	c, ok := reopened.State().GetEntity("elyra").(*rules.Character)
	require.True(t, ok, "character sheet restored on open")
	assert.Equal(t, "magic-user", c.Class)
}

func TestSessionParseErrorGivesGuidance(t *testing.T) {
	s := openTestSession(t, nil)

	_, err := s.Execute(context.Background(), "savage brom death")
	require.Error(t, err)

	_, err = s.Execute(context.Background(), "save")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save <character>")
}

func TestSessionRollGoesThroughEngine(t *testing.T) {
	roller := dice.NewRoller()
	roller.Enqueue(3, 4)
	s := openTestSession(t, roller)

	res, err := s.Execute(context.Background(), "roll 2d6+1")
	require.NoError(t, err)
	require.True(t, res.Success, res.Message)
	assert.Equal(t, 8, res.Data["total"])

	snap := s.Engine().Metrics()
	assert.Equal(t, 1, snap.CommandsProcessed)
}

func TestCommandForLineCoversEveryShape(t *testing.T) {
	cases := []struct {
		input string
		want  engine.CommandType
	}{
		{`create "A" human fighter`, engine.CommandCreateCharacter},
		{"xp brom 100 combat", engine.CommandGainExperience},
		{"save brom death +1", engine.CommandSavingThrow},
		{"shock brom", engine.CommandSystemShock},
		{"morale wulf -1", engine.CommandMoraleCheck},
		{`cast ansel "bless" 1`, engine.CommandCastSpell},
		{"roll 1d20", engine.CommandRollDice},
	}

	s := openTestSession(t, nil)
	for _, tc := range cases {
		line, err := s.parse.ParseString("", tc.input)
		require.NoError(t, err, tc.input)
		cmd, err := CommandForLine(line)
		require.NoError(t, err, tc.input)
		assert.Equal(t, tc.want, cmd.Type(), tc.input)
	}
}
