package persistence

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graydelve/graydelve/internal/data"
	"github.com/graydelve/graydelve/internal/engine"
	"github.com/graydelve/graydelve/internal/rules"
)

func TestJournalAppendAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.jsonl")
	j, err := OpenJournal(path)
	require.NoError(t, err)
	defer j.Close()

	require.NoError(t, j.Append(Record{
		Command: engine.CommandRollDice,
		Input:   "roll 2d6",
		Result:  engine.Ok("the table rolls 2d6: [3 4] = 7").WithData(map[string]any{"total": 7}),
	}))
	require.NoError(t, j.Append(Record{
		Command: engine.CommandSavingThrow,
		Result:  engine.Lost("Brom fails the save versus death (10 vs 14)"),
	}))

	records, err := j.Load()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, engine.CommandRollDice, records[0].Command)
	assert.True(t, records[0].Result.Success)
	assert.False(t, records[1].At.IsZero(), "append stamps the record")
	assert.False(t, records[1].Result.Success)
	assert.Empty(t, string(records[1].Result.Code))
}

func TestJournalSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.jsonl")

	j, err := OpenJournal(path)
	require.NoError(t, err)
	require.NoError(t, j.Append(Record{Command: engine.CommandRollDice, Result: engine.Ok("7")}))
	require.NoError(t, j.Close())

	j, err = OpenJournal(path)
	require.NoError(t, err)
	defer j.Close()
	require.NoError(t, j.Append(Record{Command: engine.CommandMoraleCheck, Result: engine.Ok("holds")}))

	records, err := j.Load()
	require.NoError(t, err)
	require.Len(t, records, 2)
}

func TestCampaignCreateAndCharacterRoundTrip(t *testing.T) {
	mgr := NewCampaignManager(t.TempDir())

	j, err := mgr.Create("greyhawk", "sunless-citadel")
	require.NoError(t, err)
	defer j.Close()

	ch := &rules.Character{
		ID: "brom", Name: "Brom", Race: "human", Class: "fighter", Level: 2,
		Abilities:    map[string]int{data.Strength: 16, data.Constitution: 12},
		HitPoints:    12, MaxHitPoints: 14, Experience: 2100, Gold: 90,
	}
	require.NoError(t, mgr.SaveCharacter("greyhawk", "sunless-citadel", ch))

	loaded, err := mgr.LoadCharacters("greyhawk", "sunless-citadel")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, ch.Name, loaded[0].Name)
	assert.Equal(t, 16, loaded[0].Abilities[data.Strength])
	assert.Equal(t, 2100, loaded[0].Experience)
}

func TestCampaignLoadMissing(t *testing.T) {
	mgr := NewCampaignManager(t.TempDir())

	_, err := mgr.Load("nowhere", "nothing")
	require.Error(t, err)
}
