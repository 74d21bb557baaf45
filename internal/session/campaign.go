package session

import (
	"os"
	"path/filepath"

	"github.com/graydelve/graydelve/internal/persistence"
	"github.com/graydelve/graydelve/internal/rules"
)

// campaignSheets binds the campaign manager to one world/campaign pair.
type campaignSheets struct {
	mgr      *persistence.CampaignManager
	world    string
	campaign string
}

func (c *campaignSheets) SaveCharacter(ch *rules.Character) error {
	return c.mgr.SaveCharacter(c.world, c.campaign, ch)
}

func (c *campaignSheets) LoadCharacters() ([]*rules.Character, error) {
	return c.mgr.LoadCharacters(c.world, c.campaign)
}

// Open attaches a session to a campaign on disk, creating the directory
// structure when asked. Campaign-local data/ tables shadow the embedded
// defaults, and a campaign chains.yaml overrides the embedded chain
// manifest.
func Open(worldsDir, world, campaign string, create bool) (*Session, error) {
	mgr := persistence.NewCampaignManager(worldsDir)

	var journal *persistence.Journal
	var err error
	if create {
		journal, err = mgr.Create(world, campaign)
	} else {
		journal, err = mgr.Load(world, campaign)
	}
	if err != nil {
		return nil, err
	}

	opts := Options{
		DataDirs: []string{mgr.DataDir(world, campaign)},
		Journal:  journal,
		Sheets:   &campaignSheets{mgr: mgr, world: world, campaign: campaign},
	}
	if manifest := filepath.Join(mgr.CampaignPath(world, campaign), "chains.yaml"); fileExists(manifest) {
		opts.ManifestPath = manifest
	}

	s, err := New(opts)
	if err != nil {
		journal.Close()
		return nil, err
	}
	return s, nil
}

func fileExists(path string) bool {
	stat, err := os.Stat(path)
	return err == nil && !stat.IsDir()
}
