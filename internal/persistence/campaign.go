package persistence

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/graydelve/graydelve/internal/rules"
)

// CampaignManager maps worlds and campaigns onto the local filesystem:
// <worlds>/<world>/<campaign>/ holds journal.jsonl, a characters/ directory
// of YAML sheets, and optional data/ table overrides.
type CampaignManager struct {
	WorldsDir string
}

// NewCampaignManager returns a manager rooted at the given worlds directory.
func NewCampaignManager(worldsDir string) *CampaignManager {
	return &CampaignManager{WorldsDir: worldsDir}
}

// CampaignPath produces the campaign's directory path.
func (c *CampaignManager) CampaignPath(world, campaign string) string {
	return filepath.Join(c.WorldsDir, world, campaign)
}

// DataDir returns the campaign's table override directory.
func (c *CampaignManager) DataDir(world, campaign string) string {
	return filepath.Join(c.CampaignPath(world, campaign), "data")
}

// Create builds the standard campaign directory structure and opens a
// fresh journal.
func (c *CampaignManager) Create(world, campaign string) (*Journal, error) {
	path := c.CampaignPath(world, campaign)

	for _, dir := range []string{path, filepath.Join(path, "characters"), filepath.Join(path, "data")} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return OpenJournal(filepath.Join(path, "journal.jsonl"))
}

// Load verifies the campaign directory exists and opens its journal.
func (c *CampaignManager) Load(world, campaign string) (*Journal, error) {
	path := c.CampaignPath(world, campaign)
	if stat, err := os.Stat(path); err != nil || !stat.IsDir() {
		return nil, fmt.Errorf("campaign folder not found: %s", path)
	}
	return OpenJournal(filepath.Join(path, "journal.jsonl"))
}

// SaveCharacter writes a character sheet to the campaign's characters
// directory.
func (c *CampaignManager) SaveCharacter(world, campaign string, ch *rules.Character) error {
	data, err := yaml.Marshal(ch)
	if err != nil {
		return fmt.Errorf("failed to encode character %s: %w", ch.ID, err)
	}
	path := filepath.Join(c.CampaignPath(world, campaign), "characters", ch.ID+".yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write character sheet: %w", err)
	}
	return nil
}

// LoadCharacters reads every character sheet in the campaign.
func (c *CampaignManager) LoadCharacters(world, campaign string) ([]*rules.Character, error) {
	dir := filepath.Join(c.CampaignPath(world, campaign), "characters")
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var out []*rules.Character
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		var ch rules.Character
		if err := yaml.Unmarshal(raw, &ch); err != nil {
			return nil, fmt.Errorf("failed to decode character sheet %s: %w", entry.Name(), err)
		}
		out = append(out, &ch)
	}
	return out, nil
}
