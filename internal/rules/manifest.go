package rules

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/graydelve/graydelve/internal/engine"
)

//go:embed manifests/chains.yaml
var embeddedChains []byte

// ChainManifestConfig mirrors engine.ChainConfig in manifest form.
type ChainManifestConfig struct {
	StopOnFailure  bool `yaml:"stop_on_failure"`
	MergeResults   bool `yaml:"merge_results"`
	ClearTemporary bool `yaml:"clear_temporary"`
}

// ChainManifestEntry declares one CEL-driven chain.
type ChainManifestEntry struct {
	Config ChainManifestConfig `yaml:"config"`
	Rules  []FormulaRuleDef    `yaml:"rules"`
}

// ChainManifest is the parsed form of a chains manifest file. World data
// can override the embedded defaults with its own manifest.
type ChainManifest struct {
	Chains map[string]ChainManifestEntry `yaml:"chains"`
}

// LoadChainManifest reads a manifest from path, or the embedded defaults
// when path is empty.
func LoadChainManifest(path string) (*ChainManifest, error) {
	raw := embeddedChains
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read chain manifest: %w", err)
		}
		raw = b
	}

	var m ChainManifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("failed to decode chain manifest: %w", err)
	}
	for name, entry := range m.Chains {
		if len(entry.Rules) == 0 {
			return nil, fmt.Errorf("chain %q declares no rules", name)
		}
		for _, def := range entry.Rules {
			if def.Name == "" {
				return nil, fmt.Errorf("chain %q has a rule without a name", name)
			}
			if def.Formula == "" && def.Check == "" {
				return nil, fmt.Errorf("rule %q in chain %q has neither formula nor check", def.Name, name)
			}
		}
	}
	return &m, nil
}

// Build turns one manifest chain into an executable rule chain bound to a
// command type.
func (m *ChainManifest) Build(name string, forType engine.CommandType, eval *Evaluator) (*engine.RuleChain, error) {
	entry, ok := m.Chains[name]
	if !ok {
		return nil, fmt.Errorf("chain %q not declared in manifest", name)
	}

	rules := make([]engine.Rule, 0, len(entry.Rules))
	for _, def := range entry.Rules {
		rules = append(rules, NewFormulaRule(def, forType, eval))
	}
	return engine.NewRuleChain(engine.ChainConfig{
		StopOnFailure:  entry.Config.StopOnFailure,
		MergeResults:   entry.Config.MergeResults,
		ClearTemporary: entry.Config.ClearTemporary,
	}, rules...), nil
}
