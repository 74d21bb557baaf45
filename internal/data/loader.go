package data

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed tables/*.yaml
var embedded embed.FS

// EmbeddedTableFiles returns the names and contents of the shipped default
// tables, for seeding a world directory.
func EmbeddedTableFiles() (map[string][]byte, error) {
	out := make(map[string][]byte)
	err := fs.WalkDir(embedded, "tables", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		b, err := embedded.ReadFile(path)
		if err != nil {
			return err
		}
		out[filepath.Base(path)] = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Loader reads reference tables from a data directory fallback hierarchy,
// falling back to the embedded defaults when no directory provides a file.
type Loader struct {
	dataDirs []string
}

// NewLoader initializes a loader with the given directory fallback chain.
// Directories earlier in the list shadow later ones; the embedded tables
// are the final fallback.
func NewLoader(dataDirs []string) *Loader {
	return &Loader{dataDirs: dataDirs}
}

// Load reads and merges every tables file into a single Tables set.
func (l *Loader) Load() (*Tables, error) {
	t := &Tables{
		Classes: make(map[string]*Class),
		Races:   make(map[string]*Race),
	}

	raw, err := l.read("classes.yaml")
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(raw, t); err != nil {
		return nil, fmt.Errorf("failed to decode tables: %w", err)
	}

	for key, c := range t.Classes {
		if c.Name == "" {
			c.Name = key
		}
	}
	for key, r := range t.Races {
		if r.Name == "" {
			r.Name = key
		}
	}
	return t, nil
}

func (l *Loader) read(name string) ([]byte, error) {
	for _, dir := range l.dataDirs {
		path := filepath.Join(dir, name)
		if b, err := os.ReadFile(path); err == nil {
			return b, nil
		}
	}
	b, err := embedded.ReadFile(filepath.Join("tables", name))
	if err != nil {
		return nil, fmt.Errorf("could not find reference %s in any data directory or embedded defaults", name)
	}
	return b, nil
}
