package catalog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	_ "embed"
)

//go:embed content.toml
var defaultContent string

// fileContent mirrors the TOML layout of a catalog content file.
type fileContent struct {
	Workouts       []Workout       `toml:"workouts"`
	Meals          []Meal          `toml:"meals"`
	FastingWindows []FastingWindow `toml:"fasting_windows"`
}

// Load reads catalog content in TOML format.
func Load(r io.Reader) (*Catalog, error) {
	var content fileContent
	if _, err := toml.NewDecoder(r).Decode(&content); err != nil {
		return nil, fmt.Errorf("decode catalog content: %w", err)
	}

	c, err := New(content.Workouts, content.Meals, content.FastingWindows)
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}
	return c, nil
}

// LoadFile reads catalog content from a TOML file on disk.
func LoadFile(path string) (_ *Catalog, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close catalog file: %w", closeErr)
		}
	}()

	return Load(f)
}

// Default returns the catalog built from the embedded content.
func Default() (*Catalog, error) {
	return Load(strings.NewReader(defaultContent))
}
