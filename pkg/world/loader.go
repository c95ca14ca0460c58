package world

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load parses a world definition from JSON or YAML bytes, dispatched
// on the file extension, and validates it. A file authored against a
// newer config version is rejected here; the engine only ever sees the
// current-version shape.
func Load(data []byte, filename string) (*WorldDef, error) {
	var def WorldDef

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &def); err != nil {
			return nil, fmt.Errorf("failed to parse world yaml %s: %w", filename, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &def); err != nil {
			return nil, fmt.Errorf("failed to parse world json %s: %w", filename, err)
		}
	default:
		return nil, fmt.Errorf("unsupported world config extension: %s", filename)
	}

	if def.Version > CurrentVersion {
		return nil, fmt.Errorf("world %s is config version %d, this engine supports up to %d", filename, def.Version, CurrentVersion)
	}
	if def.Version == 0 {
		def.Version = CurrentVersion
	}
	if def.ID == "" {
		def.ID = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	if def.Scoring.Weights == (ScoringWeights{}) {
		def.Scoring = DefaultScoringConfig()
	}

	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// LoadFile reads and parses a world definition from disk.
func LoadFile(path string) (*WorldDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read world file %s: %w", path, err)
	}
	return Load(data, path)
}
