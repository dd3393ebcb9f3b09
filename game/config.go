package game

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/plus3/hopper/physics"
	"gopkg.in/yaml.v3"
)

// settingsFile is the YAML layout of a tuning file. Absent keys keep the
// preset value.
type settingsFile struct {
	Stage      string         `yaml:"stage"`
	Tuning     physics.Tuning `yaml:"tuning"`
	Spawn      *[2]float64    `yaml:"spawn"`
	PlayerSize *[2]float64    `yaml:"player_size"`
	FloorY     *float64       `yaml:"floor_y"`
	Ground     [][2]float64   `yaml:"ground"`
}

// DecodeSettings applies a YAML document on top of base. A stage key switches
// to that stage's preset before the remaining keys are applied.
func DecodeSettings(r io.Reader, base Settings) (Settings, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return base, err
	}

	var head struct {
		Stage string `yaml:"stage"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return base, fmt.Errorf("decode settings: %w", err)
	}

	out := base
	if head.Stage != "" {
		stage, err := ParseStage(head.Stage)
		if err != nil {
			return base, err
		}
		if stage != base.Stage {
			preset := Preset(stage)
			preset.Verbose, preset.Debug = base.Verbose, base.Debug
			out = preset
		}
	}

	file := settingsFile{Tuning: out.Tuning}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return base, fmt.Errorf("decode settings: %w", err)
	}

	out.Tuning = file.Tuning
	if file.Spawn != nil {
		out.Spawn = physics.V(file.Spawn[0], file.Spawn[1])
	}
	if file.PlayerSize != nil {
		out.PlayerSize = physics.V(file.PlayerSize[0], file.PlayerSize[1])
	}
	if file.FloorY != nil {
		out.FloorY = *file.FloorY
	}
	if len(file.Ground) > 0 {
		out.Ground = out.Ground[:0:0]
		for _, v := range file.Ground {
			out.Ground = append(out.Ground, physics.V(v[0], v[1]))
		}
	}

	if err := out.Validate(); err != nil {
		return base, err
	}
	return out, nil
}

// LoadSettings reads a YAML settings file. An empty path returns base.
func LoadSettings(path string, base Settings) (Settings, error) {
	if path == "" {
		return base, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return base, fmt.Errorf("settings file %s does not exist", path)
		}
		return base, err
	}
	defer f.Close()

	s, err := DecodeSettings(f, base)
	if err != nil {
		return base, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
