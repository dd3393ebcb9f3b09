package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/plus3/hopper/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStage(t *testing.T) {
	tests := []struct {
		in   string
		want Stage
	}{
		{"1", StageGravity},
		{"2", StageLateral},
		{"slopes", StageSlopes},
		{" Rotation ", StageRotation},
	}
	for _, tt := range tests {
		got, err := ParseStage(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"0", "5", "bounce", ""} {
		_, err := ParseStage(bad)
		assert.Error(t, err, bad)
	}
}

func TestStageCapabilities(t *testing.T) {
	assert.False(t, StageGravity.Lateral())
	assert.True(t, StageLateral.Lateral())
	assert.False(t, StageLateral.Sloped())
	assert.True(t, StageSlopes.Sloped())
	assert.True(t, StageRotation.Sloped())
	assert.Equal(t, "rotation", StageRotation.String())
	assert.Equal(t, "stage(9)", Stage(9).String())
}

func TestPresetsAreValid(t *testing.T) {
	for s := StageGravity; s <= StageRotation; s++ {
		settings := Preset(s)
		assert.NoError(t, settings.Validate(), s.String())
		assert.Equal(t, float64(ScreenWidth), settings.Width)
		assert.Equal(t, float64(ScreenHeight), settings.Height)
	}

	assert.True(t, Preset(StageRotation).Tuning.Rotation)
	assert.False(t, Preset(StageSlopes).Tuning.Rotation)
	assert.Equal(t, physics.V(100, 100), Preset(StageGravity).PlayerSize)
}

func TestPresetGroundIsNotShared(t *testing.T) {
	a := Preset(StageSlopes)
	a.Ground[0].Y = 0
	assert.Equal(t, 360.0, Preset(StageSlopes).Ground[0].Y)
}

func TestDecodeSettingsKeepsUnsetFields(t *testing.T) {
	base := Preset(StageLateral)

	got, err := DecodeSettings(strings.NewReader("tuning:\n  gravity: 50\nfloor_y: 300\n"), base)
	require.NoError(t, err)

	assert.Equal(t, 50.0, got.Tuning.Gravity)
	assert.Equal(t, base.Tuning.JumpSpeed, got.Tuning.JumpSpeed)
	assert.Equal(t, base.Tuning.MoveSpeed, got.Tuning.MoveSpeed)
	assert.Equal(t, 300.0, got.FloorY)
	assert.Equal(t, base.Spawn, got.Spawn)
}

func TestDecodeSettingsSwitchesStage(t *testing.T) {
	base := Preset(StageGravity)
	base.Verbose = true

	doc := `
stage: slopes
spawn: [10, 20]
ground:
  - [0, 400]
  - [320, 300]
  - [640, 400]
`
	got, err := DecodeSettings(strings.NewReader(doc), base)
	require.NoError(t, err)

	assert.Equal(t, StageSlopes, got.Stage)
	assert.Equal(t, Preset(StageSlopes).Tuning, got.Tuning)
	assert.Equal(t, physics.V(10, 20), got.Spawn)
	assert.Equal(t, []physics.Vec2{{X: 0, Y: 400}, {X: 320, Y: 300}, {X: 640, Y: 400}}, got.Ground)
	assert.True(t, got.Verbose)
}

func TestDecodeSettingsErrors(t *testing.T) {
	base := Preset(StageSlopes)

	tests := []struct {
		name string
		doc  string
		is   error
	}{
		{"bad yaml", "tuning: [", nil},
		{"unknown stage", "stage: 9\n", nil},
		{"negative gravity", "tuning:\n  gravity: -1\n", physics.ErrInvalidTuning},
		{"one vertex", "ground: [[0, 0]]\n", physics.ErrTooFewVertices},
		{"backwards ground", "ground: [[10, 0], [0, 0]]\n", physics.ErrNonMonotonic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeSettings(strings.NewReader(tt.doc), base)
			require.Error(t, err)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
			assert.Equal(t, base, got, "base is returned untouched")
		})
	}
}

func TestLoadSettings(t *testing.T) {
	base := Preset(StageRotation)

	got, err := LoadSettings("", base)
	require.NoError(t, err)
	assert.Equal(t, base, got)

	path := filepath.Join(t.TempDir(), "tuning.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tuning:\n  angular_kick: 0.05\n"), 0o644))
	got, err = LoadSettings(path, base)
	require.NoError(t, err)
	assert.Equal(t, 0.05, got.Tuning.AngularKick)
	assert.True(t, got.Tuning.Rotation)

	_, err = LoadSettings(filepath.Join(t.TempDir(), "missing.yaml"), base)
	assert.ErrorContains(t, err, "does not exist")
}
