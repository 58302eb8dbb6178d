package config_test

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/plus3/nudelsalat/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 1280.0, cfg.Rooms.Width)
	assert.Equal(t, 720.0, cfg.Rooms.Height)
	assert.Equal(t, 5, cfg.Machine.Capacity)
	assert.Equal(t, 5, cfg.Machine.HP)
	assert.Equal(t, 5.0, cfg.Hand.Radius)
	assert.Equal(t, []string{"trash", "red", "green", "blue", "yellow", "violet", "turkeu", "white"}, cfg.ItemNames())
	assert.Len(t, cfg.Recipes, 4)
	require.NotNil(t, cfg.NPCs[1].Reward.Key)
	assert.Equal(t, config.Grid{X: 0, Y: 1}, *cfg.NPCs[1].Reward.Key)
}

func TestDefaultReturnsFreshCopies(t *testing.T) {
	a := config.Default()
	a.Items = nil
	assert.NotEmpty(t, config.Default().Items)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "level.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
hand:
  radius: 12
recipes:
  - {ingredients: [red, red], output: trash}
`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 12.0, cfg.Hand.Radius)
	assert.Equal(t, 10.0, cfg.Camera.LerpSpeed)
	require.Len(t, cfg.Recipes, 1)
	assert.Equal(t, "trash", cfg.Recipes[0].Output)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "level.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hand:\n  radios: 3\n"), 0o644))

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := config.Default()
	cfg.Recipes = append(cfg.Recipes, config.Recipe{Ingredients: []string{"gren"}, Output: "yelow"})
	cfg.Doors[0].Target = config.Grid{X: 9, Y: 9}
	cfg.Rooms.List[0].Colliders = append(cfg.Rooms.List[0].Colliders, "grund")

	err := cfg.Validate()
	require.Error(t, err)

	errs := multierr.Errors(err)
	assert.Len(t, errs, 4)
	msg := err.Error()
	assert.Contains(t, msg, `did you mean "green"?`)
	assert.Contains(t, msg, `did you mean "yellow"?`)
	assert.Contains(t, msg, `did you mean "ground"?`)
	assert.Contains(t, msg, "missing room (9, 9)")
}

func TestValidateDuplicateRoom(t *testing.T) {
	cfg := config.Default()
	cfg.Rooms.List = append(cfg.Rooms.List, config.Room{Name: "Copy", Grid: config.Grid{}})

	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "reuses grid position"))
}

func TestValidateAudio(t *testing.T) {
	cfg := config.Default()
	cfg.Audio.SampleRate = 0
	cfg.Audio.MasterVolume = 1.5

	errs := multierr.Errors(cfg.Validate())
	assert.Len(t, errs, 2)

	cfg.Audio.Enabled = false
	cfg.Audio.MasterVolume = 1
	assert.NoError(t, cfg.Validate())
}

func TestSuggest(t *testing.T) {
	names := []string{"red", "green", "blue", "turkeu"}

	assert.Equal(t, "green", config.Suggest("gren", names))
	assert.Equal(t, "turkeu", config.Suggest("Turkey", names))
	assert.Equal(t, "", config.Suggest("bicycle", names))
}

func TestParseColor(t *testing.T) {
	c, err := config.ParseColor("#e03c3c")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0xe0, G: 0x3c, B: 0x3c, A: 0xff}, c)

	c, err = config.ParseColor("10203040")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}, c)

	_, err = config.ParseColor("#12")
	assert.Error(t, err)
	_, err = config.ParseColor("#zzzzzz")
	assert.Error(t, err)
}
