// Package config loads the game's tuning values and level layout from YAML.
package config

import (
	"bytes"
	_ "embed"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Vec2 is a position or offset in world pixels. Y grows downward.
type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Grid addresses a room in the level layout.
type Grid struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

type Config struct {
	Window   Window    `yaml:"window"`
	Physics  Physics   `yaml:"physics"`
	Hand     Hand      `yaml:"hand"`
	Camera   Camera    `yaml:"camera"`
	Audio    Audio     `yaml:"audio"`
	Machine  Machine   `yaml:"machine"`
	Rooms    Rooms     `yaml:"rooms"`
	Items    []Item    `yaml:"items"`
	Recipes  []Recipe  `yaml:"recipes"`
	Machines []Placed  `yaml:"machines"`
	NPCs     []NPC     `yaml:"npcs"`
	Spawners []Spawner `yaml:"spawners"`
	Doors    []Door    `yaml:"doors"`
}

type Window struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type Physics struct {
	Gravity       float64 `yaml:"gravity"`
	Iterations    int     `yaml:"iterations"`
	SubSteps      int     `yaml:"sub_steps"`
	MaxDelta      float64 `yaml:"max_delta"`
	GrabMaxForce  float64 `yaml:"grab_max_force"`
	GrabErrorBias float64 `yaml:"grab_error_bias"`
}

type Hand struct {
	Radius float64 `yaml:"radius"`
}

type Camera struct {
	LerpSpeed      float64 `yaml:"lerp_speed"`
	ZoomSpeed      float64 `yaml:"zoom_speed"`
	MinZoom        float64 `yaml:"min_zoom"`
	MaxZoom        float64 `yaml:"max_zoom"`
	ShakeDecay     float64 `yaml:"shake_decay"`
	ShakeMaxOffset float64 `yaml:"shake_max_offset"`
	ErrorTrauma    float64 `yaml:"error_trauma"`
}

type Audio struct {
	Enabled      bool    `yaml:"enabled"`
	SampleRate   int     `yaml:"sample_rate"`
	MasterVolume float64 `yaml:"master_volume"`
}

// Machine holds the defaults shared by every brewing machine.
type Machine struct {
	Capacity     int     `yaml:"capacity"`
	HP           int     `yaml:"hp"`
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	OutputOffset Vec2    `yaml:"output_offset"`
	TrashItem    string  `yaml:"trash_item"`
}

type Rooms struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	FloorHeight float64 `yaml:"floor_height"`
	WallWidth   float64 `yaml:"wall_width"`
	Start       Grid    `yaml:"start"`
	List        []Room  `yaml:"list"`
}

type Room struct {
	Name      string   `yaml:"name"`
	Grid      Grid     `yaml:"grid"`
	Locked    bool     `yaml:"locked"`
	Colliders []string `yaml:"colliders"`
}

type Item struct {
	Name  string  `yaml:"name"`
	Color string  `yaml:"color"`
	Size  float64 `yaml:"size"`
	Mass  float64 `yaml:"mass"`
}

type Recipe struct {
	Ingredients []string `yaml:"ingredients"`
	Output      string   `yaml:"output"`
}

// Placed is anything positioned inside a room, relative to the room centre.
type Placed struct {
	Name   string `yaml:"name"`
	Room   Grid   `yaml:"room"`
	Offset Vec2   `yaml:"offset"`
}

type NPC struct {
	Placed   `yaml:",inline"`
	Wants    string   `yaml:"wants"`
	Reward   Reward   `yaml:"reward"`
	Greeting string   `yaml:"greeting"`
	Refusal  string   `yaml:"refusal"`
	Thanks   string   `yaml:"thanks"`
	Lines    []string `yaml:"lines"`
}

// Reward is either a number of points or the key to a locked room.
type Reward struct {
	Points float64 `yaml:"points"`
	Key    *Grid   `yaml:"key"`
}

type Spawner struct {
	Placed      `yaml:",inline"`
	Items       []string `yaml:"items"`
	SpawnOffset Vec2     `yaml:"spawn_offset"`
}

type Door struct {
	Placed `yaml:",inline"`
	Target Grid `yaml:"target"`
}

// Default returns the built-in configuration and level.
func Default() *Config {
	cfg, err := Decode(bytes.NewReader(defaultYAML), &Config{})
	if err != nil {
		panic(errors.Wrap(err, "embedded default config"))
	}
	return cfg
}

// Decode reads YAML from r on top of base. Lists present in the document replace the
// base lists; scalar sections only override the keys they name.
func Decode(r io.Reader, base *Config) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(base); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "decode config")
	}
	return base, nil
}

// Load reads a config file over the defaults and validates it. An empty path returns
// the validated defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "open config %s", path)
		}
		defer f.Close()

		if cfg, err = Decode(f, cfg); err != nil {
			return nil, errors.Wrapf(err, "load %s", path)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
