package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

var colliderNames = []string{"ground", "ceiling", "wall_left", "wall_right"}

// Validate checks the tuning values and every cross reference in the level.
func (c *Config) Validate() error {
	var err error
	add := func(format string, args ...any) {
		err = multierr.Append(err, errors.Errorf(format, args...))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		add("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Physics.SubSteps < 1 {
		add("physics.sub_steps must be at least 1")
	}
	if c.Physics.Iterations < 1 {
		add("physics.iterations must be at least 1")
	}
	if c.Hand.Radius <= 0 {
		add("hand.radius must be positive")
	}
	if c.Camera.MinZoom <= 0 || c.Camera.MinZoom > c.Camera.MaxZoom {
		add("camera zoom range [%g, %g] is invalid", c.Camera.MinZoom, c.Camera.MaxZoom)
	}
	if c.Machine.Capacity < 1 || c.Machine.HP < 1 {
		add("machine capacity and hp must be at least 1")
	}
	if c.Audio.Enabled && c.Audio.SampleRate <= 0 {
		add("audio.sample_rate must be positive when audio is enabled")
	}
	if c.Audio.MasterVolume < 0 || c.Audio.MasterVolume > 1 {
		add("audio.master_volume must be within [0, 1], got %g", c.Audio.MasterVolume)
	}
	if c.Rooms.Width <= 0 || c.Rooms.Height <= 0 {
		add("room size must be positive")
	}

	items := make([]string, 0, len(c.Items))
	for i, item := range c.Items {
		if item.Name == "" {
			add("items[%d] has no name", i)
			continue
		}
		if contains(items, item.Name) {
			add("item %q is defined twice", item.Name)
		}
		if _, cerr := ParseColor(item.Color); cerr != nil {
			add("item %q: %v", item.Name, cerr)
		}
		if item.Size <= 0 || item.Mass <= 0 {
			add("item %q needs a positive size and mass", item.Name)
		}
		items = append(items, item.Name)
	}

	checkItem := func(name, where string) {
		if !contains(items, name) {
			add("unknown item %q in %s%s", name, where, didYouMean(name, items))
		}
	}

	checkItem(c.Machine.TrashItem, "machine.trash_item")
	for i, recipe := range c.Recipes {
		if len(recipe.Ingredients) == 0 {
			add("recipes[%d] has no ingredients", i)
		}
		for _, name := range recipe.Ingredients {
			checkItem(name, fmt.Sprintf("recipes[%d]", i))
		}
		checkItem(recipe.Output, fmt.Sprintf("recipes[%d].output", i))
	}

	rooms := make(map[Grid]bool, len(c.Rooms.List))
	for _, room := range c.Rooms.List {
		if rooms[room.Grid] {
			add("room %q reuses grid position (%d, %d)", room.Name, room.Grid.X, room.Grid.Y)
		}
		rooms[room.Grid] = true
		for _, collider := range room.Colliders {
			if !contains(colliderNames, collider) {
				add("room %q: unknown collider %q%s", room.Name, collider, didYouMean(collider, colliderNames))
			}
		}
	}
	checkRoom := func(g Grid, where string) {
		if !rooms[g] {
			add("%s refers to missing room (%d, %d)", where, g.X, g.Y)
		}
	}

	checkRoom(c.Rooms.Start, "rooms.start")
	for _, m := range c.Machines {
		checkRoom(m.Room, "machine "+m.Name)
	}
	for _, s := range c.Spawners {
		checkRoom(s.Room, "spawner "+s.Name)
		if len(s.Items) == 0 {
			add("spawner %q has no items", s.Name)
		}
		for _, name := range s.Items {
			checkItem(name, "spawner "+s.Name)
		}
	}
	for _, npc := range c.NPCs {
		checkRoom(npc.Room, "npc "+npc.Name)
		checkItem(npc.Wants, "npc "+npc.Name)
		if npc.Reward.Key != nil {
			checkRoom(*npc.Reward.Key, "reward of npc "+npc.Name)
		}
	}
	for _, door := range c.Doors {
		checkRoom(door.Room, "door "+door.Name)
		checkRoom(door.Target, "target of door "+door.Name)
	}

	return err
}

// ItemNames lists the configured item names in declaration order.
func (c *Config) ItemNames() []string {
	names := make([]string, len(c.Items))
	for i, item := range c.Items {
		names[i] = item.Name
	}
	return names
}

// Suggest returns the candidate closest to name, or "" if none is close enough to be a typo.
func Suggest(name string, candidates []string) string {
	best, bestDist := "", len(name)/2+1
	for _, candidate := range candidates {
		if d := levenshtein.ComputeDistance(strings.ToLower(name), strings.ToLower(candidate)); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}

func didYouMean(name string, candidates []string) string {
	if s := Suggest(name, candidates); s != "" {
		return fmt.Sprintf(" (did you mean %q?)", s)
	}
	return ""
}

// ParseColor parses "#rrggbb" or "#rrggbbaa".
func ParseColor(hex string) (color.RGBA, error) {
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 && len(s) != 8 {
		return color.RGBA{}, errors.Errorf("invalid color %q", hex)
	}
	if len(s) == 6 {
		s += "ff"
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, errors.Wrapf(err, "invalid color %q", hex)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
