// Package game holds the gameplay components and systems: the grab-and-place hand,
// interaction resolution, crafting machines, quests and room transitions.
package game

import (
	"image/color"

	"github.com/jakecoffman/cp"
	"github.com/plus3/nudelsalat/ecs"
	"github.com/plus3/nudelsalat/physics"
)

// GridPos addresses a room. Y grows downward, like world coordinates.
type GridPos struct {
	X, Y int
}

func (g GridPos) Add(o GridPos) GridPos {
	return GridPos{X: g.X + o.X, Y: g.Y + o.Y}
}

// Hand is the player's cursor. While Grabbing, Grabbed and Joint are set; otherwise
// both are nil.
type Hand struct {
	Grabbing bool
	Grabbed  *ecs.EntityRef
	Joint    *physics.Joint
}

func (h *Hand) clear() {
	h.Grabbing = false
	h.Grabbed = nil
	h.Joint = nil
}

type Item struct {
	Name string
}

type Machine struct {
	Name         string
	Items        []string
	Capacity     int
	HP           int
	MaxHP        int
	Broken       bool
	OutputOffset cp.Vector
}

func (m *Machine) Full() bool {
	return len(m.Items) >= m.Capacity
}

type NPC struct {
	Name     string
	Greeting string
	Refusal  string
	Thanks   string
	Lines    []string

	said int
}

// Line returns the greeting on the first call, then cycles through Lines.
func (n *NPC) Line() string {
	defer func() { n.said++ }()
	if n.said == 0 || len(n.Lines) == 0 {
		return n.Greeting
	}
	return n.Lines[(n.said-1)%len(n.Lines)]
}

// Reward is granted when a quest completes: points, or the key to a locked room.
type Reward struct {
	Points float64
	Key    *GridPos
}

type Quest struct {
	Wants     string
	Reward    Reward
	Completed bool
}

type Room struct {
	Name      string
	Grid      GridPos
	Locked    bool
	Colliders []ColliderKind
}

type ColliderKind int

const (
	Ground ColliderKind = iota
	Ceiling
	WallLeft
	WallRight
)

func (k ColliderKind) String() string {
	switch k {
	case Ground:
		return "ground"
	case Ceiling:
		return "ceiling"
	case WallLeft:
		return "wall_left"
	case WallRight:
		return "wall_right"
	}
	return "unknown"
}

// RoomCollider marks the static boundary boxes of a room.
type RoomCollider struct {
	Kind ColliderKind
	Room GridPos
}

type Door struct {
	Name   string
	Target GridPos
}

// ItemSpawner hands out a random item from Items at its position plus Offset.
type ItemSpawner struct {
	Name   string
	Items  []string
	Offset cp.Vector
}

// Solid marks the colliding twin of a sensor entity, such as a machine's body.
type Solid struct {
	Owner *ecs.EntityRef
}

type InteractionType int

const (
	InteractNone InteractionType = iota
	InteractItem
	InteractTalk
	InteractButton
	InteractGive
	InteractMachine
	InteractQuest
	InteractDoor
)

func (t InteractionType) String() string {
	switch t {
	case InteractNone:
		return "none"
	case InteractItem:
		return "item"
	case InteractTalk:
		return "talk"
	case InteractButton:
		return "button"
	case InteractGive:
		return "give"
	case InteractMachine:
		return "machine"
	case InteractQuest:
		return "quest"
	case InteractDoor:
		return "door"
	}
	return "unknown"
}

// Interactable makes an entity a candidate when the hand releases or clicks near it.
type Interactable struct {
	Type InteractionType
}

// Sprite is how the renderer draws an entity: a filled box, or a circle when Radius is set.
type Sprite struct {
	Color  color.RGBA
	Width  float64
	Height float64
	Radius float64
	Layer  int
}

// RegisterComponents registers the game and physics components with the registry.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	physics.RegisterComponents(registry)
	ecs.RegisterComponent[Hand](registry)
	ecs.RegisterComponent[Item](registry)
	ecs.RegisterComponent[Machine](registry)
	ecs.RegisterComponent[NPC](registry)
	ecs.RegisterComponent[Quest](registry)
	ecs.RegisterComponent[Room](registry)
	ecs.RegisterComponent[RoomCollider](registry)
	ecs.RegisterComponent[Door](registry)
	ecs.RegisterComponent[ItemSpawner](registry)
	ecs.RegisterComponent[Solid](registry)
	ecs.RegisterComponent[Interactable](registry)
	ecs.RegisterComponent[Sprite](registry)
}
