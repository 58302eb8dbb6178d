package game

import (
	"github.com/jakecoffman/cp"
	"github.com/plus3/nudelsalat/ecs"
)

type GameStarted struct{}
type GamePaused struct{}
type GameResumed struct{}
type LevelRestart struct{}

type LevelCompleted struct {
	Score float64
}

type PlayerDied struct {
	Reason string
}

type ScoreChanged struct {
	Delta float64
	Total float64
}

type Sound int

const (
	SoundGrab Sound = iota
	SoundPlace
	SoundCraft
	SoundError
	SoundQuest
	SoundDoor
)

func (s Sound) String() string {
	switch s {
	case SoundGrab:
		return "grab"
	case SoundPlace:
		return "place"
	case SoundCraft:
		return "craft"
	case SoundError:
		return "error"
	case SoundQuest:
		return "quest"
	case SoundDoor:
		return "door"
	}
	return "unknown"
}

type PlaySound struct {
	Sound  Sound
	Volume float64
}

type ChangeRoom struct {
	Target GridPos
}

type RoomEntered struct {
	From, To GridPos
}

type SpawnRandomItem struct {
	Spawner *ecs.EntityRef
}

type ItemGrabbed struct {
	Item *ecs.EntityRef
	Name string
}

// HandReleased is sent when the button is released while holding an item.
type HandReleased struct {
	Item     *ecs.EntityRef
	Position cp.Vector
}

// HandClicked is sent when the button is released with nothing held.
type HandClicked struct {
	Position cp.Vector
}

type ItemPlaced struct {
	Machine *ecs.EntityRef
	Item    string
}

type BrewRequested struct {
	Machine *ecs.EntityRef
}

type ItemCrafted struct {
	Machine     *ecs.EntityRef
	Ingredients []string
	Output      string
}

type MachineBroken struct {
	Machine *ecs.EntityRef
	Name    string
}

type QuestCompleted struct {
	NPC    *ecs.EntityRef
	Name   string
	Reward Reward
}

type TalkToNPC struct {
	Name string
	Line string
}

type CameraShake struct {
	Trauma float64
}
