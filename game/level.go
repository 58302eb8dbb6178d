package game

import (
	"image/color"

	"github.com/jakecoffman/cp"
	"github.com/pkg/errors"
	"github.com/plus3/nudelsalat/config"
	"github.com/plus3/nudelsalat/ecs"
	"github.com/plus3/nudelsalat/physics"
	"go.uber.org/zap"
)

// Sizes of the level furniture that the config does not set.
const (
	machineSensorMargin = 16
	npcWidth            = 48
	npcHeight           = 96
	spawnerSize         = 64
	doorWidth           = 64
	doorHeight          = 128
)

var (
	roomColor     = color.RGBA{0x2b, 0x2d, 0x42, 0xff}
	lockedColor   = color.RGBA{0x1a, 0x1a, 0x24, 0xff}
	colliderColor = color.RGBA{0x8d, 0x99, 0xae, 0xff}
	handColor     = color.RGBA{0xed, 0xf2, 0xf4, 0xff}
	machineColor  = color.RGBA{0xef, 0x8a, 0x17, 0xff}
	npcColor      = color.RGBA{0x4e, 0xa6, 0x99, 0xff}
	spawnerColor  = color.RGBA{0x6d, 0x59, 0x7a, 0xff}
	doorColor     = color.RGBA{0x9c, 0x6b, 0x30, 0xff}
)

// ParseColliderKind maps a config collider name to its kind.
func ParseColliderKind(name string) (ColliderKind, error) {
	for _, kind := range []ColliderKind{Ground, Ceiling, WallLeft, WallRight} {
		if kind.String() == name {
			return kind, nil
		}
	}
	return 0, errors.Errorf("unknown collider %q", name)
}

func vec(v config.Vec2) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

func grid(g config.Grid) GridPos {
	return GridPos{X: g.X, Y: g.Y}
}

// HandSpawn returns the world position the hand starts at.
func HandSpawn(rooms *RoomManager) cp.Vector {
	return rooms.Center(rooms.Current)
}

// BuildLevel spawns the rooms, their colliders, the hand and every machine, NPC, spawner
// and door described by cfg. rooms is reset to the configured start room.
func BuildLevel(storage *ecs.Storage, world *physics.World, rooms *RoomManager, cfg *config.Config) error {
	rooms.Rooms = make(map[GridPos]*ecs.EntityRef)
	rooms.Size = cp.Vector{X: cfg.Rooms.Width, Y: cfg.Rooms.Height}
	rooms.Current = grid(cfg.Rooms.Start)

	for _, r := range cfg.Rooms.List {
		if err := buildRoom(storage, world, rooms, cfg, r); err != nil {
			return err
		}
	}
	if rooms.Room(storage, rooms.Current) == nil {
		return errors.Errorf("start room (%d, %d) does not exist", rooms.Current.X, rooms.Current.Y)
	}

	hand := world.NewBall(physics.Kinematic, HandSpawn(rooms), cfg.Hand.Radius, 0, physics.AsSensor())
	physics.Spawn(storage, hand, Hand{}, Sprite{Color: handColor, Radius: cfg.Hand.Radius, Layer: 4})

	for _, m := range cfg.Machines {
		spawnMachine(storage, world, rooms, cfg.Machine, m)
	}
	for _, n := range cfg.NPCs {
		spawnNPC(storage, world, rooms, n)
	}
	for _, sp := range cfg.Spawners {
		spawnSpawner(storage, world, rooms, sp)
	}
	for _, d := range cfg.Doors {
		spawnDoor(storage, world, rooms, d)
	}
	return nil
}

func buildRoom(storage *ecs.Storage, world *physics.World, rooms *RoomManager, cfg *config.Config, r config.Room) error {
	g := grid(r.Grid)
	center := rooms.Center(g)

	kinds := make([]ColliderKind, 0, len(r.Colliders))
	for _, name := range r.Colliders {
		kind, err := ParseColliderKind(name)
		if err != nil {
			return errors.Wrapf(err, "room %s", r.Name)
		}
		kinds = append(kinds, kind)
	}

	fill := roomColor
	if r.Locked {
		fill = lockedColor
	}
	id := storage.Spawn(
		Room{Name: r.Name, Grid: g, Locked: r.Locked, Colliders: kinds},
		physics.Transform{Position: center},
		Sprite{Color: fill, Width: rooms.Size.X, Height: rooms.Size.Y},
	)
	rooms.Rooms[g] = storage.CreateEntityRef(id)

	for _, kind := range kinds {
		pos, w, h := ColliderBox(kind, center, rooms.Size, cfg.Rooms.FloorHeight, cfg.Rooms.WallWidth)
		body := world.NewBox(physics.Static, pos, w, h, 0)
		physics.Spawn(storage, body,
			RoomCollider{Kind: kind, Room: g},
			Sprite{Color: colliderColor, Width: w, Height: h, Layer: 1},
		)
	}
	return nil
}

func placedAt(rooms *RoomManager, p config.Placed) cp.Vector {
	return rooms.Center(grid(p.Room)).Add(vec(p.Offset))
}

func spawnMachine(storage *ecs.Storage, world *physics.World, rooms *RoomManager, defaults config.Machine, m config.Placed) {
	pos := placedAt(rooms, m)
	w, h := defaults.Width, defaults.Height

	sensor := world.NewBox(physics.Static, pos, w+2*machineSensorMargin, h+2*machineSensorMargin, 0, physics.AsSensor())
	id := physics.Spawn(storage, sensor,
		Machine{
			Name:         m.Name,
			Capacity:     defaults.Capacity,
			HP:           defaults.HP,
			MaxHP:        defaults.HP,
			OutputOffset: vec(defaults.OutputOffset),
		},
		Interactable{Type: InteractMachine},
		Sprite{Color: machineColor, Width: w, Height: h, Layer: 1},
	)

	solid := world.NewBox(physics.Static, pos, w, h, 0)
	physics.Spawn(storage, solid, Solid{Owner: storage.CreateEntityRef(id)})
}

func spawnNPC(storage *ecs.Storage, world *physics.World, rooms *RoomManager, n config.NPC) {
	reward := Reward{Points: n.Reward.Points}
	if n.Reward.Key != nil {
		key := grid(*n.Reward.Key)
		reward.Key = &key
	}

	body := world.NewBox(physics.Static, placedAt(rooms, n.Placed), npcWidth, npcHeight, 0, physics.AsSensor())
	physics.Spawn(storage, body,
		NPC{Name: n.Name, Greeting: n.Greeting, Refusal: n.Refusal, Thanks: n.Thanks, Lines: n.Lines},
		Quest{Wants: n.Wants, Reward: reward},
		Interactable{Type: InteractQuest},
		Sprite{Color: npcColor, Width: npcWidth, Height: npcHeight, Layer: 1},
	)
}

func spawnSpawner(storage *ecs.Storage, world *physics.World, rooms *RoomManager, sp config.Spawner) {
	body := world.NewBox(physics.Static, placedAt(rooms, sp.Placed), spawnerSize, spawnerSize, 0)
	physics.Spawn(storage, body,
		ItemSpawner{Name: sp.Name, Items: sp.Items, Offset: vec(sp.SpawnOffset)},
		Interactable{Type: InteractButton},
		Sprite{Color: spawnerColor, Width: spawnerSize, Height: spawnerSize, Layer: 1},
	)
}

func spawnDoor(storage *ecs.Storage, world *physics.World, rooms *RoomManager, d config.Door) {
	body := world.NewBox(physics.Static, placedAt(rooms, d.Placed), doorWidth, doorHeight, 0, physics.AsSensor())
	physics.Spawn(storage, body,
		Door{Name: d.Name, Target: grid(d.Target)},
		Interactable{Type: InteractDoor},
		Sprite{Color: doorColor, Width: doorWidth, Height: doorHeight},
	)
}

// LevelSystem restarts the level on LevelRestart, or when R is pressed in game.
type LevelSystem struct {
	Input    ecs.Singleton[Input]
	State    ecs.Singleton[GameState]
	World    ecs.Singleton[physics.World]
	Rooms    ecs.Singleton[RoomManager]
	Progress ecs.Singleton[GameProgress]

	Bodies   ecs.Query[struct{ *physics.Body }]
	RoomList ecs.Query[struct{ *Room }]

	Restarts   ecs.MessageReader[LevelRestart]
	RestartOut ecs.MessageWriter[LevelRestart]
	Started    ecs.MessageWriter[GameStarted]

	Config *config.Config
	Logger *zap.Logger
}

func (s *LevelSystem) Execute(frame *ecs.UpdateFrame) {
	world, rooms := s.World.Get(), s.Rooms.Get()
	if world == nil || rooms == nil || s.Config == nil {
		return
	}
	logger := loggerOr(s.Logger)

	if input := s.Input.Get(); input != nil && input.KeyPressed(KeyR) {
		if state := s.State.Get(); state != nil && state.App == AppInGame {
			s.RestartOut.Send(LevelRestart{})
		}
	}

	restart := false
	for range s.Restarts.Read() {
		restart = true
	}
	if !restart {
		return
	}

	for id, entity := range s.Bodies.Iter() {
		world.Remove(entity.Body)
		frame.Commands.Delete(id)
	}
	for id := range s.RoomList.Iter() {
		frame.Commands.Delete(id)
	}

	level := 1
	if progress := s.Progress.Get(); progress != nil {
		level = progress.CurrentLevel
	}
	frame.Commands.Defer(func() {
		s.Progress.Set(GameProgress{CurrentLevel: level})
		if err := BuildLevel(frame.Storage, world, rooms, s.Config); err != nil {
			logger.Error("level rebuild failed", zap.Error(err))
			return
		}
		s.Started.Send(GameStarted{})
		logger.Info("level restarted")
	})
}

// startSystem announces the start of the game once the level is built.
type startSystem struct {
	Started ecs.MessageWriter[GameStarted]
}

func (s *startSystem) Execute(frame *ecs.UpdateFrame) {
	s.Started.Send(GameStarted{})
}
