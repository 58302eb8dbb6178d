package game

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/plus3/nudelsalat/ecs"
	"go.uber.org/zap"
)

var (
	DirLeft  = GridPos{X: -1, Y: 0}
	DirRight = GridPos{X: 1, Y: 0}
	DirUp    = GridPos{X: 0, Y: -1}
	DirDown  = GridPos{X: 0, Y: 1}
)

// RoomManager is the singleton tracking the room layout and the room the camera shows.
type RoomManager struct {
	Current GridPos
	Rooms   map[GridPos]*ecs.EntityRef
	Size    cp.Vector
}

// NewRoomManager creates an empty layout of rooms of the given size.
func NewRoomManager(size cp.Vector) RoomManager {
	return RoomManager{Rooms: make(map[GridPos]*ecs.EntityRef), Size: size}
}

// Center returns the world position of a room's centre.
func (m *RoomManager) Center(g GridPos) cp.Vector {
	return cp.Vector{X: float64(g.X) * m.Size.X, Y: float64(g.Y) * m.Size.Y}
}

// At returns the grid position of the room containing a world point.
func (m *RoomManager) At(p cp.Vector) GridPos {
	return GridPos{
		X: int(math.Round(p.X / m.Size.X)),
		Y: int(math.Round(p.Y / m.Size.Y)),
	}
}

// Room returns the room component at g, or nil if there is no such room.
func (m *RoomManager) Room(reader ecs.ComponentReader, g GridPos) *Room {
	ref, ok := m.Rooms[g]
	if !ok || !ref.Alive() {
		return nil
	}
	return ecs.ReadComponent[Room](reader, ref.Id)
}

// TryMove moves to the neighbouring room in dir.
func (m *RoomManager) TryMove(reader ecs.ComponentReader, dir GridPos) bool {
	return m.TryMoveTo(reader, m.Current.Add(dir))
}

// TryMoveTo moves to target if the room exists and is not locked.
func (m *RoomManager) TryMoveTo(reader ecs.ComponentReader, target GridPos) bool {
	room := m.Room(reader, target)
	if room == nil || room.Locked || target == m.Current {
		return false
	}
	m.Current = target
	return true
}

// Unlock opens a locked room. It returns false if the room does not exist.
func (m *RoomManager) Unlock(reader ecs.ComponentReader, g GridPos) bool {
	room := m.Room(reader, g)
	if room == nil {
		return false
	}
	room.Locked = false
	return true
}

// RoomInputSystem moves between rooms with WASD.
type RoomInputSystem struct {
	Input ecs.Singleton[Input]
	State ecs.Singleton[GameState]
	Out   ecs.MessageWriter[ChangeRoom]
	Rooms ecs.Singleton[RoomManager]
}

func (s *RoomInputSystem) Execute(frame *ecs.UpdateFrame) {
	input, rooms := s.Input.Get(), s.Rooms.Get()
	if input == nil || rooms == nil || !s.State.Get().Playing() {
		return
	}

	for _, key := range input.JustPressed {
		var dir GridPos
		switch key {
		case KeyA:
			dir = DirLeft
		case KeyD:
			dir = DirRight
		case KeyW:
			dir = DirUp
		case KeyS:
			dir = DirDown
		default:
			continue
		}
		s.Out.Send(ChangeRoom{Target: rooms.Current.Add(dir)})
	}
}

// ChangeRoomSystem applies ChangeRoom requests from keys and doors.
type ChangeRoomSystem struct {
	Rooms   ecs.Singleton[RoomManager]
	Changes ecs.MessageReader[ChangeRoom]
	Entered ecs.MessageWriter[RoomEntered]
	Sounds  ecs.MessageWriter[PlaySound]
	Talk    ecs.MessageWriter[TalkToNPC]

	Logger *zap.Logger
}

func (s *ChangeRoomSystem) Execute(frame *ecs.UpdateFrame) {
	rooms := s.Rooms.Get()
	if rooms == nil {
		return
	}
	logger := loggerOr(s.Logger)

	for msg := range s.Changes.Read() {
		from := rooms.Current
		if rooms.TryMoveTo(frame.Storage, msg.Target) {
			s.Entered.Send(RoomEntered{From: from, To: rooms.Current})
			s.Sounds.Send(PlaySound{Sound: SoundDoor, Volume: 1})
			logger.Debug("room entered",
				zap.Int("x", rooms.Current.X), zap.Int("y", rooms.Current.Y))
			continue
		}

		if room := rooms.Room(frame.Storage, msg.Target); room != nil && room.Locked {
			s.Talk.Send(TalkToNPC{Name: room.Name, Line: "The door is locked."})
			s.Sounds.Send(PlaySound{Sound: SoundError, Volume: 1})
		}
	}
}

// ColliderBox returns the centre and size of a room boundary collider. The ground's top
// edge is floorHeight + wallWidth/2 above the bottom of the room.
func ColliderBox(kind ColliderKind, center, size cp.Vector, floorHeight, wallWidth float64) (cp.Vector, float64, float64) {
	switch kind {
	case Ground:
		return center.Add(cp.Vector{Y: size.Y/2 - floorHeight}), size.X, wallWidth
	case Ceiling:
		return center.Add(cp.Vector{Y: -(size.Y/2 + wallWidth/2)}), size.X, wallWidth
	case WallLeft:
		return center.Add(cp.Vector{X: -(size.X/2 + wallWidth/2)}), wallWidth, size.Y
	case WallRight:
		return center.Add(cp.Vector{X: size.X/2 + wallWidth/2}), wallWidth, size.Y
	}
	return center, 0, 0
}
