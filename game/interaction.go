package game

import (
	"github.com/jakecoffman/cp"
	"github.com/plus3/nudelsalat/ecs"
	"github.com/plus3/nudelsalat/physics"
	"go.uber.org/zap"
)

// Target is an interactable chosen for a release or click.
type Target struct {
	Ref  *ecs.EntityRef
	Type InteractionType
}

// FindInteractable returns the interactable nearest the centre of bb whose shape overlaps bb.
// Items never count as targets, and neither does the entity in exclude. Ties go to the lower
// entity id.
func FindInteractable(storage *ecs.Storage, world *physics.World, bb cp.BB, exclude *ecs.EntityRef) (Target, bool) {
	center := bb.Center()

	var found Target
	best := 0.0
	for _, hit := range world.Intersect(bb, nil) {
		if hit.Ref == exclude {
			continue
		}
		interactable := ecs.ReadComponent[Interactable](storage, hit.Ref.Id)
		if interactable == nil || interactable.Type == InteractNone || interactable.Type == InteractItem {
			continue
		}
		d := hit.Shape.Body().Position().Distance(center)
		if found.Ref == nil || d < best {
			found, best = Target{Ref: hit.Ref, Type: interactable.Type}, d
		}
	}
	return found, found.Ref != nil
}

// InteractionSystem resolves what a release or click does, based on the nearest
// interactable overlapping the released item or the hand.
type InteractionSystem struct {
	World    ecs.Singleton[physics.World]
	State    ecs.Singleton[GameState]
	Progress ecs.Singleton[GameProgress]
	Hands    ecs.Query[handQuery]

	Releases ecs.MessageReader[HandReleased]
	Clicks   ecs.MessageReader[HandClicked]

	Placed ecs.MessageWriter[ItemPlaced]
	Quests ecs.MessageWriter[QuestCompleted]
	Talk   ecs.MessageWriter[TalkToNPC]
	Rooms  ecs.MessageWriter[ChangeRoom]
	Brews  ecs.MessageWriter[BrewRequested]
	Spawns ecs.MessageWriter[SpawnRandomItem]
	Sounds ecs.MessageWriter[PlaySound]

	Logger *zap.Logger
}

func (s *InteractionSystem) Execute(frame *ecs.UpdateFrame) {
	world := s.World.Get()
	if world == nil {
		return
	}
	logger := loggerOr(s.Logger)
	playing := s.State.Get().Playing()

	for msg := range s.Releases.Read() {
		if playing {
			s.release(frame, world, msg, logger)
		}
	}
	for msg := range s.Clicks.Read() {
		if playing {
			s.click(frame, world, msg, logger)
		}
	}
}

func (s *InteractionSystem) release(frame *ecs.UpdateFrame, world *physics.World, msg HandReleased, logger *zap.Logger) {
	if !msg.Item.Alive() {
		return
	}
	body := ecs.ReadComponent[physics.Body](frame.Storage, msg.Item.Id)
	if body == nil {
		return
	}
	target, ok := FindInteractable(frame.Storage, world, body.Bounds(), msg.Item)
	if !ok {
		return
	}

	name := ""
	if item := ecs.ReadComponent[Item](frame.Storage, msg.Item.Id); item != nil {
		name = item.Name
	}

	switch target.Type {
	case InteractMachine:
		s.place(frame, world, target.Ref, msg.Item, name, logger)
	case InteractQuest, InteractGive:
		s.give(frame, world, target.Ref, msg.Item, name, logger)
	case InteractDoor:
		if door := ecs.ReadComponent[Door](frame.Storage, target.Ref.Id); door != nil {
			s.Rooms.Send(ChangeRoom{Target: door.Target})
		}
	}
}

func (s *InteractionSystem) place(frame *ecs.UpdateFrame, world *physics.World, machineRef, item *ecs.EntityRef, name string, logger *zap.Logger) {
	machine := ecs.ReadComponent[Machine](frame.Storage, machineRef.Id)
	if machine == nil || name == "" {
		return
	}
	if machine.Broken || machine.Full() {
		s.Sounds.Send(PlaySound{Sound: SoundError, Volume: 1})
		logger.Debug("machine refused item",
			zap.String("machine", machine.Name), zap.String("item", name), zap.Bool("broken", machine.Broken))
		return
	}

	machine.Items = append(machine.Items, name)
	physics.Despawn(frame, world, item.Id)
	if progress := s.Progress.Get(); progress != nil {
		progress.ItemsPlaced++
	}
	s.Placed.Send(ItemPlaced{Machine: machineRef, Item: name})
	s.Sounds.Send(PlaySound{Sound: SoundPlace, Volume: 1})
	logger.Debug("item placed", zap.String("machine", machine.Name), zap.Strings("items", machine.Items))
}

func (s *InteractionSystem) give(frame *ecs.UpdateFrame, world *physics.World, npcRef, item *ecs.EntityRef, name string, logger *zap.Logger) {
	quest := ecs.ReadComponent[Quest](frame.Storage, npcRef.Id)
	npc := ecs.ReadComponent[NPC](frame.Storage, npcRef.Id)
	if quest == nil || npc == nil {
		return
	}

	if quest.Completed || name != quest.Wants {
		s.Talk.Send(TalkToNPC{Name: npc.Name, Line: npc.Refusal})
		return
	}

	quest.Completed = true
	physics.Despawn(frame, world, item.Id)
	s.Quests.Send(QuestCompleted{NPC: npcRef, Name: npc.Name, Reward: quest.Reward})
	s.Talk.Send(TalkToNPC{Name: npc.Name, Line: npc.Thanks})
	s.Sounds.Send(PlaySound{Sound: SoundQuest, Volume: 1})
	logger.Info("quest completed", zap.String("npc", npc.Name), zap.String("item", name))
}

func (s *InteractionSystem) click(frame *ecs.UpdateFrame, world *physics.World, msg HandClicked, logger *zap.Logger) {
	radius := 5.0
	var hand *ecs.EntityRef
	for h := range s.Hands.Values() {
		if h.Body.Radius > 0 {
			radius = h.Body.Radius
		}
		hand = h.Body.Ref()
		break
	}

	target, ok := FindInteractable(frame.Storage, world, cp.NewBBForExtents(msg.Position, radius, radius), hand)
	if !ok {
		return
	}

	switch target.Type {
	case InteractButton:
		if ecs.ReadComponent[ItemSpawner](frame.Storage, target.Ref.Id) != nil {
			s.Spawns.Send(SpawnRandomItem{Spawner: target.Ref})
		}
	case InteractMachine:
		s.Brews.Send(BrewRequested{Machine: target.Ref})
	case InteractTalk, InteractQuest, InteractGive:
		npc := ecs.ReadComponent[NPC](frame.Storage, target.Ref.Id)
		if npc == nil {
			return
		}
		line := npc.Line()
		if quest := ecs.ReadComponent[Quest](frame.Storage, target.Ref.Id); quest != nil && quest.Completed {
			line = npc.Thanks
		}
		s.Talk.Send(TalkToNPC{Name: npc.Name, Line: line})
	case InteractDoor:
		if door := ecs.ReadComponent[Door](frame.Storage, target.Ref.Id); door != nil {
			s.Rooms.Send(ChangeRoom{Target: door.Target})
		}
	}
	logger.Debug("clicked", zap.Stringer("type", target.Type), zap.Uint64("entity", uint64(target.Ref.Id)))
}
