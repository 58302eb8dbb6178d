package game

import (
	"github.com/plus3/nudelsalat/ecs"
	"github.com/plus3/nudelsalat/physics"
	"go.uber.org/zap"
)

// ProductionSystem brews the contents of a machine when it is clicked. A known recipe
// produces its output; anything else produces trash and damages the machine.
type ProductionSystem struct {
	World    ecs.Singleton[physics.World]
	Recipes  ecs.Singleton[RecipeBook]
	Catalog  ecs.Singleton[ItemCatalog]
	Progress ecs.Singleton[GameProgress]

	Brews   ecs.MessageReader[BrewRequested]
	Crafted ecs.MessageWriter[ItemCrafted]
	Broken  ecs.MessageWriter[MachineBroken]
	Sounds  ecs.MessageWriter[PlaySound]
	Shakes  ecs.MessageWriter[CameraShake]

	Trash       string
	ErrorTrauma float64
	Logger      *zap.Logger
}

func (s *ProductionSystem) Execute(frame *ecs.UpdateFrame) {
	world, recipes, catalog := s.World.Get(), s.Recipes.Get(), s.Catalog.Get()
	if world == nil || recipes == nil || catalog == nil {
		return
	}
	logger := loggerOr(s.Logger)

	for msg := range s.Brews.Read() {
		if !msg.Machine.Alive() {
			continue
		}
		machine := ecs.ReadComponent[Machine](frame.Storage, msg.Machine.Id)
		body := ecs.ReadComponent[physics.Body](frame.Storage, msg.Machine.Id)
		if machine == nil || body == nil {
			continue
		}
		if machine.Broken {
			s.Sounds.Send(PlaySound{Sound: SoundError, Volume: 1})
			continue
		}
		if len(machine.Items) == 0 {
			continue
		}

		// the machine keeps its contents until something comes out
		ingredients := machine.Items
		out := body.Position().Add(machine.OutputOffset)

		if output, ok := recipes.Match(ingredients); ok {
			if err := SpawnItemDeferred(frame, world, catalog, out, output); err != nil {
				logger.Error("recipe output not spawned", zap.String("output", output), zap.Error(err))
				continue
			}
			machine.Items = nil
			if progress := s.Progress.Get(); progress != nil {
				progress.ItemsCrafted++
			}
			s.Crafted.Send(ItemCrafted{Machine: msg.Machine, Ingredients: ingredients, Output: output})
			s.Sounds.Send(PlaySound{Sound: SoundCraft, Volume: 1})
			logger.Info("crafted", zap.String("machine", machine.Name),
				zap.Strings("ingredients", ingredients), zap.String("output", output))
			continue
		}

		trash := s.Trash
		if trash == "" {
			trash = "trash"
		}
		if err := SpawnItemDeferred(frame, world, catalog, out, trash); err != nil {
			logger.Error("trash not spawned", zap.String("trash", trash), zap.Error(err))
			continue
		}
		machine.Items = nil
		machine.HP--
		s.Sounds.Send(PlaySound{Sound: SoundError, Volume: 1})
		s.Shakes.Send(CameraShake{Trauma: s.ErrorTrauma})
		logger.Info("bad mix", zap.String("machine", machine.Name),
			zap.Strings("ingredients", ingredients), zap.Int("hp", machine.HP))

		if machine.HP <= 0 {
			machine.HP = 0
			machine.Broken = true
			s.Broken.Send(MachineBroken{Machine: msg.Machine, Name: machine.Name})
			logger.Warn("machine broken", zap.String("machine", machine.Name))
		}
	}
}
