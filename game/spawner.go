package game

import (
	"math/rand/v2"

	"github.com/plus3/nudelsalat/ecs"
	"github.com/plus3/nudelsalat/physics"
	"go.uber.org/zap"
)

// Rand picks spawner items. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// SpawnerSystem hands out a random item when a spawner's button is clicked.
type SpawnerSystem struct {
	World   ecs.Singleton[physics.World]
	Catalog ecs.Singleton[ItemCatalog]

	Requests ecs.MessageReader[SpawnRandomItem]

	Rand   Rand
	Logger *zap.Logger
}

func (s *SpawnerSystem) Execute(frame *ecs.UpdateFrame) {
	world, catalog := s.World.Get(), s.Catalog.Get()
	if world == nil || catalog == nil {
		return
	}
	logger := loggerOr(s.Logger)
	if s.Rand == nil {
		s.Rand = globalRand{}
	}

	for msg := range s.Requests.Read() {
		if !msg.Spawner.Alive() {
			continue
		}
		spawner := ecs.ReadComponent[ItemSpawner](frame.Storage, msg.Spawner.Id)
		body := ecs.ReadComponent[physics.Body](frame.Storage, msg.Spawner.Id)
		if spawner == nil || body == nil || len(spawner.Items) == 0 {
			continue
		}

		name := spawner.Items[s.Rand.IntN(len(spawner.Items))]
		if err := SpawnItemDeferred(frame, world, catalog, body.Position().Add(spawner.Offset), name); err != nil {
			logger.Error("spawn failed", zap.String("spawner", spawner.Name), zap.Error(err))
			continue
		}
		logger.Debug("spawned", zap.String("spawner", spawner.Name), zap.String("item", name))
	}
}
