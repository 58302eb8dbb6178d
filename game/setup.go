package game

import (
	"github.com/jakecoffman/cp"
	"github.com/pkg/errors"
	"github.com/plus3/nudelsalat/config"
	"github.com/plus3/nudelsalat/ecs"
	"github.com/plus3/nudelsalat/physics"
	"go.uber.org/zap"
)

type options struct {
	input  ecs.System
	extra  []ecs.System
	rand   Rand
	logger *zap.Logger
}

type Option func(*options)

// WithInput registers the system that fills the Input singleton. It runs first.
func WithInput(system ecs.System) Option {
	return func(o *options) { o.input = system }
}

// WithSystems registers systems that run after the gameplay systems and before the input
// is cleared, such as sound playback or debug overlays.
func WithSystems(systems ...ecs.System) Option {
	return func(o *options) { o.extra = append(o.extra, systems...) }
}

// WithRand sets the random source used by item spawners.
func WithRand(r Rand) Option {
	return func(o *options) { o.rand = r }
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// RecipesFromConfig builds a recipe book, falling back to the default recipes when the
// config lists none.
func RecipesFromConfig(recipes []config.Recipe) RecipeBook {
	if len(recipes) == 0 {
		return DefaultRecipes()
	}
	book := NewRecipeBook()
	for _, r := range recipes {
		book.Add(r.Ingredients, r.Output)
	}
	return book
}

// PhysicsOptions converts the physics config section.
func PhysicsOptions(c config.Physics) physics.Options {
	return physics.Options{
		Gravity:       c.Gravity,
		Iterations:    c.Iterations,
		SubSteps:      c.SubSteps,
		MaxDelta:      c.MaxDelta,
		GrabMaxForce:  c.GrabMaxForce,
		GrabErrorBias: c.GrabErrorBias,
	}
}

// NewCameraFromConfig creates a camera tuned by the config, centred on the start room.
func NewCameraFromConfig(cfg *config.Config) Camera {
	camera := NewCamera(cp.Vector{X: float64(cfg.Window.Width), Y: float64(cfg.Window.Height)})
	camera.LerpSpeed = cfg.Camera.LerpSpeed
	camera.ZoomSpeed = cfg.Camera.ZoomSpeed
	camera.MinZoom = cfg.Camera.MinZoom
	camera.MaxZoom = cfg.Camera.MaxZoom
	camera.ShakeDecay = cfg.Camera.ShakeDecay
	camera.ShakeMaxOffset = cfg.Camera.ShakeMaxOffset
	camera.Position = cp.Vector{
		X: float64(cfg.Rooms.Start.X) * cfg.Rooms.Width,
		Y: float64(cfg.Rooms.Start.Y) * cfg.Rooms.Height,
	}
	return camera
}

// Setup registers the game components, creates the singletons, builds the level and
// registers every gameplay system on the scheduler in frame order.
func Setup(scheduler *ecs.Scheduler, cfg *config.Config, opts ...Option) error {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	logger := loggerOr(o.logger)
	storage := scheduler.Storage()

	RegisterComponents(storage.Registry())

	catalog, err := CatalogFromConfig(cfg.Items)
	if err != nil {
		return errors.Wrap(err, "item catalog")
	}

	world := ecs.NewSingleton(storage, physics.NewWorld(PhysicsOptions(cfg.Physics))).Get()
	rooms := ecs.NewSingleton(storage, NewRoomManager(cp.Vector{X: cfg.Rooms.Width, Y: cfg.Rooms.Height})).Get()
	ecs.NewSingleton(storage, NewCameraFromConfig(cfg))
	ecs.NewSingleton(storage, GameState{App: AppLoading})
	ecs.NewSingleton(storage, GameProgress{CurrentLevel: 1})
	ecs.NewSingleton(storage, Input{})
	ecs.NewSingleton(storage, HUD{})
	ecs.NewSingleton(storage, RecipesFromConfig(cfg.Recipes))
	ecs.NewSingleton(storage, catalog)

	if err := BuildLevel(storage, world, rooms, cfg); err != nil {
		return errors.Wrap(err, "build level")
	}
	scheduler.RegisterStartup(&startSystem{})

	if o.input != nil {
		scheduler.Register(o.input)
	}
	scheduler.Register(&StateSystem{Logger: logger.Named("state")})
	scheduler.Register(&LevelSystem{Config: cfg, Logger: logger.Named("level")})
	scheduler.Register(&RoomInputSystem{})
	scheduler.Register(&ChangeRoomSystem{Logger: logger.Named("rooms")})
	scheduler.Register(&HandMovementSystem{})
	scheduler.Register(&GrabSystem{Logger: logger.Named("hand")})
	scheduler.Register(&InteractionSystem{Logger: logger.Named("interaction")})
	scheduler.Register(&RewardSystem{Logger: logger.Named("rewards")})
	scheduler.Register(&ProductionSystem{
		Trash:       cfg.Machine.TrashItem,
		ErrorTrauma: cfg.Camera.ErrorTrauma,
		Logger:      logger.Named("production"),
	})
	scheduler.Register(&SpawnerSystem{Rand: o.rand, Logger: logger.Named("spawner")})
	scheduler.Register(&physics.StepSystem{})
	scheduler.Register(&CameraSystem{})
	scheduler.Register(&HUDSystem{})
	for _, system := range o.extra {
		scheduler.Register(system)
	}
	scheduler.Register(&InputResetSystem{})

	logger.Info("level built",
		zap.Int("rooms", len(rooms.Rooms)),
		zap.Int("items", len(catalog.Names())),
		zap.Int("bodies", len(world.Bodies())))
	return nil
}
