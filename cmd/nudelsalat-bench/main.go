// Command nudelsalat-bench plays the game headlessly with a scripted bot for a fixed
// duration and prints a markdown report of frame timings and gameplay counters.
package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/plus3/nudelsalat/config"
	"github.com/plus3/nudelsalat/ecs"
	"github.com/plus3/nudelsalat/game"
	"github.com/plus3/nudelsalat/logging"
	"github.com/plus3/nudelsalat/physics"
	"go.uber.org/zap"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "How long the bench should run.")
	configPath := flag.String("config", "", "Level config to load over the defaults.")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn or error.")
	brewAt := flag.Int("brew-at", 2, "Brew once the machine holds this many items.")
	flag.Parse()

	logger, err := logging.New(*logLevel)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(2)
	}
	defer logger.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	benchLayout(cfg)

	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	scheduler := ecs.NewScheduler(storage)
	bot := &Bot{BrewAt: *brewAt, DropLift: cfg.Machine.Height/2 + 24}
	if err := game.Setup(scheduler, cfg,
		game.WithInput(bot),
		game.WithLogger(logger.WithOptions(zap.IncreaseLevel(zap.WarnLevel))),
	); err != nil {
		logger.Fatal("setup", zap.Error(err))
	}

	report := &Report{
		Duration: *duration,
		Systems:  scheduler.GetStats().SystemCount,
		BrewAt:   *brewAt,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	logger.Info("running bench", zap.Duration("duration", *duration))
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	start := time.Now()
Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			frameStart := time.Now()
			scheduler.Once(1.0 / 60)
			report.FrameTime.Samples = append(report.FrameTime.Samples, time.Since(frameStart))
			report.TotalFrames++
		}
	}

	report.TotalTime = time.Since(start)
	report.FrameTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	report.Counters = bot.Counters
	report.Entities = storage.CollectStats().TotalEntityCount
	var (
		progress *game.GameProgress
		world    *physics.World
	)
	if storage.ReadSingleton(&progress) {
		report.Progress = *progress
	}
	if storage.ReadSingleton(&world) {
		report.Bodies = len(world.Bodies())
	}

	if err := report.Generate(os.Stdout); err != nil {
		logger.Fatal("write report", zap.Error(err))
	}
}

// benchLayout moves the first machine next to the first spawner so the bot never has to
// drag items between rooms.
func benchLayout(cfg *config.Config) {
	if len(cfg.Machines) == 0 || len(cfg.Spawners) == 0 {
		return
	}
	spawner := cfg.Spawners[0]
	cfg.Machines[0].Room = spawner.Room
	cfg.Machines[0].Offset = config.Vec2{X: spawner.Offset.X + 250, Y: cfg.Rooms.Height/2 - cfg.Rooms.FloorHeight - cfg.Machine.Height/2 - cfg.Rooms.WallWidth/2}
}
