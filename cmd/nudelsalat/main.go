// Command nudelsalat runs the game in a window.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/gopxl/beep"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/nudelsalat/audio"
	"github.com/plus3/nudelsalat/audio/speaker"
	"github.com/plus3/nudelsalat/config"
	"github.com/plus3/nudelsalat/debugui"
	"github.com/plus3/nudelsalat/ecs"
	"github.com/plus3/nudelsalat/game"
	"github.com/plus3/nudelsalat/logging"
	"github.com/plus3/nudelsalat/render"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "Level config to load over the defaults.")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn or error.")
	debugUI := flag.Bool("debug-ui", false, "Show the Dear ImGui debug windows.")
	mute := flag.Bool("mute", false, "Disable sound.")
	flag.Parse()

	logger, err := logging.New(*logLevel)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(2)
	}
	defer logger.Sync()

	if err := run(logger, *configPath, *debugUI, *mute); err != nil {
		logger.Fatal("nudelsalat", zap.Error(err))
	}
}

func run(logger *zap.Logger, configPath string, debugUI, mute bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	var overlay render.Overlay
	if debugUI {
		backend := debugui.NewBackend(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
		overlay = render.Overlay{
			BeginFrame: func() { backend.BeginFrame() },
			EndFrame:   func() { backend.EndFrame() },
			Draw:       func(screen *ebiten.Image) { backend.Draw(screen) },
			Layout:     func(w, h int) { backend.Layout(w, h) },
		}
	}

	var sink audio.Sink = audio.Nop{}
	rate := beep.SampleRate(cfg.Audio.SampleRate)
	if cfg.Audio.Enabled && !mute {
		out, err := speaker.Open(rate, 100*time.Millisecond)
		if err != nil {
			logger.Warn("audio disabled", zap.Error(err))
		} else {
			defer out.Close()
			sink = out
		}
	}

	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	scheduler := ecs.NewScheduler(storage)
	err = game.Setup(scheduler, cfg,
		game.WithInput(&render.InputSystem{}),
		game.WithSystems(audio.NewSoundSystem(sink, rate, cfg.Audio.MasterVolume, logger.Named("audio"))),
		game.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	if debugUI {
		debugui.Spawn(scheduler)
	}

	logger.Info("starting", zap.String("title", cfg.Window.Title), zap.Bool("debug_ui", debugUI))
	return render.Run(render.NewGame(scheduler, overlay), cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
}
