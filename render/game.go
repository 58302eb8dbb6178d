package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/plus3/nudelsalat/ecs"
	"github.com/plus3/nudelsalat/game"
)

// Overlay hooks something that draws over the game into the frame, such as the debug UI.
// Every hook is optional.
type Overlay struct {
	BeginFrame func()
	EndFrame   func()
	Draw       func(screen *ebiten.Image)
	Layout     func(width, height int)
}

// Game implements ebiten.Game: Update runs one scheduler frame, Draw renders it.
type Game struct {
	Scheduler *ecs.Scheduler
	Drawer    *DrawSystem
	Overlay   Overlay

	camera *ecs.Singleton[game.Camera]
}

func NewGame(scheduler *ecs.Scheduler, overlay Overlay) *Game {
	storage := scheduler.Storage()
	return &Game{
		Scheduler: scheduler,
		Drawer:    NewDrawSystem(storage),
		Overlay:   overlay,
		camera:    ecs.NewSingleton[game.Camera](storage),
	}
}

func (g *Game) Update() error {
	if g.Overlay.BeginFrame != nil {
		g.Overlay.BeginFrame()
	}

	g.Scheduler.Once(1.0 / float64(ebiten.TPS()))

	if g.Overlay.EndFrame != nil {
		g.Overlay.EndFrame()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.Drawer.Draw(screen)
	if g.Overlay.Draw != nil {
		g.Overlay.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if camera := g.camera.Get(); camera != nil {
		camera.Viewport = cp.Vector{X: float64(outsideWidth), Y: float64(outsideHeight)}
	}
	if g.Overlay.Layout != nil {
		g.Overlay.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until it is closed.
func Run(g *Game, title string, width, height int) error {
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}
