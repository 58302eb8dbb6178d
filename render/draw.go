package render

import (
	"fmt"
	"image/color"
	"slices"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/nudelsalat/ecs"
	"github.com/plus3/nudelsalat/game"
	"github.com/plus3/nudelsalat/physics"
)

var (
	backgroundColor = color.RGBA{24, 22, 30, 255}
	grabLineColor   = color.RGBA{255, 255, 255, 160}
	handColor       = color.RGBA{255, 255, 255, 255}
	handGrabColor   = color.RGBA{255, 220, 80, 255}
)

// DrawSystem draws the world through the camera and the HUD on top. It runs from ebiten's
// Draw, outside the scheduler, so it only reads state.
type DrawSystem struct {
	Camera   ecs.Singleton[game.Camera]
	HUD      ecs.Singleton[game.HUD]
	State    ecs.Singleton[game.GameState]
	Progress ecs.Singleton[game.GameProgress]
	Rooms    ecs.Singleton[game.RoomManager]

	Sprites ecs.Query[struct {
		*physics.Transform
		*game.Sprite
	}]
	Machines ecs.Query[struct {
		*physics.Transform
		*game.Machine
	}]
	NPCs ecs.Query[struct {
		*physics.Transform
		*game.NPC
		*game.Quest
	}]
	Hands ecs.Query[struct {
		*physics.Transform
		*game.Hand
	}]

	storage *ecs.Storage
	pixel   *ebiten.Image
	sorted  []sprite
}

type sprite struct {
	transform *physics.Transform
	sprite    *game.Sprite
}

// NewDrawSystem binds a draw system to the storage.
func NewDrawSystem(storage *ecs.Storage) *DrawSystem {
	s := &DrawSystem{storage: storage}
	s.Camera.Init(storage)
	s.HUD.Init(storage)
	s.State.Init(storage)
	s.Progress.Init(storage)
	s.Rooms.Init(storage)
	s.Sprites.Init(storage)
	s.Machines.Init(storage)
	s.NPCs.Init(storage)
	s.Hands.Init(storage)
	return s
}

func (s *DrawSystem) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	camera := s.Camera.Get()
	if camera == nil {
		return
	}
	if s.pixel == nil {
		s.pixel = ebiten.NewImage(1, 1)
		s.pixel.Fill(color.White)
	}

	s.sorted = s.sorted[:0]
	for _, e := range s.Sprites.Iter() {
		s.sorted = append(s.sorted, sprite{e.Transform, e.Sprite})
	}
	slices.SortStableFunc(s.sorted, func(a, b sprite) int { return a.sprite.Layer - b.sprite.Layer })

	for _, e := range s.sorted {
		if e.sprite.Radius > 0 {
			p := camera.WorldToScreen(e.transform.Position)
			vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), float32(e.sprite.Radius/camera.Zoom), e.sprite.Color, true)
			continue
		}
		s.box(screen, camera, e.transform, e.sprite.Width, e.sprite.Height, e.sprite.Color)
	}

	s.labels(screen, camera)
	s.hands(screen, camera)
	s.hud(screen)
}

// box draws a filled rectangle centred on the transform and rotated with it.
func (s *DrawSystem) box(screen *ebiten.Image, camera *game.Camera, t *physics.Transform, w, h float64, c color.Color) {
	p := camera.WorldToScreen(t.Position)

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(w, h)
	opts.GeoM.Translate(-w/2, -h/2)
	opts.GeoM.Rotate(t.Angle)
	opts.GeoM.Scale(1/camera.Zoom, 1/camera.Zoom)
	opts.GeoM.Translate(p.X, p.Y)
	opts.ColorScale.ScaleWithColor(c)
	screen.DrawImage(s.pixel, opts)
}

func (s *DrawSystem) labels(screen *ebiten.Image, camera *game.Camera) {
	for _, m := range s.Machines.Iter() {
		p := camera.WorldToScreen(m.Transform.Position)
		text := fmt.Sprintf("%s %d/%d HP %d/%d", m.Machine.Name, len(m.Machine.Items), m.Machine.Capacity, m.Machine.HP, m.Machine.MaxHP)
		if m.Machine.Broken {
			text = m.Machine.Name + " (broken)"
		}
		ebitenutil.DebugPrintAt(screen, text, int(p.X)-60, int(p.Y)-100)
		if len(m.Machine.Items) > 0 {
			ebitenutil.DebugPrintAt(screen, strings.Join(m.Machine.Items, " "), int(p.X)-60, int(p.Y)-84)
		}
	}

	for _, n := range s.NPCs.Iter() {
		p := camera.WorldToScreen(n.Transform.Position)
		text := fmt.Sprintf("%s wants %s", n.NPC.Name, n.Quest.Wants)
		if n.Quest.Completed {
			text = n.NPC.Name
		}
		ebitenutil.DebugPrintAt(screen, text, int(p.X)-40, int(p.Y)-70)
	}
}

func (s *DrawSystem) hands(screen *ebiten.Image, camera *game.Camera) {
	for _, h := range s.Hands.Iter() {
		p := camera.WorldToScreen(h.Transform.Position)
		c := handColor
		if h.Hand.Grabbing {
			c = handGrabColor
			if item := s.Sprites.GetRef(h.Hand.Grabbed); item != nil {
				q := camera.WorldToScreen(item.Transform.Position)
				vector.StrokeLine(screen, float32(p.X), float32(p.Y), float32(q.X), float32(q.Y), 2, grabLineColor, true)
			}
		}
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), 6, c, true)
	}
}

func (s *DrawSystem) hud(screen *ebiten.Image) {
	lines := []string{}
	if progress := s.Progress.Get(); progress != nil {
		lines = append(lines,
			fmt.Sprintf("Level %d  Score %g", progress.CurrentLevel, progress.TotalScore),
			fmt.Sprintf("Quests %d  Crafted %d  Placed %d", progress.QuestsCompleted, progress.ItemsCrafted, progress.ItemsPlaced))
	}
	if rooms := s.Rooms.Get(); rooms != nil {
		if room := rooms.Room(s.storage, rooms.Current); room != nil {
			lines = append(lines, "Room "+room.Name)
		}
	}
	if state := s.State.Get(); state != nil && state.Phase != game.PhasePlaying {
		lines = append(lines, strings.ToUpper(strings.ReplaceAll(state.Phase.String(), "_", " ")))
	}
	ebitenutil.DebugPrintAt(screen, strings.Join(lines, "\n"), 8, 8)

	hud := s.HUD.Get()
	if hud == nil {
		return
	}
	size := screen.Bounds().Size()
	if hud.Notice != "" {
		ebitenutil.DebugPrintAt(screen, hud.Notice, size.X/2-len(hud.Notice)*3, 8)
	}
	if hud.Line != "" {
		ebitenutil.DebugPrintAt(screen, hud.Speaker+": "+hud.Line, 8, size.Y-24)
	}
}
