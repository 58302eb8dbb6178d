package game

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/plus3/nudelsalat/ecs"
)

// Camera is the singleton view onto the world. Zoom is a projection scale: world pixels
// per screen pixel, so values above 1 zoom out.
type Camera struct {
	Position   cp.Vector // world point at the screen centre, without shake
	Viewport   cp.Vector // screen size in pixels
	Zoom       float64
	TargetZoom float64

	LerpSpeed float64
	ZoomSpeed float64
	MinZoom   float64
	MaxZoom   float64

	Trauma         float64
	ShakeDecay     float64
	ShakeMaxOffset float64
	ShakeOffset    cp.Vector
	shakeTime      float64
}

// NewCamera returns a camera with the default tuning.
func NewCamera(viewport cp.Vector) Camera {
	return Camera{
		Viewport:       viewport,
		Zoom:           1,
		TargetZoom:     1,
		LerpSpeed:      10,
		ZoomSpeed:      5,
		MinZoom:        0.1,
		MaxZoom:        10,
		ShakeDecay:     1.5,
		ShakeMaxOffset: 100,
	}
}

// View returns the world point at the screen centre, including shake.
func (c *Camera) View() cp.Vector {
	return c.Position.Add(c.ShakeOffset)
}

func (c *Camera) ScreenToWorld(screen cp.Vector) cp.Vector {
	return c.View().Add(screen.Sub(c.Viewport.Mult(0.5)).Mult(c.Zoom))
}

func (c *Camera) WorldToScreen(world cp.Vector) cp.Vector {
	return world.Sub(c.View()).Mult(1 / c.Zoom).Add(c.Viewport.Mult(0.5))
}

// AddTrauma increases the shake amount, saturating at 1.
func (c *Camera) AddTrauma(amount float64) {
	c.Trauma = min(c.Trauma+amount, 1)
}

// SetZoom changes the zoom target, clamped to the allowed range.
func (c *Camera) SetZoom(zoom float64) {
	c.TargetZoom = max(c.MinZoom, min(zoom, c.MaxZoom))
}

func (c *Camera) ZoomIn(amount float64)  { c.SetZoom(c.TargetZoom - amount) }
func (c *Camera) ZoomOut(amount float64) { c.SetZoom(c.TargetZoom + amount) }

// Update moves the camera toward target and advances zoom and shake by dt.
func (c *Camera) Update(target cp.Vector, dt float64) {
	c.Position = c.Position.Lerp(target, min(dt*c.LerpSpeed, 1))
	c.Zoom = cp.Lerp(c.Zoom, c.TargetZoom, min(dt*c.ZoomSpeed, 1))

	c.Trauma = max(c.Trauma-c.ShakeDecay*dt, 0)
	if c.Trauma <= 0 {
		c.ShakeOffset = cp.Vector{}
		return
	}

	c.shakeTime += dt
	intensity := c.Trauma * c.Trauma
	t := c.shakeTime
	c.ShakeOffset = cp.Vector{
		X: math.Sin(t*10) * math.Cos(t*15.7) * c.ShakeMaxOffset * intensity,
		Y: math.Sin(t*12.5) * math.Cos(t*13.3) * c.ShakeMaxOffset * intensity,
	}
}

// CameraSystem follows the current room and applies shake requests.
type CameraSystem struct {
	Camera ecs.Singleton[Camera]
	Rooms  ecs.Singleton[RoomManager]
	Shakes ecs.MessageReader[CameraShake]
}

func (s *CameraSystem) Execute(frame *ecs.UpdateFrame) {
	camera := s.Camera.Get()
	rooms := s.Rooms.Get()
	if camera == nil || rooms == nil {
		return
	}

	for msg := range s.Shakes.Read() {
		camera.AddTrauma(msg.Trauma)
	}
	camera.Update(rooms.Center(rooms.Current), frame.DeltaTime)
}
