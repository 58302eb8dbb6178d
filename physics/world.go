// Package physics connects the ECS storage to a Chipmunk2D space.
package physics

import (
	"math"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/plus3/nudelsalat/ecs"
)

// Options configures a World.
type Options struct {
	Gravity    float64 // px/s², positive is down
	Iterations int
	SubSteps   int
	MaxDelta   float64 // frame deltas above this are clamped

	GrabMaxForce  float64
	GrabErrorBias float64
}

func (o Options) withDefaults() Options {
	if o.Iterations < 1 {
		o.Iterations = 10
	}
	if o.SubSteps < 1 {
		o.SubSteps = 1
	}
	if o.MaxDelta <= 0 {
		o.MaxDelta = 0.1
	}
	if o.GrabMaxForce <= 0 {
		o.GrabMaxForce = math.Inf(1)
	}
	if o.GrabErrorBias <= 0 {
		o.GrabErrorBias = math.Pow(1-0.1, 60)
	}
	return o
}

// World is stored as a singleton and owns the simulation space.
type World struct {
	Space  *cp.Space
	Paused bool

	opts  Options
	steps uint64
}

// NewWorld creates an empty space with the given options.
func NewWorld(opts Options) World {
	opts = opts.withDefaults()
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{X: 0, Y: opts.Gravity})
	space.Iterations = uint(opts.Iterations)
	return World{Space: space, opts: opts}
}

// Options returns the effective options.
func (w *World) Options() Options {
	return w.opts
}

// Steps returns how many sub-steps the world has simulated.
func (w *World) Steps() uint64 {
	return w.steps
}

// Step advances the simulation by dt, split into the configured number of sub-steps.
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}
	dt = min(dt, w.opts.MaxDelta)
	sub := dt / float64(w.opts.SubSteps)
	for i := 0; i < w.opts.SubSteps; i++ {
		w.Space.Step(sub)
		w.steps++
	}
}

// Add inserts a body and its shape into the space.
func (w *World) Add(b Body) Body {
	w.Space.AddBody(b.Body)
	w.Space.AddShape(b.Shape)
	return b
}

// Remove detaches a body, its shape and every joint attached to it.
func (w *World) Remove(b *Body) {
	if b == nil || b.Body == nil {
		return
	}

	var joints []*cp.Constraint
	b.Body.EachConstraint(func(c *cp.Constraint) {
		joints = append(joints, c)
	})
	for _, c := range joints {
		if w.Space.ContainsConstraint(c) {
			w.Space.RemoveConstraint(c)
		}
	}

	if b.Shape != nil && w.Space.ContainsShape(b.Shape) {
		w.Space.RemoveShape(b.Shape)
	}
	if w.Space.ContainsBody(b.Body) {
		w.Space.RemoveBody(b.Body)
	}
}

// Prune removes every body whose entity no longer exists and returns how many were removed.
func (w *World) Prune() int {
	var dead []*Body
	w.Space.EachShape(func(shape *cp.Shape) {
		if ref, ok := shape.UserData.(*ecs.EntityRef); ok && !ref.Alive() {
			dead = append(dead, &Body{Body: shape.Body(), Shape: shape})
		}
	})

	for _, b := range dead {
		w.Remove(b)
	}
	return len(dead)
}

// Hit is a shape found by a query.
type Hit struct {
	Ref    *ecs.EntityRef
	Shape  *cp.Shape
	Sensor bool
}

type hitSet struct {
	hits   []Hit
	seen   map[*ecs.EntityRef]bool
	filter func(*cp.Shape) bool
}

func (h *hitSet) add(shape *cp.Shape) {
	ref, ok := shape.UserData.(*ecs.EntityRef)
	if !ok || !ref.Alive() || h.seen[ref] {
		return
	}
	if h.filter != nil && !h.filter(shape) {
		return
	}
	h.seen[ref] = true
	h.hits = append(h.hits, Hit{Ref: ref, Shape: shape, Sensor: shape.Sensor()})
}

func (h *hitSet) sorted() []Hit {
	sort.Slice(h.hits, func(i, j int) bool { return h.hits[i].Ref.Id < h.hits[j].Ref.Id })
	return h.hits
}

// Intersect returns the live entities whose shapes overlap bb, ordered by entity id.
// A nil filter accepts every shape.
func (w *World) Intersect(bb cp.BB, filter func(*cp.Shape) bool) []Hit {
	set := hitSet{seen: make(map[*ecs.EntityRef]bool), filter: filter}
	w.Space.BBQuery(bb, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, _ interface{}) {
		set.add(shape)
	}, nil)
	return set.sorted()
}

// Touching returns the entities whose shapes overlap the body's own shape, excluding the
// body's entity, ordered by entity id. Unlike Intersect the test is exact, so a rotated
// box only counts where its edges reach the shape.
func (w *World) Touching(b *Body, filter func(*cp.Shape) bool) []Hit {
	self := b.Ref()
	set := hitSet{seen: make(map[*ecs.EntityRef]bool), filter: filter}
	if self != nil {
		set.seen[self] = true
	}
	w.Space.ShapeQuery(b.Shape, func(shape *cp.Shape, _ *cp.ContactPointSet) {
		set.add(shape)
	})
	return set.sorted()
}

// Bodies returns every body in the space, dynamic ones first.
func (w *World) Bodies() []*cp.Body {
	var out []*cp.Body
	w.Space.EachBody(func(body *cp.Body) {
		out = append(out, body)
	})
	return out
}

// JointCount returns the number of constraints in the space.
func (w *World) JointCount() int {
	n := 0
	w.Space.EachConstraint(func(*cp.Constraint) { n++ })
	return n
}
