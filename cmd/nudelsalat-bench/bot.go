package main

import (
	"github.com/jakecoffman/cp"
	"github.com/plus3/nudelsalat/ecs"
	"github.com/plus3/nudelsalat/game"
	"github.com/plus3/nudelsalat/physics"
)

type step int

const (
	stepSpawn step = iota
	stepSettle
	stepReach
	stepCarry
	stepBrew
)

const (
	aimFrames    = 4
	settleFrames = 40
	carryFrames  = 45
)

// Counters is what the bot observed during the run.
type Counters struct {
	Clicks  int
	Grabs   int
	Places  int
	Brews   int
	Crafts  int
	Breaks  int
	Repairs int
}

// Bot plays the spawn, grab, place and brew loop through the Input singleton, the way a
// player with a mouse would. It repairs the machine when a bad mix breaks it.
type Bot struct {
	Input  ecs.Singleton[game.Input]
	Camera ecs.Singleton[game.Camera]

	Items ecs.Query[struct {
		*game.Item
		*physics.Body
	}]
	Machines ecs.Query[struct {
		*game.Machine
		*physics.Body
	}]
	Spawners ecs.Query[struct {
		*game.ItemSpawner
		*physics.Body
	}]

	Grabbed ecs.MessageReader[game.ItemGrabbed]
	Placed  ecs.MessageReader[game.ItemPlaced]
	Crafted ecs.MessageReader[game.ItemCrafted]
	Broken  ecs.MessageReader[game.MachineBroken]

	BrewAt   int
	DropLift float64
	Counters Counters

	step  step
	frame int
}

func (b *Bot) Execute(frame *ecs.UpdateFrame) {
	input, camera := b.Input.Get(), b.Camera.Get()
	if input == nil || camera == nil {
		return
	}
	b.observe()

	machine, machineBody, ok := b.machine()
	if !ok {
		return
	}
	if machine.Broken {
		machine.HP, machine.Broken = machine.MaxHP, false
		machine.Items = machine.Items[:0]
		b.Counters.Repairs++
	}

	aim := func(p cp.Vector) {
		s := camera.WorldToScreen(p)
		input.MoveTo(s.X, s.Y)
	}
	b.frame++

	switch b.step {
	case stepSpawn:
		spawner, ok := b.Spawners.Single()
		if !ok {
			return
		}
		aim(spawner.Body.Position())
		b.click(input, stepSettle)
		if b.step == stepSettle {
			b.Counters.Clicks++
		}

	case stepSettle:
		if b.frame >= settleFrames {
			b.next(stepReach)
		}

	case stepReach:
		item, ok := b.freshItem(machineBody.Position())
		if !ok {
			b.next(stepSpawn)
			return
		}
		aim(item)
		if b.frame >= aimFrames {
			input.Click(true)
			b.next(stepCarry)
		}

	case stepCarry:
		aim(machineBody.Position().Sub(cp.Vector{Y: b.DropLift}))
		if b.frame >= carryFrames {
			input.Click(false)
			if len(machine.Items) >= b.BrewAt {
				b.next(stepBrew)
			} else {
				b.next(stepSpawn)
			}
		}

	case stepBrew:
		aim(machineBody.Position())
		b.click(input, stepSpawn)
		if b.step == stepSpawn {
			b.Counters.Brews++
		}
	}
}

// click presses after the hand had time to reach the cursor and releases on the next
// frame, then moves on.
func (b *Bot) click(input *game.Input, then step) {
	switch {
	case b.frame == aimFrames:
		input.Click(true)
	case b.frame > aimFrames:
		input.Click(false)
		b.next(then)
	}
}

func (b *Bot) next(s step) {
	b.step, b.frame = s, 0
}

func (b *Bot) observe() {
	b.Counters.Grabs += len(b.Grabbed.Drain())
	b.Counters.Places += len(b.Placed.Drain())
	b.Counters.Crafts += len(b.Crafted.Drain())
	b.Counters.Breaks += len(b.Broken.Drain())
}

func (b *Bot) machine() (*game.Machine, *physics.Body, bool) {
	m, ok := b.Machines.Single()
	if !ok {
		return nil, nil, false
	}
	return m.Machine, m.Body, true
}

// freshItem returns the position of the item furthest from the machine: the latest spawn
// rather than a crafted output resting on the machine.
func (b *Bot) freshItem(machine cp.Vector) (cp.Vector, bool) {
	var (
		best  cp.Vector
		bestD = -1.0
	)
	for item := range b.Items.Values() {
		p := item.Body.Position()
		if d := p.Distance(machine); d > bestD {
			best, bestD = p, d
		}
	}
	return best, bestD >= 0
}
