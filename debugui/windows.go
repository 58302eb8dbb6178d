package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/nudelsalat/ecs"
	"github.com/plus3/nudelsalat/game"
	"github.com/plus3/nudelsalat/physics"
)

var (
	doneColor   = imgui.NewVec4(0.5, 0.9, 0.5, 1)
	brokenColor = imgui.NewVec4(0.95, 0.4, 0.4, 1)
)

// HandWindow shows the hand's position and what it holds.
func HandWindow(storage *ecs.Storage) ImguiItem {
	hands := ecs.NewQuery[struct {
		*game.Hand
		*physics.Body
	}](storage)

	return ImguiItem{Render: func() {
		imgui.SetNextWindowPosV(imgui.NewVec2(340, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
		if !imgui.BeginV("Hand", nil, imgui.WindowFlagsNone) {
			imgui.End()
			return
		}

		if hand, ok := hands.Single(); ok {
			pos := hand.Body.Position()
			imgui.Text(fmt.Sprintf("Position: %.0f, %.0f", pos.X, pos.Y))
			if hand.Hand.Grabbing && hand.Hand.Grabbed.Alive() {
				if item := ecs.ReadComponent[game.Item](storage, hand.Hand.Grabbed.Id); item != nil {
					imgui.Text("Holding: " + item.Name)
				}
			} else {
				imgui.Text("Holding: nothing")
			}
		}

		var input *game.Input
		if storage.ReadSingleton(&input) {
			imgui.Text(fmt.Sprintf("Cursor: %.0f, %.0f  down=%t", input.Cursor.X, input.Cursor.Y, input.LeftDown))
		}
		imgui.End()
	}}
}

// RoomsWindow lists the rooms with their lock state, and spawns items into the current one.
func RoomsWindow(storage *ecs.Storage) ImguiItem {
	rooms := ecs.NewQuery[struct{ *game.Room }](storage)

	return ImguiItem{Render: func() {
		var (
			manager *game.RoomManager
			world   *physics.World
			catalog *game.ItemCatalog
		)
		if !storage.ReadSingleton(&manager) {
			return
		}

		imgui.SetNextWindowPosV(imgui.NewVec2(340, 130), imgui.CondOnce, imgui.NewVec2(0, 0))
		if !imgui.BeginV("Rooms", nil, imgui.WindowFlagsNone) {
			imgui.End()
			return
		}

		imgui.Text(fmt.Sprintf("Current: %d, %d", manager.Current.X, manager.Current.Y))
		for r := range rooms.Values() {
			label := fmt.Sprintf("%s (%d, %d)", r.Room.Name, r.Room.Grid.X, r.Room.Grid.Y)
			if r.Room.Locked {
				imgui.BulletText(label + " locked")
				imgui.SameLine()
				if imgui.Button("Unlock##" + r.Room.Name) {
					r.Room.Locked = false
				}
				continue
			}
			imgui.BulletText(label)
		}

		if storage.ReadSingleton(&world) && storage.ReadSingleton(&catalog) && imgui.TreeNodeStr("Spawn item") {
			at := manager.Center(manager.Current)
			for _, name := range catalog.Names() {
				if imgui.Button(name) {
					_, _ = game.SpawnItem(storage, world, catalog, at, name)
				}
			}
			imgui.TreePop()
		}
		imgui.End()
	}}
}

// MachinesWindow shows machine contents and health, with a repair button.
func MachinesWindow(storage *ecs.Storage) ImguiItem {
	machines := ecs.NewQuery[struct{ *game.Machine }](storage)

	return ImguiItem{Render: func() {
		imgui.SetNextWindowPosV(imgui.NewVec2(10, 380), imgui.CondOnce, imgui.NewVec2(0, 0))
		if !imgui.BeginV("Machines", nil, imgui.WindowFlagsNone) {
			imgui.End()
			return
		}

		for m := range machines.Values() {
			machine := m.Machine
			if machine.Broken {
				imgui.PushStyleColorVec4(imgui.ColText, brokenColor)
				imgui.Text(machine.Name + " (broken)")
				imgui.PopStyleColor()
			} else {
				imgui.Text(machine.Name)
			}
			imgui.Text(fmt.Sprintf("HP %d/%d  items %d/%d", machine.HP, machine.MaxHP, len(machine.Items), machine.Capacity))
			for _, item := range machine.Items {
				imgui.BulletText(item)
			}
			if imgui.Button("Repair##" + machine.Name) {
				machine.HP = machine.MaxHP
				machine.Broken = false
			}
			imgui.SameLine()
			if imgui.Button("Empty##" + machine.Name) {
				machine.Items = machine.Items[:0]
			}
			imgui.Separator()
		}
		imgui.End()
	}}
}

// QuestsWindow lists every NPC's quest and the run's progress.
func QuestsWindow(storage *ecs.Storage) ImguiItem {
	quests := ecs.NewQuery[struct {
		*game.NPC
		*game.Quest
	}](storage)

	return ImguiItem{Render: func() {
		imgui.SetNextWindowPosV(imgui.NewVec2(340, 330), imgui.CondOnce, imgui.NewVec2(0, 0))
		if !imgui.BeginV("Quests", nil, imgui.WindowFlagsNone) {
			imgui.End()
			return
		}

		var (
			progress *game.GameProgress
			state    *game.GameState
		)
		if storage.ReadSingleton(&progress) {
			imgui.Text(fmt.Sprintf("Score %g  quests %d  crafted %d", progress.TotalScore, progress.QuestsCompleted, progress.ItemsCrafted))
		}
		if storage.ReadSingleton(&state) {
			imgui.Text(fmt.Sprintf("State %s / %s", state.App, state.Phase))
		}
		imgui.Separator()

		for q := range quests.Values() {
			text := fmt.Sprintf("%s wants %s", q.NPC.Name, q.Quest.Wants)
			if q.Quest.Completed {
				imgui.PushStyleColorVec4(imgui.ColText, doneColor)
				imgui.Text(text + " (done)")
				imgui.PopStyleColor()
				continue
			}
			imgui.Text(text)
		}
		imgui.End()
	}}
}

// Spawn registers the debug components, spawns every window and registers the
// ImguiSystem on the scheduler.
func Spawn(scheduler *ecs.Scheduler) {
	storage := scheduler.Storage()
	RegisterComponents(storage.Registry())
	ecs.NewSingleton[ImguiInputState](storage)

	storage.Spawn(PerformanceWindow(scheduler))
	storage.Spawn(HandWindow(storage))
	storage.Spawn(RoomsWindow(storage))
	storage.Spawn(MachinesWindow(storage))
	storage.Spawn(QuestsWindow(storage))

	scheduler.Register(&ImguiSystem{})
}
