package game

import (
	"fmt"

	"github.com/plus3/nudelsalat/ecs"
)

const (
	hudLineTime   = 4.0
	hudNoticeTime = 2.5
)

// HUD is the singleton text overlay state: the last thing an NPC said and a short notice
// about the latest event.
type HUD struct {
	Speaker string
	Line    string
	Notice  string

	lineLeft   float64
	noticeLeft float64
}

func (h *HUD) say(name, line string) {
	h.Speaker, h.Line, h.lineLeft = name, line, hudLineTime
}

func (h *HUD) notify(format string, args ...any) {
	h.Notice, h.noticeLeft = fmt.Sprintf(format, args...), hudNoticeTime
}

func (h *HUD) tick(dt float64) {
	if h.lineLeft -= dt; h.lineLeft <= 0 {
		h.Speaker, h.Line = "", ""
	}
	if h.noticeLeft -= dt; h.noticeLeft <= 0 {
		h.Notice = ""
	}
}

// HUDSystem turns gameplay messages into overlay text.
type HUDSystem struct {
	HUD   ecs.Singleton[HUD]
	Rooms ecs.Singleton[RoomManager]

	Talk      ecs.MessageReader[TalkToNPC]
	Crafted   ecs.MessageReader[ItemCrafted]
	Broken    ecs.MessageReader[MachineBroken]
	Score     ecs.MessageReader[ScoreChanged]
	Entered   ecs.MessageReader[RoomEntered]
	Completed ecs.MessageReader[LevelCompleted]
}

func (s *HUDSystem) Execute(frame *ecs.UpdateFrame) {
	hud := s.HUD.Get()
	if hud == nil {
		return
	}
	hud.tick(frame.DeltaTime)

	for msg := range s.Talk.Read() {
		hud.say(msg.Name, msg.Line)
	}
	for msg := range s.Crafted.Read() {
		hud.notify("Crafted %s", msg.Output)
	}
	for msg := range s.Score.Read() {
		hud.notify("+%g points", msg.Delta)
	}
	for msg := range s.Entered.Read() {
		if rooms := s.Rooms.Get(); rooms != nil {
			if room := rooms.Room(frame.Storage, msg.To); room != nil {
				hud.notify("%s", room.Name)
			}
		}
	}
	for msg := range s.Broken.Read() {
		hud.notify("The %s broke down", msg.Name)
	}
	for msg := range s.Completed.Read() {
		hud.notify("Level complete! Score %g", msg.Score)
	}
}
