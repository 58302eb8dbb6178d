package game

import (
	"github.com/plus3/nudelsalat/ecs"
	"go.uber.org/zap"
)

// RewardSystem pays out completed quests and ends the level once every quest is done.
type RewardSystem struct {
	Progress ecs.Singleton[GameProgress]
	Rooms    ecs.Singleton[RoomManager]
	State    ecs.Singleton[GameState]
	Quests   ecs.Query[struct{ *Quest }]

	Completed ecs.MessageReader[QuestCompleted]
	Score     ecs.MessageWriter[ScoreChanged]
	Talk      ecs.MessageWriter[TalkToNPC]
	Level     ecs.MessageWriter[LevelCompleted]

	Logger *zap.Logger
}

func (s *RewardSystem) Execute(frame *ecs.UpdateFrame) {
	progress := s.Progress.Get()
	if progress == nil {
		return
	}
	logger := loggerOr(s.Logger)

	rewarded := false
	for msg := range s.Completed.Read() {
		rewarded = true
		progress.QuestsCompleted++

		if msg.Reward.Points != 0 {
			progress.TotalScore += msg.Reward.Points
			s.Score.Send(ScoreChanged{Delta: msg.Reward.Points, Total: progress.TotalScore})
		}
		if key := msg.Reward.Key; key != nil {
			if rooms := s.Rooms.Get(); rooms != nil && rooms.Unlock(frame.Storage, *key) {
				name := rooms.Room(frame.Storage, *key).Name
				s.Talk.Send(TalkToNPC{Name: msg.Name, Line: "The way to the " + name + " is open."})
				logger.Info("room unlocked", zap.String("room", name))
			}
		}
	}
	if !rewarded {
		return
	}

	total, done := 0, 0
	for quest := range s.Quests.Values() {
		total++
		if quest.Completed {
			done++
		}
	}
	state := s.State.Get()
	if total > 0 && done == total && (state == nil || state.Phase != PhaseLevelComplete) {
		s.Level.Send(LevelCompleted{Score: progress.TotalScore})
	}
}
