package game

import (
	"github.com/plus3/nudelsalat/ecs"
	"github.com/plus3/nudelsalat/physics"
	"go.uber.org/zap"
)

type AppState int

const (
	AppLoading AppState = iota
	AppSplash
	AppMainMenu
	AppInGame
)

func (s AppState) String() string {
	switch s {
	case AppLoading:
		return "loading"
	case AppSplash:
		return "splash"
	case AppMainMenu:
		return "main_menu"
	case AppInGame:
		return "in_game"
	}
	return "unknown"
}

type GamePhase int

const (
	PhasePlaying GamePhase = iota
	PhasePaused
	PhaseLevelComplete
	PhaseLevelFailed
)

func (p GamePhase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseLevelComplete:
		return "level_complete"
	case PhaseLevelFailed:
		return "level_failed"
	}
	return "unknown"
}

// GameState is the singleton holding the application state and the in-game phase.
type GameState struct {
	App   AppState
	Phase GamePhase
}

// Playing reports whether gameplay systems should run.
func (s *GameState) Playing() bool {
	return s != nil && s.App == AppInGame && s.Phase == PhasePlaying
}

// GameProgress accumulates counters for the current run.
type GameProgress struct {
	CurrentLevel    int
	TotalScore      float64
	QuestsCompleted int
	ItemsCrafted    int
	ItemsPlaced     int
	Playtime        float64
}

// StateSystem applies lifecycle messages to GameState and keeps the physics world paused
// whenever the game is not being played.
type StateSystem struct {
	State    ecs.Singleton[GameState]
	Progress ecs.Singleton[GameProgress]
	Input    ecs.Singleton[Input]
	World    ecs.Singleton[physics.World]

	Started   ecs.MessageReader[GameStarted]
	Paused    ecs.MessageReader[GamePaused]
	Resumed   ecs.MessageReader[GameResumed]
	Completed ecs.MessageReader[LevelCompleted]
	Died      ecs.MessageReader[PlayerDied]

	PauseOut  ecs.MessageWriter[GamePaused]
	ResumeOut ecs.MessageWriter[GameResumed]

	Logger *zap.Logger
}

func (s *StateSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	if state == nil {
		return
	}
	logger := loggerOr(s.Logger)

	for range s.Started.Read() {
		state.App = AppInGame
		state.Phase = PhasePlaying
		logger.Info("game started")
	}

	if input := s.Input.Get(); input != nil && input.KeyPressed(KeyEscape) && state.App == AppInGame {
		switch state.Phase {
		case PhasePlaying:
			s.PauseOut.Send(GamePaused{})
		case PhasePaused:
			s.ResumeOut.Send(GameResumed{})
		}
	}

	for range s.Paused.Read() {
		if state.Phase == PhasePlaying {
			state.Phase = PhasePaused
			logger.Info("game paused")
		}
	}
	for range s.Resumed.Read() {
		if state.Phase == PhasePaused {
			state.Phase = PhasePlaying
			logger.Info("game resumed")
		}
	}
	for msg := range s.Died.Read() {
		state.Phase = PhaseLevelFailed
		logger.Info("level failed", zap.String("reason", msg.Reason))
	}
	for msg := range s.Completed.Read() {
		if state.Phase != PhaseLevelComplete {
			state.Phase = PhaseLevelComplete
			logger.Info("level complete", zap.Float64("score", msg.Score))
		}
	}

	if state.Playing() {
		s.Progress.Get().Playtime += frame.DeltaTime
	}
	if world := s.World.Get(); world != nil {
		world.Paused = !state.Playing()
	}
}

func loggerOr(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
