package ecs

// System is run once per frame by the Scheduler. Exported Query, Singleton, MessageReader
// and MessageWriter fields are bound to the storage when the system is registered; other
// fields keep their state between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// UpdateFrame is passed to every system during one scheduler tick.
type UpdateFrame struct {
	DeltaTime float64
	Number    uint64
	Commands  *Commands
	Storage   *Storage
}

func newUpdateFrame(dt float64, number uint64, storage *Storage) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Number:    number,
		Commands:  newCommands(),
		Storage:   storage,
	}
}
