package ecs

// UpdateFrame is handed to every system during one Scheduler.Once call.
// Structural changes go through Commands and are applied after the last
// system has run.
type UpdateFrame struct {
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
}

func newUpdateFrame(dt float64, storage *Storage) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Commands:  newCommands(),
		Storage:   storage,
	}
}
