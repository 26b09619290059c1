package ecs

// UpdateFrame is handed to every system phase. DeltaTime is the fixed step in
// seconds during UpdateFixed and the real frame time during UpdateVariable and Draw.
type UpdateFrame struct {
	DeltaTime float64
	Step      int
	Commands  *Commands
	World     *World
}

func newUpdateFrame(dt float64, world *World, commands *Commands) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Commands:  commands,
		World:     world,
	}
}
