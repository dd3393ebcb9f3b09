package ecs

// UpdateFrame is handed to every system during one scheduler pass.
type UpdateFrame struct {
	DeltaTime float64
	// Tick counts scheduler passes, starting at 1 for the first frame.
	Tick     uint64
	Commands *Commands
	Storage  *Storage
}
